package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jauntkid/TailorPro/database"
	"github.com/jauntkid/TailorPro/errs"
	"github.com/jauntkid/TailorPro/middlewares"
	"github.com/jauntkid/TailorPro/models"
	"github.com/jauntkid/TailorPro/utils"
)

type CreateCustomerInput struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address"`
	Referral     string `json:"referral"`
	Notes        string `json:"notes"`
	ProfileImage string `json:"profileImage"`
}

type UpdateCustomerInput struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Address      *string `json:"address"`
	Referral     *string `json:"referral"`
	Notes        *string `json:"notes"`
	ProfileImage *string `json:"profileImage"`
}

func findCustomer(db *gorm.DB, id int, preloads ...string) (*models.Customer, error) {
	var customer models.Customer
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("customer not found with id of %d", id)
		}
		return nil, err
	}
	return &customer, nil
}

func CreateCustomer(c *fiber.Ctx) error {
	var input CreateCustomerInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	var existing models.Customer
	if err := database.DB.Where("phone = ?", input.Phone).First(&existing).Error; err == nil {
		return errs.Conflict("customer with phone %s already exists", input.Phone)
	}

	customer := models.Customer{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Address:      input.Address,
		Referral:     input.Referral,
		Notes:        input.Notes,
		ProfileImage: input.ProfileImage,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    customer,
	})
}

func GetCustomers(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Customer{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page := utils.NewPageParams(c.Query("page"), c.Query("limit"))
	var customers []models.Customer
	if err := query.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&customers).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(customers),
		"pagination": page.Links(total),
		"total":      total,
		"data":       customers,
	})
}

func GetCustomer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid customer id")
	}

	customer, err := findCustomer(database.DB, id, "Measurements")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    customer,
	})
}

func UpdateCustomer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid customer id")
	}

	var input UpdateCustomerInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	customer, err := findCustomer(database.DB, id)
	if err != nil {
		return err
	}

	// A phone change must not collide with another customer.
	if input.Phone != nil && *input.Phone != customer.Phone {
		var existing models.Customer
		if err := database.DB.Where("phone = ?", *input.Phone).First(&existing).Error; err == nil {
			return errs.Conflict("customer with phone %s already exists", *input.Phone)
		}
	}

	updates := utils.UpdatesFromPtrDTO(&input, map[string]string{"profileImage": "profile_image"})
	if len(updates) > 0 {
		if err := database.DB.Model(customer).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    customer,
	})
}

func DeleteCustomer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid customer id")
	}

	customer, err := findCustomer(database.DB, id)
	if err != nil {
		return err
	}

	if err := database.DB.Delete(customer).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}

func GetCustomerOrders(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid customer id")
	}

	if _, err := findCustomer(database.DB, id); err != nil {
		return err
	}

	var orders []models.Order
	if err := database.DB.Where("customer_id = ?", id).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

func GetCustomerMeasurements(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid customer id")
	}

	if _, err := findCustomer(database.DB, id); err != nil {
		return err
	}

	var measurements []models.Measurement
	if err := database.DB.Where("customer_id = ?", id).
		Preload("Category").
		Order("created_at DESC").
		Find(&measurements).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(measurements),
		"data":    measurements,
	})
}
