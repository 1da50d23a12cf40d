package controllers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jauntkid/TailorPro/database"
	"github.com/jauntkid/TailorPro/errs"
	"github.com/jauntkid/TailorPro/middlewares"
	"github.com/jauntkid/TailorPro/models"
	"github.com/jauntkid/TailorPro/utils"
)

type CreateProductInput struct {
	Name         string                    `json:"name" validate:"required"`
	Description  string                    `json:"description"`
	Price        float64                   `json:"price" validate:"gte=0"`
	Category     uint                      `json:"category" validate:"required"`
	Image        string                    `json:"image"`
	Icon         string                    `json:"icon"`
	IsActive     *bool                     `json:"isActive"`
	Measurements []models.MeasurementRange `json:"measurements"`
}

type UpdateProductInput struct {
	Name         *string                   `json:"name"`
	Description  *string                   `json:"description"`
	Price        *float64                  `json:"price" validate:"omitempty,gte=0"`
	Category     *uint                     `json:"category"`
	Image        *string                   `json:"image"`
	Icon         *string                   `json:"icon"`
	IsActive     *bool                     `json:"isActive"`
	Measurements []models.MeasurementRange `json:"measurements"`
}

func rangesJSON(ranges []models.MeasurementRange) datatypes.JSON {
	if len(ranges) == 0 {
		return nil
	}
	raw, _ := json.Marshal(ranges)
	return raw
}

func findProduct(db *gorm.DB, id int, preloads ...string) (*models.Product, error) {
	var product models.Product
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("product not found with id of %d", id)
		}
		return nil, err
	}
	return &product, nil
}

func GetProducts(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Product{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page := utils.NewPageParams(c.Query("page"), c.Query("limit"))
	var products []models.Product
	if err := query.Preload("Category").
		Order("name ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(products),
		"pagination": page.Links(total),
		"total":      total,
		"data":       products,
	})
}

func GetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid product id")
	}

	product, err := findProduct(database.DB, id, "Category")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

func CreateProduct(c *fiber.Ctx) error {
	var input CreateProductInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	if _, err := findCategory(database.DB, int(input.Category)); err != nil {
		return err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	product := models.Product{
		Name:         input.Name,
		Description:  input.Description,
		Price:        utils.Round2(input.Price),
		CategoryID:   input.Category,
		Image:        input.Image,
		Icon:         input.Icon,
		IsActive:     isActive,
		Measurements: rangesJSON(input.Measurements),
	}
	if err := database.DB.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

func UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid product id")
	}

	var input UpdateProductInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	product, err := findProduct(database.DB, id)
	if err != nil {
		return err
	}

	// A category change must point at an existing category.
	if input.Category != nil && *input.Category != product.CategoryID {
		if _, err := findCategory(database.DB, int(*input.Category)); err != nil {
			return err
		}
		product.CategoryID = *input.Category
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Icon != nil {
		product.Icon = *input.Icon
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if len(input.Measurements) > 0 {
		product.Measurements = rangesJSON(input.Measurements)
	}

	if err := database.DB.Save(product).Error; err != nil {
		return err
	}

	database.DB.Preload("Category").First(product, product.ID)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

func DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid product id")
	}

	product, err := findProduct(database.DB, id)
	if err != nil {
		return err
	}

	if err := database.DB.Delete(product).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}
