package controllers

import (
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

type CreateMeasurementInput struct {
	Customer     uint              `json:"customer" validate:"required"`
	Category     uint              `json:"category" validate:"required"`
	Measurements map[string]string `json:"measurements"`
	Notes        string            `json:"notes"`
}

type UpdateMeasurementInput struct {
	Measurements map[string]string `json:"measurements"`
	Notes        *string           `json:"notes"`
}

func valuesJSONMap(values map[string]string) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func findMeasurement(db *gorm.DB, id int, preloads ...string) (*models.Measurement, error) {
	var measurement models.Measurement
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&measurement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("measurement not found with id of %d", id)
		}
		return nil, err
	}
	return &measurement, nil
}

func GetMeasurements(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Measurement{})

	if customer := c.Query("customer"); customer != "" {
		query = query.Where("customer_id = ?", customer)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page := utils.NewPageParams(c.Query("page"), c.Query("limit"))
	var measurements []models.Measurement
	if err := query.Preload("Customer").Preload("Category").Preload("MeasuredBy").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&measurements).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(measurements),
		"pagination": page.Links(total),
		"total":      total,
		"data":       measurements,
	})
}

func GetMeasurement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid measurement id")
	}

	measurement, err := findMeasurement(database.DB, id, "Customer", "Category", "MeasuredBy")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    measurement,
	})
}

func CreateMeasurement(c *fiber.Ctx) error {
	var input CreateMeasurementInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)

	if _, err := findCustomer(database.DB, int(input.Customer)); err != nil {
		return err
	}
	if _, err := findCategory(database.DB, int(input.Category)); err != nil {
		return err
	}

	measurement := models.Measurement{
		CustomerID:   input.Customer,
		CategoryID:   input.Category,
		Values:       valuesJSONMap(input.Measurements),
		Notes:        input.Notes,
		MeasuredByID: &userID,
	}
	if err := database.DB.Create(&measurement).Error; err != nil {
		return err
	}

	database.DB.Preload("Customer").Preload("Category").Preload("MeasuredBy").
		First(&measurement, measurement.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    measurement,
	})
}

func UpdateMeasurement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid measurement id")
	}

	var input UpdateMeasurementInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)

	measurement, err := findMeasurement(database.DB, id)
	if err != nil {
		return err
	}

	if input.Measurements != nil {
		measurement.Values = valuesJSONMap(input.Measurements)
	}
	if input.Notes != nil {
		measurement.Notes = *input.Notes
	}
	measurement.MeasuredByID = &userID

	if err := database.DB.Save(measurement).Error; err != nil {
		return err
	}

	database.DB.Preload("Customer").Preload("Category").Preload("MeasuredBy").
		First(measurement, measurement.ID)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    measurement,
	})
}

func DeleteMeasurement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid measurement id")
	}

	measurement, err := findMeasurement(database.DB, id)
	if err != nil {
		return err
	}

	if err := database.DB.Delete(measurement).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}
