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
)

type CategoryInput struct {
	Title                string   `json:"title" validate:"required"`
	Icon                 string   `json:"icon"`
	GradientColors       []string `json:"gradientColors"`
	RequiredMeasurements []string `json:"requiredMeasurements"`
}

func stringsJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return nil
	}
	raw, _ := json.Marshal(values)
	return raw
}

func findCategory(db *gorm.DB, id int) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("category not found with id of %d", id)
		}
		return nil, err
	}
	return &category, nil
}

func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.DB.Order("title ASC").Find(&categories).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(categories),
		"data":    categories,
	})
}

func GetCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid category id")
	}

	category, err := findCategory(database.DB, id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

func CreateCategory(c *fiber.Ctx) error {
	var input CategoryInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	var existing models.Category
	if err := database.DB.Where("title = ?", input.Title).First(&existing).Error; err == nil {
		return errs.Conflict("category with title %s already exists", input.Title)
	}

	category := models.Category{
		Title:                input.Title,
		Icon:                 input.Icon,
		GradientColors:       stringsJSON(input.GradientColors),
		RequiredMeasurements: stringsJSON(input.RequiredMeasurements),
	}
	if err := database.DB.Create(&category).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

func UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid category id")
	}

	var input CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := findCategory(database.DB, id)
	if err != nil {
		return err
	}

	if input.Title != "" && input.Title != category.Title {
		var existing models.Category
		if err := database.DB.Where("title = ?", input.Title).First(&existing).Error; err == nil {
			return errs.Conflict("category with title %s already exists", input.Title)
		}
		category.Title = input.Title
	}
	if input.Icon != "" {
		category.Icon = input.Icon
	}
	if len(input.GradientColors) > 0 {
		category.GradientColors = stringsJSON(input.GradientColors)
	}
	if len(input.RequiredMeasurements) > 0 {
		category.RequiredMeasurements = stringsJSON(input.RequiredMeasurements)
	}

	if err := database.DB.Save(category).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

func DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid category id")
	}

	category, err := findCategory(database.DB, id)
	if err != nil {
		return err
	}

	var productCount int64
	if err := database.DB.Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&productCount).Error; err != nil {
		return err
	}
	if productCount > 0 {
		return errs.Conflict("cannot delete category as it is being used by %d products", productCount)
	}

	if err := database.DB.Delete(category).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}
