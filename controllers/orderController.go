package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jauntkid/TailorPro/database"
	"github.com/jauntkid/TailorPro/errs"
	"github.com/jauntkid/TailorPro/middlewares"
	"github.com/jauntkid/TailorPro/models"
	"github.com/jauntkid/TailorPro/utils"
)

type OrderItemInput struct {
	Product      uint       `json:"product" validate:"required"`
	Quantity     int        `json:"quantity" validate:"omitempty,min=1"`
	Price        *float64   `json:"price" validate:"omitempty,gte=0"`
	Measurements *uint      `json:"measurements"`
	Notes        string     `json:"notes"`
	Deadline     *time.Time `json:"deadline" validate:"required"`
	Status       string     `json:"status"`
}

type CreateOrderInput struct {
	Customer uint             `json:"customer" validate:"required"`
	Items    []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Status   string           `json:"status"`
	DueDate  *time.Time       `json:"dueDate"`
	Priority string           `json:"priority"`
	Notes    string           `json:"notes"`
	Photos   []string         `json:"photos"`
}

type UpdateOrderInput struct {
	Items    []OrderItemInput `json:"items" validate:"omitempty,min=1,dive"`
	Status   string           `json:"status"`
	DueDate  *time.Time       `json:"dueDate"`
	Priority string           `json:"priority"`
	Notes    *string          `json:"notes"`
	Photos   []string         `json:"photos"`
}

type UpdateItemStatusInput struct {
	ItemID    uint   `json:"itemId" validate:"required"`
	NewStatus string `json:"newStatus" validate:"required"`
}

var orderListPreloads = []string{"Customer", "Items", "Items.Product", "Items.Product.Category", "CreatedBy"}

func preloadOrder(db *gorm.DB, preloads []string) *gorm.DB {
	for _, p := range preloads {
		db = db.Preload(p)
	}
	return db
}

// buildOrderItems resolves and validates item inputs against the order's
// customer: the product must exist, a referenced measurement must exist and
// belong to that customer, and a missing price falls back to the product's
// current price.
func buildOrderItems(tx *gorm.DB, customerID uint, inputs []OrderItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		var product models.Product
		if err := tx.First(&product, in.Product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("product %d not found", in.Product)
			}
			return nil, err
		}

		if in.Measurements != nil {
			var measurement models.Measurement
			if err := tx.First(&measurement, *in.Measurements).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, errs.NotFound("measurement %d not found", *in.Measurements)
				}
				return nil, err
			}
			if measurement.CustomerID != customerID {
				return nil, errs.InvalidReference("measurement does not belong to the customer")
			}
		}

		price := product.Price
		if in.Price != nil {
			price = *in.Price
		}
		status := models.OrderStatusNew
		if in.Status != "" {
			status = models.OrderStatus(in.Status)
			if !models.ValidItemStatus(status) {
				return nil, errs.Validation("invalid item status %q", in.Status)
			}
		}
		quantity := in.Quantity
		if quantity < 1 {
			quantity = 1
		}

		items = append(items, models.OrderItem{
			ProductID:     product.ID,
			Quantity:      quantity,
			Price:         utils.Round2(price),
			MeasurementID: in.Measurements,
			Notes:         in.Notes,
			Deadline:      in.Deadline,
			Status:        status,
		})
	}
	return items, nil
}

func photosJSON(photos []string) datatypes.JSON {
	if len(photos) == 0 {
		return nil
	}
	raw, _ := json.Marshal(photos)
	return raw
}

// latestOrderNumber returns the order number of the most recently created
// order, or "" when there is none. The sequence generator derives the next
// number from it.
func latestOrderNumber(tx *gorm.DB) string {
	var latest models.Order
	if err := tx.Order("created_at DESC").First(&latest).Error; err != nil {
		return ""
	}
	return latest.OrderNumber
}

func CreateOrder(c *fiber.Ctx) error {
	var input CreateOrderInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)

	status := models.OrderStatusNew
	if input.Status != "" {
		status = models.OrderStatus(input.Status)
		if !models.ValidOrderStatus(status) {
			return errs.Validation("invalid order status %q", input.Status)
		}
	}
	priority := models.PriorityMedium
	if input.Priority != "" {
		priority = models.OrderPriority(input.Priority)
		if !models.ValidPriority(priority) {
			return errs.Validation("invalid priority %q", input.Priority)
		}
	}

	tx := database.DB.Begin()

	var customer models.Customer
	if err := tx.First(&customer, input.Customer).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("customer %d not found", input.Customer)
		}
		return err
	}

	items, err := buildOrderItems(tx, customer.ID, input.Items)
	if err != nil {
		tx.Rollback()
		return err
	}

	order := models.Order{
		OrderNumber: models.NextDocumentNumber(models.OrderNumberPrefix, time.Now(), latestOrderNumber(tx)),
		CustomerID:  customer.ID,
		Items:       items,
		Status:      status,
		TotalAmount: models.ComputeTotalAmount(items),
		DueDate:     input.DueDate,
		Priority:    priority,
		Notes:       input.Notes,
		Photos:      photosJSON(input.Photos),
		CreatedByID: userID,
		UpdatedByID: &userID,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	preloadOrder(database.DB, orderListPreloads).First(&order, order.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

func GetOrders(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Order{})

	if customer := c.Query("customer"); customer != "" {
		query = query.Where("customer_id = ?", customer)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if start := c.Query("startDate"); start != "" {
		query = query.Where("due_date >= ?", start)
	}
	if end := c.Query("endDate"); end != "" {
		query = query.Where("due_date <= ?", end)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("order_number ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page := utils.NewPageParams(c.Query("page"), c.Query("limit"))
	var orders []models.Order
	if err := preloadOrder(query, orderListPreloads).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(orders),
		"pagination": page.Links(total),
		"total":      total,
		"data":       orders,
	})
}

func GetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid order id")
	}

	var order models.Order
	preloads := append([]string{"Items.Measurement", "UpdatedBy"}, orderListPreloads...)
	if err := preloadOrder(database.DB, preloads).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("order not found with id of %d", id)
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

func UpdateOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid order id")
	}

	var input UpdateOrderInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)

	tx := database.DB.Begin()

	var order models.Order
	if err := tx.Preload("Items").First(&order, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("order not found with id of %d", id)
		}
		return err
	}

	// Items are replaced wholesale: every incoming item is re-validated and
	// the total recomputed from the new list.
	if len(input.Items) > 0 {
		items, err := buildOrderItems(tx, order.CustomerID, input.Items)
		if err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			tx.Rollback()
			return err
		}
		order.Items = items
		order.TotalAmount = models.ComputeTotalAmount(items)
	}

	if input.Status != "" {
		status := models.OrderStatus(input.Status)
		if !models.ValidOrderStatus(status) {
			tx.Rollback()
			return errs.Validation("invalid order status %q", input.Status)
		}
		order.Status = status
	}
	if input.DueDate != nil {
		order.DueDate = input.DueDate
	}
	if input.Priority != "" {
		priority := models.OrderPriority(input.Priority)
		if !models.ValidPriority(priority) {
			tx.Rollback()
			return errs.Validation("invalid priority %q", input.Priority)
		}
		order.Priority = priority
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if len(input.Photos) > 0 {
		order.Photos = photosJSON(input.Photos)
	}
	order.UpdatedByID = &userID

	if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&order).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	preloads := append([]string{"Items.Measurement", "UpdatedBy"}, orderListPreloads...)
	preloadOrder(database.DB, preloads).First(&order, order.ID)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus moves one line item to a new status and re-derives the
// aggregate order status.
func UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid order id")
	}

	var input UpdateItemStatusInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	status := models.OrderStatus(input.NewStatus)
	if !models.ValidItemStatus(status) {
		return errs.Validation("invalid item status %q", input.NewStatus)
	}

	tx := database.DB.Begin()

	var order models.Order
	if err := tx.Preload("Items").First(&order, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("order not found with id of %d", id)
		}
		return err
	}

	if err := order.SetItemStatus(input.ItemID, status, time.Now()); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&order).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

func DeleteOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid order id")
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("order not found with id of %d", id)
		}
		return err
	}

	if order.InvoiceID != nil {
		return errs.Conflict("cannot delete order with an invoice")
	}

	if err := database.DB.Select("Items").Delete(&order).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}
