package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jauntkid/TailorPro/database"
	"github.com/jauntkid/TailorPro/errs"
	"github.com/jauntkid/TailorPro/middlewares"
	"github.com/jauntkid/TailorPro/models"
	"github.com/jauntkid/TailorPro/utils"
)

type CreateInvoiceInput struct {
	Order    uint       `json:"order" validate:"required"`
	DueDate  *time.Time `json:"dueDate"`
	Subtotal *float64   `json:"subtotal" validate:"omitempty,gte=0"`
	Discount *float64   `json:"discount" validate:"omitempty,gte=0"`
	Tax      *float64   `json:"tax" validate:"omitempty,gte=0"`
	Notes    string     `json:"notes"`
}

type UpdateInvoiceInput struct {
	DueDate  *time.Time `json:"dueDate"`
	Subtotal *float64   `json:"subtotal" validate:"omitempty,gte=0"`
	Discount *float64   `json:"discount" validate:"omitempty,gte=0"`
	Tax      *float64   `json:"tax" validate:"omitempty,gte=0"`
	Notes    *string    `json:"notes"`
}

type AddPaymentInput struct {
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	Method        string     `json:"method" validate:"required"`
	Date          *time.Time `json:"date"`
	TransactionID string     `json:"transactionId"`
	Notes         string     `json:"notes"`
}

var invoiceListPreloads = []string{"Customer", "Order", "CreatedBy"}

func latestInvoiceNumber(tx *gorm.DB) string {
	var latest models.Invoice
	if err := tx.Order("created_at DESC").First(&latest).Error; err != nil {
		return ""
	}
	return latest.InvoiceNumber
}

func findInvoice(db *gorm.DB, id int, preloads ...string) (*models.Invoice, error) {
	var invoice models.Invoice
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("invoice not found with id of %d", id)
		}
		return nil, err
	}
	return &invoice, nil
}

func CreateInvoice(c *fiber.Ctx) error {
	var input CreateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)

	tx := database.DB.Begin()

	var order models.Order
	if err := tx.First(&order, input.Order).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("order not found with id of %d", input.Order)
		}
		return err
	}
	if order.InvoiceID != nil {
		tx.Rollback()
		return errs.Conflict("order already has an invoice")
	}

	subtotal := order.TotalAmount
	if input.Subtotal != nil {
		subtotal = *input.Subtotal
	}
	discount := 0.0
	if input.Discount != nil {
		discount = *input.Discount
	}
	tax := 0.0
	if input.Tax != nil {
		tax = *input.Tax
	}
	dueDate := order.DueDate
	if input.DueDate != nil {
		dueDate = input.DueDate
	}

	invoice := models.Invoice{
		InvoiceNumber: models.NextDocumentNumber(models.InvoiceNumberPrefix, time.Now(), latestInvoiceNumber(tx)),
		CustomerID:    order.CustomerID,
		OrderID:       order.ID,
		IssueDate:     time.Now(),
		DueDate:       dueDate,
		Subtotal:      utils.Round2(subtotal),
		Discount:      utils.Round2(discount),
		Tax:           utils.Round2(tax),
		TotalAmount:   models.InvoiceTotal(subtotal, discount, tax),
		Balance:       models.InvoiceTotal(subtotal, discount, tax),
		Status:        models.InvoiceStatusUnpaid,
		Notes:         input.Notes,
		CreatedByID:   userID,
	}

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return err
	}

	// Back-reference on the order, written in the same transaction so the
	// one-invoice-per-order guard holds.
	if err := tx.Model(&order).Update("invoice_id", invoice.ID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	reloaded, err := findInvoice(database.DB, int(invoice.ID), invoiceListPreloads...)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    reloaded,
	})
}

func GetInvoices(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Invoice{})

	if customer := c.Query("customer"); customer != "" {
		query = query.Where("customer_id = ?", customer)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if start := c.Query("startDate"); start != "" {
		query = query.Where("due_date >= ?", start)
	}
	if end := c.Query("endDate"); end != "" {
		query = query.Where("due_date <= ?", end)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page := utils.NewPageParams(c.Query("page"), c.Query("limit"))
	var invoices []models.Invoice
	q := query
	for _, p := range invoiceListPreloads {
		q = q.Preload(p)
	}
	if err := q.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&invoices).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(invoices),
		"pagination": page.Links(total),
		"total":      total,
		"data":       invoices,
	})
}

func GetInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid invoice id")
	}

	invoice, err := findInvoice(database.DB, id,
		"Customer", "Order", "Order.Items", "Order.Items.Product", "Payments", "CreatedBy")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    invoice,
	})
}

// UpdateInvoice patches due date, notes and the amount fields. Touching any of
// subtotal/discount/tax recomputes totalAmount from patched-or-existing
// values; the payment rollup is left to the ledger operations.
func UpdateInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid invoice id")
	}

	var input UpdateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	tx := database.DB.Begin()

	invoice, err := findInvoice(tx, id, "Payments")
	if err != nil {
		tx.Rollback()
		return err
	}

	if input.Subtotal != nil {
		invoice.Subtotal = *input.Subtotal
	}
	if input.Discount != nil {
		invoice.Discount = *input.Discount
	}
	if input.Tax != nil {
		invoice.Tax = *input.Tax
	}
	if input.Subtotal != nil || input.Discount != nil || input.Tax != nil {
		invoice.TotalAmount = models.InvoiceTotal(invoice.Subtotal, invoice.Discount, invoice.Tax)
		invoice.Balance = utils.Round2(invoice.TotalAmount - invoice.AmountPaid)
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if err := tx.Save(invoice).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	reloaded, err := findInvoice(database.DB, id, invoiceListPreloads...)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    reloaded,
	})
}

func DeleteInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid invoice id")
	}

	tx := database.DB.Begin()

	invoice, err := findInvoice(tx, id, "Payments")
	if err != nil {
		tx.Rollback()
		return err
	}
	if len(invoice.Payments) > 0 {
		tx.Rollback()
		return errs.Conflict("cannot delete invoice with payments")
	}

	// Clear the order's back-reference in the same transaction.
	if err := tx.Model(&models.Order{}).
		Where("id = ?", invoice.OrderID).
		Update("invoice_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(invoice).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}

func AddPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid invoice id")
	}

	var input AddPaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)

	tx := database.DB.Begin()

	invoice, err := findInvoice(tx, id, "Payments")
	if err != nil {
		tx.Rollback()
		return err
	}

	payment := models.Payment{
		Amount:        utils.Round2(input.Amount),
		Method:        models.PaymentMethod(input.Method),
		TransactionID: input.TransactionID,
		Notes:         input.Notes,
		RecordedByID:  &userID,
	}
	if input.Date != nil {
		payment.Date = *input.Date
	}
	if err := invoice.AddPayment(payment, time.Now()); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    invoice,
	})
}

func RemovePayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errs.Validation("invalid invoice id")
	}
	paymentID, err := c.ParamsInt("paymentId")
	if err != nil {
		return errs.Validation("invalid payment id")
	}

	tx := database.DB.Begin()

	invoice, err := findInvoice(tx, id, "Payments")
	if err != nil {
		tx.Rollback()
		return err
	}

	removed, err := invoice.RemovePayment(uint(paymentID))
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&removed).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(invoice).
		Select("amount_paid", "balance", "status").
		Updates(map[string]any{
			"amount_paid": invoice.AmountPaid,
			"balance":     invoice.Balance,
			"status":      invoice.Status,
		}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    invoice,
	})
}
