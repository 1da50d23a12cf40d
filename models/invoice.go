package models

import (
	"time"

	"github.com/jauntkid/TailorPro/errs"
	"github.com/jauntkid/TailorPro/utils"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "Unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Partially Paid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
	InvoiceStatusCancelled     InvoiceStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCard         PaymentMethod = "Card"
	PaymentMethodMobileMoney  PaymentMethod = "Mobile Money"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodOther        PaymentMethod = "Other"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobileMoney,
		PaymentMethodBankTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// Payment is one entry in an invoice's ledger. Payments are owned by their
// invoice; the row id is the handle used for later removal.
type Payment struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	InvoiceID     uint          `json:"-" gorm:"index"`
	Amount        float64       `json:"amount" gorm:"type:numeric(12,2)"`
	Method        PaymentMethod `json:"method" gorm:"type:VARCHAR(20)"`
	Date          time.Time     `json:"date"`
	TransactionID string        `json:"transactionId,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	RecordedByID  *string       `json:"recordedBy,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type Invoice struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	InvoiceNumber string   `json:"invoiceNumber" gorm:"unique;not null"`
	CustomerID    uint     `json:"-" gorm:"not null;index"`
	Customer      Customer `json:"customer" gorm:"foreignKey:CustomerID"`

	// One invoice per order; the unique index backs the order's InvoiceID
	// back-reference check.
	OrderID uint  `json:"-" gorm:"not null;uniqueIndex"`
	Order   Order `json:"order" gorm:"foreignKey:OrderID"`

	IssueDate   time.Time  `json:"issueDate"`
	DueDate     *time.Time `json:"dueDate"`
	Subtotal    float64    `json:"subtotal" gorm:"type:numeric(12,2)"`
	Discount    float64    `json:"discount" gorm:"type:numeric(12,2)"`
	Tax         float64    `json:"tax" gorm:"type:numeric(12,2)"`
	TotalAmount float64    `json:"totalAmount" gorm:"type:numeric(12,2)"`

	// Ledger rollup, derived from Payments via Recalculate.
	AmountPaid float64       `json:"amountPaid" gorm:"type:numeric(12,2)"`
	Balance    float64       `json:"balance" gorm:"type:numeric(12,2)"`
	Status     InvoiceStatus `json:"status" gorm:"type:VARCHAR(20);default:'Unpaid'"`
	Payments   []Payment     `json:"payments" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	Notes       string    `json:"notes,omitempty"`
	CreatedByID string    `json:"-"`
	CreatedBy   User      `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InvoiceTotal computes subtotal - discount + tax.
func InvoiceTotal(subtotal, discount, tax float64) float64 {
	return utils.Round2(subtotal - discount + tax)
}

// Recalculate re-derives amountPaid, balance and status from the payment
// ledger. Cancelled is an explicit override and is never re-derived.
func (inv *Invoice) Recalculate() {
	var paid float64
	for _, p := range inv.Payments {
		paid += p.Amount
	}
	inv.AmountPaid = utils.Round2(paid)
	inv.Balance = utils.Round2(inv.TotalAmount - inv.AmountPaid)

	if inv.Status == InvoiceStatusCancelled {
		return
	}
	switch {
	case inv.Balance <= 0:
		inv.Status = InvoiceStatusPaid
	case inv.AmountPaid > 0:
		inv.Status = InvoiceStatusPartiallyPaid
	default:
		inv.Status = InvoiceStatusUnpaid
	}
}

// AddPayment appends a payment to the ledger and recomputes the rollup. The
// payment date defaults to now when unset.
func (inv *Invoice) AddPayment(p Payment, now time.Time) error {
	if p.Amount <= 0 || p.Method == "" {
		return errs.Validation("amount and payment method are required")
	}
	if !ValidPaymentMethod(p.Method) {
		return errs.Validation("invalid payment method %q", p.Method)
	}
	if p.Date.IsZero() {
		p.Date = now
	}
	inv.Payments = append(inv.Payments, p)
	inv.Recalculate()
	return nil
}

// RemovePayment deletes the payment with the given id from the ledger and
// recomputes the rollup. The removed payment is returned so the caller can
// delete the backing row.
func (inv *Invoice) RemovePayment(paymentID uint) (Payment, error) {
	for i, p := range inv.Payments {
		if p.ID == paymentID {
			inv.Payments = append(inv.Payments[:i], inv.Payments[i+1:]...)
			inv.Recalculate()
			return p, nil
		}
	}
	return Payment{}, errs.NotFound("payment %d not found on invoice", paymentID)
}
