package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/jauntkid/TailorPro/errs"
	"github.com/jauntkid/TailorPro/utils"
)

type OrderStatus string

const (
	OrderStatusNew            OrderStatus = "New"
	OrderStatusInProgress     OrderStatus = "In Progress"
	OrderStatusPartiallyReady OrderStatus = "Partially Ready"
	OrderStatusReady          OrderStatus = "Ready"
	OrderStatusUrgent         OrderStatus = "Urgent"
	OrderStatusCompleted      OrderStatus = "Completed"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// ValidItemStatus reports whether s is accepted for a line item. Partially
// Ready is an aggregate-only status and is not assignable to items.
func ValidItemStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusReady,
		OrderStatusUrgent, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidOrderStatus reports whether s is accepted at the order level, where
// the aggregate Partially Ready is also legal.
func ValidOrderStatus(s OrderStatus) bool {
	return s == OrderStatusPartiallyReady || ValidItemStatus(s)
}

type OrderPriority string

const (
	PriorityLow    OrderPriority = "Low"
	PriorityMedium OrderPriority = "Medium"
	PriorityHigh   OrderPriority = "High"
)

func ValidPriority(p OrderPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OrderItem is a single product entry within an order. Items are owned by
// their order and have no lifecycle of their own.
type OrderItem struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	OrderID       uint         `json:"-" gorm:"index"`
	ProductID     uint         `json:"-" gorm:"not null;index"`
	Product       Product      `json:"product" gorm:"foreignKey:ProductID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Quantity      int          `json:"quantity" gorm:"not null;default:1"`
	Price         float64      `json:"price" gorm:"type:numeric(12,2)"`
	MeasurementID *uint        `json:"-"`
	Measurement   *Measurement `json:"measurements,omitempty" gorm:"foreignKey:MeasurementID"`
	Notes         string       `json:"notes,omitempty"`
	Deadline      *time.Time   `json:"deadline"`
	Status        OrderStatus  `json:"status" gorm:"type:VARCHAR(20);default:'New'"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
}

type Order struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OrderNumber string         `json:"orderNumber" gorm:"unique;not null"`
	CustomerID  uint           `json:"-" gorm:"not null;index"`
	Customer    Customer       `json:"customer" gorm:"foreignKey:CustomerID"`
	Items       []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Status      OrderStatus    `json:"status" gorm:"type:VARCHAR(20);default:'New'"`
	TotalAmount float64        `json:"totalAmount" gorm:"type:numeric(12,2)"`
	DueDate     *time.Time     `json:"dueDate"`
	Priority    OrderPriority  `json:"priority" gorm:"type:VARCHAR(10);default:'Medium'"`
	Notes       string         `json:"notes,omitempty"`
	Photos      datatypes.JSON `json:"photos,omitempty"`

	// Back-reference to the invoice generated for this order, if any. Guards
	// against a second invoice and blocks deletion while set.
	InvoiceID *uint `json:"invoice,omitempty"`

	CreatedByID string    `json:"-"`
	CreatedBy   User      `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	UpdatedByID *string   `json:"-"`
	UpdatedBy   *User     `json:"updatedBy,omitempty" gorm:"foreignKey:UpdatedByID"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ComputeTotalAmount sums price*quantity over items. A quantity below 1 counts
// as 1, mirroring the per-item default.
func ComputeTotalAmount(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		total += item.Price * float64(qty)
	}
	return utils.Round2(total)
}

// SetItemStatus applies a new status to one line item and re-derives the
// aggregate order status. An item without a deadline gets one first: the
// order's due date, or now+7 days when the order has none. completedAt is
// stamped only on the transition into Completed, never re-stamped.
func (o *Order) SetItemStatus(itemID uint, status OrderStatus, now time.Time) error {
	var item *OrderItem
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			item = &o.Items[i]
			break
		}
	}
	if item == nil {
		return errs.NotFound("item %d not found in order", itemID)
	}

	if item.Deadline == nil {
		deadline := now.Add(7 * 24 * time.Hour)
		if o.DueDate != nil {
			deadline = *o.DueDate
		}
		item.Deadline = &deadline
	}

	if status == OrderStatusCompleted && item.Status != OrderStatusCompleted {
		completed := now
		item.CompletedAt = &completed
	}
	item.Status = status

	o.Status = DeriveOrderStatus(o.Items)
	return nil
}

// DeriveOrderStatus aggregates item statuses into the order status. First
// match wins: all Completed; all Ready or Completed; some Ready/Completed;
// some In Progress; else New. Urgent and Cancelled items never trigger a
// tier on their own.
func DeriveOrderStatus(items []OrderItem) OrderStatus {
	if len(items) == 0 {
		return OrderStatusNew
	}

	allCompleted := true
	allReady := true
	someReady := false
	someInProgress := false
	for _, item := range items {
		switch item.Status {
		case OrderStatusCompleted:
			someReady = true
		case OrderStatusReady:
			allCompleted = false
			someReady = true
		case OrderStatusInProgress:
			allCompleted = false
			allReady = false
			someInProgress = true
		default:
			allCompleted = false
			allReady = false
		}
	}

	switch {
	case allCompleted:
		return OrderStatusCompleted
	case allReady:
		return OrderStatusReady
	case someReady:
		return OrderStatusPartiallyReady
	case someInProgress:
		return OrderStatusInProgress
	default:
		return OrderStatusNew
	}
}
