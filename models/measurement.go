package models

import (
	"time"

	"gorm.io/datatypes"
)

// Measurement is one recorded set of body measurements for a customer within
// a category. Values is a free-form label-to-value map; the set of labels is
// not fixed at compile time.
type Measurement struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	CustomerID   uint              `json:"-" gorm:"not null;index"`
	Customer     *Customer         `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CategoryID   uint              `json:"-" gorm:"not null;index"`
	Category     *Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Values       datatypes.JSONMap `json:"measurements" gorm:"type:jsonb"`
	Notes        string            `json:"notes,omitempty"`
	MeasuredByID *string           `json:"-"`
	MeasuredBy   *User             `json:"measuredBy,omitempty" gorm:"foreignKey:MeasuredByID"`
	CreatedAt    time.Time         `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
