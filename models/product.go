package models

import (
	"time"

	"gorm.io/datatypes"
)

// MeasurementRange describes one measurement a product requires, with the
// accepted value range. Stored as part of the product's JSON measurement list.
type MeasurementRange struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"` // in, cm or mm
	MinValue float64 `json:"minValue"`
	MaxValue float64 `json:"maxValue"`
}

type Product struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"not null"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" gorm:"type:numeric(12,2);default:0"`
	CategoryID  uint     `json:"-" gorm:"not null;index"`
	Category    Category `json:"category" gorm:"foreignKey:CategoryID"`
	Image       string   `json:"image" gorm:"default:'default-product.jpg'"`
	Icon        string   `json:"icon,omitempty"`
	IsActive    bool     `json:"isActive" gorm:"default:true"`

	// Required measurements with ranges, serialized []MeasurementRange.
	Measurements datatypes.JSON `json:"measurements,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
