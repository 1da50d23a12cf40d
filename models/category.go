package models

import (
	"time"

	"gorm.io/datatypes"
)

// Category groups products and carries the measurement labels a tailor is
// expected to record for garments of this kind.
type Category struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	Title                string         `json:"title" gorm:"not null;unique"`
	Icon                 string         `json:"icon" gorm:"default:'category'"`
	GradientColors       datatypes.JSON `json:"gradientColors,omitempty"`
	RequiredMeasurements datatypes.JSON `json:"requiredMeasurements,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}
