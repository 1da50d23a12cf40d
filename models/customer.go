package models

import "time"

type Customer struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"not null"`
	Phone        string        `json:"phone" gorm:"not null;unique"`
	Email        string        `json:"email,omitempty"`
	Address      string        `json:"address,omitempty"`
	Referral     string        `json:"referral,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	ProfileImage string        `json:"profileImage" gorm:"default:'default-customer.jpg'"`
	Measurements []Measurement `json:"measurements,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt    time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
