package models

import "time"

// PricingMode decides how an add-on scales with the stay.
type PricingMode string

const (
	PricingFlat             PricingMode = "flat"
	PricingPerGuestPerNight PricingMode = "per_guest_per_night"
)

func (m PricingMode) Valid() bool {
	return m == PricingFlat || m == PricingPerGuestPerNight
}

type AddOn struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:150;not null" json:"name"`
	Description string      `gorm:"size:255" json:"description"`
	Price       int64       `gorm:"not null" json:"price"`
	Icon        string      `gorm:"size:32;default:star" json:"icon"`
	PricingMode PricingMode `gorm:"column:pricing_mode;size:32;default:flat" json:"pricing_mode"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
