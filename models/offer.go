package models

import (
	"time"

	"gorm.io/datatypes"
)

type Offer struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Subtitle    string         `gorm:"size:255" json:"subtitle"`
	Description string         `gorm:"type:text" json:"description"`
	PriceLabel  string         `gorm:"column:price_label;size:64" json:"price_label"`
	ValidUntil  string         `gorm:"column:valid_until;size:64" json:"valid_until"`
	Image       string         `gorm:"size:512" json:"image"`
	Inclusions  datatypes.JSON `json:"inclusions,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
