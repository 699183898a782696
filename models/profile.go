package models

import (
	"time"

	"gorm.io/datatypes"
)

type Profile struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	FullName    string         `gorm:"size:255" json:"full_name"`
	Email       string         `gorm:"size:150;index" json:"email"`
	Phone       string         `gorm:"size:64" json:"phone"`
	Role        Role           `gorm:"size:16;default:guest" json:"role"`
	Points      int64          `gorm:"default:0" json:"points"`
	AvatarURL   string         `gorm:"column:avatar_url;size:512" json:"avatar_url"`
	Preferences datatypes.JSON `json:"preferences,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
