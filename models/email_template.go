package models

import "time"

// EmailTemplate bodies are html/template sources rendered against a
// template-specific data map.
type EmailTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:template_key;uniqueIndex;size:64" json:"key"`
	Category  string    `gorm:"size:64" json:"category"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
