package models

import "time"

// HotelSetting is a single-row table holding the property's public contact
// details. Email doubles as the inbox for contact-form messages.
type HotelSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:50" json:"phone"`
	WhatsApp  string    `gorm:"column:whatsapp;size:50" json:"whatsapp"`
	Email     string    `gorm:"size:150" json:"email"`
	Website   string    `gorm:"size:255" json:"website"`
	Currency  string    `gorm:"size:8;default:LKR" json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
