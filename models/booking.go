package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// CanTransitionTo reports whether an admin may move a booking from s to next.
// Confirmed and Cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingPending && (next == BookingConfirmed || next == BookingCancelled)
}

type Booking struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     string        `gorm:"column:user_id;size:36;index" json:"user_id"`
	RoomID     uint          `gorm:"column:room_id;index" json:"room_id"`
	CheckIn    time.Time     `gorm:"column:check_in" json:"check_in"`
	CheckOut   time.Time     `gorm:"column:check_out" json:"check_out"`
	Nights     int           `gorm:"column:nights" json:"nights"`
	Guests     int           `gorm:"column:guests" json:"guests"`
	TotalPrice int64         `gorm:"column:total_price" json:"total_price"`
	Status     BookingStatus `gorm:"column:status;size:32;index;default:Pending" json:"status"`

	// IdempotencyKey is issued with the wizard session; the unique index
	// makes a repeated submission resolve to the booking already stored.
	IdempotencyKey string `gorm:"column:idempotency_key;size:64;uniqueIndex" json:"-"`

	AddOnIDs     datatypes.JSON `gorm:"column:addon_ids" json:"addon_ids,omitempty"`
	ContactName  string         `gorm:"column:contact_name;size:255" json:"contact_name"`
	ContactEmail string         `gorm:"column:contact_email;size:255" json:"contact_email"`
	ContactPhone string         `gorm:"column:contact_phone;size:64" json:"contact_phone"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`

	Room    Room    `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Profile Profile `gorm:"foreignKey:UserID;references:ID" json:"profile,omitempty"`
}
