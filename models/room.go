package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomStatus string

const (
	RoomActive      RoomStatus = "Active"
	RoomMaintenance RoomStatus = "Maintenance"
)

// Room is a bookable room type. Price is the nightly rate in whole LKR.
type Room struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string     `gorm:"size:150;not null" json:"name"`
	Slug        string     `gorm:"size:150;uniqueIndex" json:"slug"`
	Price       int64      `gorm:"not null" json:"price"`
	MaxGuests   int        `gorm:"column:max_guests;default:2" json:"max_guests"`
	Stock       int        `gorm:"default:1" json:"stock"`
	Status      RoomStatus `gorm:"size:32;default:Active" json:"status"`
	Description string     `gorm:"type:text" json:"description"`

	// Images is a JSON array of image URLs, Amenities a JSON object of
	// group name -> list of amenity labels.
	Images    datatypes.JSON `json:"images,omitempty"`
	Amenities datatypes.JSON `json:"amenities,omitempty"`
}
