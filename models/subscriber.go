package models

import "time"

type Subscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:150" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
