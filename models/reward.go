package models

import "time"

type Reward struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"size:512" json:"description"`
	PointsCost  int64     `gorm:"column:points_cost" json:"points_cost"`
	Active      bool      `gorm:"not null" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
