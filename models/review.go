package models

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

type Review struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     *string      `gorm:"column:user_id;size:36;index" json:"user_id,omitempty"`
	GuestName  string       `gorm:"column:guest_name;size:255" json:"guest_name"`
	Email      string       `gorm:"size:150" json:"email,omitempty"`
	Rating     int          `json:"rating"`
	Text       string       `gorm:"type:text" json:"text"`
	BookingRef string       `gorm:"column:booking_ref;size:32" json:"booking_ref,omitempty"`
	Status     ReviewStatus `gorm:"size:16;index;default:Pending" json:"status"`
	AdminReply string       `gorm:"column:admin_reply;type:text" json:"admin_reply,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
