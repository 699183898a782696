package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"heaven-palace/models"
	"heaven-palace/utils"
)

type ReviewService struct {
	DB        *gorm.DB
	notifier  Notifier
	templates TemplateRenderer
}

func NewReviewService(db *gorm.DB, notifier Notifier, templates TemplateRenderer) *ReviewService {
	return &ReviewService{DB: db, notifier: notifier, templates: templates}
}

// Submit stores guest feedback for moderation.
func (s *ReviewService) Submit(ctx context.Context, r *models.Review, who *Identity) error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	r.Text = strings.TrimSpace(r.Text)
	r.GuestName = strings.TrimSpace(r.GuestName)
	if who != nil && who.UserID != "" {
		uid := who.UserID
		r.UserID = &uid
		if r.Email == "" {
			r.Email = who.Email
		}
		if r.GuestName == "" {
			r.GuestName = who.Name
		}
	}
	if r.GuestName == "" {
		r.GuestName = "Guest"
	}
	r.ID = 0
	r.Status = models.ReviewPending
	r.AdminReply = ""
	return s.DB.WithContext(ctx).Create(r).Error
}

// ListApproved is the public wall of reviews.
func (s *ReviewService) ListApproved(ctx context.Context) ([]models.Review, error) {
	return s.List(ctx, models.ReviewApproved)
}

func (s *ReviewService) List(ctx context.Context, status models.ReviewStatus) ([]models.Review, error) {
	list := []models.Review{}
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (s *ReviewService) get(ctx context.Context, id uint) (models.Review, error) {
	var r models.Review
	err := s.DB.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r, fmt.Errorf("%w: review %d", ErrNotFound, id)
	}
	return r, err
}

func (s *ReviewService) Moderate(ctx context.Context, id uint, status models.ReviewStatus) (models.Review, error) {
	if status != models.ReviewApproved && status != models.ReviewRejected {
		return models.Review{}, fmt.Errorf("%w: status must be Approved or Rejected", ErrValidation)
	}
	r, err := s.get(ctx, id)
	if err != nil {
		return r, err
	}
	if err := s.DB.WithContext(ctx).Model(&r).Update("status", status).Error; err != nil {
		return r, err
	}
	r.Status = status
	return r, nil
}

// Reply stores the hotel's answer and emails the reviewer when an address
// is known. The email is best effort.
func (s *ReviewService) Reply(ctx context.Context, id uint, reply string) (models.Review, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return models.Review{}, fmt.Errorf("%w: reply text is required", ErrValidation)
	}
	r, err := s.get(ctx, id)
	if err != nil {
		return r, err
	}
	if err := s.DB.WithContext(ctx).Model(&r).Update("admin_reply", reply).Error; err != nil {
		return r, err
	}
	r.AdminReply = reply

	if r.Email == "" || s.notifier == nil {
		return r, nil
	}
	msg, err := s.templates.Render(ctx, utils.TemplateReviewReply, map[string]any{
		"GuestName": r.GuestName,
		"Rating":    r.Rating,
		"Reply":     reply,
	})
	if err != nil {
		log.Printf("review %d: render reply email: %v", r.ID, err)
		return r, nil
	}
	msg.To = r.Email
	if err := s.notifier.Send(ctx, msg); err != nil {
		log.Printf("review %d: reply email to %s failed: %v", r.ID, r.Email, err)
	}
	return r, nil
}
