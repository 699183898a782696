package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"heaven-palace/models"
	"heaven-palace/utils"
)

// EmailTemplateService stores editable templates and renders them. A key
// with no stored row falls back to the built-in default.
type EmailTemplateService struct {
	DB *gorm.DB
}

func NewEmailTemplateService(db *gorm.DB) *EmailTemplateService {
	return &EmailTemplateService{DB: db}
}

func (s *EmailTemplateService) GetAll(ctx context.Context) ([]models.EmailTemplate, error) {
	list := []models.EmailTemplate{}
	err := s.DB.WithContext(ctx).Order("category ASC, template_key ASC").Find(&list).Error
	return list, err
}

func (s *EmailTemplateService) GetByKey(ctx context.Context, key string) (models.EmailTemplate, error) {
	var t models.EmailTemplate
	err := s.DB.WithContext(ctx).Where("template_key = ?", key).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if d, ok := utils.DefaultTemplates[key]; ok {
			return models.EmailTemplate{Key: key, Category: d.Category, Subject: d.Subject, Body: d.Body}, nil
		}
		return t, fmt.Errorf("%w: email template %q", ErrNotFound, key)
	}
	return t, err
}

// Save upserts by key after checking both parts parse.
func (s *EmailTemplateService) Save(ctx context.Context, t *models.EmailTemplate) error {
	t.Key = strings.TrimSpace(t.Key)
	if t.Key == "" || strings.TrimSpace(t.Subject) == "" || strings.TrimSpace(t.Body) == "" {
		return fmt.Errorf("%w: key, subject and body are required", ErrValidation)
	}
	if err := utils.ParseEmail(t.Subject, t.Body); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var existing models.EmailTemplate
	err := s.DB.WithContext(ctx).Where("template_key = ?", t.Key).First(&existing).Error
	switch {
	case err == nil:
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
		return s.DB.WithContext(ctx).Save(t).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.DB.WithContext(ctx).Create(t).Error
	default:
		return err
	}
}

func (s *EmailTemplateService) Delete(ctx context.Context, key string) error {
	res := s.DB.WithContext(ctx).Where("template_key = ?", key).Delete(&models.EmailTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: email template %q", ErrNotFound, key)
	}
	return nil
}

func (s *EmailTemplateService) Render(ctx context.Context, key string, data map[string]any) (utils.Email, error) {
	t, err := s.GetByKey(ctx, key)
	if err != nil {
		return utils.Email{}, err
	}
	return utils.RenderEmail(t.Subject, t.Body, data)
}

// Preview renders key against canned sample data.
func (s *EmailTemplateService) Preview(ctx context.Context, key string) (utils.Email, error) {
	return s.Render(ctx, key, SampleTemplateData(key))
}

// BuiltinTemplates renders only the compiled-in defaults. It backs the
// booking flow when no database templates are wired, e.g. in tests.
type BuiltinTemplates struct{}

func (BuiltinTemplates) Render(_ context.Context, key string, data map[string]any) (utils.Email, error) {
	d, ok := utils.DefaultTemplates[key]
	if !ok {
		return utils.Email{}, fmt.Errorf("%w: email template %q", ErrNotFound, key)
	}
	return utils.RenderEmail(d.Subject, d.Body, data)
}

func SampleTemplateData(key string) map[string]any {
	switch key {
	case utils.TemplateBookingConfirmation:
		return map[string]any{
			"Reference": "HP-1A2B3C4D",
			"GuestName": "Nimal Perera",
			"RoomName":  "Deluxe Garden View",
			"CheckIn":   "2026-12-20",
			"CheckOut":  "2026-12-23",
			"Nights":    3,
			"Guests":    2,
			"Total":     utils.FormatLKR(89500),
			"Lines": []LineItem{
				{Label: "Deluxe Garden View x 3 nights", Amount: 75000},
				{Label: "Buffet Breakfast", Amount: 9000},
				{Label: "Airport Transfer", Amount: 5500},
			},
			"Phone": "+94 77 123 4567",
		}
	case utils.TemplateOfferCampaign:
		return map[string]any{
			"Title":       "Honeymoon Escape",
			"Description": "Three nights of romance in the hills of Kandy.",
			"PriceLabel":  "LKR 120,000",
			"Image":       "",
			"Link":        "http://localhost:3000/offers",
		}
	case utils.TemplateReviewReply:
		return map[string]any{"GuestName": "Nimal Perera", "Rating": 5, "Reply": "Thank you for staying with us!"}
	case utils.TemplateContactMessage:
		return map[string]any{"Name": "Nimal Perera", "Email": "nimal@example.com", "Topic": "Wedding enquiry", "Message": "Do you host receptions?"}
	}
	return map[string]any{"GuestName": "Nimal Perera"}
}
