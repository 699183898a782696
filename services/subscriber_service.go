package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"heaven-palace/models"
	"heaven-palace/utils"
)

type SubscriberService struct {
	DB *gorm.DB
}

func NewSubscriberService(db *gorm.DB) *SubscriberService {
	return &SubscriberService{DB: db}
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return strings.ToLower(addr.Address), nil
}

// Subscribe is idempotent: an address already on the list returns the
// existing row and created=false.
func (s *SubscriberService) Subscribe(ctx context.Context, email string) (models.Subscriber, bool, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return models.Subscriber{}, false, err
	}
	sub := models.Subscriber{Email: addr}
	res := s.DB.WithContext(ctx).Where(models.Subscriber{Email: addr}).FirstOrCreate(&sub)
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			err := s.DB.WithContext(ctx).Where("email = ?", addr).First(&sub).Error
			return sub, false, err
		}
		return sub, false, res.Error
	}
	return sub, res.RowsAffected > 0, nil
}

func (s *SubscriberService) GetAll(ctx context.Context) ([]models.Subscriber, error) {
	list := []models.Subscriber{}
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (s *SubscriberService) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Subscriber{}).Count(&n).Error
	return n, err
}

type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Topic   string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// ContactService forwards the public contact form to the hotel inbox.
type ContactService struct {
	notifier  Notifier
	templates TemplateRenderer
	settings  *SettingsService
	inbox     string
}

func NewContactService(notifier Notifier, templates TemplateRenderer, settings *SettingsService, inbox string) *ContactService {
	return &ContactService{notifier: notifier, templates: templates, settings: settings, inbox: inbox}
}

// Send fails with ErrRemote when the message could not be delivered; unlike
// booking emails the enquiry would otherwise be lost.
func (s *ContactService) Send(ctx context.Context, m ContactMessage) error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Message) == "" {
		return fmt.Errorf("%w: name and message are required", ErrValidation)
	}
	from, err := normalizeEmail(m.Email)
	if err != nil {
		return err
	}
	if m.Topic == "" {
		m.Topic = "General enquiry"
	}

	to := s.inbox
	if s.settings != nil {
		if hs, err := s.settings.Get(ctx); err == nil && hs.Email != "" {
			to = hs.Email
		}
	}
	if to == "" {
		return fmt.Errorf("%w: no hotel inbox configured", ErrRemote)
	}

	msg, err := s.templates.Render(ctx, utils.TemplateContactMessage, map[string]any{
		"Name":    strings.TrimSpace(m.Name),
		"Email":   from,
		"Topic":   m.Topic,
		"Message": strings.TrimSpace(m.Message),
	})
	if err != nil {
		return fmt.Errorf("render contact message: %w", err)
	}
	msg.To = to
	if err := s.notifier.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: forward contact message: %w", ErrRemote, err)
	}
	return nil
}
