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

type OfferService struct {
	DB          *gorm.DB
	notifier    Notifier
	templates   TemplateRenderer
	frontendURL string
}

func NewOfferService(db *gorm.DB, notifier Notifier, templates TemplateRenderer, frontendURL string) *OfferService {
	return &OfferService{DB: db, notifier: notifier, templates: templates, frontendURL: strings.TrimRight(frontendURL, "/")}
}

func (s *OfferService) GetAll(ctx context.Context) ([]models.Offer, error) {
	list := []models.Offer{}
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (s *OfferService) GetByID(ctx context.Context, id uint) (models.Offer, error) {
	var o models.Offer
	err := s.DB.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return o, fmt.Errorf("%w: offer %d", ErrNotFound, id)
	}
	return o, err
}

func (s *OfferService) Create(ctx context.Context, o *models.Offer) error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return s.DB.WithContext(ctx).Create(o).Error
}

// Update overwrites the editable fields, blanks included. The image is
// managed by SetImage.
func (s *OfferService) Update(ctx context.Context, o *models.Offer) error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	res := s.DB.WithContext(ctx).Model(&models.Offer{}).Where("id = ?", o.ID).
		Select("title", "subtitle", "description", "price_label", "valid_until", "inclusions").
		Updates(o)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: offer %d", ErrNotFound, o.ID)
	}
	return nil
}

func (s *OfferService) SetImage(ctx context.Context, id uint, url string) error {
	res := s.DB.WithContext(ctx).Model(&models.Offer{}).Where("id = ?", id).Update("image", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: offer %d", ErrNotFound, id)
	}
	return nil
}

func (s *OfferService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Offer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: offer %d", ErrNotFound, id)
	}
	return nil
}

type CampaignResult struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// ShareCampaign mails the offer to every subscriber. Individual send
// failures are counted, not returned.
func (s *OfferService) ShareCampaign(ctx context.Context, id uint) (CampaignResult, error) {
	offer, err := s.GetByID(ctx, id)
	if err != nil {
		return CampaignResult{}, err
	}

	var subs []models.Subscriber
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&subs).Error; err != nil {
		return CampaignResult{}, fmt.Errorf("list subscribers: %w", err)
	}

	msg, err := s.templates.Render(ctx, utils.TemplateOfferCampaign, map[string]any{
		"Title":       offer.Title,
		"Description": offer.Description,
		"PriceLabel":  offer.PriceLabel,
		"Image":       offer.Image,
		"Link":        s.frontendURL + "/offers",
	})
	if err != nil {
		return CampaignResult{}, fmt.Errorf("render offer campaign: %w", err)
	}

	res := CampaignResult{Recipients: len(subs)}
	for _, sub := range subs {
		if ctx.Err() != nil {
			res.Failed += len(subs) - res.Sent - res.Failed
			break
		}
		m := msg
		m.To = sub.Email
		if err := s.notifier.Send(ctx, m); err != nil {
			log.Printf("offer %d: campaign email to %s failed: %v", offer.ID, sub.Email, err)
			res.Failed++
			continue
		}
		res.Sent++
	}
	log.Printf("offer %d shared: %d sent, %d failed", offer.ID, res.Sent, res.Failed)
	return res, nil
}
