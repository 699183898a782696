package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"heaven-palace/models"
)

// SettingsService owns the single hotel_settings row.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Get returns the stored settings or a zero value when none exist yet.
func (s *SettingsService) Get(ctx context.Context) (models.HotelSetting, error) {
	var hotel models.HotelSetting
	err := s.DB.WithContext(ctx).First(&hotel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HotelSetting{Currency: "LKR"}, nil
	}
	return hotel, err
}

// Update creates the row on first save.
func (s *SettingsService) Update(ctx context.Context, in models.HotelSetting) (models.HotelSetting, error) {
	var hotel models.HotelSetting
	err := s.DB.WithContext(ctx).First(&hotel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		in.ID = 0
		if in.Currency == "" {
			in.Currency = "LKR"
		}
		err := s.DB.WithContext(ctx).Create(&in).Error
		return in, err
	}
	if err != nil {
		return hotel, err
	}

	hotel.Name = in.Name
	hotel.Address = in.Address
	hotel.Phone = in.Phone
	hotel.WhatsApp = in.WhatsApp
	hotel.Email = in.Email
	hotel.Website = in.Website
	if in.Currency != "" {
		hotel.Currency = in.Currency
	}
	err = s.DB.WithContext(ctx).Save(&hotel).Error
	return hotel, err
}
