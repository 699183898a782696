package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"heaven-palace/models"
)

type ProfileUpdate struct {
	FullName    *string         `json:"full_name"`
	Phone       *string         `json:"phone"`
	Preferences json.RawMessage `json:"preferences"`
}

type ProfileService struct {
	DB       *gorm.DB
	bookings BookingStore
	rewards  *RewardService
	files    FileStore
}

func NewProfileService(db *gorm.DB, bookings BookingStore, rewards *RewardService, files FileStore) *ProfileService {
	return &ProfileService{DB: db, bookings: bookings, rewards: rewards, files: files}
}

// Get returns the caller's profile, creating it from the token claims when
// the row is missing.
func (s *ProfileService) Get(ctx context.Context, who *Identity) (models.Profile, error) {
	if who == nil || who.UserID == "" {
		return models.Profile{}, ErrUnauthenticated
	}
	role := who.Role
	if role == "" {
		role = models.RoleGuest
	}
	p := models.Profile{ID: who.UserID}
	err := s.DB.WithContext(ctx).
		Where(models.Profile{ID: who.UserID}).
		Attrs(models.Profile{FullName: who.Name, Email: who.Email, Role: role}).
		FirstOrCreate(&p).Error
	return p, err
}

func (s *ProfileService) Update(ctx context.Context, who *Identity, in ProfileUpdate) (models.Profile, error) {
	p, err := s.Get(ctx, who)
	if err != nil {
		return p, err
	}

	updates := map[string]interface{}{}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return p, fmt.Errorf("%w: full name cannot be empty", ErrValidation)
		}
		updates["full_name"] = name
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if len(in.Preferences) > 0 {
		if !json.Valid(in.Preferences) {
			return p, fmt.Errorf("%w: preferences must be JSON", ErrValidation)
		}
		updates["preferences"] = datatypes.JSON(in.Preferences)
	}
	if len(updates) == 0 {
		return p, nil
	}

	if err := s.DB.WithContext(ctx).Model(&p).Updates(updates).Error; err != nil {
		return p, err
	}
	return p, s.DB.WithContext(ctx).First(&p, "id = ?", p.ID).Error
}

// SetAvatar stores the image and points the profile at it.
func (s *ProfileService) SetAvatar(ctx context.Context, who *Identity, filename string, r io.Reader) (models.Profile, error) {
	p, err := s.Get(ctx, who)
	if err != nil {
		return p, err
	}
	url, err := s.files.Save(ctx, "avatars", filename, r)
	if err != nil {
		return p, fmt.Errorf("%w: store avatar: %w", ErrRemote, err)
	}
	if err := s.DB.WithContext(ctx).Model(&p).Update("avatar_url", url).Error; err != nil {
		return p, err
	}
	p.AvatarURL = url
	return p, nil
}

func (s *ProfileService) Bookings(ctx context.Context, who *Identity) ([]models.Booking, error) {
	if who == nil || who.UserID == "" {
		return nil, ErrUnauthenticated
	}
	return s.bookings.ListByUser(ctx, who.UserID)
}

func (s *ProfileService) Loyalty(ctx context.Context, who *Identity) (LoyaltyStatus, error) {
	p, err := s.Get(ctx, who)
	if err != nil {
		return LoyaltyStatus{}, err
	}
	rewards, err := s.rewards.GetAll(ctx, true)
	if err != nil {
		return LoyaltyStatus{}, err
	}
	return Loyalty(p.Points, rewards), nil
}

// Redeem checks eligibility for a reward without deducting points.
func (s *ProfileService) Redeem(ctx context.Context, who *Identity, rewardID uint) (Redemption, error) {
	p, err := s.Get(ctx, who)
	if err != nil {
		return Redemption{}, err
	}
	r, err := s.rewards.GetByID(ctx, rewardID)
	if err != nil {
		return Redemption{}, err
	}
	return CheckRedemption(p.Points, r), nil
}
