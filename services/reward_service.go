package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"heaven-palace/models"
)

type RewardService struct {
	DB *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{DB: db}
}

// GetAll lists rewards cheapest first. activeOnly hides retired rewards.
func (s *RewardService) GetAll(ctx context.Context, activeOnly bool) ([]models.Reward, error) {
	list := []models.Reward{}
	q := s.DB.WithContext(ctx).Order("points_cost ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (s *RewardService) GetByID(ctx context.Context, id uint) (models.Reward, error) {
	var r models.Reward
	err := s.DB.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r, fmt.Errorf("%w: reward %d", ErrNotFound, id)
	}
	return r, err
}

func (s *RewardService) Create(ctx context.Context, r *models.Reward) error {
	if strings.TrimSpace(r.Title) == "" || r.PointsCost <= 0 {
		return fmt.Errorf("%w: title and a positive points cost are required", ErrValidation)
	}
	return s.DB.WithContext(ctx).Create(r).Error
}

// Update writes every field so a reward can be deactivated.
func (s *RewardService) Update(ctx context.Context, r *models.Reward) error {
	res := s.DB.WithContext(ctx).Model(&models.Reward{}).Where("id = ?", r.ID).
		Select("title", "description", "points_cost", "active").
		Updates(r)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: reward %d", ErrNotFound, r.ID)
	}
	return nil
}

func (s *RewardService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Reward{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: reward %d", ErrNotFound, id)
	}
	return nil
}

type Redemption struct {
	Reward    models.Reward `json:"reward"`
	Points    int64         `json:"points"`
	Eligible  bool          `json:"eligible"`
	Shortfall int64         `json:"shortfall"`
}

// CheckRedemption reports whether points cover the reward. Nothing is
// deducted; the front desk honours the reward at check-in.
func CheckRedemption(points int64, r models.Reward) Redemption {
	out := Redemption{Reward: r, Points: points, Eligible: CanRedeem(points, r)}
	if points < r.PointsCost {
		out.Shortfall = r.PointsCost - points
	}
	return out
}
