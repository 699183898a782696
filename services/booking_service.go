package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heaven-palace/models"
)

// BookingService is the gorm-backed BookingStore.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// isDuplicateKey covers gorm's translated error and raw MySQL 1062.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func (s *BookingService) Create(ctx context.Context, b *models.Booking) (*models.Booking, bool, error) {
	err := s.DB.WithContext(ctx).Create(b).Error
	if err == nil {
		return b, true, nil
	}
	if !isDuplicateKey(err) || b.IdempotencyKey == "" {
		return nil, false, fmt.Errorf("failed to create booking: %w", err)
	}

	existing, ferr := s.FindByIdempotencyKey(ctx, b.IdempotencyKey)
	if ferr != nil {
		return nil, false, fmt.Errorf("booking %s already submitted but not readable: %w", b.IdempotencyKey, ferr)
	}
	return existing, false, nil
}

func (s *BookingService) FindByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.WithContext(ctx).Where("idempotency_key = ?", key).First(&bk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking with key %s", ErrNotFound, key)
		}
		return nil, err
	}
	return &bk, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.WithContext(ctx).Preload("Room").Preload("Profile").First(&bk, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &bk, nil
}

// List returns bookings newest first. An empty status lists all.
func (s *BookingService) List(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).Preload("Room").Preload("Profile").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	list := []models.Booking{}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	list := []models.Booking{}
	if err := s.DB.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// UpdateStatus applies an admin transition. Confirming credits loyalty
// points to the guest in the same transaction.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, next models.BookingStatus) (*models.Booking, error) {
	var out models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bk models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bk, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %s", ErrNotFound, id)
			}
			return err
		}

		if !bk.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, bk.Status, next)
		}

		if err := tx.Model(&bk).Updates(map[string]interface{}{
			"status":     next,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
			return err
		}

		if next == models.BookingConfirmed {
			if err := creditPoints(tx, bk); err != nil {
				return err
			}
		}

		out = bk
		out.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// creditPoints adds the booking's points to the guest. Profiles are created
// lazily, so a guest who never opened their profile gets one here.
func creditPoints(tx *gorm.DB, bk models.Booking) error {
	pts := PointsFor(bk.TotalPrice)
	if pts <= 0 {
		return nil
	}
	res := tx.Model(&models.Profile{}).
		Where("id = ?", bk.UserID).
		Update("points", gorm.Expr("points + ?", pts))
	if res.Error != nil {
		return fmt.Errorf("credit points: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	log.Printf("booking %s: no profile for %s, creating it with %d points", bk.ID, bk.UserID, pts)
	p := models.Profile{
		ID:       bk.UserID,
		FullName: bk.ContactName,
		Email:    bk.ContactEmail,
		Phone:    bk.ContactPhone,
		Role:     models.RoleGuest,
		Points:   pts,
	}
	if err := tx.Create(&p).Error; err != nil {
		return fmt.Errorf("create profile for points: %w", err)
	}
	return nil
}

// BookingStats is a guest's stay history as seen by the back office.
type BookingStats struct {
	UserID string `json:"user_id"`
	Visits int64  `json:"visits"`
	Spend  int64  `json:"spend"`
}

// StatsByUser aggregates confirmed bookings per guest.
func (s *BookingService) StatsByUser(ctx context.Context) (map[string]BookingStats, error) {
	var rows []BookingStats
	if err := s.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Select("user_id, COUNT(*) AS visits, COALESCE(SUM(total_price), 0) AS spend").
		Where("status = ?", models.BookingConfirmed).
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	out := make(map[string]BookingStats, len(rows))
	for _, r := range rows {
		out[r.UserID] = r
	}
	return out, nil
}
