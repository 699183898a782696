package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"heaven-palace/models"
)

// GuestSummary is one row of the back-office guest list.
type GuestSummary struct {
	models.Profile
	Tier   Tier  `json:"tier"`
	Visits int64 `json:"visits"`
	Spend  int64 `json:"spend"`
}

type GuestDetail struct {
	GuestSummary
	Bookings []models.Booking `json:"bookings"`
}

type GuestService struct {
	DB       *gorm.DB
	bookings *BookingService
}

func NewGuestService(db *gorm.DB, bookings *BookingService) *GuestService {
	return &GuestService{DB: db, bookings: bookings}
}

// ----------------------------------------------------
// GetAll (Admin view): guests with tier, visits and spend
// visits/spend count confirmed bookings only
// ----------------------------------------------------
func (s *GuestService) GetAll(ctx context.Context) ([]GuestSummary, error) {
	log.Println("➡️ GuestService.GetAll")

	var profiles []models.Profile
	if err := s.DB.WithContext(ctx).
		Where("role = ?", models.RoleGuest).
		Order("points DESC, created_at DESC").
		Find(&profiles).Error; err != nil {
		log.Printf("⬅️ GuestService.GetAll error: %v", err)
		return nil, err
	}

	stats, err := s.bookings.StatsByUser(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]GuestSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, summarize(p, stats[p.ID]))
	}

	log.Printf("⬅️ GuestService.GetAll ok: %d guests", len(out))
	return out, nil
}

// ----------------------------------------------------
// GET BY ID, with booking history newest first
// ----------------------------------------------------
func (s *GuestService) GetByID(ctx context.Context, id string) (*GuestDetail, error) {
	var p models.Profile
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guest %s", ErrNotFound, id)
		}
		return nil, err
	}

	bookings, err := s.bookings.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	var st BookingStats
	for _, b := range bookings {
		if b.Status == models.BookingConfirmed {
			st.Visits++
			st.Spend += b.TotalPrice
		}
	}
	return &GuestDetail{GuestSummary: summarize(p, st), Bookings: bookings}, nil
}

func summarize(p models.Profile, st BookingStats) GuestSummary {
	return GuestSummary{Profile: p, Tier: TierFor(p.Points), Visits: st.Visits, Spend: st.Spend}
}
