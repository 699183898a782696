package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"heaven-palace/models"
)

type DashboardStats struct {
	MonthRevenue   int64            `json:"month_revenue"`
	PendingCount   int64            `json:"pending_count"`
	ArrivalsToday  int64            `json:"arrivals_today"`
	OccupiedToday  int64            `json:"occupied_today"`
	TotalRooms     int64            `json:"total_rooms"`
	OccupancyRate  float64          `json:"occupancy_rate"`
	TotalGuests    int64            `json:"total_guests"`
	RecentBookings []models.Booking `json:"recent_bookings"`
}

type DashboardService struct {
	DB    *gorm.DB
	rooms *RoomService
	now   func() time.Time
}

func NewDashboardService(db *gorm.DB, rooms *RoomService) *DashboardService {
	return &DashboardService{DB: db, rooms: rooms, now: time.Now}
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OccupancyRate is occupied units over total stock as a percentage rounded
// to one decimal. No stock yields 0.
func OccupancyRate(occupied, stock int64) float64 {
	if stock <= 0 {
		return 0
	}
	rate := float64(occupied) * 1000 / float64(stock)
	return float64(int64(rate+0.5)) / 10
}

func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	db := s.DB.WithContext(ctx)
	today := dayStart(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var st DashboardStats

	if err := db.Model(&models.Booking{}).
		Where("status = ? AND created_at >= ?", models.BookingConfirmed, monthStart).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&st.MonthRevenue).Error; err != nil {
		return st, fmt.Errorf("month revenue: %w", err)
	}

	if err := db.Model(&models.Booking{}).
		Where("status = ?", models.BookingPending).
		Count(&st.PendingCount).Error; err != nil {
		return st, fmt.Errorf("pending count: %w", err)
	}

	if err := db.Model(&models.Booking{}).
		Where("status <> ? AND check_in >= ? AND check_in < ?", models.BookingCancelled, today, tomorrow).
		Count(&st.ArrivalsToday).Error; err != nil {
		return st, fmt.Errorf("arrivals: %w", err)
	}

	// a stay covers today when it started on or before today and checks out later
	if err := db.Model(&models.Booking{}).
		Where("status = ? AND check_in < ? AND check_out > ?", models.BookingConfirmed, tomorrow, today).
		Count(&st.OccupiedToday).Error; err != nil {
		return st, fmt.Errorf("occupancy: %w", err)
	}

	stock, err := s.rooms.TotalStock(ctx)
	if err != nil {
		return st, fmt.Errorf("room stock: %w", err)
	}
	st.TotalRooms = stock
	st.OccupancyRate = OccupancyRate(st.OccupiedToday, stock)

	if err := db.Model(&models.Profile{}).
		Where("role = ?", models.RoleGuest).
		Count(&st.TotalGuests).Error; err != nil {
		return st, fmt.Errorf("guest count: %w", err)
	}

	st.RecentBookings = []models.Booking{}
	if err := db.Preload("Room").Order("created_at DESC").Limit(5).Find(&st.RecentBookings).Error; err != nil {
		return st, fmt.Errorf("recent bookings: %w", err)
	}
	return st, nil
}
