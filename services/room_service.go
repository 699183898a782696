package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"heaven-palace/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	if room.Status == "" {
		room.Status = models.RoomActive
	}
	if err := s.DB.WithContext(ctx).Create(room).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: slug %q already used", ErrConflict, room.Slug)
		}
		return err
	}
	return nil
}

// GetAll lists rooms by price. activeOnly hides rooms under maintenance.
func (s *RoomService) GetAll(ctx context.Context, activeOnly bool) ([]models.Room, error) {
	rooms := []models.Room{}
	q := s.DB.WithContext(ctx).Order("price ASC")
	if activeOnly {
		q = q.Where("status = ?", models.RoomActive)
	}
	err := q.Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room, fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	return room, err
}

func (s *RoomService) Update(ctx context.Context, room *models.Room) error {
	res := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", room.ID).Updates(room)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ErrNotFound, room.ID)
	}
	return nil
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	return nil
}

// TotalStock is the number of bookable units across active rooms.
func (s *RoomService) TotalStock(ctx context.Context) (int64, error) {
	var total int64
	err := s.DB.WithContext(ctx).Model(&models.Room{}).
		Where("status = ?", models.RoomActive).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&total).Error
	return total, err
}

type AddOnService struct {
	DB *gorm.DB
}

func NewAddOnService(db *gorm.DB) *AddOnService {
	return &AddOnService{DB: db}
}

func (s *AddOnService) GetAll(ctx context.Context) ([]models.AddOn, error) {
	addons := []models.AddOn{}
	err := s.DB.WithContext(ctx).Order("id ASC").Find(&addons).Error
	return addons, err
}

func (s *AddOnService) Create(ctx context.Context, a *models.AddOn) error {
	if !a.PricingMode.Valid() {
		return fmt.Errorf("%w: unknown pricing mode %q", ErrValidation, a.PricingMode)
	}
	return s.DB.WithContext(ctx).Create(a).Error
}

func (s *AddOnService) Update(ctx context.Context, a *models.AddOn) error {
	if a.PricingMode != "" && !a.PricingMode.Valid() {
		return fmt.Errorf("%w: unknown pricing mode %q", ErrValidation, a.PricingMode)
	}
	res := s.DB.WithContext(ctx).Model(&models.AddOn{}).Where("id = ?", a.ID).Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: add-on %d", ErrNotFound, a.ID)
	}
	return nil
}

func (s *AddOnService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.AddOn{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: add-on %d", ErrNotFound, id)
	}
	return nil
}

// CatalogService loads the bookable rooms and add-ons for pricing.
type CatalogService struct {
	rooms  *RoomService
	addons *AddOnService
}

func NewCatalogService(rooms *RoomService, addons *AddOnService) *CatalogService {
	return &CatalogService{rooms: rooms, addons: addons}
}

func (s *CatalogService) Catalog(ctx context.Context) (Catalog, error) {
	rooms, err := s.rooms.GetAll(ctx, true)
	if err != nil {
		return Catalog{}, fmt.Errorf("list rooms: %w", err)
	}
	addons, err := s.addons.GetAll(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("list add-ons: %w", err)
	}
	return Catalog{Rooms: rooms, AddOns: addons}, nil
}
