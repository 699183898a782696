package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"heaven-palace/models"
)

type BookingStore struct {
	mock.Mock
}

func NewBookingStore(t testingT) *BookingStore {
	m := &BookingStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *BookingStore) Create(ctx context.Context, b *models.Booking) (*models.Booking, bool, error) {
	args := m.Called(ctx, b)
	if fn, ok := args.Get(0).(func(context.Context, *models.Booking) (*models.Booking, bool, error)); ok {
		return fn(ctx, b)
	}
	var out *models.Booking
	if v := args.Get(0); v != nil {
		out = v.(*models.Booking)
	}
	return out, args.Bool(1), args.Error(2)
}

func (m *BookingStore) Get(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	var out *models.Booking
	if v := args.Get(0); v != nil {
		out = v.(*models.Booking)
	}
	return out, args.Error(1)
}

func (m *BookingStore) List(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	args := m.Called(ctx, status)
	var out []models.Booking
	if v := args.Get(0); v != nil {
		out = v.([]models.Booking)
	}
	return out, args.Error(1)
}

func (m *BookingStore) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	var out []models.Booking
	if v := args.Get(0); v != nil {
		out = v.([]models.Booking)
	}
	return out, args.Error(1)
}

func (m *BookingStore) UpdateStatus(ctx context.Context, id string, next models.BookingStatus) (*models.Booking, error) {
	args := m.Called(ctx, id, next)
	var out *models.Booking
	if v := args.Get(0); v != nil {
		out = v.(*models.Booking)
	}
	return out, args.Error(1)
}
