package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/services/mocks"
	"heaven-palace/utils"
)

var nimal = &services.Identity{UserID: "user-1", Email: "nimal@example.com", Name: "Nimal Perera", Role: models.RoleGuest}

// echoCreate stores whatever booking it is given.
func echoCreate(_ context.Context, b *models.Booking) (*models.Booking, bool, error) {
	return b, true, nil
}

type flowDeps struct {
	catalog  *mocks.CatalogSource
	bookings *mocks.BookingStore
	notifier *mocks.Notifier
}

func newFlow(t *testing.T, guard services.SubmissionGuard) (*services.BookingFlow, flowDeps) {
	d := flowDeps{
		catalog:  mocks.NewCatalogSource(t),
		bookings: mocks.NewBookingStore(t),
		notifier: mocks.NewNotifier(t),
	}
	return services.NewBookingFlow(d.catalog, d.bookings, guard, d.notifier, services.BuiltinTemplates{}), d
}

func TestConfirm_PersistsPendingBookingWithTotal(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	w := readyWizard(t)

	d.catalog.On("Catalog", ctx).Return(catalog, nil)
	d.bookings.On("Create", ctx, mock.MatchedBy(func(b *models.Booking) bool {
		return b.TotalPrice == 89500 &&
			b.Status == models.BookingPending &&
			b.Nights == 3 &&
			b.Guests == 2 &&
			b.UserID == "user-1" &&
			b.RoomID == 1 &&
			b.IdempotencyKey == w.IdempotencyKey
	})).Return(echoCreate)
	d.notifier.On("Send", ctx, mock.MatchedBy(func(m utils.Email) bool {
		return m.To == "nimal@example.com" &&
			strings.HasPrefix(m.Subject, "Booking Confirmation #HP-") &&
			strings.Contains(m.HTML, "LKR 89,500")
	})).Return(nil)

	bk, err := flow.Confirm(ctx, w, nimal)

	require.NoError(t, err)
	assert.Equal(t, int64(89500), bk.TotalPrice)
	assert.Equal(t, services.StepConfirmed, w.Step)
	assert.Equal(t, bk.ID, w.BookingID)
	assert.Equal(t, services.BookingReference(bk.ID), w.Reference)
	assert.Len(t, w.Reference, len("HP-")+8)
}

func TestConfirm_UnauthenticatedCreatesNothing(t *testing.T) {
	flow, _ := newFlow(t, nil)
	w := readyWizard(t)

	_, err := flow.Confirm(context.Background(), w, nil)

	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	assert.Equal(t, services.StepGuestDetails, w.Step)
	assert.Empty(t, w.BookingID)
}

func TestConfirm_RequiresGuestDetailsStep(t *testing.T) {
	flow, _ := newFlow(t, nil)
	w := readyWizard(t)
	require.NoError(t, w.Back())

	_, err := flow.Confirm(context.Background(), w, nimal)

	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, services.StepAddOns, w.Step)
}

func TestConfirm_PersistenceFailureKeepsStep(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	w := readyWizard(t)

	d.catalog.On("Catalog", ctx).Return(catalog, nil)
	d.bookings.On("Create", ctx, mock.AnythingOfType("*models.Booking")).
		Return(nil, false, errors.New("connection refused"))

	bk, err := flow.Confirm(ctx, w, nimal)

	assert.Nil(t, bk)
	assert.ErrorIs(t, err, services.ErrRemote)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, services.StepGuestDetails, w.Step)
	assert.Empty(t, w.Reference)
	d.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestConfirm_CatalogFailureIsRemote(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	w := readyWizard(t)

	d.catalog.On("Catalog", ctx).Return(services.Catalog{}, errors.New("timeout"))

	_, err := flow.Confirm(ctx, w, nimal)

	assert.ErrorIs(t, err, services.ErrRemote)
	assert.Equal(t, services.StepGuestDetails, w.Step)
}

func TestConfirm_NotificationFailureStillConfirms(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	w := readyWizard(t)

	d.catalog.On("Catalog", ctx).Return(catalog, nil)
	d.bookings.On("Create", ctx, mock.AnythingOfType("*models.Booking")).Return(echoCreate)
	d.notifier.On("Send", ctx, mock.Anything).Return(errors.New("smtp: 554 rejected"))

	bk, err := flow.Confirm(ctx, w, nimal)

	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, bk.Status)
	assert.Equal(t, services.StepConfirmed, w.Step)
	assert.NotEmpty(t, w.Reference)
}

func TestConfirm_DuplicateSubmissionReturnsStoredBooking(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	w := readyWizard(t)
	existing := &models.Booking{ID: "0f1e2d3c-aaaa-bbbb-cccc-000000000000", Status: models.BookingPending, TotalPrice: 89500}

	d.catalog.On("Catalog", ctx).Return(catalog, nil)
	d.bookings.On("Create", ctx, mock.AnythingOfType("*models.Booking")).Return(existing, false, nil)

	bk, err := flow.Confirm(ctx, w, nimal)

	require.NoError(t, err)
	assert.Same(t, existing, bk)
	assert.Equal(t, "HP-0F1E2D3C", w.Reference)
	d.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestConfirm_InFlightSubmissionRejected(t *testing.T) {
	ctx := context.Background()
	guard := mocks.NewSubmissionGuard(t)
	flow, _ := newFlow(t, guard)
	w := readyWizard(t)

	guard.On("Acquire", ctx, w.IdempotencyKey).Return(false, nil)

	_, err := flow.Confirm(ctx, w, nimal)

	assert.ErrorIs(t, err, services.ErrSubmissionInFlight)
	assert.Equal(t, services.StepGuestDetails, w.Step)
}

func TestConfirm_GuardOutageFallsThroughAndReleases(t *testing.T) {
	ctx := context.Background()
	guard := mocks.NewSubmissionGuard(t)
	flow, d := newFlow(t, guard)
	w := readyWizard(t)

	guard.On("Acquire", ctx, w.IdempotencyKey).Return(false, errors.New("redis down"))
	guard.On("Release", ctx, w.IdempotencyKey).Return(errors.New("redis down"))
	d.catalog.On("Catalog", ctx).Return(catalog, nil)
	d.bookings.On("Create", ctx, mock.AnythingOfType("*models.Booking")).Return(echoCreate)
	d.notifier.On("Send", ctx, mock.Anything).Return(nil)

	_, err := flow.Confirm(ctx, w, nimal)

	require.NoError(t, err)
	assert.Equal(t, services.StepConfirmed, w.Step)
}

func TestConfirm_ContactFallsBackToIdentity(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	w := readyWizard(t)
	require.NoError(t, w.SetContact(services.GuestContact{Phone: "+94 77 000 0000"}))

	d.catalog.On("Catalog", ctx).Return(catalog, nil)
	d.bookings.On("Create", ctx, mock.MatchedBy(func(b *models.Booking) bool {
		return b.ContactEmail == nimal.Email && b.ContactName == nimal.Name
	})).Return(echoCreate)
	d.notifier.On("Send", ctx, mock.MatchedBy(func(m utils.Email) bool { return m.To == nimal.Email })).Return(nil)

	_, err := flow.Confirm(ctx, w, nimal)
	require.NoError(t, err)
}

func TestQuote_UsesCurrentCatalog(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	w := readyWizard(t)

	d.catalog.On("Catalog", ctx).Return(catalog, nil)

	q, err := flow.Quote(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, int64(89500), q.Total)
}

func TestBookingReference(t *testing.T) {
	assert.Equal(t, "HP-1A2B3C4D", services.BookingReference("1a2b3c4d-0000-4000-8000-000000000000"))
	assert.Equal(t, "HP-AB12", services.BookingReference("ab12"))
}

func TestConfirm_RejectsPartyLargerThanRoom(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	w := readyWizard(t)
	require.NoError(t, w.SetGuests(3))

	small := deluxe
	small.MaxGuests = 2
	d.catalog.On("Catalog", ctx).Return(services.Catalog{Rooms: []models.Room{small}, AddOns: catalog.AddOns}, nil)

	_, err := flow.Confirm(ctx, w, nimal)

	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "at most 2 guests")
	assert.Equal(t, services.StepGuestDetails, w.Step)
	d.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckStay(t *testing.T) {
	ctx := context.Background()
	flow, d := newFlow(t, nil)
	small := deluxe
	small.MaxGuests = 2
	d.catalog.On("Catalog", ctx).Return(services.Catalog{Rooms: []models.Room{small}}, nil)

	w := readyWizard(t)
	assert.NoError(t, flow.CheckStay(ctx, w))

	require.NoError(t, w.SetGuests(3))
	assert.ErrorIs(t, flow.CheckStay(ctx, w), services.ErrValidation)

	require.NoError(t, w.SelectRoom(42))
	assert.ErrorIs(t, flow.CheckStay(ctx, w), services.ErrValidation)
}

func TestConfirm_TemplateFailureSkipsEmailOnly(t *testing.T) {
	ctx := context.Background()
	catalogSrc := mocks.NewCatalogSource(t)
	bookings := mocks.NewBookingStore(t)
	notifier := mocks.NewNotifier(t)
	templates := mocks.NewTemplateRenderer(t)
	flow := services.NewBookingFlow(catalogSrc, bookings, nil, notifier, templates)
	w := readyWizard(t)

	catalogSrc.On("Catalog", ctx).Return(catalog, nil)
	bookings.On("Create", ctx, mock.AnythingOfType("*models.Booking")).Return(echoCreate)
	templates.On("Render", ctx, utils.TemplateBookingConfirmation, mock.MatchedBy(func(data map[string]any) bool {
		return data["GuestName"] == "Nimal Perera" && strings.HasPrefix(data["Reference"].(string), "HP-")
	})).Return(utils.Email{}, errors.New("template: bad action"))

	bk, err := flow.Confirm(ctx, w, nimal)

	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, bk.Status)
	assert.Equal(t, services.StepConfirmed, w.Step)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
