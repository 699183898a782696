package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"heaven-palace/controllers"
	"heaven-palace/middleware"
	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/services/mocks"
)

var testCatalog = services.Catalog{
	Rooms: []models.Room{{ID: 1, Name: "Deluxe Garden View", Price: 25000, Status: models.RoomActive}},
	AddOns: []models.AddOn{
		{ID: 1, Name: "Buffet Breakfast", Price: 1500, Icon: "coffee", PricingMode: models.PricingPerGuestPerNight},
		{ID: 2, Name: "Airport Transfer", Price: 5500, Icon: "car", PricingMode: models.PricingFlat},
	},
}

type fakeIdentifier map[string]*services.Identity

func (f fakeIdentifier) Identify(token string) (*services.Identity, error) {
	if who, ok := f[token]; ok {
		return who, nil
	}
	return nil, errors.New("invalid token")
}

var identities = fakeIdentifier{
	"guest-token": {UserID: "user-1", Email: "nimal@example.com", Name: "Nimal Perera", Role: models.RoleGuest},
	"admin-token": {UserID: "admin-1", Email: "admin@heavenpalace.lk", Role: models.RoleAdmin},
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

type wizardBody struct {
	ID       string         `json:"id"`
	Step     int            `json:"step"`
	StepName string         `json:"step_name"`
	Quote    services.Quote `json:"quote"`
	Draft    struct {
		RoomID   *uint  `json:"room_id"`
		Guests   int    `json:"guests"`
		AddOnIDs []uint `json:"addon_ids"`
	} `json:"draft"`
}

type bookingHarness struct {
	router   *gin.Engine
	catalog  *mocks.CatalogSource
	bookings *mocks.BookingStore
	notifier *mocks.Notifier
}

func newBookingHarness(t *testing.T) *bookingHarness {
	gin.SetMode(gin.TestMode)
	h := &bookingHarness{
		catalog:  mocks.NewCatalogSource(t),
		bookings: mocks.NewBookingStore(t),
		notifier: mocks.NewNotifier(t),
	}
	flow := services.NewBookingFlow(h.catalog, h.bookings, nil, h.notifier, services.BuiltinTemplates{})
	ctrl := controllers.NewBookingController(flow, services.NewMemoryWizardStore(), h.bookings)

	r := gin.New()
	r.Use(middleware.Identity(identities))
	wiz := r.Group("/api/booking/wizard")
	wiz.POST("", ctrl.StartWizard)
	wiz.GET("/:id", ctrl.GetWizard)
	wiz.PATCH("/:id", ctrl.UpdateDraft)
	wiz.POST("/:id/next", ctrl.Next)
	wiz.POST("/:id/back", ctrl.Back)
	wiz.POST("/:id/confirm", ctrl.Confirm)
	admin := r.Group("/api/admin", middleware.RequireAdmin())
	admin.GET("/bookings", ctrl.GetBookings)
	admin.PATCH("/bookings/:id/status", ctrl.UpdateStatus)
	h.router = r
	return h
}

func (h *bookingHarness) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeWizard(t *testing.T, env envelope) wizardBody {
	t.Helper()
	var w wizardBody
	require.NoError(t, json.Unmarshal(env.Data, &w))
	return w
}

func TestWizardFlow_EndToEnd(t *testing.T) {
	h := newBookingHarness(t)
	h.catalog.On("Catalog", mock.Anything).Return(testCatalog, nil)

	rec, env := h.do(t, http.MethodPost, "/api/booking/wizard?room=1", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	w := decodeWizard(t, env)
	require.NotEmpty(t, w.ID)
	require.NotNil(t, w.Draft.RoomID)
	assert.Equal(t, uint(1), *w.Draft.RoomID)
	assert.Equal(t, "dates_room", w.StepName)
	assert.Equal(t, 2, w.Draft.Guests)
	base := "/api/booking/wizard/" + w.ID

	rec, env = h.do(t, http.MethodPatch, base, "", map[string]any{
		"check_in":  "2025-12-15",
		"check_out": "2025-12-18",
		"guests":    2,
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.Equal(t, int64(75000), decodeWizard(t, env).Quote.Total)

	rec, env = h.do(t, http.MethodPost, base+"/next", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.Equal(t, "addons", decodeWizard(t, env).StepName)

	rec, env = h.do(t, http.MethodPatch, base, "", map[string]any{
		"addons": []map[string]any{{"id": 1, "selected": true}, {"id": 2, "selected": true}},
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	w = decodeWizard(t, env)
	assert.Equal(t, int64(89500), w.Quote.Total)
	assert.Equal(t, 3, w.Quote.Nights)

	rec, env = h.do(t, http.MethodPost, base+"/next", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.Equal(t, "guest_details", decodeWizard(t, env).StepName)

	rec, _ = h.do(t, http.MethodPatch, base, "", map[string]any{
		"contact": map[string]any{"name": "Nimal Perera", "email": "nimal@example.com", "phone": "+94 77 123 4567"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// anonymous confirm keeps the draft at the guest details step
	rec, env = h.do(t, http.MethodPost, base+"/confirm", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "error.unauthenticated", env.Code)
	_, env = h.do(t, http.MethodGet, base, "", nil)
	assert.Equal(t, "guest_details", decodeWizard(t, env).StepName)

	h.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.TotalPrice == 89500 && b.UserID == "user-1" && b.Status == models.BookingPending
	})).Return(func(_ context.Context, b *models.Booking) (*models.Booking, bool, error) {
		return b, true, nil
	}).Once()
	h.notifier.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	rec, env = h.do(t, http.MethodPost, base+"/confirm", "guest-token", nil)
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	var confirmed struct {
		Reference string         `json:"reference"`
		Booking   models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &confirmed))
	assert.True(t, strings.HasPrefix(confirmed.Reference, "HP-"))
	assert.Len(t, confirmed.Reference, 11)
	assert.Equal(t, int64(89500), confirmed.Booking.TotalPrice)

	_, env = h.do(t, http.MethodGet, base, "", nil)
	assert.Equal(t, "confirmed", decodeWizard(t, env).StepName)

	// a confirmed draft is frozen
	rec, _ = h.do(t, http.MethodPatch, base, "", map[string]any{"guests": 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizard_NextWithoutDatesIsRejected(t *testing.T) {
	h := newBookingHarness(t)
	h.catalog.On("Catalog", mock.Anything).Return(testCatalog, nil)

	_, env := h.do(t, http.MethodPost, "/api/booking/wizard", "", nil)
	w := decodeWizard(t, env)

	rec, env := h.do(t, http.MethodPost, "/api/booking/wizard/"+w.ID+"/next", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error.validation", env.Code)
}

func TestWizard_KeepsOtherDateWhenOnlyOneChanges(t *testing.T) {
	h := newBookingHarness(t)
	h.catalog.On("Catalog", mock.Anything).Return(testCatalog, nil)

	_, env := h.do(t, http.MethodPost, "/api/booking/wizard?room=1", "", nil)
	base := "/api/booking/wizard/" + decodeWizard(t, env).ID

	h.do(t, http.MethodPatch, base, "", map[string]any{"check_in": "2025-12-15", "check_out": "2025-12-18"})
	rec, env := h.do(t, http.MethodPatch, base, "", map[string]any{"check_out": "2025-12-20"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodeWizard(t, env).Quote.Nights)
}

func TestWizard_NextRejectsPartyLargerThanRoom(t *testing.T) {
	h := newBookingHarness(t)
	cat := testCatalog
	cat.Rooms = []models.Room{{ID: 1, Name: "Standard Twin", Price: 18000, MaxGuests: 2, Status: models.RoomActive}}
	h.catalog.On("Catalog", mock.Anything).Return(cat, nil)

	_, env := h.do(t, http.MethodPost, "/api/booking/wizard?room=1", "", nil)
	base := "/api/booking/wizard/" + decodeWizard(t, env).ID
	rec, env := h.do(t, http.MethodPatch, base, "", map[string]any{
		"check_in":  "2025-12-15",
		"check_out": "2025-12-18",
		"guests":    3,
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)

	rec, env = h.do(t, http.MethodPost, base+"/next", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error.validation", env.Code)

	_, env = h.do(t, http.MethodGet, base, "", nil)
	assert.Equal(t, "dates_room", decodeWizard(t, env).StepName)
}

func TestWizard_BadDate(t *testing.T) {
	h := newBookingHarness(t)
	h.catalog.On("Catalog", mock.Anything).Return(testCatalog, nil)

	_, env := h.do(t, http.MethodPost, "/api/booking/wizard", "", nil)
	rec, env := h.do(t, http.MethodPatch, "/api/booking/wizard/"+decodeWizard(t, env).ID, "", map[string]any{"check_in": "15/12/2025"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error.invalidPayload", env.Code)
}

func TestWizard_UnknownSession(t *testing.T) {
	h := newBookingHarness(t)

	rec, env := h.do(t, http.MethodGet, "/api/booking/wizard/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error.notFound", env.Code)
}

func TestWizard_CatalogOutageIsBadGateway(t *testing.T) {
	h := newBookingHarness(t)
	h.catalog.On("Catalog", mock.Anything).Return(services.Catalog{}, errors.New("connection refused"))

	rec, env := h.do(t, http.MethodPost, "/api/booking/wizard", "", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "error.remote", env.Code)
}

func TestAdminBookings_RequiresAdmin(t *testing.T) {
	h := newBookingHarness(t)

	rec, _ := h.do(t, http.MethodGet, "/api/admin/bookings", "guest-token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = h.do(t, http.MethodGet, "/api/admin/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminBookings_FilterByStatus(t *testing.T) {
	h := newBookingHarness(t)
	h.bookings.On("List", mock.Anything, models.BookingPending).
		Return([]models.Booking{{ID: "b-1", Status: models.BookingPending}}, nil)

	rec, env := h.do(t, http.MethodGet, "/api/admin/bookings?status=Pending", "admin-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	rec, _ = h.do(t, http.MethodGet, "/api/admin/bookings?status=Archived", "admin-token", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminBookings_StatusTransitions(t *testing.T) {
	h := newBookingHarness(t)
	h.bookings.On("UpdateStatus", mock.Anything, "b-1", models.BookingConfirmed).
		Return(&models.Booking{ID: "b-1", Status: models.BookingConfirmed}, nil).Once()
	h.bookings.On("UpdateStatus", mock.Anything, "b-2", models.BookingCancelled).
		Return(nil, fmt.Errorf("%w: Confirmed -> Cancelled", services.ErrInvalidTransition)).Once()

	rec, _ := h.do(t, http.MethodPatch, "/api/admin/bookings/b-1/status", "admin-token", map[string]string{"status": "Confirmed"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := h.do(t, http.MethodPatch, "/api/admin/bookings/b-2/status", "admin-token", map[string]string{"status": "Cancelled"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "error.invalidTransition", env.Code)

	rec, _ = h.do(t, http.MethodPatch, "/api/admin/bookings/b-1/status", "admin-token", map[string]string{"status": "Pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
