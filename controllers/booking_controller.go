package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"heaven-palace/middleware"
	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/utils"
)

type BookingController struct {
	Flow     *services.BookingFlow
	Wizards  services.WizardStore
	Bookings services.BookingStore
}

func NewBookingController(flow *services.BookingFlow, wizards services.WizardStore, bookings services.BookingStore) *BookingController {
	return &BookingController{Flow: flow, Wizards: wizards, Bookings: bookings}
}

type wizardView struct {
	*services.Wizard
	StepName string         `json:"step_name"`
	Quote    services.Quote `json:"quote"`
}

type addonToggle struct {
	ID       uint `json:"id" binding:"required"`
	Selected bool `json:"selected"`
}

// draftPayload is a partial update; absent fields are left alone. Dates
// are YYYY-MM-DD and an empty string clears them.
type draftPayload struct {
	RoomID   *uint                  `json:"room_id"`
	CheckIn  *string                `json:"check_in"`
	CheckOut *string                `json:"check_out"`
	Guests   *int                   `json:"guests"`
	AddOns   []addonToggle          `json:"addons" binding:"dive"`
	Contact  *services.GuestContact `json:"contact"`
}

func parseDay(raw *string, current *time.Time) (*time.Time, error) {
	if raw == nil {
		return current, nil
	}
	if *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (p draftPayload) apply(w *services.Wizard) error {
	if p.RoomID != nil {
		if err := w.SelectRoom(*p.RoomID); err != nil {
			return err
		}
	}
	if p.CheckIn != nil || p.CheckOut != nil {
		in, err := parseDay(p.CheckIn, w.Draft.CheckIn)
		if err != nil {
			return err
		}
		out, err := parseDay(p.CheckOut, w.Draft.CheckOut)
		if err != nil {
			return err
		}
		if err := w.SetDates(in, out); err != nil {
			return err
		}
	}
	if p.Guests != nil {
		if err := w.SetGuests(*p.Guests); err != nil {
			return err
		}
	}
	for _, a := range p.AddOns {
		if err := w.ToggleAddOn(a.ID, a.Selected); err != nil {
			return err
		}
	}
	if p.Contact != nil {
		if err := w.SetContact(*p.Contact); err != nil {
			return err
		}
	}
	return nil
}

func (ctrl *BookingController) view(c *gin.Context, status int, w *services.Wizard) {
	q, err := ctrl.Flow.Quote(c.Request.Context(), w)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, status, wizardView{Wizard: w, StepName: w.Step.String(), Quote: q})
}

func (ctrl *BookingController) load(c *gin.Context) (*services.Wizard, bool) {
	w, err := ctrl.Wizards.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return w, true
}

func (ctrl *BookingController) save(c *gin.Context, w *services.Wizard) bool {
	if err := ctrl.Wizards.Save(c.Request.Context(), w); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// POST /api/booking/wizard?room=2
func (ctrl *BookingController) StartWizard(c *gin.Context) {
	var roomID *uint
	if raw := c.Query("room"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidId", "invalid room")
			return
		}
		v := uint(id)
		roomID = &v
	}

	w := services.NewWizard(roomID)
	if !ctrl.save(c, w) {
		return
	}
	ctrl.view(c, http.StatusCreated, w)
}

// GET /api/booking/wizard/:id
func (ctrl *BookingController) GetWizard(c *gin.Context) {
	w, ok := ctrl.load(c)
	if !ok {
		return
	}
	ctrl.view(c, http.StatusOK, w)
}

// PATCH /api/booking/wizard/:id
func (ctrl *BookingController) UpdateDraft(c *gin.Context) {
	var p draftPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	w, ok := ctrl.load(c)
	if !ok {
		return
	}
	if err := p.apply(w); err != nil {
		var perr *time.ParseError
		if errors.As(err, &perr) {
			badRequest(c, err)
			return
		}
		respondError(c, err)
		return
	}
	if !ctrl.save(c, w) {
		return
	}
	ctrl.view(c, http.StatusOK, w)
}

// POST /api/booking/wizard/:id/next
func (ctrl *BookingController) Next(c *gin.Context) {
	w, ok := ctrl.load(c)
	if !ok {
		return
	}
	leavingRoomStep := w.Step == services.StepDatesRoom
	if err := w.Advance(); err != nil {
		respondError(c, err)
		return
	}
	if leavingRoomStep {
		if err := ctrl.Flow.CheckStay(c.Request.Context(), w); err != nil {
			respondError(c, err)
			return
		}
	}
	if !ctrl.save(c, w) {
		return
	}
	ctrl.view(c, http.StatusOK, w)
}

// POST /api/booking/wizard/:id/back
func (ctrl *BookingController) Back(c *gin.Context) {
	w, ok := ctrl.load(c)
	if !ok {
		return
	}
	if err := w.Back(); err != nil {
		respondError(c, err)
		return
	}
	if !ctrl.save(c, w) {
		return
	}
	ctrl.view(c, http.StatusOK, w)
}

// POST /api/booking/wizard/:id/confirm
// Anonymous callers get 401 and the draft is kept for after sign-in.
func (ctrl *BookingController) Confirm(c *gin.Context) {
	w, ok := ctrl.load(c)
	if !ok {
		return
	}

	bk, err := ctrl.Flow.Confirm(c.Request.Context(), w, middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ctrl.save(c, w) {
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"reference": w.Reference,
		"booking":   bk,
		"wizard":    wizardView{Wizard: w, StepName: w.Step.String()},
	})
}

// GET /api/admin/bookings?status=Pending
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	switch status {
	case "", models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
	default:
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidStatus", "unknown status "+string(status))
		return
	}

	list, err := ctrl.Bookings.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/admin/bookings/:id
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	bk, err := ctrl.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": bk, "reference": services.BookingReference(bk.ID)})
}

type statusPayload struct {
	Status models.BookingStatus `json:"status" binding:"required,oneof=Confirmed Cancelled"`
}

// PATCH /api/admin/bookings/:id/status
func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	var p statusPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}

	bk, err := ctrl.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), p.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bk)
}
