package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Step int

const (
	StepDatesRoom Step = iota + 1
	StepAddOns
	StepGuestDetails
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepDatesRoom:
		return "dates_room"
	case StepAddOns:
		return "addons"
	case StepGuestDetails:
		return "guest_details"
	case StepConfirmed:
		return "confirmed"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

const (
	DefaultGuests = 2
	MaxGuests     = 4
)

type GuestContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// Draft is the guest's unsubmitted booking.
type Draft struct {
	RoomID   *uint        `json:"room_id,omitempty"`
	CheckIn  *time.Time   `json:"check_in,omitempty"`
	CheckOut *time.Time   `json:"check_out,omitempty"`
	Guests   int          `json:"guests"`
	AddOnIDs []uint       `json:"addon_ids"`
	Contact  GuestContact `json:"contact"`
}

// Wizard is one guest's booking session.
type Wizard struct {
	ID             string `json:"id"`
	Step           Step   `json:"step"`
	Draft          Draft  `json:"draft"`
	IdempotencyKey string `json:"idempotency_key"`

	// Set once the booking is persisted.
	BookingID string `json:"booking_id,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// NewWizard starts a session at the first step. roomID pre-seeds the room
// when the guest arrives from a room page.
func NewWizard(roomID *uint) *Wizard {
	w := &Wizard{
		ID:             uuid.NewString(),
		Step:           StepDatesRoom,
		IdempotencyKey: uuid.NewString(),
		Draft:          Draft{Guests: DefaultGuests, AddOnIDs: []uint{}},
	}
	if roomID != nil && *roomID != 0 {
		id := *roomID
		w.Draft.RoomID = &id
	}
	return w
}

func (w *Wizard) editable() error {
	if w.Step == StepConfirmed {
		return fmt.Errorf("%w: booking already confirmed", ErrValidation)
	}
	return nil
}

func (w *Wizard) SelectRoom(id uint) error {
	if err := w.editable(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("%w: room id required", ErrValidation)
	}
	w.Draft.RoomID = &id
	return nil
}

// SetDates accepts either date unset; nights fall back to 1 until both are
// set and ordered.
func (w *Wizard) SetDates(checkIn, checkOut *time.Time) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.Draft.CheckIn = truncateDay(checkIn)
	w.Draft.CheckOut = truncateDay(checkOut)
	return nil
}

func (w *Wizard) SetGuests(n int) error {
	if err := w.editable(); err != nil {
		return err
	}
	if n < 1 || n > MaxGuests {
		return fmt.Errorf("%w: guests must be between 1 and %d", ErrValidation, MaxGuests)
	}
	w.Draft.Guests = n
	return nil
}

// ToggleAddOn selects or deselects an add-on id. Ids are not checked
// against the catalog here; unknown ones price at zero.
func (w *Wizard) ToggleAddOn(id uint, selected bool) error {
	if err := w.editable(); err != nil {
		return err
	}
	idx := slices.Index(w.Draft.AddOnIDs, id)
	switch {
	case selected && idx < 0:
		w.Draft.AddOnIDs = append(w.Draft.AddOnIDs, id)
	case !selected && idx >= 0:
		w.Draft.AddOnIDs = slices.Delete(w.Draft.AddOnIDs, idx, idx+1)
	}
	return nil
}

func (w *Wizard) SetContact(c GuestContact) error {
	if err := w.editable(); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	w.Draft.Contact = c
	return nil
}

// Advance moves one step forward. Leaving the first step needs both dates
// and a room. The guest details step is left only through submission.
func (w *Wizard) Advance() error {
	switch w.Step {
	case StepDatesRoom:
		if w.Draft.CheckIn == nil || w.Draft.CheckOut == nil {
			return fmt.Errorf("%w: check-in and check-out dates are required", ErrValidation)
		}
		if w.Draft.RoomID == nil {
			return fmt.Errorf("%w: a room must be selected", ErrValidation)
		}
		w.Step = StepAddOns
	case StepAddOns:
		w.Step = StepGuestDetails
	case StepGuestDetails:
		return fmt.Errorf("%w: confirm the booking to continue", ErrValidation)
	default:
		return fmt.Errorf("%w: booking already confirmed", ErrValidation)
	}
	return nil
}

func (w *Wizard) Back() error {
	switch w.Step {
	case StepAddOns, StepGuestDetails:
		w.Step--
	case StepConfirmed:
		return fmt.Errorf("%w: booking already confirmed", ErrValidation)
	}
	return nil
}

func truncateDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func (w *Wizard) clone() Wizard {
	c := *w
	c.Draft.AddOnIDs = slices.Clone(w.Draft.AddOnIDs)
	if w.Draft.RoomID != nil {
		id := *w.Draft.RoomID
		c.Draft.RoomID = &id
	}
	if w.Draft.CheckIn != nil {
		t := *w.Draft.CheckIn
		c.Draft.CheckIn = &t
	}
	if w.Draft.CheckOut != nil {
		t := *w.Draft.CheckOut
		c.Draft.CheckOut = &t
	}
	return c
}
