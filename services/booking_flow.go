package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"heaven-palace/models"
	"heaven-palace/utils"
)

// BookingFlow submits a wizard: persist first, then notify, then confirm.
type BookingFlow struct {
	catalog   CatalogSource
	bookings  BookingStore
	guard     SubmissionGuard
	notifier  Notifier
	templates TemplateRenderer
}

func NewBookingFlow(catalog CatalogSource, bookings BookingStore, guard SubmissionGuard, notifier Notifier, templates TemplateRenderer) *BookingFlow {
	if guard == nil {
		guard = NoopGuard{}
	}
	return &BookingFlow{
		catalog:   catalog,
		bookings:  bookings,
		guard:     guard,
		notifier:  notifier,
		templates: templates,
	}
}

// BookingReference is the guest-facing code for a persisted booking id.
func BookingReference(id string) string {
	raw := strings.ReplaceAll(id, "-", "")
	if len(raw) > 8 {
		raw = raw[:8]
	}
	return "HP-" + strings.ToUpper(raw)
}

// Quote prices the wizard's draft against the current catalog.
func (f *BookingFlow) Quote(ctx context.Context, w *Wizard) (Quote, error) {
	cat, err := f.catalog.Catalog(ctx)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: load catalog: %w", ErrRemote, err)
	}
	return QuoteDraft(w.Draft, cat), nil
}

func checkCapacity(room models.Room, guests int) error {
	if room.MaxGuests > 0 && guests > room.MaxGuests {
		return fmt.Errorf("%w: %s sleeps at most %d guests", ErrValidation, room.Name, room.MaxGuests)
	}
	return nil
}

// CheckStay validates the draft's room against the catalog: the room must
// still be offered and hold the party.
func (f *BookingFlow) CheckStay(ctx context.Context, w *Wizard) error {
	if w.Draft.RoomID == nil {
		return fmt.Errorf("%w: a room must be selected", ErrValidation)
	}
	cat, err := f.catalog.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("%w: load catalog: %w", ErrRemote, err)
	}
	room, ok := cat.Room(*w.Draft.RoomID)
	if !ok {
		return fmt.Errorf("%w: room %d is no longer offered", ErrValidation, *w.Draft.RoomID)
	}
	return checkCapacity(room, w.Draft.Guests)
}

// Confirm submits the wizard. On any error the wizard is left untouched.
// A notification failure is logged and does not affect the result.
func (f *BookingFlow) Confirm(ctx context.Context, w *Wizard, who *Identity) (*models.Booking, error) {
	if w.Step != StepGuestDetails {
		return nil, fmt.Errorf("%w: wizard is at step %s", ErrValidation, w.Step)
	}
	if who == nil || who.UserID == "" {
		return nil, ErrUnauthenticated
	}
	d := w.Draft
	if d.CheckIn == nil || d.CheckOut == nil || d.RoomID == nil {
		return nil, fmt.Errorf("%w: dates and room are required", ErrValidation)
	}

	acquired, err := f.guard.Acquire(ctx, w.IdempotencyKey)
	if err != nil {
		// the unique idempotency key still protects the insert
		log.Printf("submission guard unavailable for wizard %s: %v", w.ID, err)
		acquired = true
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := f.guard.Release(ctx, w.IdempotencyKey); err != nil {
			log.Printf("release submission guard for wizard %s: %v", w.ID, err)
		}
	}()

	cat, err := f.catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load catalog: %w", ErrRemote, err)
	}
	room, ok := cat.Room(*d.RoomID)
	if !ok {
		return nil, fmt.Errorf("%w: room %d is no longer offered", ErrValidation, *d.RoomID)
	}
	if err := checkCapacity(room, d.Guests); err != nil {
		return nil, err
	}
	quote := QuoteDraft(d, cat)

	addonIDs, _ := json.Marshal(d.AddOnIDs)
	contact := d.Contact
	if contact.Email == "" {
		contact.Email = who.Email
	}
	if contact.Name == "" {
		contact.Name = who.Name
	}

	booking := &models.Booking{
		ID:             uuid.NewString(),
		UserID:         who.UserID,
		RoomID:         room.ID,
		CheckIn:        *d.CheckIn,
		CheckOut:       *d.CheckOut,
		Nights:         quote.Nights,
		Guests:         d.Guests,
		TotalPrice:     quote.Total,
		Status:         models.BookingPending,
		IdempotencyKey: w.IdempotencyKey,
		AddOnIDs:       datatypes.JSON(addonIDs),
		ContactName:    contact.Name,
		ContactEmail:   contact.Email,
		ContactPhone:   contact.Phone,
		Notes:          contact.Notes,
	}

	stored, created, err := f.bookings.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("%w: create booking: %w", ErrRemote, err)
	}

	if created {
		f.notifyGuest(ctx, stored, room, quote)
	}

	w.Step = StepConfirmed
	w.BookingID = stored.ID
	w.Reference = BookingReference(stored.ID)
	return stored, nil
}

func (f *BookingFlow) notifyGuest(ctx context.Context, b *models.Booking, room models.Room, q Quote) {
	if f.notifier == nil || b.ContactEmail == "" {
		log.Printf("booking %s: no recipient for confirmation email", b.ID)
		return
	}

	msg, err := f.templates.Render(ctx, utils.TemplateBookingConfirmation, map[string]any{
		"Reference": BookingReference(b.ID),
		"GuestName": b.ContactName,
		"RoomName":  room.Name,
		"CheckIn":   b.CheckIn.Format("2006-01-02"),
		"CheckOut":  b.CheckOut.Format("2006-01-02"),
		"Nights":    b.Nights,
		"Guests":    b.Guests,
		"Total":     utils.FormatLKR(b.TotalPrice),
		"Lines":     q.Lines,
		"Phone":     b.ContactPhone,
	})
	if err != nil {
		log.Printf("booking %s: render confirmation email: %v", b.ID, err)
		return
	}
	msg.To = b.ContactEmail

	if err := f.notifier.Send(ctx, msg); err != nil {
		log.Printf("booking %s: confirmation email to %s failed: %v", b.ID, b.ContactEmail, err)
	}
}
