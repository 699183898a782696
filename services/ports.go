package services

import (
	"context"
	"io"

	"heaven-palace/models"
	"heaven-palace/utils"
)

// Identity is the signed-in caller as carried by the request token.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   models.Role
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

type BookingStore interface {
	// Create inserts b. When b.IdempotencyKey is already stored it returns
	// the existing booking and created=false.
	Create(ctx context.Context, b *models.Booking) (stored *models.Booking, created bool, err error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, next models.BookingStatus) (*models.Booking, error)
}

type CatalogSource interface {
	Catalog(ctx context.Context) (Catalog, error)
}

// Notifier delivers a single email. Callers treat failures as advisory.
type Notifier interface {
	Send(ctx context.Context, msg utils.Email) error
}

// SubmissionGuard keeps one wizard from being submitted twice at once.
type SubmissionGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type WizardStore interface {
	Save(ctx context.Context, w *Wizard) error
	Load(ctx context.Context, id string) (*Wizard, error)
}

// FileStore saves an uploaded object and returns its public URL.
type FileStore interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// TemplateRenderer renders a stored email template into a message without
// a recipient.
type TemplateRenderer interface {
	Render(ctx context.Context, key string, data map[string]any) (utils.Email, error)
}
