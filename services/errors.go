package services

import "errors"

var (
	// ErrValidation: required input missing or malformed. No remote call is made.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated: the operation needs a signed-in identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	// ErrInvalidTransition: booking status change outside Pending -> Confirmed|Cancelled.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrSubmissionInFlight: the same wizard is already being submitted.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrRemote wraps failures of the backing store.
	ErrRemote = errors.New("remote failure")
)
