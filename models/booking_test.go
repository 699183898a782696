package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled}
	allowed := map[[2]BookingStatus]bool{
		{BookingPending, BookingConfirmed}: true,
		{BookingPending, BookingCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]BookingStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_TerminalStates(t *testing.T) {
	for _, s := range []BookingStatus{BookingConfirmed, BookingCancelled} {
		assert.False(t, s.CanTransitionTo(BookingPending), s)
		assert.False(t, s.CanTransitionTo(BookingConfirmed), s)
		assert.False(t, s.CanTransitionTo(BookingCancelled), s)
	}
}
