// Package payment adapts external payment providers to the reserve, capture
// and refund steps of the booking lifecycle.
package payment

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// Charge describes the authorization requested when a booking is confirmed.
type Charge struct {
	BookingID  uuid.UUID
	CivilianID uuid.UUID
	Amount     int64 // minor units
	Currency   string
}

// Gateway is the payment provider seen by the booking engine. Every call is
// idempotent per booking.
type Gateway interface {
	// Reserve authorizes the charge and returns the provider reference.
	Reserve(ctx context.Context, charge Charge) (string, error)
	// Capture settles a previous authorization.
	Capture(ctx context.Context, bookingID uuid.UUID, reference string) error
	// Refund releases an uncaptured authorization.
	Refund(ctx context.Context, bookingID uuid.UUID, reference string) error
}

// Quote prices a booking window at hourlyRate minor units per hour, rounding
// partial minutes up.
func Quote(start, end time.Time, hourlyRate int64) int64 {
	minutes := math.Ceil(end.Sub(start).Minutes())
	if minutes <= 0 {
		return 0
	}
	return int64(math.Ceil(minutes * float64(hourlyRate) / 60))
}
