package domain

import (
	"github.com/senpai80085/sevasetu/internal/data/entity"
)

// bookingTransitions maps a status to the statuses it may move to.
// Terminal statuses map to an empty set.
var bookingTransitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending:    {entity.BookingStatusMatched, entity.BookingStatusCancelled},
	entity.BookingStatusMatched:    {entity.BookingStatusConfirmed, entity.BookingStatusCancelled},
	entity.BookingStatusConfirmed:  {entity.BookingStatusInProgress, entity.BookingStatusCancelled},
	entity.BookingStatusInProgress: {entity.BookingStatusCompleted, entity.BookingStatusPaused, entity.BookingStatusCancelled},
	entity.BookingStatusPaused:     {entity.BookingStatusInProgress, entity.BookingStatusCancelled},
	entity.BookingStatusCompleted:  {entity.BookingStatusRated, entity.BookingStatusCancelled},
	entity.BookingStatusRated:      {entity.BookingStatusClosed},
	entity.BookingStatusClosed:     {},
	entity.BookingStatusCancelled:  {},
	entity.BookingStatusRejected:   {},
}

// AllowedTransitions returns a copy of the statuses reachable from current.
func AllowedTransitions(current entity.BookingStatus) []entity.BookingStatus {
	allowed := bookingTransitions[current]
	out := make([]entity.BookingStatus, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransition reports whether current -> target is an edge of the table.
// Self-transitions are never edges.
func CanTransition(current, target entity.BookingStatus) bool {
	for _, s := range bookingTransitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionBooking moves b to target or returns a TransitionError without
// touching b. Persisting the result is the caller's job and must happen under
// the same lock the current status was read with.
func TransitionBooking(b *entity.Booking, target entity.BookingStatus) error {
	if !CanTransition(b.Status, target) {
		return TransitionError{
			BookingID: b.ID,
			Current:   b.Status,
			Requested: target,
			Allowed:   AllowedTransitions(b.Status),
		}
	}
	b.Status = target
	return nil
}
