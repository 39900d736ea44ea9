package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/senpai80085/sevasetu/internal/data/entity"
)

func TestTransitionBookingTable(t *testing.T) {
	statuses := entity.AllBookingStatuses()
	legal := map[entity.BookingStatus]map[entity.BookingStatus]bool{
		entity.BookingStatusPending:    {entity.BookingStatusMatched: true, entity.BookingStatusCancelled: true},
		entity.BookingStatusMatched:    {entity.BookingStatusConfirmed: true, entity.BookingStatusCancelled: true},
		entity.BookingStatusConfirmed:  {entity.BookingStatusInProgress: true, entity.BookingStatusCancelled: true},
		entity.BookingStatusInProgress: {entity.BookingStatusCompleted: true, entity.BookingStatusPaused: true, entity.BookingStatusCancelled: true},
		entity.BookingStatusPaused:     {entity.BookingStatusInProgress: true, entity.BookingStatusCancelled: true},
		entity.BookingStatusCompleted:  {entity.BookingStatusRated: true, entity.BookingStatusCancelled: true},
		entity.BookingStatusRated:      {entity.BookingStatusClosed: true},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			b := &entity.Booking{Status: from}
			b.ID = uuid.New()
			err := TransitionBooking(b, to)

			if legal[from][to] {
				if err != nil {
					t.Fatalf("%s -> %s: unexpected error %v", from, to, err)
				}
				if b.Status != to {
					t.Fatalf("%s -> %s: status is %s", from, to, b.Status)
				}
				continue
			}

			if err == nil {
				t.Fatalf("%s -> %s: expected error", from, to)
			}
			if b.Status != from {
				t.Fatalf("%s -> %s: status changed to %s on failure", from, to, b.Status)
			}
			var te TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("%s -> %s: expected TransitionError, got %T", from, to, err)
			}
			if te.Current != from || te.Requested != to {
				t.Fatalf("error carries %s -> %s, want %s -> %s", te.Current, te.Requested, from, to)
			}
			if len(te.Allowed) != len(legal[from]) {
				t.Fatalf("%s: allowed=%v, want %d entries", from, te.Allowed, len(legal[from]))
			}
		}
	}
}

func TestTransitionBookingSelfRejected(t *testing.T) {
	for _, s := range entity.AllBookingStatuses() {
		b := &entity.Booking{Status: s}
		if err := TransitionBooking(b, s); !IsTransition(err) {
			t.Fatalf("self-transition on %s should fail, got %v", s, err)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, s := range entity.AllBookingStatuses() {
		allowed := AllowedTransitions(s)
		if s.IsTerminal() && len(allowed) != 0 {
			t.Errorf("terminal %s has exits %v", s, allowed)
		}
		if !s.IsTerminal() && len(allowed) == 0 {
			t.Errorf("non-terminal %s has no exits", s)
		}
	}
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	allowed := AllowedTransitions(entity.BookingStatusPending)
	allowed[0] = entity.BookingStatusClosed
	if !CanTransition(entity.BookingStatusPending, entity.BookingStatusMatched) {
		t.Fatal("mutating the returned slice altered the transition table")
	}
}

func TestTransitionErrorMessage(t *testing.T) {
	err := TransitionError{Current: entity.BookingStatusClosed, Requested: entity.BookingStatusMatched}
	if got := err.Error(); got == "" {
		t.Fatal("empty message")
	}
}
