package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/senpai80085/sevasetu/internal/data/entity"
)

// TransitionError is returned when a booking status change is not in the
// allowed set for the current state.
type TransitionError struct {
	BookingID uuid.UUID
	Current   entity.BookingStatus
	Requested entity.BookingStatus
	Allowed   []entity.BookingStatus
}

func (e TransitionError) Error() string {
	allowed := "none (terminal state)"
	if len(e.Allowed) > 0 {
		names := make([]string, len(e.Allowed))
		for i, s := range e.Allowed {
			names[i] = string(s)
		}
		allowed = strings.Join(names, ", ")
	}
	return fmt.Sprintf("cannot transition booking %s from '%s' to '%s'; allowed targets: %s",
		e.BookingID, e.Current, e.Requested, allowed)
}

// PaymentTransitionError is the payment-side counterpart of TransitionError.
type PaymentTransitionError struct {
	BookingID uuid.UUID
	Current   entity.PaymentStatus
	Requested entity.PaymentStatus
	Allowed   []entity.PaymentStatus
}

func (e PaymentTransitionError) Error() string {
	return fmt.Sprintf("cannot move payment of booking %s from '%s' to '%s'",
		e.BookingID, e.Current, e.Requested)
}

// SchedulingConflictError means the caregiver already holds a committed
// booking overlapping the requested window. Callers may retry with a
// different caregiver or slot.
type SchedulingConflictError struct {
	CaregiverID uuid.UUID
	Start       time.Time
	End         time.Time
	Err         error
}

func (e SchedulingConflictError) Error() string {
	return fmt.Sprintf("caregiver %s is already booked between %s and %s",
		e.CaregiverID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e SchedulingConflictError) Unwrap() error { return e.Err }

// ConcurrentBookingError means the civilian already holds a non-terminal booking.
type ConcurrentBookingError struct {
	CivilianID      uuid.UUID
	ActiveBookingID uuid.UUID
	ActiveStatus    entity.BookingStatus
	Err             error
}

func (e ConcurrentBookingError) Error() string {
	if e.ActiveBookingID == uuid.Nil {
		return fmt.Sprintf("civilian %s already has an active booking", e.CivilianID)
	}
	return fmt.Sprintf("civilian %s already has an active booking %s (status: %s)",
		e.CivilianID, e.ActiveBookingID, e.ActiveStatus)
}

func (e ConcurrentBookingError) Unwrap() error { return e.Err }

// PaymentActionError wraps a gateway failure for reserve, capture or refund.
type PaymentActionError struct {
	BookingID uuid.UUID
	Action    string
	Err       error
}

func (e PaymentActionError) Error() string {
	return fmt.Sprintf("payment %s failed for booking %s: %v", e.Action, e.BookingID, e.Err)
}

func (e PaymentActionError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// LockTimeoutError is returned when a booking or caregiver lock could not be
// acquired before the store's lock timeout.
type LockTimeoutError struct {
	Key string
	Err error
}

func (e LockTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for lock %s", e.Key)
}

func (e LockTimeoutError) Unwrap() error { return e.Err }

func IsTransition(err error) bool {
	var target TransitionError
	if errors.As(err, &target) {
		return true
	}
	var payment PaymentTransitionError
	return errors.As(err, &payment)
}

func IsSchedulingConflict(err error) bool {
	var target SchedulingConflictError
	return errors.As(err, &target)
}

func IsConcurrentBooking(err error) bool {
	var target ConcurrentBookingError
	return errors.As(err, &target)
}

func IsPaymentAction(err error) bool {
	var target PaymentActionError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsLockTimeout(err error) bool {
	var target LockTimeoutError
	return errors.As(err, &target)
}
