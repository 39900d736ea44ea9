package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusMatched    BookingStatus = "matched"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusPaused     BookingStatus = "paused"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusRated      BookingStatus = "rated"
	BookingStatusClosed     BookingStatus = "closed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusRejected   BookingStatus = "rejected"
)

// AllBookingStatuses lists every status in lifecycle order.
func AllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusMatched,
		BookingStatusConfirmed,
		BookingStatusInProgress,
		BookingStatusPaused,
		BookingStatusCompleted,
		BookingStatusRated,
		BookingStatusClosed,
		BookingStatusCancelled,
		BookingStatusRejected,
	}
}

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	for _, known := range AllBookingStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusClosed || s == BookingStatusCancelled || s == BookingStatusRejected
}

// IsCommitted reports whether the booking blocks its caregiver's calendar.
func (s BookingStatus) IsCommitted() bool {
	return s == BookingStatusConfirmed || s == BookingStatusInProgress
}

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusReserved PaymentStatus = "reserved"
	PaymentStatusPaid     PaymentStatus = "paid"
)

func (s PaymentStatus) String() string {
	return string(s)
}

type Booking struct {
	Base
	CivilianID       uuid.UUID     `db:"civilian_id"`
	CaregiverID      *uuid.UUID    `db:"caregiver_id"`
	StartTime        time.Time     `db:"start_time"`
	EndTime          time.Time     `db:"end_time"`
	Status           BookingStatus `db:"status"`
	PaymentStatus    PaymentStatus `db:"payment_status"`
	PaymentReference *string       `db:"payment_reference"`
	StartedAt        *time.Time    `db:"started_at"`
	EndedAt          *time.Time    `db:"ended_at"`
}

// Duration is the scheduled length of the engagement.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}
