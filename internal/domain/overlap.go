package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/senpai80085/sevasetu/internal/data/entity"
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) share
// at least one instant.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ValidateWindow enforces start < end.
func ValidateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ValidationError{Field: "start_time", Msg: "start and end time are required"}
	}
	if !start.Before(end) {
		return ValidationError{Field: "end_time", Msg: "end time must be after start time"}
	}
	return nil
}

// FindOverlap returns the first committed booking of caregiverID in bookings
// that overlaps [start,end), skipping excludeID.
func FindOverlap(bookings []*entity.Booking, caregiverID uuid.UUID, start, end time.Time, excludeID uuid.UUID) *entity.Booking {
	for _, b := range bookings {
		if b.ID == excludeID || b.CaregiverID == nil || *b.CaregiverID != caregiverID {
			continue
		}
		if !b.Status.IsCommitted() {
			continue
		}
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			return b
		}
	}
	return nil
}
