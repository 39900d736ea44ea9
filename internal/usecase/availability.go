package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
)

// AvailabilityGuard keeps a caregiver's committed bookings from overlapping.
// Claim must run inside the transaction that writes the committed status.
type AvailabilityGuard struct{}

// HasOverlap reports whether the caregiver already holds a confirmed or
// in-progress booking intersecting [start, end), ignoring excludeID.
func (AvailabilityGuard) HasOverlap(ctx context.Context, bookings repository.BookingRepository,
	caregiverID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	clash, err := bookings.FindOverlapping(ctx, caregiverID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return clash != nil, nil
}

// Claim takes the caregiver lock for the rest of tx and fails with a
// SchedulingConflictError when the window is taken.
func (g AvailabilityGuard) Claim(ctx context.Context, tx *repository.Repository,
	caregiverID uuid.UUID, start, end time.Time, excludeID uuid.UUID) error {
	if err := domain.ValidateWindow(start, end); err != nil {
		return err
	}
	if err := tx.Lock.LockCaregiver(ctx, caregiverID); err != nil {
		return err
	}

	taken, err := g.HasOverlap(ctx, tx.Booking, caregiverID, start, end, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.SchedulingConflictError{CaregiverID: caregiverID, Start: start, End: end}
	}
	return nil
}
