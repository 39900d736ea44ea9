package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
)

type bookingRepo struct {
	s  *Store
	tx *tx
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	if b.CaregiverID != nil {
		id := *b.CaregiverID
		c.CaregiverID = &id
	}
	if b.PaymentReference != nil {
		ref := *b.PaymentReference
		c.PaymentReference = &ref
	}
	if b.StartedAt != nil {
		at := *b.StartedAt
		c.StartedAt = &at
	}
	if b.EndedAt != nil {
		at := *b.EndedAt
		c.EndedAt = &at
	}
	return &c
}

func (r *bookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.bookings[booking.ID]; exists {
		return domain.ValidationError{Field: "id", Msg: "booking already exists"}
	}
	if !booking.Status.IsTerminal() {
		for _, b := range r.s.bookings {
			if b.CivilianID == booking.CivilianID && !b.Status.IsTerminal() {
				return domain.ConcurrentBookingError{
					CivilianID:      booking.CivilianID,
					ActiveBookingID: b.ID,
					ActiveStatus:    b.Status,
				}
			}
		}
	}

	id := booking.ID
	r.s.bookings[id] = cloneBooking(booking)
	r.tx.record(func() { delete(r.s.bookings, id) })
	return nil
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(b), nil
}

func (r *bookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if err := r.tx.lock(ctx, repository.BookingLockKey(id)); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *bookingRepo) FindByCivilianID(ctx context.Context, civilianID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	matches := r.filter(func(b *entity.Booking) bool { return b.CivilianID == civilianID })
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	return page(matches, limit, offset), nil
}

func (r *bookingRepo) CountByCivilianID(ctx context.Context, civilianID uuid.UUID) (int64, error) {
	return int64(len(r.filter(func(b *entity.Booking) bool { return b.CivilianID == civilianID }))), nil
}

func (r *bookingRepo) FindByCaregiverID(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	matches := r.filter(func(b *entity.Booking) bool { return b.CaregiverID != nil && *b.CaregiverID == caregiverID })
	sort.Slice(matches, func(i, j int) bool { return matches[i].StartTime.After(matches[j].StartTime) })
	return page(matches, limit, offset), nil
}

func (r *bookingRepo) CountByCaregiverID(ctx context.Context, caregiverID uuid.UUID) (int64, error) {
	matches := r.filter(func(b *entity.Booking) bool { return b.CaregiverID != nil && *b.CaregiverID == caregiverID })
	return int64(len(matches)), nil
}

func (r *bookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.bookings[booking.ID]
	if !ok {
		return domain.NotFoundError{Resource: "booking", ID: booking.ID.String()}
	}

	if booking.Status.IsCommitted() && booking.CaregiverID != nil {
		all := make([]*entity.Booking, 0, len(r.s.bookings))
		for _, b := range r.s.bookings {
			all = append(all, b)
		}
		if clash := domain.FindOverlap(all, *booking.CaregiverID, booking.StartTime, booking.EndTime, booking.ID); clash != nil {
			return domain.SchedulingConflictError{
				CaregiverID: *booking.CaregiverID,
				Start:       booking.StartTime,
				End:         booking.EndTime,
			}
		}
	}

	id := booking.ID
	r.s.bookings[id] = cloneBooking(booking)
	r.tx.record(func() { r.s.bookings[id] = old })
	return nil
}

func (r *bookingRepo) FindActiveByCivilian(ctx context.Context, civilianID uuid.UUID) (*entity.Booking, error) {
	matches := r.filter(func(b *entity.Booking) bool {
		return b.CivilianID == civilianID && !b.Status.IsTerminal()
	})
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *bookingRepo) FindOverlapping(ctx context.Context, caregiverID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]*entity.Booking, 0, len(r.s.bookings))
	for _, b := range r.s.bookings {
		all = append(all, b)
	}
	if clash := domain.FindOverlap(all, caregiverID, start, end, excludeID); clash != nil {
		return cloneBooking(clash), nil
	}
	return nil, nil
}

func (r *bookingRepo) CountCompletedByCaregiver(ctx context.Context, caregiverID uuid.UUID) (int, error) {
	matches := r.filter(func(b *entity.Booking) bool {
		if b.CaregiverID == nil || *b.CaregiverID != caregiverID {
			return false
		}
		switch b.Status {
		case entity.BookingStatusCompleted, entity.BookingStatusRated, entity.BookingStatusClosed:
			return true
		}
		return false
	})
	return len(matches), nil
}

func (r *bookingRepo) filter(keep func(*entity.Booking) bool) []*entity.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
