package memstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/domain"
)

type ratingRepo struct {
	s  *Store
	tx *tx
}

func cloneRating(r *entity.Rating) *entity.Rating {
	out := *r
	return &out
}

func (r *ratingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.ratings {
		if existing.BookingID == rating.BookingID {
			return domain.ValidationError{Field: "booking_id", Msg: "booking already has a rating"}
		}
	}

	id := rating.ID
	r.s.ratings[id] = cloneRating(rating)
	r.tx.record(func() { delete(r.s.ratings, id) })
	return nil
}

func (r *ratingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rating, ok := r.s.ratings[id]
	if !ok {
		return nil, nil
	}
	return cloneRating(rating), nil
}

func (r *ratingRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rating := range r.s.ratings {
		if rating.BookingID == bookingID {
			return cloneRating(rating), nil
		}
	}
	return nil, nil
}

func (r *ratingRepo) UpdateLedger(ctx context.Context, rating *entity.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.ratings[rating.ID]
	if !ok {
		return domain.NotFoundError{Resource: "rating", ID: rating.ID.String()}
	}
	updated := cloneRating(old)
	updated.LedgerStatus = rating.LedgerStatus
	updated.LedgerTxHash = rating.LedgerTxHash
	updated.LedgerDigest = rating.LedgerDigest

	id := rating.ID
	r.s.ratings[id] = updated
	r.tx.record(func() { r.s.ratings[id] = old })
	return nil
}
