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

type caregiverRepo struct {
	s  *Store
	tx *tx
}

func cloneCaregiver(c *entity.Caregiver) *entity.Caregiver {
	out := *c
	return &out
}

func (r *caregiverRepo) Upsert(ctx context.Context, caregiver *entity.Caregiver) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := caregiver.ID
	old, exists := r.s.caregivers[id]
	if exists {
		updated := cloneCaregiver(old)
		updated.Name = caregiver.Name
		updated.Verified = caregiver.Verified
		updated.UpdatedAt = caregiver.UpdatedAt
		r.s.caregivers[id] = updated
		r.tx.record(func() { r.s.caregivers[id] = old })
		return nil
	}

	fresh := &entity.Caregiver{
		ID:         id,
		Name:       caregiver.Name,
		Verified:   caregiver.Verified,
		TrustScore: caregiver.TrustScore,
		UpdatedAt:  caregiver.UpdatedAt,
	}
	r.s.caregivers[id] = fresh
	r.tx.record(func() { delete(r.s.caregivers, id) })
	return nil
}

func (r *caregiverRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Caregiver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.caregivers[id]
	if !ok {
		return nil, nil
	}
	return cloneCaregiver(c), nil
}

func (r *caregiverRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Caregiver, error) {
	if err := r.tx.lock(ctx, repository.CaregiverLockKey(id)); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *caregiverRepo) FindVerified(ctx context.Context, limit int) ([]*entity.Caregiver, error) {
	r.s.mu.Lock()
	var out []*entity.Caregiver
	for _, c := range r.s.caregivers {
		if c.Verified {
			out = append(out, cloneCaregiver(c))
		}
	}
	r.s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].TrustScore != out[j].TrustScore {
			return out[i].TrustScore > out[j].TrustScore
		}
		if out[i].RatingAverage != out[j].RatingAverage {
			return out[i].RatingAverage > out[j].RatingAverage
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return page(out, limit, 0), nil
}

func (r *caregiverRepo) UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int, at time.Time) error {
	return r.mutate(id, func(c *entity.Caregiver) {
		c.RatingAverage = average
		c.RatingCount = count
		c.UpdatedAt = at
	})
}

func (r *caregiverRepo) UpdateTrustScore(ctx context.Context, id uuid.UUID, score float64, at time.Time) error {
	return r.mutate(id, func(c *entity.Caregiver) {
		c.TrustScore = score
		c.UpdatedAt = at
	})
}

func (r *caregiverRepo) IncrementComplaints(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.mutate(id, func(c *entity.Caregiver) {
		c.Complaints++
		c.UpdatedAt = at
	})
}

func (r *caregiverRepo) IncrementAnomalyFlags(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.mutate(id, func(c *entity.Caregiver) {
		c.AnomalyFlags++
		c.UpdatedAt = at
	})
}

func (r *caregiverRepo) mutate(id uuid.UUID, apply func(*entity.Caregiver)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.caregivers[id]
	if !ok {
		return domain.NotFoundError{Resource: "caregiver", ID: id.String()}
	}
	updated := cloneCaregiver(old)
	apply(updated)
	r.s.caregivers[id] = updated
	r.tx.record(func() { r.s.caregivers[id] = old })
	return nil
}
