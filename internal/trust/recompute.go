// Package trust recomputes cached caregiver trust scores outside the request
// path.
package trust

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
)

// Scheduler queues a recompute. It never blocks the caller and never fails.
type Scheduler interface {
	Schedule(caregiverID uuid.UUID)
}

type Recomputer struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewRecomputer(repo *repository.Repository, log *zap.Logger) *Recomputer {
	return &Recomputer{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("component", "trust")),
	}
}

// Recompute reloads the inputs, recomputes the score and writes it back under
// the caregiver lock. A caregiver that no longer exists is not an error.
func (r *Recomputer) Recompute(ctx context.Context, caregiverID uuid.UUID) (float64, error) {
	var score float64
	err := r.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Lock.LockCaregiver(ctx, caregiverID); err != nil {
			return err
		}

		caregiver, err := tx.Caregiver.FindByID(ctx, caregiverID)
		if err != nil {
			return err
		}
		if caregiver == nil {
			return domain.NotFoundError{Resource: "caregiver", ID: caregiverID.String()}
		}

		completed, err := tx.Booking.CountCompletedByCaregiver(ctx, caregiverID)
		if err != nil {
			return err
		}

		score = domain.ComputeTrustScore(domain.TrustInput{
			Verified:      caregiver.Verified,
			RatingAverage: caregiver.RatingAverage,
			CompletedJobs: completed,
			Complaints:    caregiver.Complaints,
			AnomalyFlags:  caregiver.AnomalyFlags,
		})

		return tx.Caregiver.UpdateTrustScore(ctx, caregiverID, score, r.now().UTC())
	})
	if err != nil {
		return 0, fmt.Errorf("recompute trust for caregiver %s: %w", caregiverID, err)
	}

	r.log.Debug("Trust score recomputed",
		zap.String("caregiver_id", caregiverID.String()),
		zap.Float64("trust_score", score),
	)
	return score, nil
}

// run is the shared failure policy of every worker: bounded time, panics
// recovered, errors logged and dropped, no retry.
func (r *Recomputer) run(parent context.Context, caregiverID uuid.UUID, timeout time.Duration) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Trust recompute panicked",
				zap.Any("panic", p),
				zap.String("caregiver_id", caregiverID.String()),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	if _, err := r.Recompute(ctx, caregiverID); err != nil {
		if domain.IsNotFound(err) {
			r.log.Debug("Trust recompute skipped, caregiver gone", zap.String("caregiver_id", caregiverID.String()))
			return
		}
		r.log.Warn("Trust recompute failed", zap.Error(err), zap.String("caregiver_id", caregiverID.String()))
	}
}
