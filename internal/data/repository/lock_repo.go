package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/pkg/database"
)

// LockRepository takes exclusive locks scoped to a caregiver or civilian for
// the rest of the current transaction.
type LockRepository interface {
	LockCaregiver(ctx context.Context, caregiverID uuid.UUID) error
	LockCivilian(ctx context.Context, civilianID uuid.UUID) error
}

type lockRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewLockRepository(db database.Querier, log *zap.Logger) LockRepository {
	return &lockRepository{
		db:  db,
		log: log.With(zap.String("repository", "lock")),
	}
}

func CaregiverLockKey(id uuid.UUID) string { return "caregiver:" + id.String() }
func CivilianLockKey(id uuid.UUID) string  { return "civilian:" + id.String() }
func BookingLockKey(id uuid.UUID) string   { return "booking:" + id.String() }

func (r *lockRepository) LockCaregiver(ctx context.Context, caregiverID uuid.UUID) error {
	return r.lock(ctx, CaregiverLockKey(caregiverID))
}

func (r *lockRepository) LockCivilian(ctx context.Context, civilianID uuid.UUID) error {
	return r.lock(ctx, CivilianLockKey(civilianID))
}

func (r *lockRepository) lock(ctx context.Context, key string) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

	if _, err := r.db.Exec(ctx, query, key); err != nil {
		if code, _ := pgErrorCode(err); code == pgLockNotAvailable || code == pgQueryCanceled {
			return domain.LockTimeoutError{Key: key, Err: err}
		}
		r.log.Error("Failed to acquire advisory lock", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return nil
}
