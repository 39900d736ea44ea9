package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/pkg/database"
)

type CaregiverRepository interface {
	// Upsert writes the profile fields (name, verified) and leaves the
	// reputation counters of an existing row untouched.
	Upsert(ctx context.Context, caregiver *entity.Caregiver) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Caregiver, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Caregiver, error)
	// FindVerified lists verified caregivers, highest trust first.
	FindVerified(ctx context.Context, limit int) ([]*entity.Caregiver, error)

	UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int, at time.Time) error
	UpdateTrustScore(ctx context.Context, id uuid.UUID, score float64, at time.Time) error
	IncrementComplaints(ctx context.Context, id uuid.UUID, at time.Time) error
	IncrementAnomalyFlags(ctx context.Context, id uuid.UUID, at time.Time) error
}

type caregiverRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCaregiverRepository(db database.Querier, log *zap.Logger) CaregiverRepository {
	return &caregiverRepository{
		db:  db,
		log: log.With(zap.String("repository", "caregiver")),
	}
}

const caregiverColumns = `id, name, verified, rating_average, rating_count, trust_score, complaints, anomaly_flags, updated_at`

func scanCaregiver(row pgx.Row) (*entity.Caregiver, error) {
	var c entity.Caregiver
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Verified,
		&c.RatingAverage,
		&c.RatingCount,
		&c.TrustScore,
		&c.Complaints,
		&c.AnomalyFlags,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caregiverRepository) Upsert(ctx context.Context, caregiver *entity.Caregiver) error {
	query := `
		INSERT INTO caregivers (id, name, verified, rating_average, rating_count, trust_score, complaints, anomaly_flags, updated_at)
		VALUES ($1, $2, $3, 0, 0, $4, 0, 0, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, verified = EXCLUDED.verified, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		caregiver.ID,
		caregiver.Name,
		caregiver.Verified,
		caregiver.TrustScore,
		caregiver.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert caregiver", zap.Error(err), zap.String("caregiver_id", caregiver.ID.String()))
		return fmt.Errorf("upsert caregiver %s: %w", caregiver.ID.String(), err)
	}
	return nil
}

func (r *caregiverRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Caregiver, error) {
	query := `SELECT ` + caregiverColumns + ` FROM caregivers WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *caregiverRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Caregiver, error) {
	query := `SELECT ` + caregiverColumns + ` FROM caregivers WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, id)
}

func (r *caregiverRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Caregiver, error) {
	caregiver, err := scanCaregiver(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgLockNotAvailable || code == pgQueryCanceled {
			return nil, domain.LockTimeoutError{Key: CaregiverLockKey(id), Err: err}
		}
		r.log.Error("Failed to find caregiver by ID", zap.Error(err), zap.String("caregiver_id", id.String()))
		return nil, fmt.Errorf("find caregiver by ID %s: %w", id.String(), err)
	}
	return caregiver, nil
}

func (r *caregiverRepository) FindVerified(ctx context.Context, limit int) ([]*entity.Caregiver, error) {
	query := `SELECT ` + caregiverColumns + `
		FROM caregivers
		WHERE verified = TRUE
		ORDER BY trust_score DESC, rating_average DESC, id
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list verified caregivers", zap.Error(err))
		return nil, fmt.Errorf("list verified caregivers: %w", err)
	}
	defer rows.Close()

	var caregivers []*entity.Caregiver
	for rows.Next() {
		c, err := scanCaregiver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan caregiver: %w", err)
		}
		caregivers = append(caregivers, c)
	}
	return caregivers, rows.Err()
}

func (r *caregiverRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int, at time.Time) error {
	query := `UPDATE caregivers SET rating_average = $2, rating_count = $3, updated_at = $4 WHERE id = $1`
	return r.exec(ctx, "update rating", id, query, id, average, count, at)
}

func (r *caregiverRepository) UpdateTrustScore(ctx context.Context, id uuid.UUID, score float64, at time.Time) error {
	query := `UPDATE caregivers SET trust_score = $2, updated_at = $3 WHERE id = $1`
	return r.exec(ctx, "update trust score", id, query, id, score, at)
}

func (r *caregiverRepository) IncrementComplaints(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE caregivers SET complaints = complaints + 1, updated_at = $2 WHERE id = $1`
	return r.exec(ctx, "record complaint", id, query, id, at)
}

func (r *caregiverRepository) IncrementAnomalyFlags(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE caregivers SET anomaly_flags = anomaly_flags + 1, updated_at = $2 WHERE id = $1`
	return r.exec(ctx, "record anomaly flag", id, query, id, at)
}

func (r *caregiverRepository) exec(ctx context.Context, op string, id uuid.UUID, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.String("caregiver_id", id.String()))
		return fmt.Errorf("%s for caregiver %s: %w", op, id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "caregiver", ID: id.String()}
	}
	return nil
}
