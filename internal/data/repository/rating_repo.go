package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/pkg/database"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error)
	UpdateLedger(ctx context.Context, rating *entity.Rating) error
}

type ratingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRatingRepository(db database.Querier, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

const ratingColumns = `id, booking_id, caregiver_id, value, review_text, ledger_status, ledger_tx_hash, ledger_digest, created_at`

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, booking_id, caregiver_id, value, review_text, ledger_status, ledger_tx_hash, ledger_digest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		rating.ID,
		rating.BookingID,
		rating.CaregiverID,
		rating.Value,
		rating.ReviewText,
		rating.LedgerStatus,
		rating.LedgerTxHash,
		rating.LedgerDigest,
		rating.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.String("booking_id", rating.BookingID.String()),
			zap.String("caregiver_id", rating.CaregiverID.String()),
		)
		return fmt.Errorf("create rating for booking %s: %w", rating.BookingID.String(), err)
	}
	return nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *ratingRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE booking_id = $1`
	return r.findOne(ctx, query, bookingID)
}

func (r *ratingRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Rating, error) {
	var rating entity.Rating
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rating.ID,
		&rating.BookingID,
		&rating.CaregiverID,
		&rating.Value,
		&rating.ReviewText,
		&rating.LedgerStatus,
		&rating.LedgerTxHash,
		&rating.LedgerDigest,
		&rating.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find rating %s: %w", id.String(), err)
	}
	return &rating, nil
}

func (r *ratingRepository) UpdateLedger(ctx context.Context, rating *entity.Rating) error {
	query := `UPDATE ratings SET ledger_status = $2, ledger_tx_hash = $3, ledger_digest = $4 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, rating.ID, rating.LedgerStatus, rating.LedgerTxHash, rating.LedgerDigest)
	if err != nil {
		r.log.Error("Failed to update rating ledger status",
			zap.Error(err),
			zap.String("rating_id", rating.ID.String()),
			zap.String("ledger_status", string(rating.LedgerStatus)),
		)
		return fmt.Errorf("update ledger status of rating %s: %w", rating.ID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "rating", ID: rating.ID.String()}
	}
	return nil
}
