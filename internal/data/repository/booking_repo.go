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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindByIDForUpdate also locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCivilianID(ctx context.Context, civilianID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCivilianID(ctx context.Context, civilianID uuid.UUID) (int64, error)
	FindByCaregiverID(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCaregiverID(ctx context.Context, caregiverID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	FindActiveByCivilian(ctx context.Context, civilianID uuid.UUID) (*entity.Booking, error)
	// FindOverlapping returns a confirmed or in-progress booking of the
	// caregiver overlapping [start,end), ignoring excludeID. Nil if none.
	FindOverlapping(ctx context.Context, caregiverID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*entity.Booking, error)
	CountCompletedByCaregiver(ctx context.Context, caregiverID uuid.UUID) (int, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, civilian_id, caregiver_id, start_time, end_time, status, payment_status,
		payment_reference, started_at, ended_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.CivilianID,
		&b.CaregiverID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentReference,
		&b.StartedAt,
		&b.EndedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, civilian_id, caregiver_id, start_time, end_time, status, payment_status,
			payment_reference, started_at, ended_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.CivilianID,
		booking.CaregiverID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentReference,
		booking.StartedAt,
		booking.EndedAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation && constraint == constraintOneActivePerCivilian {
			return domain.ConcurrentBookingError{CivilianID: booking.CivilianID, Err: err}
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("civilian_id", booking.CivilianID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, id)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgLockNotAvailable || code == pgQueryCanceled {
			return nil, domain.LockTimeoutError{Key: BookingLockKey(id), Err: err}
		}
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCivilianID(ctx context.Context, civilianID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE civilian_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	bookings, err := r.findMany(ctx, query, civilianID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by civilian",
			zap.Error(err),
			zap.String("civilian_id", civilianID.String()),
		)
		return nil, fmt.Errorf("find bookings by civilian %s: %w", civilianID.String(), err)
	}
	return bookings, nil
}

func (r *bookingRepository) CountByCivilianID(ctx context.Context, civilianID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE civilian_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, civilianID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by civilian", zap.Error(err), zap.String("civilian_id", civilianID.String()))
		return 0, fmt.Errorf("count bookings by civilian %s: %w", civilianID.String(), err)
	}
	return count, nil
}

func (r *bookingRepository) FindByCaregiverID(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE caregiver_id = $1
		ORDER BY start_time DESC
		LIMIT $2 OFFSET $3`

	bookings, err := r.findMany(ctx, query, caregiverID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by caregiver",
			zap.Error(err),
			zap.String("caregiver_id", caregiverID.String()),
		)
		return nil, fmt.Errorf("find bookings by caregiver %s: %w", caregiverID.String(), err)
	}
	return bookings, nil
}

func (r *bookingRepository) CountByCaregiverID(ctx context.Context, caregiverID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE caregiver_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, caregiverID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by caregiver", zap.Error(err), zap.String("caregiver_id", caregiverID.String()))
		return 0, fmt.Errorf("count bookings by caregiver %s: %w", caregiverID.String(), err)
	}
	return count, nil
}

func (r *bookingRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET caregiver_id = $2, status = $3, payment_status = $4, payment_reference = $5,
			started_at = $6, ended_at = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.CaregiverID,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentReference,
		booking.StartedAt,
		booking.EndedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgExclusionViolation && constraint == constraintNoCommittedOverlap {
			conflict := domain.SchedulingConflictError{Start: booking.StartTime, End: booking.EndTime, Err: err}
			if booking.CaregiverID != nil {
				conflict.CaregiverID = *booking.CaregiverID
			}
			return conflict
		}
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", booking.Status.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "booking", ID: booking.ID.String()}
	}

	return nil
}

func (r *bookingRepository) FindActiveByCivilian(ctx context.Context, civilianID uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE civilian_id = $1 AND status NOT IN ('closed', 'cancelled', 'rejected')
		LIMIT 1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, civilianID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active booking",
			zap.Error(err),
			zap.String("civilian_id", civilianID.String()),
		)
		return nil, fmt.Errorf("find active booking for civilian %s: %w", civilianID.String(), err)
	}
	return booking, nil
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, caregiverID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE caregiver_id = $1
			AND id <> $2
			AND status IN ('confirmed', 'in_progress')
			AND start_time < $4
			AND end_time > $3
		LIMIT 1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, caregiverID, excludeID, start, end))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to check caregiver overlap",
			zap.Error(err),
			zap.String("caregiver_id", caregiverID.String()),
		)
		return nil, fmt.Errorf("check overlap for caregiver %s: %w", caregiverID.String(), err)
	}
	return booking, nil
}

func (r *bookingRepository) CountCompletedByCaregiver(ctx context.Context, caregiverID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE caregiver_id = $1 AND status IN ('completed', 'rated', 'closed')
	`

	var count int
	if err := r.db.QueryRow(ctx, query, caregiverID).Scan(&count); err != nil {
		r.log.Error("Failed to count completed bookings", zap.Error(err), zap.String("caregiver_id", caregiverID.String()))
		return 0, fmt.Errorf("count completed bookings for caregiver %s: %w", caregiverID.String(), err)
	}
	return count, nil
}
