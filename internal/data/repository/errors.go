package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the engine reacts to.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
	pgLockNotAvailable   = "55P03"
	pgQueryCanceled      = "57014"
)

const (
	constraintOneActivePerCivilian = "bookings_one_active_per_civilian"
	constraintNoCommittedOverlap   = "bookings_no_committed_overlap"
)

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
