package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/pkg/database"
)

// Transactor runs fn with repositories bound to one atomic unit. Calling
// WithTx on a Repository that is already inside a transaction reuses it.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *Repository) error) error
}

type Repository struct {
	Booking   BookingRepository
	Caregiver CaregiverRepository
	Rating    RatingRepository
	Audit     AuditRepository
	Lock      LockRepository

	tx Transactor
}

func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.tx.WithTx(ctx, fn)
}

// Assemble builds a Repository from arbitrary implementations; alternative
// store drivers use it.
func Assemble(booking BookingRepository, caregiver CaregiverRepository, rating RatingRepository,
	audit AuditRepository, lock LockRepository, tx Transactor) *Repository {
	return &Repository{
		Booking:   booking,
		Caregiver: caregiver,
		Rating:    rating,
		Audit:     audit,
		Lock:      lock,
		tx:        tx,
	}
}

// NewRepository returns the Postgres-backed repositories.
func NewRepository(db database.PgxIface, opts database.TxOptions, log *zap.Logger) *Repository {
	repo := bind(db, log)
	repo.tx = &pgTransactor{db: db, opts: opts, log: log}
	return repo
}

func bind(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Booking:   NewBookingRepository(q, log),
		Caregiver: NewCaregiverRepository(q, log),
		Rating:    NewRatingRepository(q, log),
		Audit:     NewAuditRepository(q, log),
		Lock:      NewLockRepository(q, log),
	}
}

type pgTransactor struct {
	db   database.PgxIface
	opts database.TxOptions
	log  *zap.Logger
}

func (t *pgTransactor) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return database.RunInTx(ctx, t.db, t.opts, func(q database.Querier) error {
		repo := bind(q, t.log)
		repo.tx = reuseTx{repo: repo}
		return fn(repo)
	})
}

type reuseTx struct {
	repo *Repository
}

func (r reuseTx) WithTx(_ context.Context, fn func(tx *Repository) error) error {
	return fn(r.repo)
}
