// Package memstore is an in-process store driver. It implements the
// repository contracts with per-key exclusive locks held until the
// transaction ends, bounded lock waits, and rollback through an undo log.
// Writes land in the shared maps before commit, so readers are isolated only
// by the locks: a transaction that frees a caregiver slot or a civilian's
// active booking must hold that caregiver or civilian lock.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/pkg/store"
)

var errLockWait = errors.New("lock wait exceeded")

type Store struct {
	mu         sync.Mutex
	bookings   map[uuid.UUID]*entity.Booking
	caregivers map[uuid.UUID]*entity.Caregiver
	ratings    map[uuid.UUID]*entity.Rating
	audits     []*entity.AuditLog

	locks       *store.Memory[string, chan struct{}]
	lockTimeout time.Duration
	log         *zap.Logger
}

func New(lockTimeout time.Duration, log *zap.Logger) *Store {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &Store{
		bookings:    make(map[uuid.UUID]*entity.Booking),
		caregivers:  make(map[uuid.UUID]*entity.Caregiver),
		ratings:     make(map[uuid.UUID]*entity.Rating),
		locks:       store.NewMemory[string, chan struct{}](),
		lockTimeout: lockTimeout,
		log:         log.With(zap.String("repository", "memstore")),
	}
}

// Repository returns repositories running in autocommit mode. Use WithTx
// for locked, atomic work.
func (s *Store) Repository() *repository.Repository {
	return s.bind(nil)
}

func (s *Store) bind(t *tx) *repository.Repository {
	assemble := func(transactor repository.Transactor) *repository.Repository {
		return repository.Assemble(
			&bookingRepo{s: s, tx: t},
			&caregiverRepo{s: s, tx: t},
			&ratingRepo{s: s, tx: t},
			&auditRepo{s: s, tx: t},
			&lockRepo{tx: t},
			transactor,
		)
	}
	if t == nil {
		return assemble(s)
	}
	nested := &nestedTx{}
	nested.repo = assemble(nested)
	return nested.repo
}

// WithTx runs fn in a new transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) (err error) {
	t := &tx{s: s, held: make(map[string]chan struct{})}
	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}
		if err != nil {
			t.rollback()
			return
		}
		t.commit()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.bind(t))
}

type nestedTx struct {
	repo *repository.Repository
}

func (n *nestedTx) WithTx(_ context.Context, fn func(tx *repository.Repository) error) error {
	return fn(n.repo)
}

// tx tracks held locks and undo actions. A nil *tx means autocommit.
type tx struct {
	s    *Store
	held map[string]chan struct{}
	undo []func()
}

// lock acquires key for the rest of the transaction. Reentrant.
func (t *tx) lock(ctx context.Context, key string) error {
	if t == nil {
		return nil
	}
	if _, ok := t.held[key]; ok {
		return nil
	}

	ch := t.s.locks.GetOrCreate(key, func() chan struct{} {
		return make(chan struct{}, 1)
	})

	timer := time.NewTimer(t.s.lockTimeout)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		t.held[key] = ch
		return nil
	case <-ctx.Done():
		return domain.LockTimeoutError{Key: key, Err: ctx.Err()}
	case <-timer.C:
		return domain.LockTimeoutError{Key: key, Err: errLockWait}
	}
}

// record registers an undo action. Callers hold s.mu.
func (t *tx) record(undo func()) {
	if t == nil {
		return
	}
	t.undo = append(t.undo, undo)
}

func (t *tx) commit() {
	t.undo = nil
	t.release()
}

func (t *tx) rollback() {
	t.s.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	t.s.mu.Unlock()
	t.release()
}

func (t *tx) release() {
	for key, ch := range t.held {
		<-ch
		delete(t.held, key)
	}
}

type lockRepo struct {
	tx *tx
}

func (r *lockRepo) LockCaregiver(ctx context.Context, caregiverID uuid.UUID) error {
	return r.tx.lock(ctx, repository.CaregiverLockKey(caregiverID))
}

func (r *lockRepo) LockCivilian(ctx context.Context, civilianID uuid.UUID) error {
	return r.tx.lock(ctx, repository.CivilianLockKey(civilianID))
}
