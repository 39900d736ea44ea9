package memstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
)

func newBooking(civilian uuid.UUID, caregiver *uuid.UUID, start time.Time, status entity.BookingStatus) *entity.Booking {
	b := &entity.Booking{
		CivilianID:    civilian,
		CaregiverID:   caregiver,
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		Status:        status,
		PaymentStatus: entity.PaymentStatusUnpaid,
	}
	b.ID = uuid.New()
	b.CreatedAt = start
	return b
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := New(time.Second, zap.NewNop())
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	b := newBooking(uuid.New(), nil, start, entity.BookingStatusPending)
	if err := s.Repository().Booking.Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx *repository.Repository) error {
		locked, err := tx.Booking.FindByIDForUpdate(ctx, b.ID)
		if err != nil {
			return err
		}
		locked.Status = entity.BookingStatusMatched
		if err := tx.Booking.Update(ctx, locked); err != nil {
			return err
		}
		other := newBooking(uuid.New(), nil, start, entity.BookingStatusPending)
		if err := tx.Booking.Create(ctx, other); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	got, _ := s.Repository().Booking.FindByID(ctx, b.ID)
	if got.Status != entity.BookingStatusPending {
		t.Fatalf("status = %s after rollback, want pending", got.Status)
	}
	if n := len(s.bookings); n != 1 {
		t.Fatalf("bookings = %d after rollback, want 1", n)
	}
}

func TestLockIsExclusiveAndTimesOut(t *testing.T) {
	s := New(50*time.Millisecond, zap.NewNop())
	ctx := context.Background()
	caregiver := uuid.New()

	held := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = s.WithTx(ctx, func(tx *repository.Repository) error {
			if err := tx.Lock.LockCaregiver(ctx, caregiver); err != nil {
				return err
			}
			close(held)
			<-done
			return nil
		})
	}()
	<-held

	err := s.WithTx(ctx, func(tx *repository.Repository) error {
		return tx.Lock.LockCaregiver(ctx, caregiver)
	})
	if !domain.IsLockTimeout(err) {
		t.Fatalf("err = %v, want LockTimeoutError", err)
	}

	close(done)
	// released after the holder finishes
	deadline := time.Now().Add(time.Second)
	for {
		err = s.WithTx(ctx, func(tx *repository.Repository) error {
			return tx.Lock.LockCaregiver(ctx, caregiver)
		})
		if err == nil || time.Now().After(deadline) {
			break
		}
	}
	if err != nil {
		t.Fatalf("lock not released: %v", err)
	}
}

func TestLockIsReentrant(t *testing.T) {
	s := New(50*time.Millisecond, zap.NewNop())
	ctx := context.Background()
	civilian := uuid.New()

	err := s.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Lock.LockCivilian(ctx, civilian); err != nil {
			return err
		}
		return tx.WithTx(ctx, func(inner *repository.Repository) error {
			return inner.Lock.LockCivilian(ctx, civilian)
		})
	})
	if err != nil {
		t.Fatalf("reentrant lock failed: %v", err)
	}
}

func TestCreateRejectsSecondActiveBooking(t *testing.T) {
	s := New(time.Second, zap.NewNop())
	ctx := context.Background()
	civilian := uuid.New()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	if err := s.Repository().Booking.Create(ctx, newBooking(civilian, nil, start, entity.BookingStatusPending)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := s.Repository().Booking.Create(ctx, newBooking(civilian, nil, start.Add(24*time.Hour), entity.BookingStatusPending))
	if !domain.IsConcurrentBooking(err) {
		t.Fatalf("err = %v, want ConcurrentBookingError", err)
	}
}

func TestUpdateRejectsCommittedOverlap(t *testing.T) {
	s := New(time.Second, zap.NewNop())
	ctx := context.Background()
	caregiver := uuid.New()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := s.Repository()

	first := newBooking(uuid.New(), &caregiver, start, entity.BookingStatusConfirmed)
	second := newBooking(uuid.New(), &caregiver, start.Add(time.Hour), entity.BookingStatusMatched)
	for _, b := range []*entity.Booking{first, second} {
		if err := repo.Booking.Create(ctx, b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	second.Status = entity.BookingStatusConfirmed
	if err := repo.Booking.Update(ctx, second); !domain.IsSchedulingConflict(err) {
		t.Fatalf("err = %v, want SchedulingConflictError", err)
	}
}

func TestConcurrentCounterUpdatesUnderLock(t *testing.T) {
	s := New(time.Second, zap.NewNop())
	ctx := context.Background()
	caregiver := uuid.New()
	if err := s.Repository().Caregiver.Upsert(ctx, &entity.Caregiver{ID: caregiver, Name: "x"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var wg sync.WaitGroup
	var failures int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithTx(ctx, func(tx *repository.Repository) error {
				c, err := tx.Caregiver.FindByIDForUpdate(ctx, caregiver)
				if err != nil {
					return err
				}
				return tx.Caregiver.UpdateRating(ctx, caregiver, 5, c.RatingCount+1, time.Now())
			})
			if err != nil {
				atomic.AddInt32(&failures, 1)
			}
		}()
	}
	wg.Wait()

	c, _ := s.Repository().Caregiver.FindByID(ctx, caregiver)
	if failures != 0 || c.RatingCount != 20 {
		t.Fatalf("rating_count = %d, failures = %d", c.RatingCount, failures)
	}
}

func TestSeedDemo(t *testing.T) {
	s := New(time.Second, zap.NewNop())
	if err := s.SeedDemo(context.Background(), time.Now()); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}
	verified, _ := s.Repository().Caregiver.FindVerified(context.Background(), 10)
	if len(verified) != 2 {
		t.Fatalf("verified caregivers = %d, want 2", len(verified))
	}
}
