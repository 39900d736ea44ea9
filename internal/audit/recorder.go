// Package audit records state-changing actions without ever failing the
// caller. Entries are queued and persisted by a background worker; write
// failures are logged and dropped.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/repository"
)

const (
	ActionBookingCreated    = "booking_created"
	ActionBookingMatched    = "booking_matched"
	ActionBookingConfirmed  = "booking_confirmed"
	ActionJobStarted        = "job_started"
	ActionJobEnded          = "job_ended"
	ActionJobPaused         = "job_paused_safety"
	ActionJobResumed        = "job_resumed"
	ActionRatingSubmitted   = "rating_submitted"
	ActionBookingClosed     = "booking_closed"
	ActionBookingCancelled  = "booking_cancelled"
	ActionCaregiverUpdated  = "caregiver_updated"
	ActionComplaintRecorded = "complaint_recorded"
	ActionAnomalyFlagged    = "anomaly_flagged"
	ActionLedgerUpdated     = "ledger_status_updated"
)

const (
	EntityBooking   = "booking"
	EntityCaregiver = "caregiver"
	EntityRating    = "rating"
)

const writeTimeout = 5 * time.Second

// Recorder never returns an error and never blocks on storage.
type Recorder interface {
	Record(actorID uuid.UUID, action, entityType string, entityID *uuid.UUID, detail string)
}

type AsyncRecorder struct {
	repo  repository.AuditRepository
	log   *zap.Logger
	now   func() time.Time
	queue chan *entity.AuditLog

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsyncRecorder starts the background writer. Call Close to drain it.
func NewAsyncRecorder(repo repository.AuditRepository, buffer int, log *zap.Logger) *AsyncRecorder {
	if buffer <= 0 {
		buffer = 1
	}
	r := &AsyncRecorder{
		repo:  repo,
		log:   log.With(zap.String("component", "audit")),
		now:   time.Now,
		queue: make(chan *entity.AuditLog, buffer),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *AsyncRecorder) Record(actorID uuid.UUID, action, entityType string, entityID *uuid.UUID, detail string) {
	entry := &entity.AuditLog{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  r.now().UTC(),
	}
	if detail != "" {
		entry.Detail = &detail
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.log.Warn("Audit recorder closed, dropping entry", zap.String("action", action))
		return
	}

	select {
	case r.queue <- entry:
	default:
		r.log.Warn("Audit queue full, dropping entry",
			zap.String("action", action),
			zap.String("entity_type", entityType),
		)
	}
}

func (r *AsyncRecorder) run() {
	defer close(r.done)
	for entry := range r.queue {
		r.write(entry)
	}
}

func (r *AsyncRecorder) write(entry *entity.AuditLog) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Audit write panicked", zap.Any("panic", p), zap.String("action", entry.Action))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := r.repo.Create(ctx, entry); err != nil {
		fields := []zap.Field{
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.String("actor_id", entry.ActorID.String()),
		}
		if entry.EntityID != nil {
			fields = append(fields, zap.String("entity_id", entry.EntityID.String()))
		}
		r.log.Error("Failed to write audit entry", fields...)
	}
}

// Close stops accepting entries and waits until queued ones are written or
// ctx expires.
func (r *AsyncRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
