// Package events announces booking lifecycle changes on the message bus
// after they are committed. Delivery is best effort.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/pkg/mq"
)

const (
	BookingCreated   = "booking.created"
	BookingMatched   = "booking.matched"
	BookingConfirmed = "booking.confirmed"
	BookingStarted   = "booking.started"
	BookingPaused    = "booking.paused"
	BookingResumed   = "booking.resumed"
	BookingCompleted = "booking.completed"
	BookingRated     = "booking.rated"
	BookingClosed    = "booking.closed"
	BookingCancelled = "booking.cancelled"
)

const publishTimeout = 3 * time.Second

type BookingEvent struct {
	Type          string               `json:"type"`
	BookingID     uuid.UUID            `json:"booking_id"`
	CivilianID    uuid.UUID            `json:"civilian_id"`
	CaregiverID   *uuid.UUID           `json:"caregiver_id,omitempty"`
	Status        entity.BookingStatus `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	StartTime     time.Time            `json:"start_time"`
	EndTime       time.Time            `json:"end_time"`
	ActorID       uuid.UUID            `json:"actor_id"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// Emitter is what the booking service depends on.
type Emitter interface {
	Emit(eventType string, booking *entity.Booking, actorID uuid.UUID)
}

type BusEmitter struct {
	pub mq.JSONPublisher
	log *zap.Logger
	now func() time.Time
	wg  sync.WaitGroup
}

func NewBusEmitter(pub mq.JSONPublisher, log *zap.Logger) *BusEmitter {
	return &BusEmitter{
		pub: pub,
		log: log.With(zap.String("component", "events")),
		now: time.Now,
	}
}

// Emit publishes in the background. Errors are logged only.
func (e *BusEmitter) Emit(eventType string, booking *entity.Booking, actorID uuid.UUID) {
	evt := BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		CivilianID:    booking.CivilianID,
		CaregiverID:   booking.CaregiverID,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		ActorID:       actorID,
		OccurredAt:    e.now().UTC(),
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := e.pub.PublishJSON(ctx, eventType, evt); err != nil {
			e.log.Warn("Failed to publish booking event",
				zap.Error(err),
				zap.String("type", eventType),
				zap.String("booking_id", evt.BookingID.String()),
			)
		}
	}()
}

// Close waits for in-flight publishes, then closes the publisher.
func (e *BusEmitter) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return e.pub.Close()
}
