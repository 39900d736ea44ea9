package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
)

type capturePublisher struct {
	mu   sync.Mutex
	keys []string
	msgs []any
	err  error
}

func (c *capturePublisher) PublishJSON(ctx context.Context, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, key)
	c.msgs = append(c.msgs, v)
	return c.err
}

func (c *capturePublisher) Close() error { return nil }

func TestBusEmitterPublishes(t *testing.T) {
	pub := &capturePublisher{}
	e := NewBusEmitter(pub, zap.NewNop())

	b := &entity.Booking{CivilianID: uuid.New(), Status: entity.BookingStatusConfirmed, PaymentStatus: entity.PaymentStatusReserved}
	b.ID = uuid.New()
	actor := uuid.New()
	e.Emit(BookingConfirmed, b, actor)

	if err := e.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(pub.keys) != 1 || pub.keys[0] != BookingConfirmed {
		t.Fatalf("keys = %v", pub.keys)
	}
	evt, ok := pub.msgs[0].(BookingEvent)
	if !ok {
		t.Fatalf("message type %T", pub.msgs[0])
	}
	if evt.BookingID != b.ID || evt.ActorID != actor || evt.Status != entity.BookingStatusConfirmed {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestBusEmitterSwallowsErrors(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	e := NewBusEmitter(pub, zap.NewNop())

	b := &entity.Booking{}
	e.Emit(BookingCancelled, b, uuid.Nil)
	if err := e.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
