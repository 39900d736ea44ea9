package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/pkg/store"
)

var ErrDeclined = errors.New("payment declined")

// MockGateway authorizes everything unless told to fail. It is used in local
// runs and tests.
type MockGateway struct {
	auths *store.Memory[uuid.UUID, string]
	log   *zap.Logger

	mu          sync.Mutex
	failReserve bool
	failCapture bool
	failRefund  bool
	calls       []string
}

func NewMockGateway(log *zap.Logger) *MockGateway {
	return &MockGateway{
		auths: store.NewMemory[uuid.UUID, string](),
		log:   log.With(zap.String("component", "payment.mock")),
	}
}

// FailNext makes the named action ("reserve", "capture", "refund") fail
// until reset with fail=false.
func (g *MockGateway) FailNext(action string, fail bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch action {
	case "reserve":
		g.failReserve = fail
	case "capture":
		g.failCapture = fail
	case "refund":
		g.failRefund = fail
	}
}

// Calls returns the recorded actions in order, e.g. "reserve:<booking>".
func (g *MockGateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.calls))
	copy(out, g.calls)
	return out
}

func (g *MockGateway) record(action string, bookingID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, action+":"+bookingID.String())
	switch action {
	case "reserve":
		return g.failReserve
	case "capture":
		return g.failCapture
	default:
		return g.failRefund
	}
}

func (g *MockGateway) Reserve(ctx context.Context, charge Charge) (string, error) {
	if g.record("reserve", charge.BookingID) {
		return "", ErrDeclined
	}
	ref := g.auths.GetOrCreate(charge.BookingID, func() string {
		return "mock_pi_" + uuid.NewString()
	})
	g.log.Debug("Reserved payment",
		zap.String("booking_id", charge.BookingID.String()),
		zap.Int64("amount", charge.Amount),
		zap.String("reference", ref),
	)
	return ref, nil
}

func (g *MockGateway) Capture(ctx context.Context, bookingID uuid.UUID, reference string) error {
	if g.record("capture", bookingID) {
		return ErrDeclined
	}
	if ref, ok := g.auths.Get(bookingID); !ok || ref != reference {
		return fmt.Errorf("no authorization %s for booking %s", reference, bookingID)
	}
	return nil
}

func (g *MockGateway) Refund(ctx context.Context, bookingID uuid.UUID, reference string) error {
	if g.record("refund", bookingID) {
		return ErrDeclined
	}
	g.auths.Delete(bookingID)
	return nil
}
