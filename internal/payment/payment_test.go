package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestQuote(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		d    time.Duration
		rate int64
		want int64
	}{
		{2 * time.Hour, 50000, 100000},
		{90 * time.Minute, 50000, 75000},
		{time.Minute + time.Second, 6000, 200},
		{0, 50000, 0},
	}
	for _, tt := range tests {
		if got := Quote(start, start.Add(tt.d), tt.rate); got != tt.want {
			t.Errorf("Quote(%s, %d) = %d, want %d", tt.d, tt.rate, got, tt.want)
		}
	}
}

func TestMockGatewayLifecycle(t *testing.T) {
	g := NewMockGateway(zap.NewNop())
	ctx := context.Background()
	booking := uuid.New()

	ref, err := g.Reserve(ctx, Charge{BookingID: booking, Amount: 100})
	if err != nil || ref == "" {
		t.Fatalf("Reserve = %q, %v", ref, err)
	}
	again, _ := g.Reserve(ctx, Charge{BookingID: booking, Amount: 100})
	if again != ref {
		t.Fatalf("Reserve not idempotent: %q vs %q", again, ref)
	}
	if err := g.Capture(ctx, booking, ref); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if err := g.Capture(ctx, booking, "other"); err == nil {
		t.Fatal("Capture with unknown reference succeeded")
	}

	g.FailNext("refund", true)
	if err := g.Refund(ctx, booking, ref); !errors.Is(err, ErrDeclined) {
		t.Fatalf("Refund = %v, want ErrDeclined", err)
	}
	if n := len(g.Calls()); n != 5 {
		t.Fatalf("calls = %d, want 5", n)
	}
}
