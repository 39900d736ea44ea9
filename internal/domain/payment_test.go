package domain

import (
	"testing"

	"github.com/senpai80085/sevasetu/internal/data/entity"
)

func TestTransitionPayment(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.PaymentStatus
		to      entity.PaymentStatus
		wantErr bool
	}{
		{"reserve", entity.PaymentStatusUnpaid, entity.PaymentStatusReserved, false},
		{"capture", entity.PaymentStatusReserved, entity.PaymentStatusPaid, false},
		{"refund", entity.PaymentStatusReserved, entity.PaymentStatusUnpaid, false},
		{"empty is unpaid", "", entity.PaymentStatusReserved, false},
		{"capture without reserve", entity.PaymentStatusUnpaid, entity.PaymentStatusPaid, true},
		{"paid is terminal", entity.PaymentStatusPaid, entity.PaymentStatusUnpaid, true},
		{"paid to reserved", entity.PaymentStatusPaid, entity.PaymentStatusReserved, true},
		{"self", entity.PaymentStatusReserved, entity.PaymentStatusReserved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &entity.Booking{PaymentStatus: tt.from}
			err := TransitionPayment(b, tt.to)
			if tt.wantErr {
				if !IsTransition(err) {
					t.Fatalf("expected PaymentTransitionError, got %v", err)
				}
				if b.PaymentStatus != tt.from {
					t.Fatalf("status changed on failure: %s", b.PaymentStatus)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.PaymentStatus != tt.to {
				t.Fatalf("status = %s, want %s", b.PaymentStatus, tt.to)
			}
		})
	}
}
