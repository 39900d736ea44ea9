package domain

import (
	"github.com/senpai80085/sevasetu/internal/data/entity"
)

var paymentTransitions = map[entity.PaymentStatus][]entity.PaymentStatus{
	entity.PaymentStatusUnpaid:   {entity.PaymentStatusReserved},
	entity.PaymentStatusReserved: {entity.PaymentStatusPaid, entity.PaymentStatusUnpaid},
	entity.PaymentStatusPaid:     {},
}

func AllowedPaymentTransitions(current entity.PaymentStatus) []entity.PaymentStatus {
	allowed := paymentTransitions[current]
	out := make([]entity.PaymentStatus, len(allowed))
	copy(out, allowed)
	return out
}

func CanTransitionPayment(current, target entity.PaymentStatus) bool {
	for _, s := range paymentTransitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionPayment moves b.PaymentStatus to target. An empty status is read
// as unpaid.
func TransitionPayment(b *entity.Booking, target entity.PaymentStatus) error {
	current := b.PaymentStatus
	if current == "" {
		current = entity.PaymentStatusUnpaid
	}
	if !CanTransitionPayment(current, target) {
		return PaymentTransitionError{
			BookingID: b.ID,
			Current:   current,
			Requested: target,
			Allowed:   AllowedPaymentTransitions(current),
		}
	}
	b.PaymentStatus = target
	return nil
}
