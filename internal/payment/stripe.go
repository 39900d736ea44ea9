package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeGateway reserves with a manual-capture PaymentIntent, captures it
// when the job starts and cancels it on refund.
type StripeGateway struct {
	api           *client.API
	paymentMethod string
	log           *zap.Logger
}

func NewStripeGateway(secretKey, paymentMethod string, log *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:           api,
		paymentMethod: paymentMethod,
		log:           log.With(zap.String("component", "payment.stripe")),
	}
}

func (g *StripeGateway) Reserve(ctx context.Context, charge Charge) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(charge.Amount),
		Currency:           stripe.String(charge.Currency),
		CaptureMethod:      stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Confirm:            stripe.Bool(true),
		PaymentMethod:      stripe.String(g.paymentMethod),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey("reserve-" + charge.BookingID.String())
	params.AddMetadata("booking_id", charge.BookingID.String())
	params.AddMetadata("civilian_id", charge.CivilianID.String())

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		g.log.Error("Failed to reserve payment", zap.Error(err), zap.String("booking_id", charge.BookingID.String()))
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusRequiresCapture {
		return "", fmt.Errorf("payment intent %s not authorized (status %s)", pi.ID, pi.Status)
	}
	return pi.ID, nil
}

func (g *StripeGateway) Capture(ctx context.Context, bookingID uuid.UUID, reference string) error {
	params := &stripe.PaymentIntentCaptureParams{}
	params.Context = ctx
	params.SetIdempotencyKey("capture-" + bookingID.String())

	if _, err := g.api.PaymentIntents.Capture(reference, params); err != nil {
		g.log.Error("Failed to capture payment", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return fmt.Errorf("capture payment intent %s: %w", reference, err)
	}
	return nil
}

func (g *StripeGateway) Refund(ctx context.Context, bookingID uuid.UUID, reference string) error {
	params := &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String(string(stripe.PaymentIntentCancellationReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.SetIdempotencyKey("refund-" + bookingID.String())

	if _, err := g.api.PaymentIntents.Cancel(reference, params); err != nil {
		g.log.Error("Failed to release payment", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return fmt.Errorf("cancel payment intent %s: %w", reference, err)
	}
	return nil
}
