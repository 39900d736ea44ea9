package ledger

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
)

// ResultMessage is published by the anchoring service once a rating is
// confirmed on chain or rejected.
type ResultMessage struct {
	RatingID uuid.UUID           `json:"rating_id"`
	Status   entity.LedgerStatus `json:"status"`
	TxHash   *string             `json:"tx_hash,omitempty"`
}

// StatusUpdater applies a ledger result to a rating.
type StatusUpdater interface {
	UpdateLedgerStatus(ctx context.Context, ratingID uuid.UUID, status entity.LedgerStatus, txHash *string) (*entity.Rating, error)
}

type Listener struct {
	updater StatusUpdater
	log     *zap.Logger
}

func NewListener(updater StatusUpdater, log *zap.Logger) *Listener {
	return &Listener{
		updater: updater,
		log:     log.With(zap.String("component", "ledger.listener")),
	}
}

// Run consumes deliveries until the channel closes or ctx is done.
func (l *Listener) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			l.handle(ctx, d)
		}
	}
}

func (l *Listener) handle(ctx context.Context, d amqp.Delivery) {
	if err := l.Apply(ctx, d.Body); err != nil {
		l.log.Warn("Dropping ledger result", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// Apply decodes one result message and applies it.
func (l *Listener) Apply(ctx context.Context, body []byte) error {
	var msg ResultMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return err
	}
	_, err := l.updater.UpdateLedgerStatus(ctx, msg.RatingID, msg.Status, msg.TxHash)
	return err
}
