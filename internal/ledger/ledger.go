// Package ledger hands submitted ratings to the external anchoring service
// and tracks their status on the rating row.
package ledger

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/pkg/mq"
)

const (
	RoutingKeySubmit = "rating.ledger.submit"
	RoutingKeyResult = "rating.ledger.result"
)

const submitTimeout = 5 * time.Second

// Payload is the canonical form of a rating that gets anchored.
type Payload struct {
	RatingID    uuid.UUID `json:"rating_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	CaregiverID uuid.UUID `json:"caregiver_id"`
	Value       float64   `json:"value"`
	CreatedAt   int64     `json:"created_at"` // unix seconds
}

type SubmitMessage struct {
	Payload
	Digest string `json:"digest"`
}

func PayloadOf(r *entity.Rating) Payload {
	return Payload{
		RatingID:    r.ID,
		BookingID:   r.BookingID,
		CaregiverID: r.CaregiverID,
		Value:       r.Value,
		CreatedAt:   r.CreatedAt.Unix(),
	}
}

// Digest is the 0x-prefixed Keccak-256 of the JSON-encoded payload.
func Digest(p Payload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return "0x" + hex.EncodeToString(h.Sum(nil)), nil
}

// Submitter is what the rating flow depends on.
type Submitter interface {
	Submit(rating *entity.Rating)
}

type BusSubmitter struct {
	pub  mq.JSONPublisher
	repo repository.RatingRepository
	log  *zap.Logger
	wg   sync.WaitGroup
}

func NewBusSubmitter(pub mq.JSONPublisher, repo repository.RatingRepository, log *zap.Logger) *BusSubmitter {
	return &BusSubmitter{
		pub:  pub,
		repo: repo,
		log:  log.With(zap.String("component", "ledger")),
	}
}

// Submit publishes the rating in the background and moves it to submitted,
// or to failed when it cannot be handed off.
func (s *BusSubmitter) Submit(rating *entity.Rating) {
	copied := *rating
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		s.submit(ctx, &copied)
	}()
}

func (s *BusSubmitter) submit(ctx context.Context, rating *entity.Rating) {
	payload := PayloadOf(rating)
	digest, err := Digest(payload)
	if err != nil {
		s.log.Error("Failed to digest rating", zap.Error(err), zap.String("rating_id", rating.ID.String()))
		return
	}
	rating.LedgerDigest = &digest
	rating.LedgerStatus = entity.LedgerStatusSubmitted

	if err := s.pub.PublishJSON(ctx, RoutingKeySubmit, SubmitMessage{Payload: payload, Digest: digest}); err != nil {
		s.log.Warn("Failed to submit rating to ledger", zap.Error(err), zap.String("rating_id", rating.ID.String()))
		rating.LedgerStatus = entity.LedgerStatusFailed
	}

	if err := s.repo.UpdateLedger(ctx, rating); err != nil {
		s.log.Warn("Failed to record ledger status",
			zap.Error(err),
			zap.String("rating_id", rating.ID.String()),
			zap.String("ledger_status", string(rating.LedgerStatus)),
		)
	}
}

func (s *BusSubmitter) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ledgerTransitions lists the status moves the anchoring service may report.
var ledgerTransitions = map[entity.LedgerStatus][]entity.LedgerStatus{
	entity.LedgerStatusPending:   {entity.LedgerStatusSubmitted, entity.LedgerStatusFailed},
	entity.LedgerStatusSubmitted: {entity.LedgerStatusConfirmed, entity.LedgerStatusFailed},
	entity.LedgerStatusFailed:    {entity.LedgerStatusSubmitted},
	entity.LedgerStatusConfirmed: {},
}

func CanTransition(from, to entity.LedgerStatus) bool {
	for _, s := range ledgerTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidateStatus(s entity.LedgerStatus) error {
	if _, ok := ledgerTransitions[s]; !ok {
		return fmt.Errorf("unknown ledger status %q", s)
	}
	return nil
}
