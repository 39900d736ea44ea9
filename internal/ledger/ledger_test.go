package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
)

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (f *fakePublisher) PublishJSON(ctx context.Context, key string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

type fakeRatings struct {
	mu      sync.Mutex
	updated []entity.Rating
}

func (f *fakeRatings) Create(ctx context.Context, r *entity.Rating) error { return nil }
func (f *fakeRatings) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	return nil, nil
}
func (f *fakeRatings) FindByBookingID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	return nil, nil
}
func (f *fakeRatings) UpdateLedger(ctx context.Context, r *entity.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, *r)
	return nil
}

func sampleRating() *entity.Rating {
	r := &entity.Rating{
		BookingID:    uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		CaregiverID:  uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Value:        4.5,
		LedgerStatus: entity.LedgerStatusPending,
	}
	r.ID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	r.CreatedAt = time.Unix(1767225600, 0)
	return r
}

func TestDigestIsStable(t *testing.T) {
	p := PayloadOf(sampleRating())
	a, err := Digest(p)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	b, _ := Digest(p)
	if a != b {
		t.Fatalf("digest not deterministic: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "0x") || len(a) != 66 {
		t.Fatalf("digest %q is not a 0x-prefixed 32-byte hex string", a)
	}
	p.Value = 4.0
	if c, _ := Digest(p); c == a {
		t.Fatal("digest ignores the rating value")
	}
}

func TestSubmitMarksSubmitted(t *testing.T) {
	pub := &fakePublisher{}
	repo := &fakeRatings{}
	s := NewBusSubmitter(pub, repo, zap.NewNop())

	s.Submit(sampleRating())
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(pub.keys) != 1 || pub.keys[0] != RoutingKeySubmit {
		t.Fatalf("published keys = %v", pub.keys)
	}
	if len(repo.updated) != 1 || repo.updated[0].LedgerStatus != entity.LedgerStatusSubmitted {
		t.Fatalf("updates = %+v", repo.updated)
	}
	if repo.updated[0].LedgerDigest == nil {
		t.Fatal("digest not stored")
	}
}

func TestSubmitMarksFailed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	repo := &fakeRatings{}
	s := NewBusSubmitter(pub, repo, zap.NewNop())

	s.Submit(sampleRating())
	_ = s.Close(context.Background())
	if len(repo.updated) != 1 || repo.updated[0].LedgerStatus != entity.LedgerStatusFailed {
		t.Fatalf("updates = %+v", repo.updated)
	}
}

func TestLedgerTransitions(t *testing.T) {
	if !CanTransition(entity.LedgerStatusSubmitted, entity.LedgerStatusConfirmed) {
		t.Fatal("submitted -> confirmed should be allowed")
	}
	if CanTransition(entity.LedgerStatusConfirmed, entity.LedgerStatusFailed) {
		t.Fatal("confirmed is final")
	}
	if err := ValidateStatus("bogus"); err == nil {
		t.Fatal("unknown status accepted")
	}
}

type recordingUpdater struct {
	ratingID uuid.UUID
	status   entity.LedgerStatus
	txHash   *string
}

func (r *recordingUpdater) UpdateLedgerStatus(ctx context.Context, id uuid.UUID, status entity.LedgerStatus, txHash *string) (*entity.Rating, error) {
	r.ratingID, r.status, r.txHash = id, status, txHash
	return &entity.Rating{}, nil
}

func TestListenerApply(t *testing.T) {
	u := &recordingUpdater{}
	l := NewListener(u, zap.NewNop())

	id := uuid.New()
	body := []byte(`{"rating_id":"` + id.String() + `","status":"confirmed","tx_hash":"0xfeed"}`)
	if err := l.Apply(context.Background(), body); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if u.ratingID != id || u.status != entity.LedgerStatusConfirmed || u.txHash == nil || *u.txHash != "0xfeed" {
		t.Fatalf("updater got %+v", u)
	}
	if err := l.Apply(context.Background(), []byte("{")); err == nil {
		t.Fatal("malformed body accepted")
	}
}
