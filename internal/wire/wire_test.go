package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/memstore"
	"github.com/senpai80085/sevasetu/internal/payment"
	"github.com/senpai80085/sevasetu/internal/usecase"
	"github.com/senpai80085/sevasetu/pkg/middleware"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

type auditSpy struct {
	actors []uuid.UUID
}

func (a *auditSpy) Record(actorID uuid.UUID, action, entityType string, entityID *uuid.UUID, detail string) {
	a.actors = append(a.actors, actorID)
}

type nopScheduler struct{}

func (nopScheduler) Schedule(uuid.UUID) {}

type nopEmitter struct{}

func (nopEmitter) Emit(string, *entity.Booking, uuid.UUID) {}

type nopSubmitter struct{}

func (nopSubmitter) Submit(*entity.Rating) {}

func newApp(t *testing.T, spy *auditSpy) *App {
	t.Helper()
	log := zap.NewNop()
	store := memstore.New(time.Second, log)
	if err := store.SeedDemo(t.Context(), time.Now().UTC()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	config := &utils.Config{
		App:       utils.AppConfig{RequestTimeout: 5 * time.Second},
		Payment:   utils.PaymentConfig{Currency: "inr", HourlyRate: 50000},
		RateLimit: utils.RateLimitConfig{RPS: 100, Burst: 100},
	}
	return Wiring(store.Repository(), usecase.Collaborators{
		Payment: payment.NewMockGateway(log),
		Audit:   spy,
		Trust:   nopScheduler{},
		Events:  nopEmitter{},
		Ledger:  nopSubmitter{},
	}, config, log)
}

func TestHealth(t *testing.T) {
	app := newApp(t, &auditSpy{})
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRoutesRecordActorAndMatchDemoCaregiver(t *testing.T) {
	spy := &auditSpy{}
	app := newApp(t, spy)
	actor := uuid.New()

	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	body, _ := json.Marshal(map[string]any{
		"civilian_id": uuid.NewString(),
		"start_time":  start,
		"end_time":    start.Add(time.Hour),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set(middleware.ActorHeader, actor.String())
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings/"+created.Data.ID+"/match", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("match = %d %s", rec.Code, rec.Body.String())
	}

	if len(spy.actors) != 2 || spy.actors[0] != actor || spy.actors[1] != uuid.Nil {
		t.Fatalf("audited actors = %v, want [%s nil]", spy.actors, actor)
	}
}
