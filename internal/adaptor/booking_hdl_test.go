package adaptor

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/memstore"
	"github.com/senpai80085/sevasetu/internal/payment"
	"github.com/senpai80085/sevasetu/internal/usecase"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

type nopAudit struct{}

func (nopAudit) Record(uuid.UUID, string, string, *uuid.UUID, string) {}

type nopScheduler struct{}

func (nopScheduler) Schedule(uuid.UUID) {}

type nopEmitter struct{}

func (nopEmitter) Emit(string, *entity.Booking, uuid.UUID) {}

type nopSubmitter struct{}

func (nopSubmitter) Submit(*entity.Rating) {}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestRouter(t *testing.T) (http.Handler, *payment.MockGateway) {
	t.Helper()
	log := zap.NewNop()
	store := memstore.New(time.Second, log)
	gateway := payment.NewMockGateway(log)

	service := usecase.NewService(store.Repository(), usecase.Collaborators{
		Payment: gateway,
		Audit:   nopAudit{},
		Trust:   nopScheduler{},
		Events:  nopEmitter{},
		Ledger:  nopSubmitter{},
	}, &utils.Config{Payment: utils.PaymentConfig{Currency: "inr", HourlyRate: 50000}}, log)
	h := NewHandler(service, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/bookings", h.Booking.RequestCare)
		r.Get("/bookings/{id}", h.Booking.GetBooking)
		r.Post("/bookings/{id}/match", h.Booking.MatchCaregivers)
		r.Post("/bookings/{id}/confirm", h.Booking.ConfirmBooking)
		r.Post("/bookings/{id}/start", h.Booking.StartJob)
		r.Post("/bookings/{id}/cancel", h.Booking.CancelBooking)
		r.Put("/caregivers/{id}", h.Caregiver.UpsertCaregiver)
		r.Get("/caregivers/{id}", h.Caregiver.GetCaregiver)
	})
	return r, gateway
}

func do(t *testing.T, h http.Handler, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func createBooking(t *testing.T, h http.Handler) string {
	t.Helper()
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	code, env := do(t, h, http.MethodPost, "/api/bookings", map[string]any{
		"civilian_id": uuid.NewString(),
		"start_time":  start,
		"end_time":    start.Add(2 * time.Hour),
	})
	if code != http.StatusCreated {
		t.Fatalf("create booking = %d %s", code, env.Message)
	}
	var b struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &b); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	return b.ID
}

func TestInvalidTransitionReturnsConflictDetails(t *testing.T) {
	h, _ := newTestRouter(t)
	id := createBooking(t, h)

	code, env := do(t, h, http.MethodPost, "/api/bookings/"+id+"/start", nil)
	if code != http.StatusConflict {
		t.Fatalf("start pending = %d, want 409", code)
	}

	var details TransitionConflict
	if err := json.Unmarshal(env.Errors, &details); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if details.CurrentState != "pending" || details.RequestedState != "in_progress" {
		t.Fatalf("details = %+v", details)
	}
	if len(details.AllowedStates) != 2 || details.AllowedStates[0] != "matched" || details.AllowedStates[1] != "cancelled" {
		t.Fatalf("allowed = %v, want [matched cancelled]", details.AllowedStates)
	}
}

func TestBookingEndpointsStatusCodes(t *testing.T) {
	h, gateway := newTestRouter(t)
	caregiverID := uuid.NewString()
	if code, env := do(t, h, http.MethodPut, "/api/caregivers/"+caregiverID,
		map[string]any{"name": "Asha", "verified": true}); code != http.StatusOK {
		t.Fatalf("upsert caregiver = %d %s", code, env.Message)
	}

	id := createBooking(t, h)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		setup  func()
		want   int
	}{
		{name: "unknown booking", method: http.MethodGet, path: "/api/bookings/" + uuid.NewString(), want: http.StatusNotFound},
		{name: "malformed id", method: http.MethodGet, path: "/api/bookings/abc", want: http.StatusBadRequest},
		{name: "invalid create body", method: http.MethodPost, path: "/api/bookings", body: map[string]any{"civilian_id": "x"}, want: http.StatusBadRequest},
		{name: "match", method: http.MethodPost, path: "/api/bookings/" + id + "/match", body: map[string]any{"caregiver_id": caregiverID}, want: http.StatusOK},
		{
			name: "declined reservation", method: http.MethodPost, path: "/api/bookings/" + id + "/confirm",
			setup: func() { gateway.FailNext("reserve", true) }, want: http.StatusPaymentRequired,
		},
		{
			name: "confirm", method: http.MethodPost, path: "/api/bookings/" + id + "/confirm",
			setup: func() { gateway.FailNext("reserve", false) }, want: http.StatusOK,
		},
		{name: "cancel", method: http.MethodPost, path: "/api/bookings/" + id + "/cancel", body: map[string]any{"reason": "no longer needed"}, want: http.StatusOK},
		{name: "cancel again", method: http.MethodPost, path: "/api/bookings/" + id + "/cancel", want: http.StatusConflict},
	}

	for _, tt := range tests {
		if tt.setup != nil {
			tt.setup()
		}
		code, env := do(t, h, tt.method, tt.path, tt.body)
		if code != tt.want {
			t.Fatalf("%s: status = %d (%s), want %d", tt.name, code, env.Message, tt.want)
		}
	}
}

func TestGetCaregiverIncludesBreakdown(t *testing.T) {
	h, _ := newTestRouter(t)
	id := uuid.NewString()
	do(t, h, http.MethodPut, "/api/caregivers/"+id, map[string]any{"name": "Ravi", "verified": true})

	code, env := do(t, h, http.MethodGet, "/api/caregivers/"+id, nil)
	if code != http.StatusOK {
		t.Fatalf("get caregiver = %d", code)
	}
	var c struct {
		TrustScore float64 `json:"trust_score"`
		TrustLevel string  `json:"trust_level"`
		Breakdown  struct {
			Verification float64 `json:"verification"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal(env.Data, &c); err != nil {
		t.Fatalf("decode caregiver: %v", err)
	}
	if c.TrustScore != 40 || c.TrustLevel != "Fair" || c.Breakdown.Verification != 40 {
		t.Fatalf("caregiver = %+v", c)
	}
}
