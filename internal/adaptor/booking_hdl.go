package adaptor

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/dto/request"
	"github.com/senpai80085/sevasetu/internal/dto/response"
	"github.com/senpai80085/sevasetu/internal/usecase"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// RequestCare handles POST /api/bookings
func (h *BookingHandler) RequestCare(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.RequestCare(r.Context(), utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, err, "request care")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// MatchCaregivers handles POST /api/bookings/{id}/match
func (h *BookingHandler) MatchCaregivers(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "match caregivers", h.service.MatchCaregivers)
}

// ConfirmBooking handles POST /api/bookings/{id}/confirm
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "confirm booking", h.service.ConfirmBooking)
}

// StartJob handles POST /api/bookings/{id}/start
func (h *BookingHandler) StartJob(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "start job", h.service.StartJob)
}

// EndJob handles POST /api/bookings/{id}/end
func (h *BookingHandler) EndJob(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "end job", h.service.EndJob)
}

// PauseJob handles POST /api/bookings/{id}/pause
func (h *BookingHandler) PauseJob(w http.ResponseWriter, r *http.Request) {
	h.withReason(w, r, "pause job", h.service.PauseJob)
}

// ResumeJob handles POST /api/bookings/{id}/resume
func (h *BookingHandler) ResumeJob(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "resume job", h.service.ResumeJob)
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.withReason(w, r, "cancel booking", h.service.CancelBooking)
}

// SubmitRating handles POST /api/bookings/{id}/rating
func (h *BookingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.SubmitRating(r.Context(), utils.GetActorFromContext(r.Context()), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, "submit rating")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// ListCivilianBookings handles GET /api/civilians/{id}/bookings
func (h *BookingHandler) ListCivilianBookings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list civilian bookings", h.service.ListCivilianBookings)
}

// ListCaregiverBookings handles GET /api/caregivers/{id}/bookings
func (h *BookingHandler) ListCaregiverBookings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list caregiver bookings", h.service.ListCaregiverBookings)
}

type (
	stepFunc   func(ctx context.Context, actorID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	assignFunc func(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.AssignCaregiverRequest) (*response.BookingResponse, error)
	reasonFunc func(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.ReasonRequest) (*response.BookingResponse, error)
	listFunc   func(ctx context.Context, ownerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
)

func (h *BookingHandler) step(w http.ResponseWriter, r *http.Request, operation string, call stepFunc) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := call(r.Context(), utils.GetActorFromContext(r.Context()), bookingID)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

func (h *BookingHandler) assign(w http.ResponseWriter, r *http.Request, operation string, call assignFunc) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.AssignCaregiverRequest
	if err := decodeOptional(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := call(r.Context(), utils.GetActorFromContext(r.Context()), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

func (h *BookingHandler) withReason(w http.ResponseWriter, r *http.Request, operation string, call reasonFunc) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.ReasonRequest
	if err := decodeOptional(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := call(r.Context(), utils.GetActorFromContext(r.Context()), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, operation string, call listFunc) {
	ownerID := chi.URLParam(r, "id")
	if ownerID == "" {
		utils.ResponseBadRequest(w, "ID is required", nil)
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	// Parse query parameters
	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bookings, err := call(r.Context(), ownerID, req)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
