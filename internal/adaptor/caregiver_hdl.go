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

type CaregiverHandler struct {
	service usecase.CaregiverService
	log     *zap.Logger
}

func NewCaregiverHandler(service usecase.CaregiverService, log *zap.Logger) *CaregiverHandler {
	return &CaregiverHandler{
		service: service,
		log:     log.With(zap.String("handler", "caregiver")),
	}
}

// UpsertCaregiver handles PUT /api/caregivers/{id}
func (h *CaregiverHandler) UpsertCaregiver(w http.ResponseWriter, r *http.Request) {
	caregiverID := chi.URLParam(r, "id")
	if caregiverID == "" {
		utils.ResponseBadRequest(w, "Caregiver ID is required", nil)
		return
	}

	var req request.UpsertCaregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	caregiver, err := h.service.UpsertCaregiver(r.Context(), utils.GetActorFromContext(r.Context()), caregiverID, &req)
	if err != nil {
		h.handleServiceError(w, err, "upsert caregiver")
		return
	}

	utils.ResponseSuccess(w, "success", caregiver)
}

// GetCaregiver handles GET /api/caregivers/{id}
func (h *CaregiverHandler) GetCaregiver(w http.ResponseWriter, r *http.Request) {
	caregiverID := chi.URLParam(r, "id")
	if caregiverID == "" {
		utils.ResponseBadRequest(w, "Caregiver ID is required", nil)
		return
	}

	caregiver, err := h.service.GetCaregiver(r.Context(), caregiverID)
	if err != nil {
		h.handleServiceError(w, err, "get caregiver")
		return
	}

	utils.ResponseSuccess(w, "success", caregiver)
}

// RecordComplaint handles POST /api/caregivers/{id}/complaints
func (h *CaregiverHandler) RecordComplaint(w http.ResponseWriter, r *http.Request) {
	h.incident(w, r, "record complaint", h.service.RecordComplaint)
}

// RecordAnomaly handles POST /api/caregivers/{id}/anomalies
func (h *CaregiverHandler) RecordAnomaly(w http.ResponseWriter, r *http.Request) {
	h.incident(w, r, "record anomaly", h.service.RecordAnomaly)
}

type incidentFunc func(ctx context.Context, actorID uuid.UUID, caregiverID string, req *request.CaregiverIncidentRequest) (*response.CaregiverResponse, error)

func (h *CaregiverHandler) incident(w http.ResponseWriter, r *http.Request, operation string, call incidentFunc) {
	caregiverID := chi.URLParam(r, "id")
	if caregiverID == "" {
		utils.ResponseBadRequest(w, "Caregiver ID is required", nil)
		return
	}

	var req request.CaregiverIncidentRequest
	if err := decodeOptional(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	caregiver, err := call(r.Context(), utils.GetActorFromContext(r.Context()), caregiverID, &req)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseCreated(w, "success", caregiver)
}

func (h *CaregiverHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
