package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/dto/request"
	"github.com/senpai80085/sevasetu/internal/usecase"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// UpdateLedgerStatus handles PUT /api/ratings/{id}/ledger, the anchoring
// service's callback.
func (h *RatingHandler) UpdateLedgerStatus(w http.ResponseWriter, r *http.Request) {
	ratingID := chi.URLParam(r, "id")
	if ratingID == "" {
		utils.ResponseBadRequest(w, "Rating ID is required", nil)
		return
	}

	var req request.UpdateLedgerStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rating, err := h.service.ReportLedgerStatus(r.Context(), utils.GetActorFromContext(r.Context()), ratingID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update ledger status")
		return
	}

	utils.ResponseSuccess(w, "success", rating)
}

func (h *RatingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
