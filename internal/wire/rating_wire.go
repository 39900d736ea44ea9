package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/senpai80085/sevasetu/internal/adaptor"
)

func wireRating(r chi.Router, ratingHandler *adaptor.RatingHandler) {
	// PUT /api/ratings/{id}/ledger - anchoring service callback
	r.Put("/ratings/{id}/ledger", ratingHandler.UpdateLedgerStatus)
}
