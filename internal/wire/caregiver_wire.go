package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/senpai80085/sevasetu/internal/adaptor"
)

func wireCaregiver(r chi.Router, caregiverHandler *adaptor.CaregiverHandler) {
	// Profile sync from the caregiver service and trust inspection
	r.Put("/caregivers/{id}", caregiverHandler.UpsertCaregiver)
	r.Get("/caregivers/{id}", caregiverHandler.GetCaregiver)

	// Reputation signals from moderation and anomaly detection
	r.Post("/caregivers/{id}/complaints", caregiverHandler.RecordComplaint)
	r.Post("/caregivers/{id}/anomalies", caregiverHandler.RecordAnomaly)
}
