package adaptor

import (
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/usecase"
)

type Handler struct {
	Booking   *BookingHandler
	Caregiver *CaregiverHandler
	Rating    *RatingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:   NewBookingHandler(service.Booking, log),
		Caregiver: NewCaregiverHandler(service.Caregiver, log),
		Rating:    NewRatingHandler(service.Rating, log),
	}
}
