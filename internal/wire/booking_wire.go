package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/senpai80085/sevasetu/internal/adaptor"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/bookings", func(r chi.Router) {
		// POST /api/bookings - civilian requests care
		r.Post("/", bookingHandler.RequestCare)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", bookingHandler.GetBooking)

			// Lifecycle transitions
			r.Post("/match", bookingHandler.MatchCaregivers)
			r.Post("/confirm", bookingHandler.ConfirmBooking)
			r.Post("/start", bookingHandler.StartJob)
			r.Post("/end", bookingHandler.EndJob)
			r.Post("/pause", bookingHandler.PauseJob)
			r.Post("/resume", bookingHandler.ResumeJob)
			r.Post("/rating", bookingHandler.SubmitRating)
			r.Post("/cancel", bookingHandler.CancelBooking)
		})
	})

	// GET /api/civilians/{id}/bookings - a civilian's booking history
	r.Get("/civilians/{id}/bookings", bookingHandler.ListCivilianBookings)

	// GET /api/caregivers/{id}/bookings - a caregiver's schedule
	r.Get("/caregivers/{id}/bookings", bookingHandler.ListCaregiverBookings)
}
