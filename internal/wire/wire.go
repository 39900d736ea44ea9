package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/senpai80085/sevasetu/internal/adaptor"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/usecase"
	"github.com/senpai80085/sevasetu/pkg/middleware"
	"github.com/senpai80085/sevasetu/pkg/store"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

// App holds the assembled HTTP surface and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, collab usecase.Collaborators, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, collab, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	limiters := store.NewMemory[string, *rate.Limiter]()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(limiters, config.RateLimit.RPS, config.RateLimit.Burst, logger))
		r.Use(middleware.Timeout(config.App.RequestTimeout))
		r.Use(middleware.Actor(logger))

		wireBooking(r, handler.Booking)
		wireCaregiver(r, handler.Caregiver)
		wireRating(r, handler.Rating)
	})

	return r
}
