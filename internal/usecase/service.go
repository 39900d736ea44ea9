package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/audit"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/internal/events"
	"github.com/senpai80085/sevasetu/internal/ledger"
	"github.com/senpai80085/sevasetu/internal/payment"
	"github.com/senpai80085/sevasetu/internal/trust"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

// Collaborators are the out-of-process parties the engine talks to.
type Collaborators struct {
	Payment payment.Gateway
	Audit   audit.Recorder
	Trust   trust.Scheduler
	Events  events.Emitter
	Ledger  ledger.Submitter
	Now     func() time.Time
}

type Service struct {
	Booking   BookingService
	Caregiver CaregiverService
	Rating    RatingService
}

func NewService(repo *repository.Repository, collab Collaborators, config *utils.Config, log *zap.Logger) *Service {
	if collab.Now == nil {
		collab.Now = time.Now
	}
	return &Service{
		Booking:   NewBookingService(repo, collab, config.Payment, log),
		Caregiver: NewCaregiverService(repo, collab, log),
		Rating:    NewRatingService(repo, collab, log),
	}
}

func validationError(errs map[string]string) error {
	return domain.ValidationError{Msg: "validation failed: " + utils.FormatValidationErrors(errs)}
}
