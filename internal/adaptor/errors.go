package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

// TransitionConflict is the errors payload of a rejected state change.
type TransitionConflict struct {
	CurrentState   string   `json:"current_state"`
	RequestedState string   `json:"requested_state"`
	AllowedStates  []string `json:"allowed_states"`
}

// writeServiceError maps domain errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		transition  domain.TransitionError
		payState    domain.PaymentTransitionError
		scheduling  domain.SchedulingConflictError
		concurrent  domain.ConcurrentBookingError
		paymentFail domain.PaymentActionError
		notFound    domain.NotFoundError
		invalid     domain.ValidationError
		lockTimeout domain.LockTimeoutError
	)

	switch {
	case errors.As(err, &transition):
		log.Warn(operation+" failed - invalid transition", zap.Error(err))
		allowed := make([]string, len(transition.Allowed))
		for i, s := range transition.Allowed {
			allowed[i] = string(s)
		}
		utils.ResponseConflict(w, err.Error(), TransitionConflict{
			CurrentState:   string(transition.Current),
			RequestedState: string(transition.Requested),
			AllowedStates:  allowed,
		})

	case errors.As(err, &payState):
		log.Warn(operation+" failed - invalid payment transition", zap.Error(err))
		allowed := make([]string, len(payState.Allowed))
		for i, s := range payState.Allowed {
			allowed[i] = string(s)
		}
		utils.ResponseConflict(w, err.Error(), TransitionConflict{
			CurrentState:   string(payState.Current),
			RequestedState: string(payState.Requested),
			AllowedStates:  allowed,
		})

	case errors.As(err, &scheduling):
		log.Warn(operation+" failed - scheduling conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]string{
			"caregiver_id": scheduling.CaregiverID.String(),
			"start_time":   scheduling.Start.Format(time.RFC3339),
			"end_time":     scheduling.End.Format(time.RFC3339),
		})

	case errors.As(err, &concurrent):
		log.Warn(operation+" failed - civilian has an active booking", zap.Error(err))
		details := map[string]string{"civilian_id": concurrent.CivilianID.String()}
		if concurrent.ActiveStatus != "" {
			details["active_booking_id"] = concurrent.ActiveBookingID.String()
			details["active_status"] = string(concurrent.ActiveStatus)
		}
		utils.ResponseConflict(w, err.Error(), details)

	case errors.As(err, &paymentFail):
		log.Warn(operation+" failed - payment", zap.Error(err))
		utils.ResponsePaymentRequired(w, err.Error())

	case errors.As(err, &notFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &invalid):
		log.Warn(operation+" failed - validation", zap.Error(err))
		var fields any
		if invalid.Field != "" {
			fields = map[string]string{invalid.Field: invalid.Msg}
		}
		utils.ResponseBadRequest(w, err.Error(), fields)

	case errors.As(err, &lockTimeout), errors.Is(err, context.DeadlineExceeded):
		log.Warn(operation+" failed - timed out", zap.Error(err))
		utils.ResponseTimeout(w, "Request timed out waiting for a concurrent update, retry later")

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeOptional decodes a JSON body that may be empty.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
