package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/pkg/utils"
)

// ActorHeader carries the id of the already-authenticated caller. The
// gateway in front of this service is responsible for authentication.
const ActorHeader = "X-Actor-ID"

// Actor puts the caller's id in the request context. A missing header runs
// the request as the system actor; a malformed one is rejected.
func Actor(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(ActorHeader)
			if raw == "" {
				next.ServeHTTP(w, r.WithContext(utils.SetActorContext(r.Context(), uuid.Nil)))
				return
			}

			actorID, err := uuid.Parse(raw)
			if err != nil {
				logger.Warn("Invalid actor header", zap.String("value", raw), zap.String("path", r.URL.Path))
				utils.ResponseBadRequest(w, "Invalid "+ActorHeader+" header", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetActorContext(r.Context(), actorID)))
		})
	}
}
