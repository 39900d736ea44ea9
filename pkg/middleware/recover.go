package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/pkg/utils"
)

// Recover turns a handler panic into a 500 and logs it with the request ID.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestID, _ := utils.GetRequestIDFromContext(r.Context())
				logger.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("request_id", requestID),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)

				utils.ResponseInternalError(w, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
