package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/pkg/errors"
)

// Recovery converts handler panics into 500 responses.  The panic value and
// stack trace are logged server-side; the client only sees the generic
// internal-error envelope.  http.ErrAbortHandler is re-panicked so the
// server's own abort handling still applies.
func Recovery(logger logging.Logger) func(http.Handler) http.Handler {
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

				logger.Error("handler panic recovered",
					logging.Any("panic", rec),
					logging.String("method", r.Method),
					logging.String("path", r.URL.Path),
					logging.String("request_id", GetRequestID(r.Context())),
					logging.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    errors.ErrCodeInternal.String(),
					"message": errors.DefaultMessageForCode(errors.ErrCodeInternal),
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
