// Package middleware provides the HTTP middleware chain: request
// identification, request logging, panic recovery, CORS and per-request
// metrics.  All middleware are plain func(http.Handler) http.Handler
// factories so the router composes them with chi's Use.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/turtacn/NutriLens/pkg/types/common"
)

// RequestIDHeader is the canonical request-ID header, inbound and outbound.
const RequestIDHeader = "X-Request-ID"

// RequestID ensures every request carries an ID: an inbound X-Request-ID is
// trusted as-is, otherwise a fresh UUID is generated.  The ID is stored in
// the request context and echoed on the response so clients can correlate.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), common.ContextKeyRequestID, id)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored by RequestID, or "" when the
// middleware did not run.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(common.ContextKeyRequestID).(string)
	return id
}
