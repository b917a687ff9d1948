package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request count, duration and sizes per route.  The chi
// route pattern labels the series instead of the raw path, so barcode URLs
// do not explode metric cardinality.
func Metrics(metrics *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newWrappedResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			reqSize := r.ContentLength
			if reqSize < 0 {
				reqSize = 0
			}
			prometheus.RecordHTTPRequest(metrics, r.Method, path, wrapped.statusCode,
				time.Since(start), reqSize, wrapped.bytesWritten)
		})
	}
}
