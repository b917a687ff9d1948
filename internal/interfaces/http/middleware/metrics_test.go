package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/prometheus"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	collector, err := prometheus.NewMetricsCollector(
		prometheus.CollectorConfig{Namespace: "nutrilens"}, logging.NewNopLogger())
	require.NoError(t, err)
	metrics := prometheus.NewAppMetrics(collector)

	r := chi.NewRouter()
	r.Use(Metrics(metrics))
	r.Get("/api/v1/products/{barcode}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"score":65}`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/3017620422003", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// Scrape the private registry and check the series carries the route
	// pattern, not the concrete barcode.
	scrape := httptest.NewRecorder()
	collector.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(scrape.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `path="/api/v1/products/{barcode}"`)
	assert.NotContains(t, string(body), "3017620422003")
}
