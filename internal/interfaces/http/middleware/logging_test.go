package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NutriLens/internal/testutil"
)

func serveLogged(t *testing.T, config LoggingConfig, status int, path string) *testutil.MockLogger {
	t.Helper()
	log := testutil.NewMockLogger()
	handler := RequestLogging(log, config)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("body"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	return log
}

func TestRequestLogging_SuccessLogsInfo(t *testing.T) {
	log := serveLogged(t, DefaultLoggingConfig(), http.StatusOK, "/api/v1/products/123?verbose=1")

	require.True(t, log.HasMessage("info", "request completed"))
	assert.Equal(t, "GET", log.FieldValue("info", "request completed", "method"))
	assert.Equal(t, "/api/v1/products/123?verbose=1", log.FieldValue("info", "request completed", "path"))
	assert.Equal(t, http.StatusOK, log.FieldValue("info", "request completed", "status"))
	assert.Equal(t, int64(4), log.FieldValue("info", "request completed", "bytes"))
}

func TestRequestLogging_ClientErrorLogsWarn(t *testing.T) {
	log := serveLogged(t, DefaultLoggingConfig(), http.StatusBadRequest, "/api/v1/analyze/text")
	assert.True(t, log.HasMessage("warn", "request completed with client error"))
}

func TestRequestLogging_ServerErrorLogsError(t *testing.T) {
	log := serveLogged(t, DefaultLoggingConfig(), http.StatusBadGateway, "/api/v1/analyze/image")
	assert.True(t, log.HasMessage("error", "request completed with server error"))
}

func TestRequestLogging_SlowRequestLogsWarn(t *testing.T) {
	config := DefaultLoggingConfig()
	config.SlowThreshold = time.Nanosecond

	log := serveLogged(t, config, http.StatusOK, "/api/v1/products/123")
	assert.True(t, log.HasMessage("warn", "slow request completed"))
}

func TestRequestLogging_SkipsConfiguredPaths(t *testing.T) {
	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		log := serveLogged(t, DefaultLoggingConfig(), http.StatusOK, path)
		assert.Empty(t, log.GetMessages(), "probe path %s must not be logged", path)
	}
}

func TestRequestLogging_StatusDefaultsTo200(t *testing.T) {
	log := testutil.NewMockLogger()
	handler := RequestLogging(log, DefaultLoggingConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("implicit ok")) // no explicit WriteHeader
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, log.FieldValue("info", "request completed", "status"))
}
