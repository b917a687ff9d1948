// Package http assembles the public HTTP surface: the chi route tree, the
// middleware chain, and the server lifecycle around them.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NutriLens/internal/interfaces/http/handlers"
	"github.com/turtacn/NutriLens/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	AnalysisHandler *handlers.AnalysisHandler
	ProductHandler  *handlers.ProductHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware settings. A CORS config without origins falls back to the
	// default policy; a zero Logging config logs everything with no slow
	// threshold.
	CORS    middleware.CORSConfig
	Logging middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration: global middleware, public probe endpoints, the metrics
// scrape path, and the /api/v1 group. Nil handlers leave their routes
// unregistered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Request logging sits outside recovery so panicking requests still get
	// a request line; CORS sits outside metrics so short-circuited preflights
	// are not counted as routed work.
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
		r.Use(middleware.Recovery(cfg.Logger))
	}

	corsCfg := cfg.CORS
	if len(corsCfg.AllowedOrigins) == 0 {
		corsCfg = middleware.DefaultCORSConfig()
	}
	r.Use(middleware.CORS(corsCfg))

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// --- Public probe endpoints ---
	if cfg.HealthHandler != nil {
		r.Get("/ping", cfg.HealthHandler.Ping)
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
		r.Get("/healthz/detail", cfg.HealthHandler.Detailed)
	}

	// --- Metrics scrape endpoint ---
	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		registerAnalysisRoutes(api, cfg.AnalysisHandler)
		registerProductRoutes(api, cfg.ProductHandler)
	})

	return r
}

// registerAnalysisRoutes mounts the direct-analysis endpoints under /analyze.
func registerAnalysisRoutes(r chi.Router, h *handlers.AnalysisHandler) {
	if h == nil {
		return
	}
	r.Route("/analyze", func(ar chi.Router) {
		ar.Post("/text", h.AnalyzeText)
		ar.Post("/image", h.AnalyzeImage)
	})
}

// registerProductRoutes mounts the barcode lookup endpoint under /products.
func registerProductRoutes(r chi.Router, h *handlers.ProductHandler) {
	if h == nil {
		return
	}
	r.Get("/products/{barcode}", h.Lookup)
}
