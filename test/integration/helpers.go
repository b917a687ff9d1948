// Package integration exercises the assembled NutriLens service through its
// public SDK: the real router, handlers and analysis pipeline run against an
// in-process Redis (miniredis) and a stubbed Open Food Facts upstream. The
// suite is hermetic; no external services or network access are required.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/turtacn/NutriLens/internal/application/analysis"
	"github.com/turtacn/NutriLens/internal/config"
	"github.com/turtacn/NutriLens/internal/infrastructure/database/redis"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/openfoodfacts"
	httpserver "github.com/turtacn/NutriLens/internal/interfaces/http"
	"github.com/turtacn/NutriLens/internal/interfaces/http/handlers"
	"github.com/turtacn/NutriLens/pkg/client"
)

// ---------------------------------------------------------------------------
// Open Food Facts stub
// ---------------------------------------------------------------------------

// offStub serves the /api/v2/product/{barcode}.json wire shape from an
// in-memory product set and counts upstream hits per barcode, so tests can
// prove a response came from the cache rather than from another fetch.
type offStub struct {
	server *httptest.Server

	mu       sync.Mutex
	products map[string]openfoodfacts.Product
	hits     map[string]int
}

func newOFFStub(t *testing.T) *offStub {
	t.Helper()
	s := &offStub{
		products: make(map[string]openfoodfacts.Product),
		hits:     make(map[string]int),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/product/", s.serveProduct)
	// The upstream client's health check probes the site root.
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

func (s *offStub) serveProduct(w http.ResponseWriter, r *http.Request) {
	barcode := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v2/product/"), ".json")

	s.mu.Lock()
	s.hits[barcode]++
	product, ok := s.products[barcode]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":         0,
			"status_verbose": "product not found",
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  1,
		"product": product,
	})
}

// add registers a product under barcode.
func (s *offStub) add(barcode string, p openfoodfacts.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[barcode] = p
}

// hitCount reports how many times barcode was fetched from the stub.
func (s *offStub) hitCount(barcode string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[barcode]
}

// ---------------------------------------------------------------------------
// Assembled service stack
// ---------------------------------------------------------------------------

// testStack is one fully wired NutriLens instance: router and handlers over
// the analysis service, a miniredis-backed response cache and the stubbed
// upstream, exposed through an httptest server and the public SDK client.
type testStack struct {
	Redis *miniredis.Miniredis
	OFF   *offStub
	API   *httptest.Server
	SDK   *client.Client
}

// newTestStack assembles the service the way cmd/apiserver does, with the
// external edges swapped for in-process stand-ins. The OCR engine is left
// nil so the suite does not depend on a tesseract install; the resulting
// unavailable path is itself under test. SDK retries are disabled so failure
// tests observe single attempts.
func newTestStack(t *testing.T) *testStack {
	t.Helper()
	logger := logging.NewNopLogger()

	mr := miniredis.RunT(t)
	redisClient, err := redis.NewClient(config.RedisConfig{Addr: mr.Addr()}, logger)
	if err != nil {
		t.Fatalf("connect to miniredis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	cache := redis.NewRedisCache(redisClient, logger,
		redis.WithPrefix("nutrilens-test:"),
		redis.WithDefaultTTL(time.Minute),
		redis.WithNullCacheTTL(time.Minute),
	)

	off := newOFFStub(t)
	offClient := openfoodfacts.NewClient(config.OpenFoodFactsConfig{
		BaseURL:      off.server.URL,
		Timeout:      5 * time.Second,
		Retries:      1,
		RetryBackoff: 10 * time.Millisecond,
		UserAgent:    "nutrilens-integration/0",
	}, logger, nil)

	svc := analysis.NewService(logger, nil)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnalysisHandler: handlers.NewAnalysisHandler(svc, nil, 10<<20, logger),
		ProductHandler:  handlers.NewProductHandler(svc, offClient, cache, time.Minute, logger),
		HealthHandler:   handlers.NewHealthHandler("integration-test", redisClient, offClient),
		Logger:          logger,
	})
	api := httptest.NewServer(router)
	t.Cleanup(api.Close)

	sdk, err := client.NewClient(api.URL,
		client.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		client.WithRetryMax(0),
	)
	if err != nil {
		t.Fatalf("build SDK client: %v", err)
	}

	return &testStack{Redis: mr, OFF: off, API: api, SDK: sdk}
}

// hasString reports whether list contains exactly s.
func hasString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
