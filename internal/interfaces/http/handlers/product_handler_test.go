package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NutriLens/internal/application/analysis"
	"github.com/turtacn/NutriLens/internal/config"
	redisdb "github.com/turtacn/NutriLens/internal/infrastructure/database/redis"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/openfoodfacts"
	"github.com/turtacn/NutriLens/internal/testutil"
	"github.com/turtacn/NutriLens/pkg/errors"
)

// stubFetcher plays the upstream product database.
type stubFetcher struct {
	product *openfoodfacts.Product
	err     error
	calls   int
}

func (s *stubFetcher) Fetch(_ context.Context, barcode string) (*openfoodfacts.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func newTestProductHandler(fetcher ProductFetcher, cache redisdb.Cache) (*ProductHandler, *testutil.MockLogger) {
	log := testutil.NewMockLogger()
	svc := analysis.NewService(log, nil)
	return NewProductHandler(svc, fetcher, cache, time.Minute, log), log
}

// getProduct routes the request through chi so the barcode URL parameter is
// populated the same way it is in production.
func getProduct(t *testing.T, h *ProductHandler, barcode string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/v1/products/{barcode}", h.Lookup)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+barcode, nil))
	return w
}

func testProduct() *openfoodfacts.Product {
	return &openfoodfacts.Product{
		ProductName:     "Crunchy Peanut Butter",
		Brands:          "Acme, Acme International",
		Categories:      "Spreads, Nut butters",
		Quantity:        "340 g",
		IngredientsText: "Ingredients: Peanuts, Sugar, Palm Oil, Salt",
		ImageFrontURL:   "https://images.example/peanut-front.jpg",
		Nutriments: map[string]interface{}{
			"energy-kj_100g":     2460.0,
			"sugars_100g":        9.0,
			"saturated-fat_100g": 2.9,
			"sodium_100g":        0.35,
			"fiber_100g":         5.2,
			"proteins_100g":      25.0,
		},
	}
}

func TestLookup_Success(t *testing.T) {
	fetcher := &stubFetcher{product: testProduct()}
	h, _ := newTestProductHandler(fetcher, nil)

	w := getProduct(t, h, "40084077")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fetcher.calls)

	var report analysis.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "40084077", report.Barcode)
	assert.Equal(t, "Crunchy Peanut Butter", report.Name)
	assert.Equal(t, "Acme", report.Brand)
	assert.Equal(t, "https://images.example/peanut-front.jpg", report.Image)
	assert.Equal(t, "openfoodfacts", report.Source.String())
	require.NotNil(t, report.Nutrition.ProteinG)
	assert.InDelta(t, 25.0, *report.Nutrition.ProteinG, 0.001)
	assert.Contains(t, report.Negatives, "Palm oil")
}

func TestLookup_NotFound(t *testing.T) {
	fetcher := &stubFetcher{err: errors.ProductNotFound("00000000")}
	h, _ := newTestProductHandler(fetcher, nil)

	w := getProduct(t, h, "00000000")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "PRD_001", resp.Code)
	assert.Equal(t, "product not found", resp.Message)
	assert.Equal(t, "barcode=00000000", resp.Detail)
}

func TestLookup_UpstreamFailureReadsAsNotFound(t *testing.T) {
	fetcher := &stubFetcher{err: errors.UpstreamUnavailable("product database unreachable")}
	h, log := newTestProductHandler(fetcher, nil)

	w := getProduct(t, h, "40084077")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "PRD_001", resp.Code)
	assert.True(t, log.HasMessage("warn", "product lookup failed"))
}

func TestLookup_InvalidBarcode(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New(errors.ErrCodeInvalidBarcode, "invalid barcode").WithDetail("barcode=not-digits")}
	h, _ := newTestProductHandler(fetcher, nil)

	w := getProduct(t, h, "not-digits")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "PRD_002", resp.Code)
}

func newTestCache(t *testing.T) (redisdb.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redisdb.NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return redisdb.NewRedisCache(client, logging.NewNopLogger()), mr
}

func TestLookup_CacheServesRepeatLookups(t *testing.T) {
	cache, _ := newTestCache(t)
	fetcher := &stubFetcher{product: testProduct()}
	h, _ := newTestProductHandler(fetcher, cache)

	first := getProduct(t, h, "40084077")
	second := getProduct(t, h, "40084077")

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, fetcher.calls)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestLookup_NegativeCacheAbsorbsRepeatMisses(t *testing.T) {
	cache, _ := newTestCache(t)
	fetcher := &stubFetcher{err: errors.ProductNotFound("00000000")}
	h, _ := newTestProductHandler(fetcher, cache)

	first := getProduct(t, h, "00000000")
	second := getProduct(t, h, "00000000")

	assert.Equal(t, http.StatusNotFound, first.Code)
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.Equal(t, 1, fetcher.calls)
	resp := decodeErrorResponse(t, second)
	assert.Equal(t, "PRD_001", resp.Code)
}

func TestLookup_CacheOutageDegradesToDirectFetch(t *testing.T) {
	cache, mr := newTestCache(t)
	fetcher := &stubFetcher{product: testProduct()}
	h, _ := newTestProductHandler(fetcher, cache)

	mr.Close()
	w := getProduct(t, h, "40084077")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fetcher.calls)
	var report analysis.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "Crunchy Peanut Butter", report.Name)
}
