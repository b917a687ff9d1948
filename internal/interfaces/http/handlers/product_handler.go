package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/NutriLens/internal/application/analysis"
	"github.com/turtacn/NutriLens/internal/infrastructure/database/redis"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/openfoodfacts"
	"github.com/turtacn/NutriLens/pkg/errors"
)

// ProductFetcher retrieves product records by barcode. Satisfied by the
// Open Food Facts client.
type ProductFetcher interface {
	Fetch(ctx context.Context, barcode string) (*openfoodfacts.Product, error)
}

// ProductHandler handles barcode lookups: upstream fetch, analysis, and
// response caching.
type ProductHandler struct {
	analysisSvc analysis.Service
	products    ProductFetcher
	cache       redis.Cache
	cacheTTL    time.Duration
	logger      logging.Logger
}

// NewProductHandler creates a new ProductHandler. cache may be nil; every
// lookup then goes straight to the upstream.
func NewProductHandler(
	analysisSvc analysis.Service,
	products ProductFetcher,
	cache redis.Cache,
	cacheTTL time.Duration,
	logger logging.Logger,
) *ProductHandler {
	return &ProductHandler{
		analysisSvc: analysisSvc,
		products:    products,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Lookup handles GET /api/v1/products/{barcode}. A malformed barcode is a
// 400; any failure to produce a record, including upstream outages, presents
// as 404 with the cause in the log.
func (h *ProductHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	var report analysis.Report
	err := h.lookup(r.Context(), barcode, &report)
	if err != nil {
		switch {
		case errors.IsCode(err, errors.ErrCodeInvalidBarcode):
			writeAppError(w, err)
		case errors.IsNotFound(err):
			writeAppError(w, errors.ProductNotFound(barcode))
		default:
			h.logger.Warn("product lookup failed",
				logging.String("barcode", barcode),
				logging.Err(err),
			)
			writeAppError(w, errors.ProductNotFound(barcode))
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// lookup resolves barcode into an analyzed report, through the cache when one
// is configured.
func (h *ProductHandler) lookup(ctx context.Context, barcode string, dest *analysis.Report) error {
	load := func(ctx context.Context) (interface{}, error) {
		product, err := h.products.Fetch(ctx, barcode)
		if err != nil {
			return nil, err
		}
		return h.analysisSvc.AnalyzeProduct(ctx, barcode, *product)
	}

	if h.cache == nil {
		v, err := load(ctx)
		if err != nil {
			return err
		}
		*dest = *(v.(*analysis.Report))
		return nil
	}
	return h.cache.GetOrSet(ctx, productCacheKey(barcode), dest, h.cacheTTL, load)
}

// productCacheKey namespaces lookup responses within the shared cache prefix.
func productCacheKey(barcode string) string {
	return "product:" + barcode
}
