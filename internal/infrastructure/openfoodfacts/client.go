// Package openfoodfacts implements the HTTP client for the Open Food Facts
// product database, the upstream source for the barcode lookup path.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/turtacn/NutriLens/internal/config"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NutriLens/pkg/errors"
)

// maxBackoff caps the exponential retry delay.
const maxBackoff = 5 * time.Second

// barcodePattern accepts EAN-8 through EAN-14 and UPC digit strings.
var barcodePattern = regexp.MustCompile(`^[0-9]{6,14}$`)

// Client fetches product records from an Open Food Facts instance.  Safe for
// concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	retries      int
	retryBackoff time.Duration
	logger       logging.Logger
	metrics      *prometheus.AppMetrics
}

// NewClient builds a Client from configuration.  metrics may be nil when the
// caller does not record lookup metrics (CLI usage).
func NewClient(cfg config.OpenFoodFactsConfig, log logging.Logger, metrics *prometheus.AppMetrics) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		userAgent:    cfg.UserAgent,
		retries:      cfg.Retries,
		retryBackoff: cfg.RetryBackoff,
		logger:       log,
		metrics:      metrics,
	}
}

// Fetch retrieves the product record for barcode.  A missing product is a
// normal outcome and returns an ErrCodeProductNotFound AppError; transport
// failures and upstream 5xx responses are retried with capped exponential
// backoff before returning an upstream error.
func (c *Client) Fetch(ctx context.Context, barcode string) (*Product, error) {
	if !barcodePattern.MatchString(barcode) {
		return nil, errors.New(errors.ErrCodeInvalidBarcode, "invalid barcode").
			WithDetail("barcode=" + barcode)
	}

	start := time.Now()
	product, err := c.fetchWithRetry(ctx, barcode)
	c.recordLookup(err, time.Since(start))
	return product, err
}

func (c *Client) fetchWithRetry(ctx context.Context, barcode string) (*Product, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, barcode)

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff(attempt)
			c.logger.Warn("retrying product lookup",
				logging.String("barcode", barcode),
				logging.Int("attempt", attempt),
				logging.Duration("backoff", backoff),
				logging.Err(lastErr),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "product lookup canceled")
			}
		}

		product, retryable, err := c.fetchOnce(ctx, url, barcode)
		if err == nil {
			return product, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// fetchOnce performs a single request.  The second return value reports
// whether the failure is worth retrying (transport errors and 5xx only).
func (c *Client) fetchOnce(ctx context.Context, url, barcode string) (*Product, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeInternal, "building product request failed")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, errors.Wrap(err, errors.ErrCodeUpstreamUnavailable, "product database unreachable")
	}
	defer resp.Body.Close()

	c.logger.Debug("product lookup response",
		logging.String("barcode", barcode),
		logging.Int("status", resp.StatusCode),
	)

	switch {
	case resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return nil, true, errors.Newf(errors.ErrCodeUpstreamResponse, "product database returned HTTP %d", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		// v2 responds 404 for barcodes it has never seen.
		return nil, false, errors.ProductNotFound(barcode)
	case resp.StatusCode != http.StatusOK:
		return nil, false, errors.Newf(errors.ErrCodeUpstreamResponse, "product database returned HTTP %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeUpstreamResponse, "decoding product response failed")
	}
	if env.Status != 1 || env.Product == nil {
		return nil, false, errors.ProductNotFound(barcode)
	}
	return env.Product, false, nil
}

// backoff grows exponentially from the configured base, capped, with up to
// 25% jitter so synchronized clients do not retry in lockstep.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.retryBackoff * time.Duration(1<<uint(attempt-1))
	if d > maxBackoff {
		d = maxBackoff
	}
	if d <= 0 {
		return 0
	}
	return d + time.Duration(rand.Int63n(int64(d/4+1)))
}

func (c *Client) recordLookup(err error, duration time.Duration) {
	if c.metrics == nil {
		return
	}
	result := "found"
	switch {
	case errors.IsNotFound(err):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	prometheus.RecordProductLookup(c.metrics, result, duration)
}

// Name identifies this dependency in health reports.
func (c *Client) Name() string { return "openfoodfacts" }

// Check probes the upstream base URL.  Any response below 500 counts as
// healthy; the product path itself is not exercised to keep the probe cheap.
func (c *Client) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeUpstreamUnavailable, "product database unreachable")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return errors.Newf(errors.ErrCodeUpstreamResponse, "product database returned HTTP %d", resp.StatusCode)
	}
	return nil
}
