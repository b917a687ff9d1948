package prometheus

import (
	"fmt"
	"time"
)

// AppMetrics holds every metric the service records, grouped by layer.
// All components share one AppMetrics instance created at startup.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPRequestSize     HistogramVec
	HTTPResponseSize    HistogramVec
	HTTPActiveRequests  GaugeVec

	// Analysis layer
	AnalysesTotal        CounterVec
	AnalysisDuration     HistogramVec
	HealthScoreObserved  HistogramVec
	AdditivesPerAnalysis HistogramVec

	// Product lookup layer
	ProductLookupsTotal  CounterVec
	ProductLookupLatency HistogramVec

	// OCR layer
	OCRRunsTotal CounterVec
	OCRDuration  HistogramVec

	// Infrastructure layer
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// System health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default buckets per concern.
var (
	DefaultHTTPDurationBuckets  = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultLookupLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20}
	DefaultOCRDurationBuckets   = []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 40}
	DefaultSizeBuckets          = []float64{100, 1000, 10000, 100000, 1000000, 10000000}
	DefaultScoreBuckets         = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	DefaultAdditiveCountBuckets = []float64{0, 1, 2, 3, 5, 8, 12, 20}
	DefaultAnalysisTimeBuckets  = []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
)

// NewAppMetrics registers all metrics on the collector and returns the set.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPRequestSize = collector.RegisterHistogram("http_request_size_bytes", "HTTP request size", DefaultSizeBuckets, "method", "path")
	m.HTTPResponseSize = collector.RegisterHistogram("http_response_size_bytes", "HTTP response size", DefaultSizeBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	// Analysis
	m.AnalysesTotal = collector.RegisterCounter("analyses_total", "Label analyses performed", "source", "status")
	m.AnalysisDuration = collector.RegisterHistogram("analysis_duration_seconds", "Analysis pipeline duration", DefaultAnalysisTimeBuckets, "source")
	m.HealthScoreObserved = collector.RegisterHistogram("health_score", "Distribution of computed health scores", DefaultScoreBuckets, "source")
	m.AdditivesPerAnalysis = collector.RegisterHistogram("additives_per_analysis", "Additive codes detected per analysis", DefaultAdditiveCountBuckets, "source")

	// Product lookup
	m.ProductLookupsTotal = collector.RegisterCounter("product_lookups_total", "Upstream product lookups", "result")
	m.ProductLookupLatency = collector.RegisterHistogram("product_lookup_duration_seconds", "Upstream product lookup latency", DefaultLookupLatencyBuckets, "result")

	// OCR
	m.OCRRunsTotal = collector.RegisterCounter("ocr_runs_total", "OCR engine invocations", "status")
	m.OCRDuration = collector.RegisterHistogram("ocr_duration_seconds", "OCR engine run duration", DefaultOCRDurationBuckets)

	// Infrastructure
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	// System health
	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime", "service")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_type", "severity")

	return m
}

// ─────────────────────────────────────────────────────────────────────────────
// Recording helpers
// ─────────────────────────────────────────────────────────────────────────────

func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration, reqSize, respSize int64) {
	status := fmt.Sprintf("%d", statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	metrics.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	metrics.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordAnalysis records one completed (or failed) analysis.  Score and
// additive count are only observed for successful runs.
func RecordAnalysis(metrics *AppMetrics, source string, err error, duration time.Duration, score int, additiveCount int) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.AnalysesTotal.WithLabelValues(source, status).Inc()
	metrics.AnalysisDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err == nil {
		metrics.HealthScoreObserved.WithLabelValues(source).Observe(float64(score))
		metrics.AdditivesPerAnalysis.WithLabelValues(source).Observe(float64(additiveCount))
	}
}

// RecordProductLookup records an upstream barcode lookup with its outcome:
// "found", "not_found" or "error".
func RecordProductLookup(metrics *AppMetrics, result string, duration time.Duration) {
	metrics.ProductLookupsTotal.WithLabelValues(result).Inc()
	metrics.ProductLookupLatency.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordOCRRun records one OCR engine invocation.
func RecordOCRRun(metrics *AppMetrics, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.OCRRunsTotal.WithLabelValues(status).Inc()
	metrics.OCRDuration.WithLabelValues().Observe(duration.Seconds())
}

func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordError(metrics *AppMetrics, component, errorType, severity string) {
	metrics.ErrorsTotal.WithLabelValues(component, errorType, severity).Inc()
}
