// Package config provides configuration loading, defaults, and validation for
// the NutriLens service.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort  = 8080
	DefaultServerMode  = "debug"
	DefaultMaxBodySize = 10 << 20 // uploads are label photos; 10 MiB is generous

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisDB        = 0
	DefaultRedisTTL       = 24 * time.Hour
	DefaultRedisKeyPrefix = "nutrilens:"

	DefaultOFFBaseURL      = "https://world.openfoodfacts.org"
	DefaultOFFUserAgent    = "NutriLens/1.0 (+https://github.com/turtacn/NutriLens)"
	DefaultOFFTimeout      = 10 * time.Second
	DefaultOFFRetries      = 2
	DefaultOFFRetryBackoff = 500 * time.Millisecond
	DefaultOFFCacheTTL     = 24 * time.Hour
	DefaultOFFNegativeTTL  = time.Hour

	DefaultOCRBinary        = "tesseract"
	DefaultOCRLanguages     = "eng"
	DefaultOCRTimeout       = 20 * time.Second
	DefaultOCRMaxImageBytes = 8 << 20
)

// DefaultOCRPSModes lists the tesseract page-segmentation modes tried per
// image, in order: uniform block, sparse text, single column.
var DefaultOCRPSModes = []int{6, 11, 4}

const (
	DefaultMetricsNamespace = "nutrilens"
	DefaultMetricsPath      = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	// DB is an int; 0 is a valid explicit value so we cannot distinguish "not
	// set" from "set to 0".  We leave it as-is (0 is also the default).
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}

	// ── Open Food Facts ───────────────────────────────────────────────────────
	if cfg.OpenFoodFacts.BaseURL == "" {
		cfg.OpenFoodFacts.BaseURL = DefaultOFFBaseURL
	}
	if cfg.OpenFoodFacts.UserAgent == "" {
		cfg.OpenFoodFacts.UserAgent = DefaultOFFUserAgent
	}
	if cfg.OpenFoodFacts.Timeout == 0 {
		cfg.OpenFoodFacts.Timeout = DefaultOFFTimeout
	}
	if cfg.OpenFoodFacts.Retries == 0 {
		cfg.OpenFoodFacts.Retries = DefaultOFFRetries
	}
	if cfg.OpenFoodFacts.RetryBackoff == 0 {
		cfg.OpenFoodFacts.RetryBackoff = DefaultOFFRetryBackoff
	}
	if cfg.OpenFoodFacts.CacheTTL == 0 {
		cfg.OpenFoodFacts.CacheTTL = DefaultOFFCacheTTL
	}
	if cfg.OpenFoodFacts.NegativeCacheTTL == 0 {
		cfg.OpenFoodFacts.NegativeCacheTTL = DefaultOFFNegativeTTL
	}

	// ── OCR ───────────────────────────────────────────────────────────────────
	if cfg.OCR.BinaryPath == "" {
		cfg.OCR.BinaryPath = DefaultOCRBinary
	}
	if cfg.OCR.Languages == "" {
		cfg.OCR.Languages = DefaultOCRLanguages
	}
	if cfg.OCR.Timeout == 0 {
		cfg.OCR.Timeout = DefaultOCRTimeout
	}
	if cfg.OCR.MaxImageBytes == 0 {
		cfg.OCR.MaxImageBytes = DefaultOCRMaxImageBytes
	}
	if len(cfg.OCR.PSModes) == 0 {
		cfg.OCR.PSModes = append([]int(nil), DefaultOCRPSModes...)
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
