// Package config defines all configuration structures for the NutriLens
// service.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig holds Redis connection parameters for the lookup cache.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// OpenFoodFactsConfig holds parameters for the upstream product database.
type OpenFoodFactsConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	Retries          int           `mapstructure:"retries"`
	RetryBackoff     time.Duration `mapstructure:"retry_backoff"`
	UserAgent        string        `mapstructure:"user_agent"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	NegativeCacheTTL time.Duration `mapstructure:"negative_cache_ttl"`
}

// OCRConfig holds parameters for the tesseract-backed image text engine.
type OCRConfig struct {
	BinaryPath    string        `mapstructure:"binary_path"`
	Languages     string        `mapstructure:"languages"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxImageBytes int64         `mapstructure:"max_image_bytes"`
	PSModes       []int         `mapstructure:"ps_modes"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string `mapstructure:"format"` // "json" | "text"
	Output           string `mapstructure:"output"`
	EnableCaller     bool   `mapstructure:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace"`
	SamplingRate     int    `mapstructure:"sampling_rate"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the whole service.
// Every infrastructure component and application service reads its settings
// from the relevant sub-struct.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Redis         RedisConfig         `mapstructure:"redis"`
	OpenFoodFacts OpenFoodFactsConfig `mapstructure:"openfoodfacts"`
	OCR           OCRConfig           `mapstructure:"ocr"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Log           LogConfig           `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxBodySize < 1 {
		return fmt.Errorf("config: server.max_body_size must be ≥ 1, got %d", c.Server.MaxBodySize)
	}

	// Redis
	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
	}

	// Open Food Facts
	if c.OpenFoodFacts.BaseURL == "" {
		return fmt.Errorf("config: openfoodfacts.base_url is required")
	}
	if !strings.HasPrefix(c.OpenFoodFacts.BaseURL, "http://") &&
		!strings.HasPrefix(c.OpenFoodFacts.BaseURL, "https://") {
		return fmt.Errorf("config: openfoodfacts.base_url %q must start with http:// or https://", c.OpenFoodFacts.BaseURL)
	}
	if c.OpenFoodFacts.Retries < 0 {
		return fmt.Errorf("config: openfoodfacts.retries must be ≥ 0, got %d", c.OpenFoodFacts.Retries)
	}

	// OCR
	if c.OCR.BinaryPath == "" {
		return fmt.Errorf("config: ocr.binary_path is required")
	}
	if c.OCR.MaxImageBytes < 1 {
		return fmt.Errorf("config: ocr.max_image_bytes must be ≥ 1, got %d", c.OCR.MaxImageBytes)
	}
	for _, m := range c.OCR.PSModes {
		if m < 0 || m > 13 {
			return fmt.Errorf("config: ocr.ps_modes entry %d is out of range [0, 13]", m)
		}
	}

	// Metrics
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics.path %q must start with /", c.Metrics.Path)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|text", c.Log.Format)
	}

	return nil
}
