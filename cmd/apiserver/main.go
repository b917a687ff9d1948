// API server entry point for NutriLens.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/NutriLens/internal/application/analysis"
	"github.com/turtacn/NutriLens/internal/config"
	"github.com/turtacn/NutriLens/internal/infrastructure/database/redis"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NutriLens/internal/infrastructure/ocr"
	"github.com/turtacn/NutriLens/internal/infrastructure/openfoodfacts"
	httpserver "github.com/turtacn/NutriLens/internal/interfaces/http"
	"github.com/turtacn/NutriLens/internal/interfaces/http/handlers"
	"github.com/turtacn/NutriLens/internal/interfaces/http/middleware"
)

const defaultConfigPath = "configs/config.yaml"

// version is injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      []string{cfg.Log.Output},
		ErrorOutputPaths: []string{"stderr"},
		EnableCaller:     cfg.Log.EnableCaller,
		EnableStacktrace: cfg.Log.EnableStacktrace,
		SamplingRate:     cfg.Log.SamplingRate,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting NutriLens API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Server.Mode),
	)

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Metrics.Namespace,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to build metrics collector", logging.Err(err))
	}
	appMetrics := prometheus.NewAppMetrics(collector)

	// The lookup cache is an accelerator, not a dependency: when redis is
	// unreachable the server starts anyway and every lookup goes upstream.
	var lookupCache redis.Cache
	var checkers []handlers.HealthChecker

	redisClient, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, product lookups will not be cached", logging.Err(err))
	} else {
		defer redisClient.Close()
		lookupCache = redis.NewRedisCache(redisClient, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
			redis.WithNullCacheTTL(cfg.OpenFoodFacts.NegativeCacheTTL),
			redis.WithMetrics(appMetrics, "lookup"),
		)
		checkers = append(checkers, redisClient)
	}

	offClient := openfoodfacts.NewClient(cfg.OpenFoodFacts, logger, appMetrics)
	engine := ocr.NewTesseractEngine(cfg.OCR, logger, appMetrics)
	checkers = append(checkers, offClient, engine)

	if checkErr := engine.Check(context.Background()); checkErr != nil {
		logger.Warn("OCR engine is not operational, image analysis will fail until it is",
			logging.String("binary", cfg.OCR.BinaryPath),
			logging.Err(checkErr),
		)
	}

	service := analysis.NewService(logger, appMetrics)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnalysisHandler:  handlers.NewAnalysisHandler(service, engine, cfg.Server.MaxBodySize, logger),
		ProductHandler:   handlers.NewProductHandler(service, offClient, lookupCache, cfg.OpenFoodFacts.CacheTTL, logger),
		HealthHandler:    handlers.NewHealthHandler(version, checkers...),
		Logging:          middleware.DefaultLoggingConfig(),
		Logger:           logger,
		Metrics:          appMetrics,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", logging.Err(err))
		}
		return
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", logging.Err(err))
	}
	logger.Info("server stopped")
}

// loadConfig resolves configuration from an explicit path, the conventional
// file location, or environment variables, in that order.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return config.Load(defaultConfigPath)
	}
	return config.LoadFromEnv()
}
