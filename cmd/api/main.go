package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "charcount/docs" // swagger docs
	"charcount/internal/config"
	hhttp "charcount/internal/handler/http"
	hcount "charcount/internal/handler/http/count"
	"charcount/internal/handler/http/requestid"
	"charcount/internal/observability/logging"
	"charcount/internal/observability/tracing"
	envconfig "charcount/internal/pkg/config"
	countUC "charcount/internal/usecase/count"
)

var configMetrics = envconfig.NewConfigMetrics("charcount_api")

// @title           Charcount API
// @version         1.0
// @description     Counts occurrences of target characters in a text, optionally within an inclusive index range and capped by an occurrence limit.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	configPath := flag.String("config", os.Getenv(config.EnvConfigPath), "path to YAML config file")
	flag.Parse()

	logger := initLogger()
	cfg := loadConfig(logger, *configPath)

	shutdownTracing := tracing.Init(cfg.Tracing.SampleRatio)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	version := getVersion()
	components := setupServer(logger, cfg, version)

	runServer(logger, cfg, components, version)
}

// initLogger initializes the JSON logger and makes it the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads the server configuration and exits on invalid values.
// Rejected environment overrides are logged and exported as metrics.
func loadConfig(logger *slog.Logger, path string) *config.ServerConfig {
	cfg, fallbacks, err := config.Load(path)
	fields := make([]string, 0, len(fallbacks))
	for _, fb := range fallbacks {
		logger.Warn("configuration fallback applied",
			slog.String("env", fb.Env),
			slog.String("warning", fb.Warning))
		fields = append(fields, strings.ToLower(strings.TrimPrefix(fb.Env, "CHARCOUNT_")))
	}
	if err != nil {
		configMetrics.RecordValidationError("config")
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	configMetrics.RecordLoad(fields)

	logger.Info("configuration loaded",
		slog.String("addr", cfg.Server.Addr),
		slog.Int("max_body_bytes", cfg.Server.MaxBodyBytes),
		slog.Int("max_text_runes", cfg.Counting.MaxTextRunes),
		slog.Int("max_batch_items", cfg.Counting.MaxBatchItems),
		slog.Int("batch_parallelism", cfg.Counting.BatchParallelism),
		slog.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		slog.Float64("trace_sample_ratio", cfg.Tracing.SampleRatio))
	return cfg
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *hhttp.IPRateLimiter // nil when rate limiting is disabled
}

func setupServer(logger *slog.Logger, cfg *config.ServerConfig, version string) *ServerComponents {
	svc := countUC.NewService(logger,
		cfg.Counting.MaxTextRunes,
		cfg.Counting.MaxBatchItems,
		cfg.Counting.BatchParallelism)

	var rateLimiter *hhttp.IPRateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = hhttp.NewIPRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			cfg.RateLimit.IdleTTL,
			cfg.RateLimit.TrustProxy)
		logger.Info("rate limiting initialized",
			slog.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Bool("trust_proxy", cfg.RateLimit.TrustProxy))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()
	hcount.Register(mux, svc)
	mux.Handle("GET /health", &hhttp.HealthHandler{Version: version, RateLimiter: rateLimiter})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return &ServerComponents{
		Handler:     applyMiddleware(logger, mux, rateLimiter, int64(cfg.Server.MaxBodyBytes)),
		RateLimiter: rateLimiter,
	}
}

// applyMiddleware wraps the handler so that, from the outside in, requests
// pass request ID, tracing, rate limiting, panic recovery, logging, body
// limit and metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, rateLimiter *hhttp.IPRateLimiter, maxBodyBytes int64) http.Handler {
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(maxBodyBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	if rateLimiter != nil {
		chain = rateLimiter.Limit(chain)
	}
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

func runServer(logger *slog.Logger, cfg *config.ServerConfig, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.RateLimiter != nil {
		go components.RateLimiter.Run(logging.WithLogger(ctx, logger), cfg.RateLimit.CleanupInterval)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// Stop background goroutines (rate limiter cleanup) after in-flight
	// requests have drained.
	cancel()
	logger.Info("server stopped")
}
