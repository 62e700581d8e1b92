// Package config loads the charcount API server configuration from an
// optional YAML file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	envconfig "charcount/internal/pkg/config"
)

// Bounds for server.shutdown_timeout.
const (
	MinShutdownTimeout = time.Second
	MaxShutdownTimeout = 5 * time.Minute
)

// Environment variables that override file and default values.
const (
	EnvConfigPath       = "CHARCOUNT_CONFIG"
	EnvAddr             = "CHARCOUNT_ADDR"
	EnvShutdownTimeout  = "CHARCOUNT_SHUTDOWN_TIMEOUT"
	EnvMaxBodyBytes     = "CHARCOUNT_MAX_BODY_BYTES"
	EnvMaxTextRunes     = "CHARCOUNT_MAX_TEXT_RUNES"
	EnvMaxBatchItems    = "CHARCOUNT_MAX_BATCH_ITEMS"
	EnvBatchParallelism = "CHARCOUNT_BATCH_PARALLELISM"
	EnvRateLimitEnabled = "CHARCOUNT_RATE_LIMIT_ENABLED"
	EnvRateLimitRPS     = "CHARCOUNT_RATE_LIMIT_RPS"
	EnvRateLimitBurst   = "CHARCOUNT_RATE_LIMIT_BURST"
	EnvTrustProxy       = "CHARCOUNT_TRUST_PROXY"
	EnvTraceSampleRatio = "CHARCOUNT_TRACE_SAMPLE_RATIO"
)

// ServerConfig represents the API server configuration.
type ServerConfig struct {
	Server struct {
		Addr              string        `yaml:"addr"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
		ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
		MaxBodyBytes      int           `yaml:"max_body_bytes"`
	} `yaml:"server"`
	Counting struct {
		MaxTextRunes     int `yaml:"max_text_runes"`
		MaxBatchItems    int `yaml:"max_batch_items"`
		BatchParallelism int `yaml:"batch_parallelism"`
	} `yaml:"counting"`
	RateLimit struct {
		Enabled           bool          `yaml:"enabled"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		Burst             int           `yaml:"burst"`
		IdleTTL           time.Duration `yaml:"idle_ttl"`
		CleanupInterval   time.Duration `yaml:"cleanup_interval"`
		// TrustProxy keys clients by X-Forwarded-For / X-Real-IP instead of
		// the socket address. Enable only behind a proxy that sets them.
		TrustProxy bool `yaml:"trust_proxy"`
	} `yaml:"rate_limit"`
	Tracing struct {
		SampleRatio float64 `yaml:"sample_ratio"`
	} `yaml:"tracing"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.Server.Addr = ":8080"
	cfg.Server.ReadHeaderTimeout = 10 * time.Second
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Server.MaxBodyBytes = 1 << 20
	cfg.Counting.MaxTextRunes = 1 << 18
	cfg.Counting.MaxBatchItems = 100
	cfg.Counting.BatchParallelism = 8
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 20
	cfg.RateLimit.Burst = 40
	cfg.RateLimit.IdleTTL = 10 * time.Minute
	cfg.RateLimit.CleanupInterval = time.Minute
	cfg.Tracing.SampleRatio = 1.0
	return cfg
}

// Fallback reports an environment override that was rejected in favor of
// the file or default value.
type Fallback struct {
	Env     string
	Warning string
}

// Load builds the server configuration. Defaults are overlaid with the YAML
// file at path (skipped when path is empty) and then with environment
// variables. Invalid environment values fall back to the file/default value
// and are reported as fallbacks. The final configuration is validated.
// The path parameter is expected to come from a trusted source (flag or environment).
func Load(path string) (*ServerConfig, []Fallback, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 -- path is provided by the operator, not request input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	fallbacks := cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fallbacks, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, fallbacks, nil
}

func (c *ServerConfig) applyEnv() []Fallback {
	var fallbacks []Fallback
	collect := func(env string, r envconfig.ConfigLoadResult) envconfig.ConfigLoadResult {
		for _, w := range r.Warnings {
			fallbacks = append(fallbacks, Fallback{Env: env, Warning: w})
		}
		return r
	}
	positiveInt := func(v int) error { return envconfig.ValidateIntRange(v, 1, 1<<30) }
	shutdownTimeout := func(d time.Duration) error {
		return envconfig.ValidateDuration(d, MinShutdownTimeout, MaxShutdownTimeout)
	}

	c.Server.Addr = envconfig.LoadEnvString(EnvAddr, c.Server.Addr)
	c.Server.ShutdownTimeout = collect(EnvShutdownTimeout, envconfig.LoadEnvDuration(EnvShutdownTimeout,
		c.Server.ShutdownTimeout, shutdownTimeout)).Value.(time.Duration)
	c.Server.MaxBodyBytes = collect(EnvMaxBodyBytes, envconfig.LoadEnvInt(EnvMaxBodyBytes,
		c.Server.MaxBodyBytes, positiveInt)).Value.(int)
	c.Counting.MaxTextRunes = collect(EnvMaxTextRunes, envconfig.LoadEnvInt(EnvMaxTextRunes,
		c.Counting.MaxTextRunes, positiveInt)).Value.(int)
	c.Counting.MaxBatchItems = collect(EnvMaxBatchItems, envconfig.LoadEnvInt(EnvMaxBatchItems,
		c.Counting.MaxBatchItems, positiveInt)).Value.(int)
	c.Counting.BatchParallelism = collect(EnvBatchParallelism, envconfig.LoadEnvInt(EnvBatchParallelism,
		c.Counting.BatchParallelism, func(v int) error { return envconfig.ValidateIntRange(v, 1, 256) })).Value.(int)
	c.RateLimit.Enabled = collect(EnvRateLimitEnabled, envconfig.LoadEnvBool(EnvRateLimitEnabled,
		c.RateLimit.Enabled)).Value.(bool)
	c.RateLimit.RequestsPerSecond = collect(EnvRateLimitRPS, envconfig.LoadEnvFloat(EnvRateLimitRPS,
		c.RateLimit.RequestsPerSecond, envconfig.ValidatePositiveFloat)).Value.(float64)
	c.RateLimit.Burst = collect(EnvRateLimitBurst, envconfig.LoadEnvInt(EnvRateLimitBurst,
		c.RateLimit.Burst, positiveInt)).Value.(int)
	c.RateLimit.TrustProxy = collect(EnvTrustProxy, envconfig.LoadEnvBool(EnvTrustProxy,
		c.RateLimit.TrustProxy)).Value.(bool)
	c.Tracing.SampleRatio = collect(EnvTraceSampleRatio, envconfig.LoadEnvFloat(EnvTraceSampleRatio,
		c.Tracing.SampleRatio, validateRatio)).Value.(float64)

	return fallbacks
}

// Validate checks the loaded configuration for values the server cannot run with.
func (c *ServerConfig) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server addr is required"))
	}
	if err := envconfig.ValidatePositiveDuration(c.Server.ReadHeaderTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server read_header_timeout: %w", err))
	}
	if err := envconfig.ValidateDuration(c.Server.ShutdownTimeout, MinShutdownTimeout, MaxShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown_timeout: %w", err))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server max_body_bytes must be positive"))
	}
	if c.Counting.MaxTextRunes <= 0 {
		errs = append(errs, errors.New("counting max_text_runes must be positive"))
	}
	if c.Counting.MaxBatchItems <= 0 {
		errs = append(errs, errors.New("counting max_batch_items must be positive"))
	}
	if c.Counting.BatchParallelism <= 0 {
		errs = append(errs, errors.New("counting batch_parallelism must be positive"))
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, errors.New("rate_limit requests_per_second must be positive"))
		}
		if c.RateLimit.Burst <= 0 {
			errs = append(errs, errors.New("rate_limit burst must be positive"))
		}
		if err := envconfig.ValidatePositiveDuration(c.RateLimit.IdleTTL); err != nil {
			errs = append(errs, fmt.Errorf("rate_limit idle_ttl: %w", err))
		}
		if err := envconfig.ValidatePositiveDuration(c.RateLimit.CleanupInterval); err != nil {
			errs = append(errs, fmt.Errorf("rate_limit cleanup_interval: %w", err))
		}
	}

	if err := validateRatio(c.Tracing.SampleRatio); err != nil {
		errs = append(errs, fmt.Errorf("tracing sample_ratio: %w", err))
	}

	return errors.Join(errs...)
}

func validateRatio(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("must be between 0 and 1, got %v", v)
	}
	return nil
}
