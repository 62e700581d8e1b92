package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "charcount.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, warnings, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Counting.BatchParallelism)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `server:
  addr: ":9090"
  shutdown_timeout: 15s
counting:
  max_text_runes: 4096
  max_batch_items: 10
rate_limit:
  enabled: false
`)

	cfg, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 4096, cfg.Counting.MaxTextRunes)
	assert.Equal(t, 10, cfg.Counting.MaxBatchItems)
	assert.False(t, cfg.RateLimit.Enabled)

	// Fields missing from the file keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 8, cfg.Counting.BatchParallelism)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `server:
  addr: ":9090"
counting:
  max_text_runes: 4096
`)
	t.Setenv(EnvAddr, ":7070")
	t.Setenv(EnvMaxTextRunes, "128")
	t.Setenv(EnvRateLimitRPS, "2.5")

	cfg, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 128, cfg.Counting.MaxTextRunes)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	path := writeConfig(t, `counting:
  batch_parallelism: 4
`)
	t.Setenv(EnvBatchParallelism, "1000")
	t.Setenv(EnvShutdownTimeout, "later")

	cfg, warnings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Counting.BatchParallelism)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	require.Len(t, warnings, 2)
	assert.Equal(t, EnvShutdownTimeout, warnings[0].Env)
	assert.Contains(t, warnings[0].Warning, "later")
	assert.Equal(t, EnvBatchParallelism, warnings[1].Env)
	assert.Contains(t, warnings[1].Warning, EnvBatchParallelism)
}

func TestLoad_ShutdownTimeoutEnvBounds(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		want         time.Duration
		wantFallback bool
	}{
		{name: "within bounds", value: "30s", want: 30 * time.Second},
		{name: "at minimum", value: "1s", want: MinShutdownTimeout},
		{name: "at maximum", value: "5m", want: MaxShutdownTimeout},
		{name: "below minimum", value: "500ms", want: 5 * time.Second, wantFallback: true},
		{name: "above maximum", value: "6m", want: 5 * time.Second, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvShutdownTimeout, tt.value)

			cfg, fallbacks, err := Load("")
			require.NoError(t, err)

			assert.Equal(t, tt.want, cfg.Server.ShutdownTimeout)
			if tt.wantFallback {
				require.Len(t, fallbacks, 1)
				assert.Equal(t, EnvShutdownTimeout, fallbacks[0].Env)
			} else {
				assert.Empty(t, fallbacks)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		errorMsg string
	}{
		{
			name:     "malformed yaml",
			yaml:     "server: [unclosed",
			errorMsg: "failed to parse config",
		},
		{
			name: "empty addr",
			yaml: `server:
  addr: ""
`,
			errorMsg: "server addr is required",
		},
		{
			name: "negative max text runes",
			yaml: `counting:
  max_text_runes: -1
`,
			errorMsg: "counting max_text_runes must be positive",
		},
		{
			name: "sample ratio above one",
			yaml: `tracing:
  sample_ratio: 1.5
`,
			errorMsg: "tracing sample_ratio",
		},
		{
			name: "shutdown timeout above maximum",
			yaml: `server:
  shutdown_timeout: 10m
`,
			errorMsg: "server shutdown_timeout: duration 10m0s exceeds maximum 5m0s",
		},
		{
			name: "zero idle ttl with rate limiting enabled",
			yaml: `rate_limit:
  enabled: true
  idle_ttl: 0s
`,
			errorMsg: "rate_limit idle_ttl: duration must be positive",
		},
		{
			name: "zero burst with rate limiting enabled",
			yaml: `rate_limit:
  enabled: true
  burst: 0
`,
			errorMsg: "rate_limit burst must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate_RateLimitDisabledSkipsLimiterFields(t *testing.T) {
	cfg := Default()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.Burst = 0
	cfg.RateLimit.RequestsPerSecond = 0

	assert.NoError(t, cfg.Validate())
}

func TestLoad_TracingAndProxyEnv(t *testing.T) {
	t.Setenv(EnvTraceSampleRatio, "0.25")
	t.Setenv(EnvTrustProxy, "true")

	cfg, warnings, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRatio, 1e-9)
	assert.True(t, cfg.RateLimit.TrustProxy)
}

func TestLoad_InvalidSampleRatioEnvFallsBack(t *testing.T) {
	t.Setenv(EnvTraceSampleRatio, "2")

	cfg, warnings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
	require.Len(t, warnings, 1)
	assert.Equal(t, EnvTraceSampleRatio, warnings[0].Env)
}
