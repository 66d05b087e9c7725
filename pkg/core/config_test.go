package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.Port)
	assert.False(t, cfg.SkipAuth)
	assert.Equal(t, "otlp", cfg.Otel.Exporter)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "/functions/v1/lookup-email", cfg.Lookup.FunctionPath)
	assert.Equal(t, 15*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, "GCP Cohort IIITA", cfg.Site.Title)
	require.NotNil(t, cfg.Site.Location)
	assert.Equal(t, "Asia/Kolkata", cfg.Site.Location.String())
}

func TestNewConfig_AppliesOptions(t *testing.T) {
	cfg := NewConfig(
		WithPort(9090),
		WithRedisAddr(""),
		WithLookupBaseURL("https://lookup.example"),
		WithLookupAPIKey("key"),
		WithLookupTimeout(2*time.Second),
		WithSiteTitle("Cohort"),
		WithOtelDisable(),
	)

	assert.Equal(t, 9090, cfg.Port)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "https://lookup.example", cfg.Lookup.BaseURL)
	assert.Equal(t, "key", cfg.Lookup.APIKey)
	assert.Equal(t, 2*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, "Cohort", cfg.Site.Title)
	assert.True(t, cfg.Otel.Disable)
}

func TestNewConfigFromEnv_ReadsLookupSettings(t *testing.T) {
	t.Setenv("LOOKUP_BASE_URL", "https://project.supabase.co")
	t.Setenv("LOOKUP_API_KEY", "anon-key")
	t.Setenv("LOOKUP_TIMEOUT", "750ms")
	t.Setenv("PORT", "8123")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://project.supabase.co", cfg.Lookup.BaseURL)
	assert.Equal(t, "anon-key", cfg.Lookup.APIKey)
	assert.Equal(t, 750*time.Millisecond, cfg.Lookup.Timeout)
	assert.Equal(t, 8123, cfg.Port)
}

func TestNewConfigFromEnv_OptionsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "8123")

	cfg, err := NewConfigFromEnv(WithPort(7000))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
}

func TestNewConfigFromEnv_SiteTimezone(t *testing.T) {
	t.Setenv("SITE_TIMEZONE", "America/New_York")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", cfg.Site.Location.String())

	t.Setenv("SITE_TIMEZONE", "Nowhere/Special")

	_, err = NewConfigFromEnv()
	assert.ErrorContains(t, err, "Nowhere/Special")
}

func TestNewConfigFromEnv_JoinsParseErrors(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("LOOKUP_TIMEOUT", "forever")

	_, err := NewConfigFromEnv()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "eighty")
	assert.Contains(t, err.Error(), "forever")
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig(
		WithLookupBaseURL("https://lookup.example"),
		WithLookupAPIKey("key"),
	)
	require.NoError(t, cfg.Validate())

	cfg = NewConfig(WithPort(0), WithOtelExporter("zipkin"), WithSiteLocation(nil))
	err := cfg.Validate()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "LOOKUP_BASE_URL is required")
	assert.Contains(t, err.Error(), "LOOKUP_API_KEY is required")
	assert.Contains(t, err.Error(), "PORT 0 is out of range")
	assert.Contains(t, err.Error(), `OTEL_EXPORTER "zipkin"`)
	assert.Contains(t, err.Error(), "SITE_TIMEZONE is required")
}

func TestListenAddr(t *testing.T) {
	cfg := NewConfig(WithPort(8000))

	assert.Equal(t, ":8000", cfg.ListenAddr())
}
