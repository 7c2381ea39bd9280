package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "SCENARIO_BASE_URL", "ENVIRONMENT", "RELEASE",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_INSECURE", "TELEMETRY_OUTPUTS",
		"CHECKOUT_SLOW_MIN", "CACHE_BACKEND", "REDIS_ADDR", "CACHE_TTL",
		"FAULT_PROFILE", "SEED",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "v1.0.0", cfg.Release)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.True(t, cfg.OTLPInsecure)
	assert.Equal(t, []string{"otlp"}, cfg.TelemetryOutputs)
	assert.Equal(t, 600*time.Millisecond, cfg.CheckoutSlowMin)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.FaultProfile)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("TELEMETRY_OUTPUTS", "otlp, stdout")
	t.Setenv("CHECKOUT_SLOW_MIN", "250ms")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("SEED", "42")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://localhost:9090", cfg.BaseURL)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, []string{"otlp", "stdout"}, cfg.TelemetryOutputs)
	assert.Equal(t, 250*time.Millisecond, cfg.CheckoutSlowMin)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoad_ScenarioBaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SCENARIO_BASE_URL", "http://shop.internal:8080")

	cfg := Load()

	assert.Equal(t, "http://shop.internal:8080", cfg.BaseURL)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("OTEL_INSECURE", "maybe")
	t.Setenv("CHECKOUT_SLOW_MIN", "soon")
	t.Setenv("SEED", "1.5")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.OTLPInsecure)
	assert.Equal(t, 600*time.Millisecond, cfg.CheckoutSlowMin)
	assert.Zero(t, cfg.Seed)
}
