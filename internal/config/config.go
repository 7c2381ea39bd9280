package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every runtime knob. All values come from the environment
// with sensible demo defaults, so the service starts with nothing set.
type Config struct {
	Port             int
	BaseURL          string
	Environment      string
	Release          string
	OTLPEndpoint     string
	OTLPInsecure     bool
	TelemetryOutputs []string
	CheckoutSlowMin  time.Duration
	CacheBackend     string
	RedisAddr        string
	CacheTTL         time.Duration
	FaultProfile     string
	Seed             int64
}

// Load reads the configuration from the environment.
func Load() Config {
	cfg := Config{
		Port:             atoienv("PORT", 8080),
		Environment:      getenv("ENVIRONMENT", "production"),
		Release:          getenv("RELEASE", "v1.0.0"),
		OTLPEndpoint:     getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTLPInsecure:     boolenv("OTEL_INSECURE", true),
		TelemetryOutputs: listenv("TELEMETRY_OUTPUTS", "otlp"),
		CheckoutSlowMin:  durenv("CHECKOUT_SLOW_MIN", 600*time.Millisecond),
		CacheBackend:     getenv("CACHE_BACKEND", "memory"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:         durenv("CACHE_TTL", 5*time.Minute),
		FaultProfile:     getenv("FAULT_PROFILE", ""),
		Seed:             int64env("SEED", 0),
	}

	// Scenario traffic targets the service itself unless pointed elsewhere.
	cfg.BaseURL = getenv("SCENARIO_BASE_URL", fmt.Sprintf("http://localhost:%d", cfg.Port))

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func int64env(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durenv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func listenv(key, def string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
