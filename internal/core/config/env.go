package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: PYDOCLINT_[SECTION]_[KEY] (e.g., PYDOCLINT_HISTORY_PATH). The
// standard OTEL_EXPORTER_OTLP_ENDPOINT fills an unset OTLP endpoint.
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Convention, "PYDOCLINT_CONVENTION")
	setEnvInt(&cfg.Workers, "PYDOCLINT_WORKERS")

	// History
	setEnvBool(&cfg.History.Enabled, "PYDOCLINT_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "PYDOCLINT_HISTORY_PATH")
	setEnvDuration(&cfg.History.BusyTimeout, "PYDOCLINT_HISTORY_BUSY_TIMEOUT")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "PYDOCLINT_WATCH_DEBOUNCE")
	setEnvFloat64(&cfg.Watch.RateLimit, "PYDOCLINT_WATCH_RATE_LIMIT")

	// Observability
	setEnvString(&cfg.Observability.MetricsAddr, "PYDOCLINT_OBSERVABILITY_METRICS_ADDR")
	setEnvString(&cfg.Observability.OTLPEndpoint, "PYDOCLINT_OBSERVABILITY_OTLP_ENDPOINT")
	if strings.TrimSpace(cfg.Observability.OTLPEndpoint) == "" {
		setEnvString(&cfg.Observability.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	}
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
