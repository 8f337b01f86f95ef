package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups configuration related to telemetry and
// runtime visibility: structured logging, New Relic APM/tracing, and
// periodic dependency health checks.
//
// It is optional at the root level; DefaultObservabilityConfig fills
// in sensible values when it is absent.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces/APM dashboards.
	// It is forced to a fixed value at load time.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment labels telemetry by environment (production, staging,
	// development, local).
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the log output format ("json" or "console").
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold is the duration beyond which queries are
	// flagged as slow. Supply a parseable duration string ("250ms").
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
// An empty LicenseKey disables the integration entirely.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls periodic checks for dependencies.
type HealthChecksConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval" validate:"omitempty,min=1s"`
	Timeout  time.Duration `koanf:"timeout" validate:"omitempty,min=1s"`
	Checks   []string      `koanf:"checks"`
}

// DefaultObservabilityConfig provides defaults used when the
// observability block is not configured.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: "donorops",
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false,
		},
		HealthChecks: HealthChecksConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Timeout:  5 * time.Second,
			Checks:   []string{"database", "redis"},
		},
	}
}

// Validate applies rules that go beyond struct tags: enum membership
// for log levels and non-negative thresholds.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}

// GetLogLevel returns the effective log level, defaulting by
// environment when unset: info in production, debug in development.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level == "" {
		if c.Environment == "production" {
			return "info"
		}
		return "debug"
	}
	return c.Logging.Level
}

// IsProduction reports whether the application runs in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}
