package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups all configuration related to telemetry and runtime visibility.
//
// This includes:
//   - logging settings (format, level)
//   - APM/tracing provider settings (New Relic here)
//   - health check settings used by the /status endpoint
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces/APM dashboards.
	// Always overwritten with config.ServiceName.
	ServiceName string `koanf:"service_name"`

	// Environment is a label used to split telemetry by environment
	// (production, staging, development, etc.). Mirrors Primary.Env.
	Environment string `koanf:"environment"`

	Logging      LoggingConfig      `koanf:"logging"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format for logs ("json" or "console").
	Format string `koanf:"format"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey means New Relic is not configured and every
// New Relic integration degrades into a no-op.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the dependency checks run by /status.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Timeout is the max time a single dependency check may take.
	Timeout time.Duration `koanf:"timeout"`

	// Checks is a list of check names to run. "redis" is the only
	// dependency querybox knows about.
	Checks []string `koanf:"checks"`
}

// DefaultObservabilityConfig provides the defaults used for every
// observability key the environment leaves unset.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // Disabled by default to avoid mixed log formats
		},
		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
			Checks:  []string{"redis"},
		},
	}
}

// Validate applies validation rules that go beyond struct tags.
//
// Returns the first validation failure, or nil.
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

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be one of: json, console)", c.Logging.Format)
	}

	if c.HealthChecks.Enabled && c.HealthChecks.Timeout < time.Second {
		return fmt.Errorf("health_checks timeout must be at least 1s")
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// It supports "defaulting by environment":
//   - In production: default to "info" if no level is set.
//   - In development: default to "debug" if no level is set.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development":
		if c.Logging.Level == "" {
			return "debug"
		}
	}

	return c.Logging.Level
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// HasCheck reports whether the named dependency check is enabled.
func (c *ObservabilityConfig) HasCheck(name string) bool {
	if !c.HealthChecks.Enabled {
		return false
	}
	for _, check := range c.HealthChecks.Checks {
		if check == name {
			return true
		}
	}
	return false
}
