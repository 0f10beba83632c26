package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("QUERYBOX_PRIMARY.ENV", "local")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Primary.Env)
		assert.Equal(t, "8000", cfg.Server.Port)
		assert.Equal(t, 30, cfg.Server.ReadTimeout)
		assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.False(t, cfg.Redis.Enabled())

		require.NotNil(t, cfg.Observability)
		assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "local", cfg.Observability.Environment)
		assert.Equal(t, "info", cfg.Observability.Logging.Level)
		assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
	})

	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("QUERYBOX_PRIMARY.ENV", "production")
		t.Setenv("QUERYBOX_SERVER.PORT", "9090")
		t.Setenv("QUERYBOX_SERVER.READ_TIMEOUT", "5")
		t.Setenv("QUERYBOX_RATE_LIMIT.ENABLED", "false")
		t.Setenv("QUERYBOX_REDIS.ADDRESS", "localhost:6379")
		t.Setenv("QUERYBOX_OBSERVABILITY.LOGGING.LEVEL", "warn")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 5, cfg.Server.ReadTimeout)
		assert.Equal(t, 30, cfg.Server.WriteTimeout)
		assert.False(t, cfg.RateLimit.Enabled)
		assert.True(t, cfg.Redis.Enabled())
		assert.Equal(t, "warn", cfg.Observability.Logging.Level)
		assert.Equal(t, "json", cfg.Observability.Logging.Format)
		assert.True(t, cfg.Observability.IsProduction())
	})

	t.Run("missing environment fails", func(t *testing.T) {
		t.Setenv("QUERYBOX_PRIMARY.ENV", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("invalid log level fails", func(t *testing.T) {
		t.Setenv("QUERYBOX_PRIMARY.ENV", "local")
		t.Setenv("QUERYBOX_OBSERVABILITY.LOGGING.LEVEL", "loud")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid logging level")
	})
}

func TestObservabilityConfig(t *testing.T) {
	t.Run("log level defaults by environment", func(t *testing.T) {
		cfg := DefaultObservabilityConfig()
		cfg.Logging.Level = ""

		cfg.Environment = "development"
		assert.Equal(t, "debug", cfg.GetLogLevel())

		cfg.Environment = "production"
		assert.Equal(t, "info", cfg.GetLogLevel())

		cfg.Logging.Level = "error"
		assert.Equal(t, "error", cfg.GetLogLevel())
	})

	t.Run("health checks", func(t *testing.T) {
		cfg := DefaultObservabilityConfig()
		assert.True(t, cfg.HasCheck("redis"))
		assert.False(t, cfg.HasCheck("database"))

		cfg.HealthChecks.Enabled = false
		assert.False(t, cfg.HasCheck("redis"))
	})

	t.Run("validate", func(t *testing.T) {
		cfg := DefaultObservabilityConfig()
		require.NoError(t, cfg.Validate())

		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Validate())

		cfg = DefaultObservabilityConfig()
		cfg.HealthChecks.Timeout = 10 * time.Millisecond
		assert.Error(t, cfg.Validate())
	})
}
