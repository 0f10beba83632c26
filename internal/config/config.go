// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional config blocks (server, rate limit, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into the process env
	// before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every querybox env var carries.
//
// Keys are normalized (lowercased, prefix removed) and nested struct fields
// are reached with "." e.g. QUERYBOX_SERVER.PORT -> server.port -> Config.Server.Port
const EnvPrefix = "QUERYBOX_"

// ServiceName tags logs, traces and APM dashboards.
const ServiceName = "querybox"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. Keys that are set
// override DefaultObservabilityConfig, the rest keep their defaults.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"-"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// RateLimitConfig controls per-client request throttling.
//
// RequestsPerSecond and Burst feed the token bucket of the in-memory store.
// When Redis is configured, the same budget is enforced as a fixed window
// of RequestsPerSecond*Window requests.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int     `koanf:"burst" validate:"min=1"`
	ExpiresIn         int     `koanf:"expires_in" validate:"min=1"`
	Window            int     `koanf:"window" validate:"min=1"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; empty means the service runs without Redis.
type RedisConfig struct {
	Address  string `koanf:"address" validate:"omitempty,hostname_port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// DefaultConfig returns the configuration used for every key the
// environment does not set.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
			ExpiresIn:         180,
			Window:            1,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config structs, validates it, applies defaults, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix QUERYBOX_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals on top of DefaultConfig
//   - Validates required config blocks/fields
//   - Overrides observability service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	// Only env vars with the prefix are read. The mapping function removes
	// the prefix and lower-cases the rest:
	//   QUERYBOX_SERVER.PORT -> "server.port"
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Fields with no matching key keep their default value.
	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment are forced regardless of what the env says
	// so tracing/logging sees consistent naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
