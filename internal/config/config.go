// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), loads them into structured Go types, and
// validates that required values are present so the app fails fast on
// bad or missing config.
//
// Env vars use the DONOROPS_ prefix and dot-delimited nesting:
// DONOROPS_SERVER.PORT -> server.port -> Config.Server.Port.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a .env file into the process env, if
	// present, before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are
// injected at load time when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Email         EmailConfig          `koanf:"email" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool
// tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores authentication settings.
//
// SecretKey signs session tokens (HMAC). TokenTTL is the session
// lifetime in seconds.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required,min=32"`
	TokenTTL  int    `koanf:"token_ttl" validate:"required,min=60"`
}

// EmailConfig stores outbound email settings for the Resend provider.
type EmailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	FromName     string `koanf:"from_name" validate:"required"`
	FromAddress  string `koanf:"from_address" validate:"required,email"`
}

// New loads configuration from environment variables, unmarshals it,
// validates it, applies observability defaults, and returns the
// resulting config. Load failures are fatal: a service with bad config
// should not start.
func New() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("DONOROPS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DONOROPS_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	if mainConfig.Observability.Logging.Level == "" {
		mainConfig.Observability.Logging.Level = DefaultObservabilityConfig().Logging.Level
	}
	if mainConfig.Observability.Logging.Format == "" {
		mainConfig.Observability.Logging.Format = DefaultObservabilityConfig().Logging.Format
	}

	// Service name and environment are always derived from the primary
	// config so telemetry naming stays consistent.
	mainConfig.Observability.ServiceName = "donorops"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
