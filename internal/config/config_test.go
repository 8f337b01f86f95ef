package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"DONOROPS_PRIMARY.ENV":                  "test",
		"DONOROPS_SERVER.PORT":                  "8080",
		"DONOROPS_SERVER.READ_TIMEOUT":          "15",
		"DONOROPS_SERVER.WRITE_TIMEOUT":         "15",
		"DONOROPS_SERVER.IDLE_TIMEOUT":          "60",
		"DONOROPS_SERVER.CORS_ALLOWED_ORIGINS":  "http://localhost:3000",
		"DONOROPS_DATABASE.HOST":                "localhost",
		"DONOROPS_DATABASE.PORT":                "5432",
		"DONOROPS_DATABASE.USER":                "donorops",
		"DONOROPS_DATABASE.PASSWORD":            "donorops",
		"DONOROPS_DATABASE.NAME":                "donorops_test",
		"DONOROPS_DATABASE.SSL_MODE":            "disable",
		"DONOROPS_DATABASE.MAX_OPEN_CONNS":      "10",
		"DONOROPS_DATABASE.MAX_IDLE_CONNS":      "5",
		"DONOROPS_DATABASE.CONN_MAX_LIFETIME":   "300",
		"DONOROPS_DATABASE.CONN_MAX_IDLE_TIME":  "60",
		"DONOROPS_REDIS.ADDRESS":                "localhost:6379",
		"DONOROPS_AUTH.SECRET_KEY":              "0123456789abcdef0123456789abcdef",
		"DONOROPS_AUTH.TOKEN_TTL":               "3600",
		"DONOROPS_EMAIL.RESEND_API_KEY":         "re_test_key",
		"DONOROPS_EMAIL.FROM_NAME":              "DonorOps",
		"DONOROPS_EMAIL.FROM_ADDRESS":           "no-reply@donorops.io",
		"DONOROPS_OBSERVABILITY.LOGGING.FORMAT": "console",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestNew(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "donorops_test", cfg.Database.Name)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 3600, cfg.Auth.TokenTTL)
	assert.Equal(t, "no-reply@donorops.io", cfg.Email.FromAddress)
}

func TestNew_ObservabilityDerivedFromPrimary(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.New()
	require.NoError(t, err)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "donorops", cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
}

func TestDefaultObservabilityConfig(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.GetLogLevel())
}
