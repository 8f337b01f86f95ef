package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/config"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthService() *service.AuthService {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Auth: config.AuthConfig{
				SecretKey: testSecret,
				TokenTTL:  3600,
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
	return service.NewAuthService(s, &repository.Repositories{})
}

func signToken(t *testing.T, claims service.TokenClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func sessionClaims(ttl time.Duration) service.TokenClaims {
	now := time.Now().UTC()
	return service.TokenClaims{
		Role: "gift_officer",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func TestParseToken_Valid(t *testing.T) {
	auth := newAuthService()
	claims := sessionClaims(time.Hour)
	raw := signToken(t, claims, testSecret)

	parsed, err := auth.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, claims.Subject, parsed.Subject)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.Equal(t, "gift_officer", parsed.Role)
}

func TestParseToken_Expired(t *testing.T) {
	auth := newAuthService()
	raw := signToken(t, sessionClaims(-time.Minute), testSecret)

	_, err := auth.ParseToken(raw)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	auth := newAuthService()
	raw := signToken(t, sessionClaims(time.Hour), "another-secret-another-secret-xx")

	_, err := auth.ParseToken(raw)
	assert.Error(t, err)
}

func TestParseToken_RejectsNonHMAC(t *testing.T) {
	auth := newAuthService()

	// alg=none tokens must never verify, regardless of payload.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims(time.Hour))
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.ParseToken(raw)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	auth := newAuthService()
	_, err := auth.ParseToken("not.a.token")
	assert.Error(t, err)
}
