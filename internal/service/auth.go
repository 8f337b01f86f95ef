package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/schema/usermgmt"
	"github.com/donorops/backend/internal/server"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// tokenDenylistPrefix namespaces revoked token IDs in Redis.
const tokenDenylistPrefix = "auth:denylist:"

// TokenClaims are the JWT claims carried by session tokens. Subject is
// the user ID and ID (jti) is a per-token UUID used for revocation.
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies session tokens and handles password
// login. Logout revokes tokens by placing their jti on a Redis
// denylist until they would have expired anyway.
type AuthService struct {
	server *server.Server
	users  *repository.UsersRepository
}

// NewAuthService constructs an AuthService.
func NewAuthService(s *server.Server, repos *repository.Repositories) *AuthService {
	return &AuthService{
		server: s,
		users:  repos.Users,
	}
}

// Login verifies the email/password pair and returns a signed session
// token. Unknown email, wrong password, and deactivated account all
// produce the same 401 so the response does not leak which emails
// exist.
func (s *AuthService) Login(ctx context.Context, req *usermgmt.LoginRequest) (*usermgmt.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn a comparison anyway so unknown emails take about
			// as long as wrong passwords.
			_ = bcrypt.CompareHashAndPassword(
				[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
				[]byte(req.Password),
			)
			return nil, errs.NewUnauthorizedError("Invalid email or password", false)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.NewUnauthorizedError("Invalid email or password", false)
	}

	if !user.IsActive {
		return nil, errs.NewUnauthorizedError("Invalid email or password", false)
	}

	ttl := time.Duration(s.server.Config.Auth.TokenTTL) * time.Second
	token, err := s.issueToken(user.ID, string(user.Role), ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.server.Logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to stamp last login")
	}
	user.LastLoginAt = &now

	return &usermgmt.LoginResponse{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
		User:      usermgmt.NewUserResponse(user),
	}, nil
}

// Logout revokes the presented token. Revoking an already revoked
// token is a no-op.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.ParseToken(rawToken)
	if err != nil {
		return errs.NewUnauthorizedError("Invalid or expired token", false)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.server.Redis.Set(ctx, tokenDenylistPrefix+claims.ID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Me returns the account behind the authenticated session.
func (s *AuthService) Me(ctx context.Context, userID string) (*usermgmt.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Invalid session", false)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewUnauthorizedError("Invalid session", false)
		}
		return nil, err
	}

	return usermgmt.NewUserResponse(user), nil
}

// ParseToken verifies a token's signature and expiry and returns its
// claims. It does not consult the denylist; see IsTokenRevoked.
func (s *AuthService) ParseToken(rawToken string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(s.server.Config.Auth.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// IsTokenRevoked reports whether the token ID is on the logout
// denylist.
func (s *AuthService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.server.Redis.Get(ctx, tokenDenylistPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) issueToken(userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID.String(),
			Issuer:    s.server.Config.Observability.ServiceName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.server.Config.Auth.SecretKey))
}
