package middleware

import (
	"context"

	"github.com/donorops/backend/internal/logger"
	"github.com/donorops/backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey, UserRoleKey, and TokenIDKey are the canonical Echo
	// context keys set by the auth middleware.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
	TokenIDKey  = "token_id"

	// LoggerKey is the key for the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger with correlation
// fields (request_id, method, path, ip, trace ids, user identity) and
// stores it in both the Echo context and the Go request context, so
// layers that only see context.Context can still log with correlation.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer using the app container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the Echo middleware. It should run after
// RequestID and RequireAuth so those fields are available.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			if userRole := GetUserRole(c); userRole != "" {
				contextLogger = contextLogger.With().Str("user_role", userRole).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserID reads the authenticated user's ID from Echo context.
// Returns "" when auth middleware has not run.
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetUserRole reads the authenticated user's role from Echo context.
func GetUserRole(c echo.Context) string {
	if role, ok := c.Get(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

// GetTokenID reads the JWT ID of the current token from Echo context.
func GetTokenID(c echo.Context) string {
	if tokenID, ok := c.Get(TokenIDKey).(string); ok {
		return tokenID
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from Echo context.
// If EnhanceContext didn't run, it returns a no-op logger so callers
// never crash on nil.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
