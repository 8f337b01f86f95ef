package middleware

import (
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares is a container that groups all middleware components
// used by the HTTP server. It gives router setup a single place where
// shared dependencies (the app container, the auth service, the New
// Relic application) are wired into middleware.
type Middlewares struct {
	// Global holds common middleware used across the whole API:
	// CORS, request logging, recovery, secure headers, and the global
	// error handler.
	Global *GlobalMiddlewares

	// Auth enforces JWT authentication and role checks, and attaches
	// user identity to the request context.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip, user and trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and helpers to attach
	// custom attributes and notice errors on transactions.
	Tracing *TracingMiddleware

	// RateLimit enforces per-IP limits on the login endpoint and
	// records limit hits as New Relic custom events.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components.
//
// When New Relic is not configured, nrApp is nil and tracing
// middleware degrades into a no-op.
func NewMiddlewares(s *server.Server, auth *service.AuthService) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, auth),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
