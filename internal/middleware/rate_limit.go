package middleware

import (
	"fmt"
	"time"

	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/server"
	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware enforces per-IP request limits backed by Redis
// counters and reports limit hits as New Relic custom events.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns a middleware that allows at most max requests per
// window from a single IP on the wrapped route. The counter lives in
// Redis with the window as its TTL. When Redis is unavailable the
// limiter fails open.
func (r *RateLimitMiddleware) Limit(name string, max int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", name, c.RealIP())

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				r.server.Logger.Error().Err(err).Str("key", key).Msg("rate limit counter unavailable, failing open")
				return next(c)
			}

			if count == 1 {
				r.server.Redis.Expire(ctx, key, window)
			}

			if count > max {
				r.RecordRateLimitHit(c.Path())
				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit records a New Relic custom event for a rate limit
// rejection, when New Relic is enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
