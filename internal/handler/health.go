package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a system endpoint that load balancers and
// uptime monitors use to verify the service is alive and its
// dependencies are reachable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns overall status plus per-dependency checks for
// the database and Redis. It returns 200 when all required checks
// pass and 503 otherwise. Redis is a degraded-mode dependency (jobs
// and logout stop working but reads still serve), so a Redis failure
// is reported but does not flip the overall status.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbStart := time.Now()

	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		checks["database"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}

		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		h.recordHealthCheckError("database", "database_unhealthy", time.Since(dbStart), err)
	} else {
		checks["database"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}
	}

	if h.server.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisStart := time.Now()

		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check failed")

			h.recordHealthCheckError("redis", "redis_unhealthy", time.Since(redisStart), err)
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError("overall", "overall_unhealthy", time.Since(start), nil)

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// recordHealthCheckError emits a New Relic custom event for a failed
// check, when New Relic is enabled.
func (h *HealthHandler) recordHealthCheckError(checkType, errorType string, duration time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	attrs := map[string]interface{}{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": duration.Milliseconds(),
	}
	if err != nil {
		attrs["error_message"] = err.Error()
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}
