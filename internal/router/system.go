package router

import (
	"github.com/donorops/backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of
// business logic: health, docs UI, and the static assets backing the
// docs (openapi.json and openapi.html).
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
