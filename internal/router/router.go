// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/donorops/backend/internal/handler"
	"github.com/donorops/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// New builds the Echo engine: global middleware first, then system
// routes, then the versioned API routes.
func New(mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Order matters: the request ID must exist before the context
	// enhancer builds the logger, and New Relic transactions must
	// exist before tracing enhancement.
	r.Use(mw.Global.Recover())
	r.Use(mw.Global.Secure())
	r.Use(mw.Global.CORS())
	r.Use(middleware.RequestID())
	r.Use(mw.Tracing.NewRelicMiddleware())
	r.Use(mw.ContextEnhancer.EnhanceContext())
	r.Use(mw.Tracing.EnhanceTracing())
	r.Use(mw.Global.RequestLogger())

	registerSystemRoutes(r, h)
	registerAPIRoutes(r, mw, h)

	return r
}
