package router

import (
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/handler"
	"github.com/donorops/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerAPIRoutes registers the versioned business API.
//
// Role model: admins manage users and events; admins and gift officers
// write donor, gift, pledge, and registration records; viewers read
// everything but write nothing.
func registerAPIRoutes(r *echo.Echo, mw *middleware.Middlewares, h *handler.Handlers) {
	api := r.Group("/api/v1")

	// Login is the only unauthenticated business route, and the only
	// rate limited one.
	api.POST("/auth/login", h.Auth.Login(), mw.RateLimit.Limit("login", 10, time.Minute))

	authed := api.Group("", mw.Auth.RequireAuth)

	authed.POST("/auth/logout", h.Auth.Logout())
	authed.GET("/auth/me", h.Auth.Me())

	adminOnly := mw.Auth.RequireRole(domain.UserRoleAdmin)
	canWrite := mw.Auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleGiftOfficer)

	users := authed.Group("/users", adminOnly)
	users.POST("", h.Users.Create())
	users.GET("", h.Users.List())
	users.GET("/:id", h.Users.Get())
	users.PATCH("/:id", h.Users.Update())
	users.DELETE("/:id", h.Users.Deactivate())

	donors := authed.Group("/donors")
	donors.POST("", h.Donors.Create(), canWrite)
	donors.GET("", h.Donors.List())
	donors.GET("/:id", h.Donors.Get())
	donors.PATCH("/:id", h.Donors.Update(), canWrite)
	donors.GET("/:id/summary", h.Donors.Summary())

	gifts := authed.Group("/gifts")
	gifts.POST("", h.Gifts.Create(), canWrite)
	gifts.GET("", h.Gifts.List())
	gifts.GET("/:id", h.Gifts.Get())
	gifts.POST("/:id/receipt", h.Gifts.IssueReceipt(), canWrite)

	pledges := authed.Group("/pledges")
	pledges.POST("", h.Pledges.Create(), canWrite)
	pledges.GET("", h.Pledges.List())
	pledges.GET("/:id", h.Pledges.Get())
	pledges.POST("/:id/cancel", h.Pledges.Cancel(), canWrite)

	events := authed.Group("/events")
	events.POST("", h.Events.Create(), adminOnly)
	events.GET("", h.Events.List())
	events.GET("/:id", h.Events.Get())
	events.PATCH("/:id", h.Events.Update(), adminOnly)
	events.POST("/:id/registrations", h.Events.Register(), canWrite)
	events.GET("/:id/registrations", h.Events.Registrations())
	events.PATCH("/:id/registrations/:donor_id", h.Events.SetAttendance(), canWrite)
}
