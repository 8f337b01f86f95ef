package handler

import (
	"net/http"
	"strings"

	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/schema/usermgmt"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AuthHandler exposes login, logout, and current-session endpoints.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.LoginRequest) (*usermgmt.LoginResponse, error) {
		return h.auth.Login(c.Request().Context(), req)
	}, http.StatusOK)
}

// Logout handles POST /api/v1/auth/logout. The token to revoke is the
// one presented in the Authorization header.
func (h *AuthHandler) Logout() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *usermgmt.LogoutRequest) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return errs.NewUnauthorizedError("Missing or malformed authorization header", false)
		}
		return h.auth.Logout(c.Request().Context(), token)
	}, http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.MeRequest) (*usermgmt.UserResponse, error) {
		return h.auth.Me(c.Request().Context(), middleware.GetUserID(c))
	}, http.StatusOK)
}
