package handler

import (
	"net/http"

	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/schema/usermgmt"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// UsersHandler exposes staff account management endpoints.
type UsersHandler struct {
	Handler
	users *service.UsersService
}

// NewUsersHandler constructs a UsersHandler.
func NewUsersHandler(s *server.Server, users *service.UsersService) *UsersHandler {
	return &UsersHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// Create handles POST /api/v1/users.
func (h *UsersHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.CreateUserRequest) (*usermgmt.UserResponse, error) {
		return h.users.Create(c.Request().Context(), req)
	}, http.StatusCreated)
}

// Get handles GET /api/v1/users/:id.
func (h *UsersHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.GetUserRequest) (*usermgmt.UserResponse, error) {
		return h.users.Get(c.Request().Context(), req)
	}, http.StatusOK)
}

// Update handles PATCH /api/v1/users/:id.
func (h *UsersHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.UpdateUserRequest) (*usermgmt.UserResponse, error) {
		return h.users.Update(c.Request().Context(), req, middleware.GetUserID(c))
	}, http.StatusOK)
}

// Deactivate handles DELETE /api/v1/users/:id.
func (h *UsersHandler) Deactivate() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.DeactivateUserRequest) (*usermgmt.UserResponse, error) {
		return h.users.Deactivate(c.Request().Context(), req, middleware.GetUserID(c))
	}, http.StatusOK)
}

// List handles GET /api/v1/users.
func (h *UsersHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.ListUsersRequest) (*usermgmt.UserListResponse, error) {
		return h.users.List(c.Request().Context(), req)
	}, http.StatusOK)
}
