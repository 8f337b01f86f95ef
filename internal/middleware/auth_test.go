package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/server"
)

func newAuthMiddleware() *middleware.AuthMiddleware {
	logger := zerolog.Nop()
	return middleware.NewAuthMiddleware(&server.Server{Logger: &logger}, nil)
}

func contextWithRole(role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if role != "" {
		c.Set(middleware.UserRoleKey, role)
	}
	return c
}

func TestRequireRole(t *testing.T) {
	m := newAuthMiddleware()
	next := func(c echo.Context) error { return nil }

	t.Run("matching role passes", func(t *testing.T) {
		h := m.RequireRole(domain.UserRoleAdmin, domain.UserRoleGiftOfficer)(next)
		assert.NoError(t, h(contextWithRole("gift_officer")))
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		h := m.RequireRole(domain.UserRoleAdmin)(next)
		err := h(contextWithRole("viewer"))
		require.Error(t, err)

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusForbidden, httpErr.Status)
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		h := m.RequireRole(domain.UserRoleAdmin)(next)
		assert.Error(t, h(contextWithRole("")))
	})
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m := newAuthMiddleware()
	h := m.RequireAuth(func(c echo.Context) error { return nil })

	e := echo.New()

	t.Run("no header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		err := h(c)
		require.Error(t, err)

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwdw==")
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Error(t, h(c))
	})

	t.Run("empty bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer ")
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Error(t, h(c))
	})
}

func TestContextHelpers(t *testing.T) {
	c := contextWithRole("admin")
	c.Set(middleware.UserIDKey, "user-123")
	c.Set(middleware.TokenIDKey, "jti-456")

	assert.Equal(t, "user-123", middleware.GetUserID(c))
	assert.Equal(t, "admin", middleware.GetUserRole(c))
	assert.Equal(t, "jti-456", middleware.GetTokenID(c))

	empty := contextWithRole("")
	assert.Empty(t, middleware.GetUserID(empty))
	assert.Empty(t, middleware.GetUserRole(empty))
}
