package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/handler"
	"github.com/donorops/backend/internal/validation"
)

type echoRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r *echoRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type echoResponse struct {
	Greeting string `json:"greeting"`
}

func TestHandle_Success(t *testing.T) {
	h := handler.NewHandler(nil)
	fn := handler.Handle(h, func(c echo.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Greeting: "hello " + req.Name}, nil
	}, http.StatusOK)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"donorops"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, fn(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"greeting":"hello donorops"}`, rec.Body.String())
}

func TestHandle_AllocatesRequestPerCall(t *testing.T) {
	h := handler.NewHandler(nil)

	var seen []*echoRequest
	fn := handler.Handle(h, func(c echo.Context, req *echoRequest) (*echoResponse, error) {
		seen = append(seen, req)
		return &echoResponse{}, nil
	}, http.StatusOK)

	e := echo.New()
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())
		require.NoError(t, fn(c))
	}

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
}

func TestHandle_ValidationFailure(t *testing.T) {
	h := handler.NewHandler(nil)
	called := false
	fn := handler.Handle(h, func(c echo.Context, req *echoRequest) (*echoResponse, error) {
		called = true
		return nil, nil
	}, http.StatusOK)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := fn(c)
	require.Error(t, err)
	assert.False(t, called)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandle_PropagatesHandlerError(t *testing.T) {
	h := handler.NewHandler(nil)
	fn := handler.Handle(h, func(c echo.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errs.NewNotFoundError("Donor not found", true, nil)
	}, http.StatusOK)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := fn(c)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleNoContent(t *testing.T) {
	h := handler.NewHandler(nil)
	fn := handler.HandleNoContent(h, func(c echo.Context, req *echoRequest) error {
		return nil
	}, http.StatusNoContent)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, fn(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
