package handler

import (
	"net/http"

	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/schema/majorgifts"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// PledgesHandler exposes pledge and installment schedule endpoints.
type PledgesHandler struct {
	Handler
	pledges *service.PledgesService
}

// NewPledgesHandler constructs a PledgesHandler.
func NewPledgesHandler(s *server.Server, pledges *service.PledgesService) *PledgesHandler {
	return &PledgesHandler{
		Handler: NewHandler(s),
		pledges: pledges,
	}
}

// Create handles POST /api/v1/pledges.
func (h *PledgesHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.CreatePledgeRequest) (*majorgifts.PledgeResponse, error) {
		return h.pledges.Create(c.Request().Context(), req, middleware.GetUserID(c))
	}, http.StatusCreated)
}

// Get handles GET /api/v1/pledges/:id.
func (h *PledgesHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.GetPledgeRequest) (*majorgifts.PledgeResponse, error) {
		return h.pledges.Get(c.Request().Context(), req)
	}, http.StatusOK)
}

// Cancel handles POST /api/v1/pledges/:id/cancel.
func (h *PledgesHandler) Cancel() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.CancelPledgeRequest) (*majorgifts.PledgeResponse, error) {
		return h.pledges.Cancel(c.Request().Context(), req)
	}, http.StatusOK)
}

// List handles GET /api/v1/pledges.
func (h *PledgesHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.ListPledgesRequest) (*majorgifts.PledgeListResponse, error) {
		return h.pledges.List(c.Request().Context(), req)
	}, http.StatusOK)
}
