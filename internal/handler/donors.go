package handler

import (
	"net/http"

	"github.com/donorops/backend/internal/schema/majorgifts"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DonorsHandler exposes donor record endpoints.
type DonorsHandler struct {
	Handler
	donors *service.DonorsService
}

// NewDonorsHandler constructs a DonorsHandler.
func NewDonorsHandler(s *server.Server, donors *service.DonorsService) *DonorsHandler {
	return &DonorsHandler{
		Handler: NewHandler(s),
		donors:  donors,
	}
}

// Create handles POST /api/v1/donors.
func (h *DonorsHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.CreateDonorRequest) (*majorgifts.DonorResponse, error) {
		return h.donors.Create(c.Request().Context(), req)
	}, http.StatusCreated)
}

// Get handles GET /api/v1/donors/:id.
func (h *DonorsHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.GetDonorRequest) (*majorgifts.DonorResponse, error) {
		return h.donors.Get(c.Request().Context(), req)
	}, http.StatusOK)
}

// Update handles PATCH /api/v1/donors/:id.
func (h *DonorsHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.UpdateDonorRequest) (*majorgifts.DonorResponse, error) {
		return h.donors.Update(c.Request().Context(), req)
	}, http.StatusOK)
}

// List handles GET /api/v1/donors.
func (h *DonorsHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.ListDonorsRequest) (*majorgifts.DonorListResponse, error) {
		return h.donors.List(c.Request().Context(), req)
	}, http.StatusOK)
}

// Summary handles GET /api/v1/donors/:id/summary.
func (h *DonorsHandler) Summary() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.GetDonorRequest) (*majorgifts.GivingSummaryResponse, error) {
		return h.donors.Summary(c.Request().Context(), req)
	}, http.StatusOK)
}
