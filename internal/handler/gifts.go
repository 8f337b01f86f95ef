package handler

import (
	"net/http"

	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/schema/majorgifts"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// GiftsHandler exposes gift recording and receipt endpoints.
type GiftsHandler struct {
	Handler
	gifts *service.GiftsService
}

// NewGiftsHandler constructs a GiftsHandler.
func NewGiftsHandler(s *server.Server, gifts *service.GiftsService) *GiftsHandler {
	return &GiftsHandler{
		Handler: NewHandler(s),
		gifts:   gifts,
	}
}

// Create handles POST /api/v1/gifts.
func (h *GiftsHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.CreateGiftRequest) (*majorgifts.GiftResponse, error) {
		return h.gifts.Create(c.Request().Context(), req, middleware.GetUserID(c))
	}, http.StatusCreated)
}

// Get handles GET /api/v1/gifts/:id.
func (h *GiftsHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.GetGiftRequest) (*majorgifts.GiftResponse, error) {
		return h.gifts.Get(c.Request().Context(), req)
	}, http.StatusOK)
}

// IssueReceipt handles POST /api/v1/gifts/:id/receipt.
func (h *GiftsHandler) IssueReceipt() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.IssueReceiptRequest) (*majorgifts.GiftResponse, error) {
		return h.gifts.IssueReceipt(c.Request().Context(), req)
	}, http.StatusOK)
}

// List handles GET /api/v1/gifts.
func (h *GiftsHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *majorgifts.ListGiftsRequest) (*majorgifts.GiftListResponse, error) {
		return h.gifts.List(c.Request().Context(), req)
	}, http.StatusOK)
}
