package handler

import (
	"net/http"

	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/schema/usermgmt"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// EventsHandler exposes event and registration endpoints.
type EventsHandler struct {
	Handler
	events *service.EventsService
}

// NewEventsHandler constructs an EventsHandler.
func NewEventsHandler(s *server.Server, events *service.EventsService) *EventsHandler {
	return &EventsHandler{
		Handler: NewHandler(s),
		events:  events,
	}
}

// Create handles POST /api/v1/events.
func (h *EventsHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.CreateEventRequest) (*usermgmt.EventResponse, error) {
		return h.events.Create(c.Request().Context(), req, middleware.GetUserID(c))
	}, http.StatusCreated)
}

// Get handles GET /api/v1/events/:id.
func (h *EventsHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.GetEventRequest) (*usermgmt.EventResponse, error) {
		return h.events.Get(c.Request().Context(), req)
	}, http.StatusOK)
}

// Update handles PATCH /api/v1/events/:id.
func (h *EventsHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.UpdateEventRequest) (*usermgmt.EventResponse, error) {
		return h.events.Update(c.Request().Context(), req)
	}, http.StatusOK)
}

// List handles GET /api/v1/events.
func (h *EventsHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.ListEventsRequest) (*usermgmt.EventListResponse, error) {
		return h.events.List(c.Request().Context(), req)
	}, http.StatusOK)
}

// Register handles POST /api/v1/events/:id/registrations.
func (h *EventsHandler) Register() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.RegisterDonorRequest) (*usermgmt.RegistrationResponse, error) {
		return h.events.Register(c.Request().Context(), req)
	}, http.StatusCreated)
}

// Registrations handles GET /api/v1/events/:id/registrations.
func (h *EventsHandler) Registrations() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.GetEventRequest) ([]*usermgmt.RegistrationResponse, error) {
		return h.events.Registrations(c.Request().Context(), req)
	}, http.StatusOK)
}

// SetAttendance handles PATCH /api/v1/events/:id/registrations/:donor_id.
func (h *EventsHandler) SetAttendance() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *usermgmt.UpdateRegistrationRequest) (*usermgmt.RegistrationResponse, error) {
		return h.events.SetAttendance(c.Request().Context(), req)
	}, http.StatusOK)
}
