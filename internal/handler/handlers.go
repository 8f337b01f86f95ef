package handler

import (
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router
// setup passes one object around instead of many.
type Handlers struct {
	Auth    *AuthHandler
	Users   *UsersHandler
	Donors  *DonorsHandler
	Gifts   *GiftsHandler
	Pledges *PledgesHandler
	Events  *EventsHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(s, services.Auth),
		Users:   NewUsersHandler(s, services.Users),
		Donors:  NewDonorsHandler(s, services.Donors),
		Gifts:   NewGiftsHandler(s, services.Gifts),
		Pledges: NewPledgesHandler(s, services.Pledges),
		Events:  NewEventsHandler(s, services.Events),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
