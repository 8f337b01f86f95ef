package repository

import (
	"github.com/donorops/backend/internal/server"
)

// Repositories is a container for all repository instances. Services
// receive this single container instead of individual repos.
type Repositories struct {
	Users   *UsersRepository
	Donors  *DonorsRepository
	Gifts   *GiftsRepository
	Pledges *PledgesRepository
	Events  *EventsRepository
}

// NewRepositories constructs the repository container. Every repo
// shares the pgx pool from the app container.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Users:   &UsersRepository{pool: pool},
		Donors:  &DonorsRepository{pool: pool},
		Gifts:   &GiftsRepository{pool: pool},
		Pledges: &PledgesRepository{pool: pool},
		Events:  &EventsRepository{pool: pool},
	}
}
