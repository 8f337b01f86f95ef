package service

import (
	"github.com/donorops/backend/internal/lib/job"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/server"
)

// Services is a container that groups all business logic services.
type Services struct {
	Auth    *AuthService
	Users   *UsersService
	Donors  *DonorsService
	Gifts   *GiftsService
	Pledges *PledgesService
	Events  *EventsService
	Job     *job.JobService
}

// NewService constructs the service container.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth:    NewAuthService(s, repos),
		Users:   NewUsersService(s, repos),
		Donors:  NewDonorsService(s, repos),
		Gifts:   NewGiftsService(s, repos),
		Pledges: NewPledgesService(s, repos),
		Events:  NewEventsService(s, repos),
		Job:     s.Job,
	}, nil
}
