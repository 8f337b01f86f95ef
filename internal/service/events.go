package service

import (
	"context"
	"errors"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/schema/usermgmt"
	"github.com/donorops/backend/internal/server"
	"github.com/google/uuid"
)

// EventsService manages cultivation events and donor registrations.
type EventsService struct {
	server *server.Server
	events *repository.EventsRepository
	donors *repository.DonorsRepository
}

// NewEventsService constructs an EventsService.
func NewEventsService(s *server.Server, repos *repository.Repositories) *EventsService {
	return &EventsService{
		server: s,
		events: repos.Events,
		donors: repos.Donors,
	}
}

// Create records a new event in draft status.
func (s *EventsService) Create(ctx context.Context, req *usermgmt.CreateEventRequest, actorID string) (*usermgmt.EventResponse, error) {
	event, err := s.events.Create(ctx, &domain.Event{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Status:      domain.EventStatusDraft,
		CreatedBy:   uuid.MustParse(actorID),
	})
	if err != nil {
		return nil, err
	}
	return usermgmt.NewEventResponse(event, 0), nil
}

// Get fetches a single event with its registration count.
func (s *EventsService) Get(ctx context.Context, req *usermgmt.GetEventRequest) (*usermgmt.EventResponse, error) {
	eventID := uuid.MustParse(req.ID)

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Event not found", false, nil)
		}
		return nil, err
	}

	registered, err := s.events.CountRegistrations(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return usermgmt.NewEventResponse(event, registered), nil
}

// Update applies a partial update to an event. Nil fields are left
// unchanged. When only one of the timestamps changes, the ordering
// rule is checked against the stored value of the other. Capacity can
// not be reduced below the current registration count.
func (s *EventsService) Update(ctx context.Context, req *usermgmt.UpdateEventRequest) (*usermgmt.EventResponse, error) {
	eventID := uuid.MustParse(req.ID)

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Event not found", false, nil)
		}
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Status != nil {
		event.Status = domain.EventStatus(*req.Status)
	}

	if !event.EndsAt.After(event.StartsAt) {
		return nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "ends_at", Error: "must be after starts_at"},
		}, nil)
	}

	registered, err := s.events.CountRegistrations(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if req.Capacity != nil {
		if *req.Capacity < registered {
			return nil, errs.NewConflictError("Capacity cannot be below the current registration count", false, nil)
		}
		event.Capacity = req.Capacity
	}

	event, err = s.events.Update(ctx, event)
	if err != nil {
		return nil, err
	}

	return usermgmt.NewEventResponse(event, registered), nil
}

// List returns a page of events filtered by status.
func (s *EventsService) List(ctx context.Context, req *usermgmt.ListEventsRequest) (*usermgmt.EventListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	var status *domain.EventStatus
	if req.Status != "" {
		v := domain.EventStatus(req.Status)
		status = &v
	}

	events, total, err := s.events.List(ctx, status, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]*usermgmt.EventResponse, 0, len(events))
	for i := range events {
		registered, err := s.events.CountRegistrations(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, usermgmt.NewEventResponse(&events[i], registered))
	}

	return &usermgmt.EventListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

// Register adds a donor to an event. Registration is rejected when the
// event is cancelled or completed, when it is at capacity, or when the
// donor is already registered.
func (s *EventsService) Register(ctx context.Context, req *usermgmt.RegisterDonorRequest) (*usermgmt.RegistrationResponse, error) {
	eventID := uuid.MustParse(req.EventID)
	donorID := uuid.MustParse(req.DonorID)

	if _, err := s.donors.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Donor not found", false, nil)
		}
		return nil, err
	}

	reg, err := s.events.Register(ctx, eventID, donorID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, errs.NewNotFoundError("Event not found", false, nil)
		case errors.Is(err, repository.ErrEventClosed):
			return nil, errs.NewConflictError("Event does not accept registrations", false, nil)
		case errors.Is(err, repository.ErrEventFull):
			return nil, errs.NewConflictError("Event is at capacity", false, nil)
		}
		return nil, err
	}

	return usermgmt.NewRegistrationResponse(reg), nil
}

// SetAttendance marks whether a registered donor attended.
func (s *EventsService) SetAttendance(ctx context.Context, req *usermgmt.UpdateRegistrationRequest) (*usermgmt.RegistrationResponse, error) {
	reg, err := s.events.SetAttendance(ctx, uuid.MustParse(req.EventID), uuid.MustParse(req.DonorID), req.Attended)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Registration not found", false, nil)
		}
		return nil, err
	}
	return usermgmt.NewRegistrationResponse(reg), nil
}

// Registrations lists an event's registrations.
func (s *EventsService) Registrations(ctx context.Context, req *usermgmt.GetEventRequest) ([]*usermgmt.RegistrationResponse, error) {
	eventID := uuid.MustParse(req.ID)

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Event not found", false, nil)
		}
		return nil, err
	}

	regs, err := s.events.ListRegistrations(ctx, eventID)
	if err != nil {
		return nil, err
	}

	items := make([]*usermgmt.RegistrationResponse, 0, len(regs))
	for i := range regs {
		items = append(items, usermgmt.NewRegistrationResponse(&regs[i]))
	}
	return items, nil
}
