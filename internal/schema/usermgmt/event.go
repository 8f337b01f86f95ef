package usermgmt

import (
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/validation"
)

// CreateEventRequest is the payload for creating a cultivation event.
type CreateEventRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	Location    string    `json:"location" validate:"max=500"`
	Capacity    *int      `json:"capacity" validate:"omitempty,gt=0"`
}

func (r *CreateEventRequest) Validate() error {
	if err := validation.Validator().Struct(r); err != nil {
		return err
	}
	if !r.EndsAt.After(r.StartsAt) {
		return validation.CustomValidationErrors{{
			Field:   "ends_at",
			Message: "must be after starts_at",
		}}
	}
	return nil
}

// UpdateEventRequest is the payload for a partial event update. Nil
// fields are left unchanged. When both timestamps change the ordering
// rule is re-checked here; when only one changes, the service checks
// against the stored value.
type UpdateEventRequest struct {
	ID          string     `param:"id" validate:"required,uuid"`
	Name        *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Location    *string    `json:"location" validate:"omitempty,max=500"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gt=0"`
	Status      *string    `json:"status" validate:"omitempty,oneof=draft published cancelled completed"`
}

func (r *UpdateEventRequest) Validate() error {
	if err := validation.Validator().Struct(r); err != nil {
		return err
	}
	if r.StartsAt != nil && r.EndsAt != nil && !r.EndsAt.After(*r.StartsAt) {
		return validation.CustomValidationErrors{{
			Field:   "ends_at",
			Message: "must be after starts_at",
		}}
	}
	return nil
}

// GetEventRequest identifies an event by path parameter.
type GetEventRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetEventRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// ListEventsRequest carries the query filters for event listings.
type ListEventsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=draft published cancelled completed"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

func (r *ListEventsRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// RegisterDonorRequest registers a donor for an event.
type RegisterDonorRequest struct {
	EventID string `param:"id" validate:"required,uuid"`
	DonorID string `json:"donor_id" validate:"required,uuid"`
}

func (r *RegisterDonorRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// UpdateRegistrationRequest marks attendance for a registration.
type UpdateRegistrationRequest struct {
	EventID  string `param:"id" validate:"required,uuid"`
	DonorID  string `param:"donor_id" validate:"required,uuid"`
	Attended bool   `json:"attended"`
}

func (r *UpdateRegistrationRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// EventResponse is the wire representation of an event.
type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location"`
	Capacity    *int      `json:"capacity"`
	Status      string    `json:"status"`
	Registered  int       `json:"registered"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEventResponse maps a domain event onto the wire shape.
// registered is the current registration count.
func NewEventResponse(e *domain.Event, registered int) *EventResponse {
	return &EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Location:    e.Location,
		Capacity:    e.Capacity,
		Status:      string(e.Status),
		Registered:  registered,
		CreatedBy:   e.CreatedBy.String(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EventListResponse wraps a page of events.
type EventListResponse struct {
	Items  []*EventResponse `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// RegistrationResponse is the wire representation of an event
// registration.
type RegistrationResponse struct {
	EventID      string    `json:"event_id"`
	DonorID      string    `json:"donor_id"`
	RegisteredAt time.Time `json:"registered_at"`
	Attended     bool      `json:"attended"`
}

// NewRegistrationResponse maps a domain registration onto the wire
// shape.
func NewRegistrationResponse(r *domain.EventRegistration) *RegistrationResponse {
	return &RegistrationResponse{
		EventID:      r.EventID.String(),
		DonorID:      r.DonorID.String(),
		RegisteredAt: r.RegisteredAt,
		Attended:     r.Attended,
	}
}
