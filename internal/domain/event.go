package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus enumerates the lifecycle states of a cultivation event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// AcceptsRegistrations reports whether donors can still be registered
// for an event in this status.
func (s EventStatus) AcceptsRegistrations() bool {
	return s == EventStatusDraft || s == EventStatusPublished
}

// Event represents a cultivation or stewardship event donors are
// invited to.
type Event struct {
	ID          uuid.UUID
	Name        string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	Location    string
	Capacity    *int
	Status      EventStatus
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventRegistration links a donor to an event.
type EventRegistration struct {
	EventID      uuid.UUID
	DonorID      uuid.UUID
	RegisteredAt time.Time
	Attended     bool
}
