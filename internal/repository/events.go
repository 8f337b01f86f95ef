package repository

import (
	"context"
	"errors"

	"github.com/donorops/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEventFull is returned when a registration would exceed the
// event's capacity.
var ErrEventFull = errors.New("event is at capacity")

// ErrEventClosed is returned when registering for an event that no
// longer accepts registrations.
var ErrEventClosed = errors.New("event does not accept registrations")

// EventsRepository persists events and their donor registrations.
type EventsRepository struct {
	pool *pgxpool.Pool
}

const eventColumns = `id, name, description, starts_at, ends_at, location, capacity, status, created_by, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Description,
		&e.StartsAt,
		&e.EndsAt,
		&e.Location,
		&e.Capacity,
		&e.Status,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &e, nil
}

// Create inserts a new event.
func (r *EventsRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (id, name, description, starts_at, ends_at, location, capacity, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+eventColumns,
		e.ID, e.Name, e.Description, e.StartsAt, e.EndsAt, e.Location, e.Capacity, e.Status, e.CreatedBy,
	)
	return scanEvent(row)
}

// GetByID fetches an event by primary key.
func (r *EventsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

// Update persists the full mutable state of an event. The service
// merges partial updates onto the stored record before calling this.
func (r *EventsRepository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE events
		SET name = $2, description = $3, starts_at = $4, ends_at = $5,
		    location = $6, capacity = $7, status = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+eventColumns,
		e.ID, e.Name, e.Description, e.StartsAt, e.EndsAt, e.Location, e.Capacity, e.Status,
	)
	return scanEvent(row)
}

// List returns events filtered by status, soonest start first, with
// the total count for the filter.
func (r *EventsRepository) List(ctx context.Context, status *domain.EventStatus, limit, offset int) ([]domain.Event, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM events WHERE ($1::text IS NULL OR status = $1)
	`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY starts_at
		LIMIT $2 OFFSET $3
	`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// CountRegistrations returns the number of registrations for an event.
func (r *EventsRepository) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM event_registrations WHERE event_id = $1
	`, eventID).Scan(&count)
	return count, err
}

// Register adds a donor to an event inside a transaction that locks
// the event row, so capacity checks cannot race. A duplicate
// registration surfaces as a unique violation on the composite primary
// key.
func (r *EventsRepository) Register(ctx context.Context, eventID, donorID uuid.UUID) (*domain.EventRegistration, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status domain.EventStatus
	var capacity *int
	if err := tx.QueryRow(ctx, `
		SELECT status, capacity FROM events WHERE id = $1 FOR UPDATE
	`, eventID).Scan(&status, &capacity); err != nil {
		return nil, notFoundOr(err)
	}
	if !status.AcceptsRegistrations() {
		return nil, ErrEventClosed
	}

	if capacity != nil {
		var count int
		if err := tx.QueryRow(ctx, `
			SELECT count(*) FROM event_registrations WHERE event_id = $1
		`, eventID).Scan(&count); err != nil {
			return nil, err
		}
		if count >= *capacity {
			return nil, ErrEventFull
		}
	}

	var reg domain.EventRegistration
	err = tx.QueryRow(ctx, `
		INSERT INTO event_registrations (event_id, donor_id)
		VALUES ($1, $2)
		RETURNING event_id, donor_id, registered_at, attended
	`, eventID, donorID).Scan(&reg.EventID, &reg.DonorID, &reg.RegisteredAt, &reg.Attended)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &reg, nil
}

// SetAttendance marks whether a registered donor attended.
func (r *EventsRepository) SetAttendance(ctx context.Context, eventID, donorID uuid.UUID, attended bool) (*domain.EventRegistration, error) {
	var reg domain.EventRegistration
	err := r.pool.QueryRow(ctx, `
		UPDATE event_registrations
		SET attended = $3
		WHERE event_id = $1 AND donor_id = $2
		RETURNING event_id, donor_id, registered_at, attended
	`, eventID, donorID).Scan(&reg.EventID, &reg.DonorID, &reg.RegisteredAt, &reg.Attended)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &reg, nil
}

// ListRegistrations returns an event's registrations in registration
// order.
func (r *EventsRepository) ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]domain.EventRegistration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, donor_id, registered_at, attended
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY registered_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]domain.EventRegistration, 0)
	for rows.Next() {
		var reg domain.EventRegistration
		if err := rows.Scan(&reg.EventID, &reg.DonorID, &reg.RegisteredAt, &reg.Attended); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return regs, nil
}
