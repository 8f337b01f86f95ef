package repository

import (
	"context"

	"github.com/donorops/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DonorsRepository persists donor and prospect records.
type DonorsRepository struct {
	pool *pgxpool.Pool
}

const donorColumns = `id, first_name, last_name, email, phone, giving_capacity, stage, assigned_officer_id, notes, created_at, updated_at`

func scanDonor(row pgx.Row) (*domain.Donor, error) {
	var d domain.Donor
	err := row.Scan(
		&d.ID,
		&d.FirstName,
		&d.LastName,
		&d.Email,
		&d.Phone,
		&d.GivingCapacity,
		&d.Stage,
		&d.AssignedOfficerID,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &d, nil
}

// Create inserts a new donor record.
func (r *DonorsRepository) Create(ctx context.Context, d *domain.Donor) (*domain.Donor, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO donors (id, first_name, last_name, email, phone, giving_capacity, stage, assigned_officer_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+donorColumns,
		d.ID, d.FirstName, d.LastName, d.Email, d.Phone, d.GivingCapacity, d.Stage, d.AssignedOfficerID, d.Notes,
	)
	return scanDonor(row)
}

// GetByID fetches a donor by primary key.
func (r *DonorsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+donorColumns+` FROM donors WHERE id = $1`, id)
	return scanDonor(row)
}

// Update persists the full mutable state of a donor. The service
// merges partial updates onto the stored record before calling this.
func (r *DonorsRepository) Update(ctx context.Context, d *domain.Donor) (*domain.Donor, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE donors
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
		    giving_capacity = $6, stage = $7, assigned_officer_id = $8,
		    notes = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+donorColumns,
		d.ID, d.FirstName, d.LastName, d.Email, d.Phone, d.GivingCapacity, d.Stage, d.AssignedOfficerID, d.Notes,
	)
	return scanDonor(row)
}

// List returns donors filtered by stage and/or assigned officer, newest
// first, with the total count for the filter.
func (r *DonorsRepository) List(ctx context.Context, stage *domain.DonorStage, officerID *uuid.UUID, limit, offset int) ([]domain.Donor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM donors
		WHERE ($1::text IS NULL OR stage = $1)
		  AND ($2::uuid IS NULL OR assigned_officer_id = $2)
	`, stage, officerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+donorColumns+`
		FROM donors
		WHERE ($1::text IS NULL OR stage = $1)
		  AND ($2::uuid IS NULL OR assigned_officer_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, stage, officerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	donors := make([]domain.Donor, 0)
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, 0, err
		}
		donors = append(donors, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return donors, total, nil
}

// GivingSummary aggregates a donor's recorded giving: gift totals from
// the gifts table, plus active pledge count and the unpaid balance of
// their installment schedules.
func (r *DonorsRepository) GivingSummary(ctx context.Context, donorID uuid.UUID) (*domain.GivingSummary, error) {
	s := domain.GivingSummary{DonorID: donorID}

	err := r.pool.QueryRow(ctx, `
		SELECT count(*),
		       COALESCE(sum(amount), 0),
		       COALESCE(max(amount), 0),
		       max(gift_date)
		FROM gifts
		WHERE donor_id = $1
	`, donorID).Scan(&s.GiftCount, &s.TotalGiven, &s.LargestGift, &s.LastGiftDate)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
		SELECT count(DISTINCT p.id),
		       COALESCE(sum(i.amount) FILTER (WHERE i.status IN ('scheduled', 'overdue')), 0)
		FROM pledges p
		LEFT JOIN pledge_installments i ON i.pledge_id = p.id
		WHERE p.donor_id = $1 AND p.status = 'active'
	`, donorID).Scan(&s.ActivePledges, &s.PledgedBalance)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
