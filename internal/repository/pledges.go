package repository

import (
	"context"
	"errors"

	"github.com/donorops/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPledgeNotCancellable is returned when cancelling a pledge that is
// not active.
var ErrPledgeNotCancellable = errors.New("pledge is not active")

// PledgesRepository persists pledges and their installment schedules.
type PledgesRepository struct {
	pool *pgxpool.Pool
}

const pledgeColumns = `id, donor_id, total_amount, currency, start_date, frequency, installments, status, created_by, created_at, updated_at`

func scanPledge(row pgx.Row) (*domain.Pledge, error) {
	var p domain.Pledge
	err := row.Scan(
		&p.ID,
		&p.DonorID,
		&p.TotalAmount,
		&p.Currency,
		&p.StartDate,
		&p.Frequency,
		&p.Installments,
		&p.Status,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

// Create inserts a pledge together with its installment schedule in
// one transaction.
func (r *PledgesRepository) Create(ctx context.Context, p *domain.Pledge, installments []domain.PledgeInstallment) (*domain.Pledge, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	pledge, err := scanPledge(tx.QueryRow(ctx, `
		INSERT INTO pledges (id, donor_id, total_amount, currency, start_date, frequency, installments, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+pledgeColumns,
		p.ID, p.DonorID, p.TotalAmount, p.Currency, p.StartDate, p.Frequency, p.Installments, p.Status, p.CreatedBy,
	))
	if err != nil {
		return nil, err
	}

	for _, inst := range installments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO pledge_installments (id, pledge_id, sequence, due_date, amount, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, inst.ID, inst.PledgeID, inst.Sequence, inst.DueDate, inst.Amount, inst.Status); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return pledge, nil
}

// GetByID fetches a pledge by primary key.
func (r *PledgesRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+pledgeColumns+` FROM pledges WHERE id = $1`, id)
	return scanPledge(row)
}

// GetInstallments returns a pledge's schedule in sequence order.
func (r *PledgesRepository) GetInstallments(ctx context.Context, pledgeID uuid.UUID) ([]domain.PledgeInstallment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, pledge_id, sequence, due_date, amount, status, paid_gift_id
		FROM pledge_installments
		WHERE pledge_id = $1
		ORDER BY sequence
	`, pledgeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	installments := make([]domain.PledgeInstallment, 0)
	for rows.Next() {
		var inst domain.PledgeInstallment
		if err := rows.Scan(&inst.ID, &inst.PledgeID, &inst.Sequence, &inst.DueDate, &inst.Amount, &inst.Status, &inst.PaidGiftID); err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return installments, nil
}

// Cancel marks an active pledge cancelled and cancels its unpaid
// installments. Paid installments keep their history.
func (r *PledgesRepository) Cancel(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status domain.PledgeStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM pledges WHERE id = $1 FOR UPDATE`, id).Scan(&status); err != nil {
		return nil, notFoundOr(err)
	}
	if status != domain.PledgeStatusActive {
		return nil, ErrPledgeNotCancellable
	}

	if _, err := tx.Exec(ctx, `
		UPDATE pledge_installments
		SET status = 'cancelled'
		WHERE pledge_id = $1 AND status IN ('scheduled', 'overdue')
	`, id); err != nil {
		return nil, err
	}

	pledge, err := scanPledge(tx.QueryRow(ctx, `
		UPDATE pledges SET status = 'cancelled', updated_at = now()
		WHERE id = $1
		RETURNING `+pledgeColumns,
		id,
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return pledge, nil
}

// List returns pledges filtered by donor and/or status, newest first,
// with the total count for the filter.
func (r *PledgesRepository) List(ctx context.Context, donorID *uuid.UUID, status *domain.PledgeStatus, limit, offset int) ([]domain.Pledge, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM pledges
		WHERE ($1::uuid IS NULL OR donor_id = $1)
		  AND ($2::text IS NULL OR status = $2)
	`, donorID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+pledgeColumns+`
		FROM pledges
		WHERE ($1::uuid IS NULL OR donor_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, donorID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	pledges := make([]domain.Pledge, 0)
	for rows.Next() {
		p, err := scanPledge(rows)
		if err != nil {
			return nil, 0, err
		}
		pledges = append(pledges, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return pledges, total, nil
}
