package repository

import (
	"context"
	"errors"
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrPledgeNotPayable is returned when a pledge payment targets a
// pledge that is not active.
var ErrPledgeNotPayable = errors.New("pledge is not active")

// ErrPledgeOverpaid is returned when a payment exceeds the pledge's
// outstanding balance.
var ErrPledgeOverpaid = errors.New("payment exceeds outstanding balance")

// GiftsRepository persists gift records. Pledge payments also touch
// the installment schedule, inside a single transaction.
type GiftsRepository struct {
	pool *pgxpool.Pool
}

const giftColumns = `id, donor_id, amount, currency, gift_date, kind, designation, pledge_id, receipted_at, recorded_by, created_at, updated_at`

func scanGift(row pgx.Row) (*domain.Gift, error) {
	var g domain.Gift
	err := row.Scan(
		&g.ID,
		&g.DonorID,
		&g.Amount,
		&g.Currency,
		&g.GiftDate,
		&g.Kind,
		&g.Designation,
		&g.PledgeID,
		&g.ReceiptedAt,
		&g.RecordedBy,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &g, nil
}

const insertGiftSQL = `
	INSERT INTO gifts (id, donor_id, amount, currency, gift_date, kind, designation, pledge_id, recorded_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + giftColumns

// Create inserts a plain (non pledge_payment) gift.
func (r *GiftsRepository) Create(ctx context.Context, g *domain.Gift) (*domain.Gift, error) {
	row := r.pool.QueryRow(ctx, insertGiftSQL,
		g.ID, g.DonorID, g.Amount, g.Currency, g.GiftDate, g.Kind, g.Designation, g.PledgeID, g.RecordedBy,
	)
	return scanGift(row)
}

// CreatePledgePayment inserts a pledge_payment gift and applies its
// amount to the pledge's unpaid installments, oldest first, in one
// transaction.
//
// An installment is marked paid only when the remaining gift amount
// fully covers it; a partial remainder is kept on the gift record but
// does not split installments. When nothing unpaid remains afterwards,
// the pledge is marked fulfilled.
func (r *GiftsRepository) CreatePledgePayment(ctx context.Context, g *domain.Gift) (*domain.Gift, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the pledge row so concurrent payments serialize.
	var status domain.PledgeStatus
	err = tx.QueryRow(ctx, `SELECT status FROM pledges WHERE id = $1 FOR UPDATE`, g.PledgeID).Scan(&status)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if status != domain.PledgeStatusActive {
		return nil, ErrPledgeNotPayable
	}

	gift, err := scanGift(tx.QueryRow(ctx, insertGiftSQL,
		g.ID, g.DonorID, g.Amount, g.Currency, g.GiftDate, g.Kind, g.Designation, g.PledgeID, g.RecordedBy,
	))
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, amount
		FROM pledge_installments
		WHERE pledge_id = $1 AND status IN ('scheduled', 'overdue')
		ORDER BY sequence
		FOR UPDATE
	`, g.PledgeID)
	if err != nil {
		return nil, err
	}

	type unpaid struct {
		id     uuid.UUID
		amount decimal.Decimal
	}
	var open []unpaid
	for rows.Next() {
		var u unpaid
		if err := rows.Scan(&u.id, &u.amount); err != nil {
			rows.Close()
			return nil, err
		}
		open = append(open, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	outstanding := decimal.Zero
	for _, u := range open {
		outstanding = outstanding.Add(u.amount)
	}
	if g.Amount.Cmp(outstanding) > 0 {
		return nil, ErrPledgeOverpaid
	}

	remaining := g.Amount
	covered := 0
	for _, u := range open {
		if remaining.Cmp(u.amount) < 0 {
			break
		}
		if _, err := tx.Exec(ctx, `
			UPDATE pledge_installments SET status = 'paid', paid_gift_id = $2 WHERE id = $1
		`, u.id, gift.ID); err != nil {
			return nil, err
		}
		remaining = remaining.Sub(u.amount)
		covered++
	}

	if covered == len(open) {
		if _, err := tx.Exec(ctx, `
			UPDATE pledges SET status = 'fulfilled', updated_at = now() WHERE id = $1
		`, g.PledgeID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return gift, nil
}

// GetByID fetches a gift by primary key.
func (r *GiftsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gift, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+giftColumns+` FROM gifts WHERE id = $1`, id)
	return scanGift(row)
}

// SetReceipted stamps the receipt time on a gift. The stamp only
// lands on an unreceipted row, so issuance stays idempotent under
// concurrent requests; the returned bool reports whether this call
// stamped the gift.
func (r *GiftsRepository) SetReceipted(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Gift, bool, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE gifts
		SET receipted_at = $2, updated_at = now()
		WHERE id = $1 AND receipted_at IS NULL
		RETURNING `+giftColumns,
		id, at,
	)

	gift, err := scanGift(row)
	if err == nil {
		return gift, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	// Either already receipted by a concurrent request or missing;
	// re-read to tell the two apart.
	gift, err = r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return gift, false, nil
}

// List returns gifts filtered by donor and/or an inclusive gift date
// range, newest gift date first, with the total count for the filter.
func (r *GiftsRepository) List(ctx context.Context, donorID *uuid.UUID, from, to *time.Time, limit, offset int) ([]domain.Gift, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM gifts
		WHERE ($1::uuid IS NULL OR donor_id = $1)
		  AND ($2::date IS NULL OR gift_date >= $2)
		  AND ($3::date IS NULL OR gift_date <= $3)
	`, donorID, from, to).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+giftColumns+`
		FROM gifts
		WHERE ($1::uuid IS NULL OR donor_id = $1)
		  AND ($2::date IS NULL OR gift_date >= $2)
		  AND ($3::date IS NULL OR gift_date <= $3)
		ORDER BY gift_date DESC, created_at DESC
		LIMIT $4 OFFSET $5
	`, donorID, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	gifts := make([]domain.Gift, 0)
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			return nil, 0, err
		}
		gifts = append(gifts, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return gifts, total, nil
}
