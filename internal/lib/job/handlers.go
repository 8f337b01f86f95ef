package job

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/donorops/backend/internal/config"
	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Handler dependencies are package-level singletons set by
// InitHandlers. Handlers will panic on nil pointers if InitHandlers is
// not called before the server starts.
var (
	emailClient *email.Client
	dbPool      *pgxpool.Pool
)

// InitHandlers initializes dependencies required by job handlers: the
// email client for outbound mail and the database pool for the
// overdue sweep.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, pool *pgxpool.Pool) {
	emailClient = email.NewClient(cfg, logger)
	dbPool = pool
}

// handleWelcomeEmailTask processes the welcome email task.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("processing welcome email task")

	if err := emailClient.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("failed to send welcome email")
		return err
	}

	return nil
}

// handleReceiptEmailTask processes the gift receipt email task.
func (j *JobService) handleReceiptEmailTask(ctx context.Context, t *asynq.Task) error {
	var p ReceiptEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal receipt email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "receipt").
		Str("to", p.To).
		Str("receipt_number", p.ReceiptNumber).
		Msg("processing receipt email task")

	if err := emailClient.SendReceiptEmail(p.To, p.DonorName, p.Amount, p.Currency, p.GiftDate, p.ReceiptNumber); err != nil {
		j.logger.Error().
			Str("type", "receipt").
			Str("to", p.To).
			Err(err).
			Msg("failed to send receipt email")
		return err
	}

	return nil
}

// handleOverdueSweepTask marks scheduled pledge installments whose due
// date has passed as overdue, sends a reminder to donors with an email
// on file, and defaults pledges whose installments have been overdue
// past the grace period. It runs daily via the scheduler.
func (j *JobService) handleOverdueSweepTask(ctx context.Context, t *asynq.Task) error {
	now := time.Now().UTC()

	rows, err := dbPool.Query(ctx, `
		UPDATE pledge_installments i
		SET status = 'overdue'
		FROM pledges p
		JOIN donors d ON d.id = p.donor_id
		WHERE i.pledge_id = p.id
		  AND i.status = 'scheduled'
		  AND i.due_date < $1
		RETURNING d.email, d.first_name, d.last_name, i.amount, p.currency, i.due_date
	`, now)
	if err != nil {
		j.logger.Error().Err(err).Msg("overdue sweep failed")
		return err
	}
	defer rows.Close()

	type reminder struct {
		email               *string
		firstName, lastName string
		amount              decimal.Decimal
		currency            string
		dueDate             time.Time
	}
	var marked []reminder
	for rows.Next() {
		var rem reminder
		if err := rows.Scan(&rem.email, &rem.firstName, &rem.lastName, &rem.amount, &rem.currency, &rem.dueDate); err != nil {
			return err
		}
		marked = append(marked, rem)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	reminded := 0
	for _, rem := range marked {
		if rem.email == nil {
			continue
		}
		name := strings.TrimSpace(rem.firstName + " " + rem.lastName)
		err := emailClient.SendPledgeReminderEmail(*rem.email, name, rem.amount.StringFixed(2), rem.currency, rem.dueDate.Format("2006-01-02"))
		if err != nil {
			// The installment is already marked; a failed reminder is
			// logged rather than retrying the whole sweep.
			j.logger.Error().Err(err).Str("to", *rem.email).Msg("failed to send pledge reminder")
			continue
		}
		reminded++
	}

	// Pledges with an installment stuck overdue past the grace period
	// are considered defaulted.
	tag, err := dbPool.Exec(ctx, `
		UPDATE pledges p
		SET status = 'defaulted', updated_at = now()
		WHERE p.status = 'active'
		  AND EXISTS (
			SELECT 1
			FROM pledge_installments i
			WHERE i.pledge_id = p.id
			  AND i.status = 'overdue'
			  AND i.due_date < $1
		  )
	`, now.Add(-domain.PledgeDefaultGrace))
	if err != nil {
		j.logger.Error().Err(err).Msg("pledge defaulting failed")
		return err
	}

	j.logger.Info().
		Int("marked_overdue", len(marked)).
		Int("reminders_sent", reminded).
		Int64("pledges_defaulted", tag.RowsAffected()).
		Msg("overdue sweep complete")

	return nil
}
