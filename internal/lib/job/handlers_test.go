package job

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/config"
	"github.com/donorops/backend/internal/database"
	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/lib/email"
)

// setupSweep connects the package-level handler dependencies to the
// database named by TEST_DATABASE_URL. Skips when it is unset.
func setupSweep(t *testing.T) *JobService {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	connConfig, err := pgx.ParseConfig(dsn)
	require.NoError(t, err)

	logger := zerolog.Nop()
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:     connConfig.Host,
			Port:     int(connConfig.Port),
			User:     connConfig.User,
			Password: connConfig.Password,
			Name:     connConfig.Database,
			SSLMode:  "disable",
		},
	}
	require.NoError(t, database.Migrate(ctx, &logger, cfg))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	dbPool = pool
	emailClient = email.NewClient(cfg, &logger)

	return &JobService{logger: &logger}
}

// seedPledge inserts an active pledge with a single scheduled
// installment due at the given date. The donor has no email on file so
// the sweep sends nothing.
func seedPledge(t *testing.T, ctx context.Context, due time.Time) uuid.UUID {
	t.Helper()

	officerID := uuid.New()
	_, err := dbPool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role)
		VALUES ($1, $2, 'Sweep Officer', 'unused', 'gift_officer')
	`, officerID, uuid.NewString()+"@example.org")
	require.NoError(t, err)

	donorID := uuid.New()
	_, err = dbPool.Exec(ctx, `
		INSERT INTO donors (id, first_name, last_name, stage)
		VALUES ($1, 'Grace', 'Hopper', 'stewardship')
	`, donorID)
	require.NoError(t, err)

	pledgeID := uuid.New()
	_, err = dbPool.Exec(ctx, `
		INSERT INTO pledges (id, donor_id, total_amount, currency, start_date, frequency, installments, status, created_by)
		VALUES ($1, $2, 100.00, 'USD', $3, 'monthly', 1, 'active', $4)
	`, pledgeID, donorID, due, officerID)
	require.NoError(t, err)

	_, err = dbPool.Exec(ctx, `
		INSERT INTO pledge_installments (id, pledge_id, sequence, due_date, amount, status)
		VALUES ($1, $2, 1, $3, 100.00, 'scheduled')
	`, uuid.New(), pledgeID, due)
	require.NoError(t, err)

	return pledgeID
}

func pledgeStatus(t *testing.T, ctx context.Context, id uuid.UUID) string {
	t.Helper()
	var status string
	require.NoError(t, dbPool.QueryRow(ctx, `SELECT status FROM pledges WHERE id = $1`, id).Scan(&status))
	return status
}

func TestOverdueSweep_DefaultsLongOverduePledges(t *testing.T) {
	j := setupSweep(t)
	ctx := context.Background()

	longOverdue := seedPledge(t, ctx, time.Now().UTC().Add(-domain.PledgeDefaultGrace-24*time.Hour))
	recentlyOverdue := seedPledge(t, ctx, time.Now().UTC().Add(-5*24*time.Hour))

	require.NoError(t, j.handleOverdueSweepTask(ctx, asynq.NewTask(TaskOverdueSweep, nil)))

	// Both installments go overdue, but only the pledge past the grace
	// period defaults.
	assert.Equal(t, "defaulted", pledgeStatus(t, ctx, longOverdue))
	assert.Equal(t, "active", pledgeStatus(t, ctx, recentlyOverdue))

	var installmentStatus string
	require.NoError(t, dbPool.QueryRow(ctx, `
		SELECT status FROM pledge_installments WHERE pledge_id = $1
	`, recentlyOverdue).Scan(&installmentStatus))
	assert.Equal(t, "overdue", installmentStatus)
}
