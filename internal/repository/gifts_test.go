package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/config"
	"github.com/donorops/backend/internal/database"
	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/server"
)

// newTestRepositories connects to the database named by
// TEST_DATABASE_URL and runs migrations against it. Tests that need
// live SQL skip when the variable is unset.
func newTestRepositories(t *testing.T) *repository.Repositories {
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

	return repository.NewRepositories(&server.Server{DB: &database.Database{Pool: pool}})
}

func seedGift(t *testing.T, repos *repository.Repositories) *domain.Gift {
	t.Helper()
	ctx := context.Background()

	officer, err := repos.Users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.org",
		Name:         "Test Officer",
		PasswordHash: "unused",
		Role:         domain.UserRoleGiftOfficer,
		IsActive:     true,
	})
	require.NoError(t, err)

	donor, err := repos.Donors.Create(ctx, &domain.Donor{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Stage:     domain.DonorStageProspect,
	})
	require.NoError(t, err)

	gift, err := repos.Gifts.Create(ctx, &domain.Gift{
		ID:         uuid.New(),
		DonorID:    donor.ID,
		Amount:     decimal.RequireFromString("250.00"),
		Currency:   "USD",
		GiftDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Kind:       domain.GiftKindCash,
		RecordedBy: officer.ID,
	})
	require.NoError(t, err)

	return gift
}

func TestSetReceipted_StampsOnlyOnce(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	gift := seedGift(t, repos)
	require.Nil(t, gift.ReceiptedAt)

	first := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	stampedGift, stamped, err := repos.Gifts.SetReceipted(ctx, gift.ID, first)
	require.NoError(t, err)
	assert.True(t, stamped)
	require.NotNil(t, stampedGift.ReceiptedAt)
	assert.True(t, stampedGift.ReceiptedAt.Equal(first))

	// A second issuance keeps the original stamp and reports that it
	// changed nothing, so the caller does not send a second email.
	second := first.Add(time.Hour)
	repeatGift, stamped, err := repos.Gifts.SetReceipted(ctx, gift.ID, second)
	require.NoError(t, err)
	assert.False(t, stamped)
	require.NotNil(t, repeatGift.ReceiptedAt)
	assert.True(t, repeatGift.ReceiptedAt.Equal(first))
}

func TestSetReceipted_MissingGift(t *testing.T) {
	repos := newTestRepositories(t)

	_, _, err := repos.Gifts.SetReceipted(context.Background(), uuid.New(), time.Now().UTC())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
