package majorgifts_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/schema/majorgifts"
	"github.com/donorops/backend/internal/validation"
)

func strPtr(s string) *string { return &s }

func TestCreateGiftRequest_PledgeIDCrossField(t *testing.T) {
	base := majorgifts.CreateGiftRequest{
		DonorID:  uuid.NewString(),
		Amount:   "250.00",
		GiftDate: "2026-04-01",
		Kind:     "cash",
	}

	t.Run("cash gift without pledge is valid", func(t *testing.T) {
		req := base
		assert.NoError(t, req.Validate())
	})

	t.Run("pledge_payment requires pledge_id", func(t *testing.T) {
		req := base
		req.Kind = "pledge_payment"
		err := req.Validate()
		require.Error(t, err)

		custom, ok := err.(validation.CustomValidationErrors)
		require.True(t, ok)
		require.Len(t, custom, 1)
		assert.Equal(t, "pledge_id", custom[0].Field)
	})

	t.Run("pledge_payment with pledge_id is valid", func(t *testing.T) {
		req := base
		req.Kind = "pledge_payment"
		req.PledgeID = strPtr(uuid.NewString())
		assert.NoError(t, req.Validate())
	})

	t.Run("non-pledge gift must not carry pledge_id", func(t *testing.T) {
		req := base
		req.PledgeID = strPtr(uuid.NewString())
		err := req.Validate()
		require.Error(t, err)

		custom, ok := err.(validation.CustomValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "pledge_id", custom[0].Field)
	})
}

func TestCreateGiftRequest_RejectsBadAmounts(t *testing.T) {
	req := majorgifts.CreateGiftRequest{
		DonorID:  uuid.NewString(),
		Amount:   "0",
		GiftDate: "2026-04-01",
		Kind:     "cash",
	}
	assert.Error(t, req.Validate())

	req.Amount = "100.999"
	assert.Error(t, req.Validate())
}

func TestCreatePledgeRequest_InstallmentRepresentability(t *testing.T) {
	req := majorgifts.CreatePledgeRequest{
		DonorID:      uuid.NewString(),
		TotalAmount:  "1.00",
		StartDate:    "2026-01-01",
		Frequency:    "monthly",
		Installments: 300,
	}

	// 1.00 / 300 rounds to 0.00, so the schedule cannot be built.
	err := req.Validate()
	require.Error(t, err)
	custom, ok := err.(validation.CustomValidationErrors)
	require.True(t, ok)
	assert.Equal(t, "installments", custom[0].Field)

	// 0.05 / 9 rounds up to 0.01 per installment, which overshoots
	// the total and would leave a negative final installment.
	req.TotalAmount = "0.05"
	req.Installments = 9
	assert.Error(t, req.Validate())

	// 0.04 / 5 leaves a zero final installment.
	req.TotalAmount = "0.04"
	req.Installments = 5
	assert.Error(t, req.Validate())

	req.TotalAmount = "1200.00"
	req.Installments = 12
	assert.NoError(t, req.Validate())
}

func TestCreatePledgeRequest_Bounds(t *testing.T) {
	req := majorgifts.CreatePledgeRequest{
		DonorID:      uuid.NewString(),
		TotalAmount:  "1200.00",
		StartDate:    "2026-01-01",
		Frequency:    "monthly",
		Installments: 361,
	}
	assert.Error(t, req.Validate())

	req.Installments = 0
	assert.Error(t, req.Validate())

	req.Installments = 1
	assert.NoError(t, req.Validate())
}

func TestListGiftsRequest_DateOrdering(t *testing.T) {
	req := majorgifts.ListGiftsRequest{From: "2026-02-01", To: "2026-01-01"}
	err := req.Validate()
	require.Error(t, err)

	custom, ok := err.(validation.CustomValidationErrors)
	require.True(t, ok)
	assert.Equal(t, "to", custom[0].Field)

	req.To = "2026-03-01"
	assert.NoError(t, req.Validate())
}

func TestNewGiftResponse(t *testing.T) {
	pledgeID := uuid.New()
	now := time.Now()
	gift := &domain.Gift{
		ID:         uuid.New(),
		DonorID:    uuid.New(),
		Amount:     decimal.RequireFromString("250.5"),
		Currency:   "USD",
		GiftDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Kind:       domain.GiftKindPledgePayment,
		PledgeID:   &pledgeID,
		RecordedBy: uuid.New(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	resp := majorgifts.NewGiftResponse(gift)
	assert.Equal(t, "250.50", resp.Amount)
	assert.Equal(t, "2026-04-01", resp.GiftDate)
	assert.Equal(t, "pledge_payment", resp.Kind)
	require.NotNil(t, resp.PledgeID)
	assert.Equal(t, pledgeID.String(), *resp.PledgeID)
	assert.Nil(t, resp.ReceiptedAt)
}

func TestNewPledgeResponse(t *testing.T) {
	pledge := &domain.Pledge{
		ID:           uuid.New(),
		DonorID:      uuid.New(),
		TotalAmount:  decimal.RequireFromString("1200.00"),
		Currency:     "USD",
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Frequency:    domain.FrequencyMonthly,
		Installments: 2,
		Status:       domain.PledgeStatusActive,
		CreatedBy:    uuid.New(),
	}
	paidGift := uuid.New()
	installments := []domain.PledgeInstallment{
		{ID: uuid.New(), Sequence: 1, DueDate: pledge.StartDate, Amount: decimal.RequireFromString("600.00"), Status: domain.InstallmentStatusPaid, PaidGiftID: &paidGift},
		{ID: uuid.New(), Sequence: 2, DueDate: pledge.StartDate.AddDate(0, 1, 0), Amount: decimal.RequireFromString("600.00"), Status: domain.InstallmentStatusScheduled},
	}

	t.Run("with schedule", func(t *testing.T) {
		resp := majorgifts.NewPledgeResponse(pledge, installments)
		assert.Equal(t, "600.00", resp.Outstanding)
		require.Len(t, resp.Schedule, 2)
		assert.Equal(t, "paid", resp.Schedule[0].Status)
		require.NotNil(t, resp.Schedule[0].PaidGiftID)
		assert.Equal(t, paidGift.String(), *resp.Schedule[0].PaidGiftID)
		assert.Nil(t, resp.Schedule[1].PaidGiftID)
	})

	t.Run("list view omits schedule and outstanding", func(t *testing.T) {
		resp := majorgifts.NewPledgeResponse(pledge, nil)
		assert.Empty(t, resp.Outstanding)
		assert.Nil(t, resp.Schedule)
	})
}
