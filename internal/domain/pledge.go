package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PledgeFrequency enumerates how often pledge installments come due.
type PledgeFrequency string

const (
	FrequencyMonthly   PledgeFrequency = "monthly"
	FrequencyQuarterly PledgeFrequency = "quarterly"
	FrequencyAnnually  PledgeFrequency = "annually"
	FrequencyCustom    PledgeFrequency = "custom"
)

// Valid reports whether the frequency is one of the known values.
func (f PledgeFrequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually, FrequencyCustom:
		return true
	}
	return false
}

// PledgeStatus enumerates the lifecycle states of a pledge.
type PledgeStatus string

const (
	PledgeStatusActive    PledgeStatus = "active"
	PledgeStatusFulfilled PledgeStatus = "fulfilled"
	PledgeStatusCancelled PledgeStatus = "cancelled"
	PledgeStatusDefaulted PledgeStatus = "defaulted"
)

// PledgeDefaultGrace is how long an installment may stay overdue
// before the nightly sweep marks its whole pledge defaulted.
const PledgeDefaultGrace = 90 * 24 * time.Hour

// InstallmentStatus enumerates the states of a single installment.
type InstallmentStatus string

const (
	InstallmentStatusScheduled InstallmentStatus = "scheduled"
	InstallmentStatusPaid      InstallmentStatus = "paid"
	InstallmentStatusOverdue   InstallmentStatus = "overdue"
	InstallmentStatusCancelled InstallmentStatus = "cancelled"
)

// Pledge represents a donor's commitment to give a total amount over a
// series of installments.
type Pledge struct {
	ID           uuid.UUID
	DonorID      uuid.UUID
	TotalAmount  decimal.Decimal
	Currency     string
	StartDate    time.Time
	Frequency    PledgeFrequency
	Installments int
	Status       PledgeStatus
	CreatedBy    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PledgeInstallment is one scheduled payment within a pledge.
type PledgeInstallment struct {
	ID         uuid.UUID
	PledgeID   uuid.UUID
	Sequence   int
	DueDate    time.Time
	Amount     decimal.Decimal
	Status     InstallmentStatus
	PaidGiftID *uuid.UUID
}

// BuildSchedule generates the installment schedule for a pledge.
//
// The total is split evenly across count installments at 2 decimal
// places, with any rounding remainder carried on the final installment
// so that the installment amounts always sum to the pledge total
// exactly. Due dates start at the pledge start date and advance per
// frequency; a custom frequency schedules installments monthly and is
// expected to be adjusted per-installment afterwards.
func BuildSchedule(pledgeID uuid.UUID, total decimal.Decimal, start time.Time, frequency PledgeFrequency, count int) []PledgeInstallment {
	if count <= 0 {
		return nil
	}

	base := total.DivRound(decimal.NewFromInt(int64(count)), 2)
	// DivRound uses half-up rounding, so base*count can exceed the
	// total; the last installment absorbs the difference either way.
	last := total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))

	installments := make([]PledgeInstallment, 0, count)
	due := start
	for i := 1; i <= count; i++ {
		amount := base
		if i == count {
			amount = last
		}
		installments = append(installments, PledgeInstallment{
			ID:       uuid.New(),
			PledgeID: pledgeID,
			Sequence: i,
			DueDate:  due,
			Amount:   amount,
			Status:   InstallmentStatusScheduled,
		})
		due = advance(due, frequency)
	}
	return installments
}

func advance(t time.Time, frequency PledgeFrequency) time.Time {
	switch frequency {
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyAnnually:
		return t.AddDate(1, 0, 0)
	default:
		// monthly and custom
		return t.AddDate(0, 1, 0)
	}
}

// Outstanding returns the sum of unpaid, uncancelled installment
// amounts.
func Outstanding(installments []PledgeInstallment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		if inst.Status == InstallmentStatusScheduled || inst.Status == InstallmentStatusOverdue {
			total = total.Add(inst.Amount)
		}
	}
	return total
}
