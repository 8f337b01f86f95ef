package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DonorStage enumerates the moves-management stages a major gift
// prospect moves through.
type DonorStage string

const (
	DonorStageProspect     DonorStage = "prospect"
	DonorStageCultivation  DonorStage = "cultivation"
	DonorStageSolicitation DonorStage = "solicitation"
	DonorStageStewardship  DonorStage = "stewardship"
)

// Valid reports whether the stage is one of the known values.
func (s DonorStage) Valid() bool {
	switch s {
	case DonorStageProspect, DonorStageCultivation, DonorStageSolicitation, DonorStageStewardship:
		return true
	}
	return false
}

// Donor represents a major gift prospect or donor record.
type Donor struct {
	ID                uuid.UUID
	FirstName         string
	LastName          string
	Email             *string
	Phone             *string
	GivingCapacity    *decimal.Decimal
	Stage             DonorStage
	AssignedOfficerID *uuid.UUID
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName returns the donor's display name.
func (d Donor) FullName() string {
	if d.FirstName == "" {
		return d.LastName
	}
	return d.FirstName + " " + d.LastName
}

// GivingSummary aggregates a donor's recorded giving.
type GivingSummary struct {
	DonorID        uuid.UUID
	GiftCount      int
	TotalGiven     decimal.Decimal
	LargestGift    decimal.Decimal
	LastGiftDate   *time.Time
	ActivePledges  int
	PledgedBalance decimal.Decimal
}
