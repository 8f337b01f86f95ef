package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GiftKind enumerates the forms a gift can take.
type GiftKind string

const (
	GiftKindCash          GiftKind = "cash"
	GiftKindStock         GiftKind = "stock"
	GiftKindInKind        GiftKind = "in_kind"
	GiftKindBequest       GiftKind = "bequest"
	GiftKindPledgePayment GiftKind = "pledge_payment"
)

// Valid reports whether the kind is one of the known values.
func (k GiftKind) Valid() bool {
	switch k {
	case GiftKindCash, GiftKindStock, GiftKindInKind, GiftKindBequest, GiftKindPledgePayment:
		return true
	}
	return false
}

// Gift represents a recorded contribution from a donor.
//
// PledgeID is set only for gifts of kind pledge_payment; the amount is
// applied against that pledge's outstanding installments. ReceiptedAt
// is stamped once when a tax receipt is issued.
type Gift struct {
	ID          uuid.UUID
	DonorID     uuid.UUID
	Amount      decimal.Decimal
	Currency    string
	GiftDate    time.Time
	Kind        GiftKind
	Designation string
	PledgeID    *uuid.UUID
	ReceiptedAt *time.Time
	RecordedBy  uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
