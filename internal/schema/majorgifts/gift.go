package majorgifts

import (
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/validation"
	"github.com/shopspring/decimal"
)

// CreateGiftRequest is the payload for recording a gift.
//
// PledgeID is required for pledge_payment gifts and must be absent for
// every other kind; that rule is cross-field and enforced in Validate.
type CreateGiftRequest struct {
	DonorID     string  `json:"donor_id" validate:"required,uuid"`
	Amount      string  `json:"amount" validate:"required,amount"`
	Currency    string  `json:"currency" validate:"omitempty,currency"`
	GiftDate    string  `json:"gift_date" validate:"required,datetime=2006-01-02"`
	Kind        string  `json:"kind" validate:"required,oneof=cash stock in_kind bequest pledge_payment"`
	Designation string  `json:"designation" validate:"max=200"`
	PledgeID    *string `json:"pledge_id" validate:"omitempty,uuid"`
}

func (r *CreateGiftRequest) Validate() error {
	if err := validation.Validator().Struct(r); err != nil {
		return err
	}

	var custom validation.CustomValidationErrors
	if r.Kind == string(domain.GiftKindPledgePayment) && r.PledgeID == nil {
		custom = append(custom, validation.CustomValidationError{
			Field:   "pledge_id",
			Message: "is required for pledge_payment gifts",
		})
	}
	if r.Kind != string(domain.GiftKindPledgePayment) && r.PledgeID != nil {
		custom = append(custom, validation.CustomValidationError{
			Field:   "pledge_id",
			Message: "is only allowed for pledge_payment gifts",
		})
	}
	if len(custom) > 0 {
		return custom
	}
	return nil
}

// AmountDecimal returns the parsed gift amount.
func (r *CreateGiftRequest) AmountDecimal() decimal.Decimal {
	return parseAmount(r.Amount)
}

// GiftDateTime returns the parsed gift date.
func (r *CreateGiftRequest) GiftDateTime() time.Time {
	return parseDate(r.GiftDate)
}

// GetGiftRequest identifies a gift by path parameter.
type GetGiftRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetGiftRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// IssueReceiptRequest identifies the gift to issue a receipt for.
type IssueReceiptRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *IssueReceiptRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// ListGiftsRequest carries the query filters for gift listings.
// From/To bound the gift date range, inclusive.
type ListGiftsRequest struct {
	DonorID string `query:"donor_id" validate:"omitempty,uuid"`
	From    string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset  int    `query:"offset" validate:"omitempty,min=0"`
}

func (r *ListGiftsRequest) Validate() error {
	if err := validation.Validator().Struct(r); err != nil {
		return err
	}
	if r.From != "" && r.To != "" && parseDate(r.To).Before(parseDate(r.From)) {
		return validation.CustomValidationErrors{{
			Field:   "to",
			Message: "must not be before from",
		}}
	}
	return nil
}

// GiftResponse is the wire representation of a gift record.
type GiftResponse struct {
	ID          string     `json:"id"`
	DonorID     string     `json:"donor_id"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	GiftDate    string     `json:"gift_date"`
	Kind        string     `json:"kind"`
	Designation string     `json:"designation"`
	PledgeID    *string    `json:"pledge_id"`
	ReceiptedAt *time.Time `json:"receipted_at"`
	RecordedBy  string     `json:"recorded_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewGiftResponse maps a domain gift onto the wire shape.
func NewGiftResponse(g *domain.Gift) *GiftResponse {
	resp := &GiftResponse{
		ID:          g.ID.String(),
		DonorID:     g.DonorID.String(),
		Amount:      g.Amount.StringFixed(2),
		Currency:    g.Currency,
		GiftDate:    formatDate(g.GiftDate),
		Kind:        string(g.Kind),
		Designation: g.Designation,
		ReceiptedAt: g.ReceiptedAt,
		RecordedBy:  g.RecordedBy.String(),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if g.PledgeID != nil {
		pledgeID := g.PledgeID.String()
		resp.PledgeID = &pledgeID
	}
	return resp
}

// GiftListResponse wraps a page of gifts.
type GiftListResponse struct {
	Items  []*GiftResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
