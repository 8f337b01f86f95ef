package majorgifts

import (
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/validation"
	"github.com/shopspring/decimal"
)

// maxInstallments bounds the generated schedule length. A 30-year
// monthly pledge is 360 installments; anything beyond that is almost
// certainly a typo.
const maxInstallments = 360

// CreatePledgeRequest is the payload for creating a pledge and its
// installment schedule.
type CreatePledgeRequest struct {
	DonorID      string `json:"donor_id" validate:"required,uuid"`
	TotalAmount  string `json:"total_amount" validate:"required,amount"`
	Currency     string `json:"currency" validate:"omitempty,currency"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Frequency    string `json:"frequency" validate:"required,oneof=monthly quarterly annually custom"`
	Installments int    `json:"installments" validate:"required,min=1,max=360"`
}

func (r *CreatePledgeRequest) Validate() error {
	if err := validation.Validator().Struct(r); err != nil {
		return err
	}
	// Each installment must be representable at 2 decimal places; a
	// $1.00 pledge over 300 installments is not. The per-installment
	// amount rounds half-up, so the remainder-carrying final
	// installment must be checked separately: a $0.05 pledge over 9
	// installments rounds to 0.01 each, which overshoots the total
	// and leaves a negative final amount.
	total := r.TotalAmountDecimal()
	count := decimal.NewFromInt(int64(r.Installments))
	per := total.DivRound(count, 2)
	final := total.Sub(per.Mul(count.Sub(decimal.NewFromInt(1))))
	if !per.IsPositive() || !final.IsPositive() {
		return validation.CustomValidationErrors{{
			Field:   "installments",
			Message: "is too large for the pledge total",
		}}
	}
	return nil
}

// TotalAmountDecimal returns the parsed pledge total.
func (r *CreatePledgeRequest) TotalAmountDecimal() decimal.Decimal {
	return parseAmount(r.TotalAmount)
}

// StartDateTime returns the parsed start date.
func (r *CreatePledgeRequest) StartDateTime() time.Time {
	return parseDate(r.StartDate)
}

// GetPledgeRequest identifies a pledge by path parameter.
type GetPledgeRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetPledgeRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// CancelPledgeRequest identifies the pledge to cancel.
type CancelPledgeRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *CancelPledgeRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// ListPledgesRequest carries the query filters for pledge listings.
type ListPledgesRequest struct {
	DonorID string `query:"donor_id" validate:"omitempty,uuid"`
	Status  string `query:"status" validate:"omitempty,oneof=active fulfilled cancelled defaulted"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset  int    `query:"offset" validate:"omitempty,min=0"`
}

func (r *ListPledgesRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// InstallmentResponse is the wire representation of one scheduled
// pledge payment.
type InstallmentResponse struct {
	ID         string  `json:"id"`
	Sequence   int     `json:"sequence"`
	DueDate    string  `json:"due_date"`
	Amount     string  `json:"amount"`
	Status     string  `json:"status"`
	PaidGiftID *string `json:"paid_gift_id"`
}

// PledgeResponse is the wire representation of a pledge, optionally
// with its full installment schedule.
type PledgeResponse struct {
	ID           string                 `json:"id"`
	DonorID      string                 `json:"donor_id"`
	TotalAmount  string                 `json:"total_amount"`
	Currency     string                 `json:"currency"`
	StartDate    string                 `json:"start_date"`
	Frequency    string                 `json:"frequency"`
	Installments int                    `json:"installments"`
	Status       string                 `json:"status"`
	Outstanding  string                 `json:"outstanding,omitempty"`
	CreatedBy    string                 `json:"created_by"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	Schedule     []*InstallmentResponse `json:"schedule,omitempty"`
}

// NewPledgeResponse maps a pledge and its installments onto the wire
// shape. Pass nil installments to omit the schedule (list views).
func NewPledgeResponse(p *domain.Pledge, installments []domain.PledgeInstallment) *PledgeResponse {
	resp := &PledgeResponse{
		ID:           p.ID.String(),
		DonorID:      p.DonorID.String(),
		TotalAmount:  p.TotalAmount.StringFixed(2),
		Currency:     p.Currency,
		StartDate:    formatDate(p.StartDate),
		Frequency:    string(p.Frequency),
		Installments: p.Installments,
		Status:       string(p.Status),
		CreatedBy:    p.CreatedBy.String(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if installments != nil {
		resp.Outstanding = domain.Outstanding(installments).StringFixed(2)
	}
	for i := range installments {
		inst := &installments[i]
		instResp := &InstallmentResponse{
			ID:       inst.ID.String(),
			Sequence: inst.Sequence,
			DueDate:  formatDate(inst.DueDate),
			Amount:   inst.Amount.StringFixed(2),
			Status:   string(inst.Status),
		}
		if inst.PaidGiftID != nil {
			giftID := inst.PaidGiftID.String()
			instResp.PaidGiftID = &giftID
		}
		resp.Schedule = append(resp.Schedule, instResp)
	}
	return resp
}

// PledgeListResponse wraps a page of pledges.
type PledgeListResponse struct {
	Items  []*PledgeResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
