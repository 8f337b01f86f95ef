package majorgifts

import (
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/validation"
	"github.com/shopspring/decimal"
)

// CreateDonorRequest is the payload for registering a new donor or
// prospect record.
type CreateDonorRequest struct {
	FirstName         string  `json:"first_name" validate:"required,max=100"`
	LastName          string  `json:"last_name" validate:"required,max=100"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Phone             *string `json:"phone" validate:"omitempty,e164"`
	GivingCapacity    *string `json:"giving_capacity" validate:"omitempty,money"`
	Stage             string  `json:"stage" validate:"required,oneof=prospect cultivation solicitation stewardship"`
	AssignedOfficerID *string `json:"assigned_officer_id" validate:"omitempty,uuid"`
	Notes             string  `json:"notes" validate:"max=10000"`
}

func (r *CreateDonorRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// GivingCapacityDecimal returns the parsed capacity, or nil when the
// field was omitted.
func (r *CreateDonorRequest) GivingCapacityDecimal() *decimal.Decimal {
	if r.GivingCapacity == nil {
		return nil
	}
	d := parseAmount(*r.GivingCapacity)
	return &d
}

// UpdateDonorRequest is the payload for a partial donor update. Nil
// fields are left unchanged.
type UpdateDonorRequest struct {
	ID                string  `param:"id" validate:"required,uuid"`
	FirstName         *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName          *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Phone             *string `json:"phone" validate:"omitempty,e164"`
	GivingCapacity    *string `json:"giving_capacity" validate:"omitempty,money"`
	Stage             *string `json:"stage" validate:"omitempty,oneof=prospect cultivation solicitation stewardship"`
	AssignedOfficerID *string `json:"assigned_officer_id" validate:"omitempty,uuid"`
	Notes             *string `json:"notes" validate:"omitempty,max=10000"`
}

func (r *UpdateDonorRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// GivingCapacityDecimal returns the parsed capacity, or nil when the
// field was omitted.
func (r *UpdateDonorRequest) GivingCapacityDecimal() *decimal.Decimal {
	if r.GivingCapacity == nil {
		return nil
	}
	d := parseAmount(*r.GivingCapacity)
	return &d
}

// GetDonorRequest identifies a donor by path parameter.
type GetDonorRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetDonorRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// ListDonorsRequest carries the query filters for donor listings.
type ListDonorsRequest struct {
	Stage     string `query:"stage" validate:"omitempty,oneof=prospect cultivation solicitation stewardship"`
	OfficerID string `query:"officer_id" validate:"omitempty,uuid"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset    int    `query:"offset" validate:"omitempty,min=0"`
}

func (r *ListDonorsRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// DonorResponse is the wire representation of a donor record.
type DonorResponse struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             *string   `json:"email"`
	Phone             *string   `json:"phone"`
	GivingCapacity    *string   `json:"giving_capacity"`
	Stage             string    `json:"stage"`
	AssignedOfficerID *string   `json:"assigned_officer_id"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewDonorResponse maps a domain donor onto the wire shape.
func NewDonorResponse(d *domain.Donor) *DonorResponse {
	resp := &DonorResponse{
		ID:        d.ID.String(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Stage:     string(d.Stage),
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.GivingCapacity != nil {
		capacity := d.GivingCapacity.StringFixed(2)
		resp.GivingCapacity = &capacity
	}
	if d.AssignedOfficerID != nil {
		officerID := d.AssignedOfficerID.String()
		resp.AssignedOfficerID = &officerID
	}
	return resp
}

// DonorListResponse wraps a page of donors.
type DonorListResponse struct {
	Items  []*DonorResponse `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// GivingSummaryResponse reports a donor's aggregate giving.
type GivingSummaryResponse struct {
	DonorID        string  `json:"donor_id"`
	GiftCount      int     `json:"gift_count"`
	TotalGiven     string  `json:"total_given"`
	LargestGift    string  `json:"largest_gift"`
	LastGiftDate   *string `json:"last_gift_date"`
	ActivePledges  int     `json:"active_pledges"`
	PledgedBalance string  `json:"pledged_balance"`
}

// NewGivingSummaryResponse maps a domain giving summary onto the wire
// shape.
func NewGivingSummaryResponse(s *domain.GivingSummary) *GivingSummaryResponse {
	resp := &GivingSummaryResponse{
		DonorID:        s.DonorID.String(),
		GiftCount:      s.GiftCount,
		TotalGiven:     s.TotalGiven.StringFixed(2),
		LargestGift:    s.LargestGift.StringFixed(2),
		ActivePledges:  s.ActivePledges,
		PledgedBalance: s.PledgedBalance.StringFixed(2),
	}
	if s.LastGiftDate != nil {
		lastGift := formatDate(*s.LastGiftDate)
		resp.LastGiftDate = &lastGift
	}
	return resp
}
