package service

import (
	"context"
	"errors"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/schema/majorgifts"
	"github.com/donorops/backend/internal/server"
	"github.com/google/uuid"
)

// DonorsService manages donor and prospect records.
type DonorsService struct {
	server *server.Server
	donors *repository.DonorsRepository
}

// NewDonorsService constructs a DonorsService.
func NewDonorsService(s *server.Server, repos *repository.Repositories) *DonorsService {
	return &DonorsService{
		server: s,
		donors: repos.Donors,
	}
}

// Create registers a new donor record. An assigned officer that does
// not exist surfaces as a foreign key violation mapped to a friendly
// error.
func (s *DonorsService) Create(ctx context.Context, req *majorgifts.CreateDonorRequest) (*majorgifts.DonorResponse, error) {
	donor := &domain.Donor{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		GivingCapacity: req.GivingCapacityDecimal(),
		Stage:          domain.DonorStage(req.Stage),
		Notes:          req.Notes,
	}
	if req.AssignedOfficerID != nil {
		officerID := uuid.MustParse(*req.AssignedOfficerID)
		donor.AssignedOfficerID = &officerID
	}

	donor, err := s.donors.Create(ctx, donor)
	if err != nil {
		return nil, err
	}
	return majorgifts.NewDonorResponse(donor), nil
}

// Get fetches a single donor.
func (s *DonorsService) Get(ctx context.Context, req *majorgifts.GetDonorRequest) (*majorgifts.DonorResponse, error) {
	donor, err := s.donors.GetByID(ctx, uuid.MustParse(req.ID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Donor not found", false, nil)
		}
		return nil, err
	}
	return majorgifts.NewDonorResponse(donor), nil
}

// Update applies a partial update to a donor. Nil fields are left
// unchanged.
func (s *DonorsService) Update(ctx context.Context, req *majorgifts.UpdateDonorRequest) (*majorgifts.DonorResponse, error) {
	donor, err := s.donors.GetByID(ctx, uuid.MustParse(req.ID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Donor not found", false, nil)
		}
		return nil, err
	}

	if req.FirstName != nil {
		donor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		donor.LastName = *req.LastName
	}
	if req.Email != nil {
		donor.Email = req.Email
	}
	if req.Phone != nil {
		donor.Phone = req.Phone
	}
	if req.GivingCapacity != nil {
		donor.GivingCapacity = req.GivingCapacityDecimal()
	}
	if req.Stage != nil {
		donor.Stage = domain.DonorStage(*req.Stage)
	}
	if req.AssignedOfficerID != nil {
		officerID := uuid.MustParse(*req.AssignedOfficerID)
		donor.AssignedOfficerID = &officerID
	}
	if req.Notes != nil {
		donor.Notes = *req.Notes
	}

	donor, err = s.donors.Update(ctx, donor)
	if err != nil {
		return nil, err
	}
	return majorgifts.NewDonorResponse(donor), nil
}

// List returns a page of donors filtered by stage and/or assigned
// officer.
func (s *DonorsService) List(ctx context.Context, req *majorgifts.ListDonorsRequest) (*majorgifts.DonorListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	var stage *domain.DonorStage
	if req.Stage != "" {
		v := domain.DonorStage(req.Stage)
		stage = &v
	}
	var officerID *uuid.UUID
	if req.OfficerID != "" {
		id := uuid.MustParse(req.OfficerID)
		officerID = &id
	}

	donors, total, err := s.donors.List(ctx, stage, officerID, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]*majorgifts.DonorResponse, 0, len(donors))
	for i := range donors {
		items = append(items, majorgifts.NewDonorResponse(&donors[i]))
	}

	return &majorgifts.DonorListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

// Summary aggregates the donor's recorded giving. A donor with no
// gifts gets a zeroed summary, not an error.
func (s *DonorsService) Summary(ctx context.Context, req *majorgifts.GetDonorRequest) (*majorgifts.GivingSummaryResponse, error) {
	donorID := uuid.MustParse(req.ID)

	if _, err := s.donors.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Donor not found", false, nil)
		}
		return nil, err
	}

	summary, err := s.donors.GivingSummary(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return majorgifts.NewGivingSummaryResponse(summary), nil
}
