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

// PledgesService manages pledges and their installment schedules.
type PledgesService struct {
	server  *server.Server
	pledges *repository.PledgesRepository
	donors  *repository.DonorsRepository
}

// NewPledgesService constructs a PledgesService.
func NewPledgesService(s *server.Server, repos *repository.Repositories) *PledgesService {
	return &PledgesService{
		server:  s,
		pledges: repos.Pledges,
		donors:  repos.Donors,
	}
}

// Create records a pledge and generates its installment schedule. The
// schedule always sums to the pledge total exactly; rounding remainder
// lands on the final installment.
func (s *PledgesService) Create(ctx context.Context, req *majorgifts.CreatePledgeRequest, actorID string) (*majorgifts.PledgeResponse, error) {
	donorID := uuid.MustParse(req.DonorID)

	if _, err := s.donors.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Donor not found", false, nil)
		}
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	pledge := &domain.Pledge{
		ID:           uuid.New(),
		DonorID:      donorID,
		TotalAmount:  req.TotalAmountDecimal(),
		Currency:     currency,
		StartDate:    req.StartDateTime(),
		Frequency:    domain.PledgeFrequency(req.Frequency),
		Installments: req.Installments,
		Status:       domain.PledgeStatusActive,
		CreatedBy:    uuid.MustParse(actorID),
	}

	schedule := domain.BuildSchedule(pledge.ID, pledge.TotalAmount, pledge.StartDate, pledge.Frequency, pledge.Installments)

	pledge, err := s.pledges.Create(ctx, pledge, schedule)
	if err != nil {
		return nil, err
	}
	return majorgifts.NewPledgeResponse(pledge, schedule), nil
}

// Get fetches a pledge with its full installment schedule.
func (s *PledgesService) Get(ctx context.Context, req *majorgifts.GetPledgeRequest) (*majorgifts.PledgeResponse, error) {
	pledgeID := uuid.MustParse(req.ID)

	pledge, err := s.pledges.GetByID(ctx, pledgeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Pledge not found", false, nil)
		}
		return nil, err
	}

	installments, err := s.pledges.GetInstallments(ctx, pledgeID)
	if err != nil {
		return nil, err
	}

	return majorgifts.NewPledgeResponse(pledge, installments), nil
}

// Cancel cancels an active pledge and its unpaid installments. Paid
// installments keep their history. Cancelling a non-active pledge is a
// conflict.
func (s *PledgesService) Cancel(ctx context.Context, req *majorgifts.CancelPledgeRequest) (*majorgifts.PledgeResponse, error) {
	pledgeID := uuid.MustParse(req.ID)

	pledge, err := s.pledges.Cancel(ctx, pledgeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Pledge not found", false, nil)
		}
		if errors.Is(err, repository.ErrPledgeNotCancellable) {
			return nil, errs.NewConflictError("Only active pledges can be cancelled", false, nil)
		}
		return nil, err
	}

	installments, err := s.pledges.GetInstallments(ctx, pledgeID)
	if err != nil {
		return nil, err
	}

	return majorgifts.NewPledgeResponse(pledge, installments), nil
}

// List returns a page of pledges filtered by donor and/or status,
// without installment schedules.
func (s *PledgesService) List(ctx context.Context, req *majorgifts.ListPledgesRequest) (*majorgifts.PledgeListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	var donorID *uuid.UUID
	if req.DonorID != "" {
		id := uuid.MustParse(req.DonorID)
		donorID = &id
	}
	var status *domain.PledgeStatus
	if req.Status != "" {
		v := domain.PledgeStatus(req.Status)
		status = &v
	}

	pledges, total, err := s.pledges.List(ctx, donorID, status, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]*majorgifts.PledgeResponse, 0, len(pledges))
	for i := range pledges {
		items = append(items, majorgifts.NewPledgeResponse(&pledges[i], nil))
	}

	return &majorgifts.PledgeListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}
