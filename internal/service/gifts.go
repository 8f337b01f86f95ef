package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/lib/job"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/schema/majorgifts"
	"github.com/donorops/backend/internal/server"
	"github.com/google/uuid"
)

// defaultCurrency is applied when a request omits the currency field.
const defaultCurrency = "USD"

// GiftsService records gifts and issues tax receipts.
type GiftsService struct {
	server  *server.Server
	gifts   *repository.GiftsRepository
	donors  *repository.DonorsRepository
	pledges *repository.PledgesRepository
}

// NewGiftsService constructs a GiftsService.
func NewGiftsService(s *server.Server, repos *repository.Repositories) *GiftsService {
	return &GiftsService{
		server:  s,
		gifts:   repos.Gifts,
		donors:  repos.Donors,
		pledges: repos.Pledges,
	}
}

// Create records a gift for a donor. Pledge payments must reference an
// active pledge belonging to the same donor; their amount is applied
// to the pledge's unpaid installments oldest first.
func (s *GiftsService) Create(ctx context.Context, req *majorgifts.CreateGiftRequest, actorID string) (*majorgifts.GiftResponse, error) {
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

	gift := &domain.Gift{
		ID:          uuid.New(),
		DonorID:     donorID,
		Amount:      req.AmountDecimal(),
		Currency:    currency,
		GiftDate:    req.GiftDateTime(),
		Kind:        domain.GiftKind(req.Kind),
		Designation: req.Designation,
		RecordedBy:  uuid.MustParse(actorID),
	}

	if gift.Kind != domain.GiftKindPledgePayment {
		created, err := s.gifts.Create(ctx, gift)
		if err != nil {
			return nil, err
		}
		return majorgifts.NewGiftResponse(created), nil
	}

	pledgeID := uuid.MustParse(*req.PledgeID)
	pledge, err := s.pledges.GetByID(ctx, pledgeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Pledge not found", false, nil)
		}
		return nil, err
	}
	if pledge.DonorID != donorID {
		return nil, errs.NewConflictError("Pledge belongs to a different donor", false, nil)
	}
	if pledge.Currency != currency {
		return nil, errs.NewConflictError("Payment currency does not match the pledge", false, nil)
	}

	gift.PledgeID = &pledgeID
	created, err := s.gifts.CreatePledgePayment(ctx, gift)
	if err != nil {
		if errors.Is(err, repository.ErrPledgeNotPayable) {
			return nil, errs.NewConflictError("Pledge is not active", false, nil)
		}
		if errors.Is(err, repository.ErrPledgeOverpaid) {
			return nil, errs.NewBadRequestError("Payment exceeds the pledge's outstanding balance", true, nil, nil, nil)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Pledge not found", false, nil)
		}
		return nil, err
	}
	return majorgifts.NewGiftResponse(created), nil
}

// Get fetches a single gift.
func (s *GiftsService) Get(ctx context.Context, req *majorgifts.GetGiftRequest) (*majorgifts.GiftResponse, error) {
	gift, err := s.gifts.GetByID(ctx, uuid.MustParse(req.ID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Gift not found", false, nil)
		}
		return nil, err
	}
	return majorgifts.NewGiftResponse(gift), nil
}

// IssueReceipt stamps the receipt time on a gift and emails the donor
// an acknowledgment. Issuing a receipt twice returns the original
// receipt state and sends no second email.
func (s *GiftsService) IssueReceipt(ctx context.Context, req *majorgifts.IssueReceiptRequest) (*majorgifts.GiftResponse, error) {
	giftID := uuid.MustParse(req.ID)

	gift, err := s.gifts.GetByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Gift not found", false, nil)
		}
		return nil, err
	}

	if gift.ReceiptedAt != nil {
		return majorgifts.NewGiftResponse(gift), nil
	}

	// Only the request whose stamp lands sends the email, so two
	// concurrent issuances cannot both mail the donor.
	gift, stamped, err := s.gifts.SetReceipted(ctx, giftID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if stamped {
		s.enqueueReceiptEmail(ctx, gift)
	}

	return majorgifts.NewGiftResponse(gift), nil
}

// List returns a page of gifts filtered by donor and/or gift date
// range.
func (s *GiftsService) List(ctx context.Context, req *majorgifts.ListGiftsRequest) (*majorgifts.GiftListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	var donorID *uuid.UUID
	if req.DonorID != "" {
		id := uuid.MustParse(req.DonorID)
		donorID = &id
	}
	var from, to *time.Time
	if req.From != "" {
		t, _ := time.Parse(majorgifts.DateFormat, req.From)
		from = &t
	}
	if req.To != "" {
		t, _ := time.Parse(majorgifts.DateFormat, req.To)
		to = &t
	}

	gifts, total, err := s.gifts.List(ctx, donorID, from, to, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]*majorgifts.GiftResponse, 0, len(gifts))
	for i := range gifts {
		items = append(items, majorgifts.NewGiftResponse(&gifts[i]))
	}

	return &majorgifts.GiftListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

// enqueueReceiptEmail queues the receipt acknowledgment when the donor
// has an email on file. The receipt stamp already happened; email
// failures are logged, not returned.
func (s *GiftsService) enqueueReceiptEmail(ctx context.Context, gift *domain.Gift) {
	donor, err := s.donors.GetByID(ctx, gift.DonorID)
	if err != nil {
		s.server.Logger.Error().Err(err).Str("gift_id", gift.ID.String()).Msg("failed to load donor for receipt email")
		return
	}
	if donor.Email == nil {
		return
	}

	task, err := job.NewReceiptEmailTask(job.ReceiptEmailPayload{
		To:            *donor.Email,
		DonorName:     donor.FullName(),
		Amount:        gift.Amount.StringFixed(2),
		Currency:      gift.Currency,
		GiftDate:      gift.GiftDate.Format(majorgifts.DateFormat),
		ReceiptNumber: receiptNumber(gift.ID),
	})
	if err != nil {
		s.server.Logger.Error().Err(err).Msg("failed to build receipt email task")
		return
	}

	if _, err := s.server.Job.Client.Enqueue(task); err != nil {
		s.server.Logger.Error().Err(err).Str("gift_id", gift.ID.String()).Msg("failed to enqueue receipt email")
	}
}

// receiptNumber derives a stable human-readable receipt reference from
// the gift ID.
func receiptNumber(giftID uuid.UUID) string {
	compact := strings.ToUpper(strings.ReplaceAll(giftID.String(), "-", ""))
	return fmt.Sprintf("RCPT-%s", compact[:12])
}
