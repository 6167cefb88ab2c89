package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/billtrack/billing-system/internal/core/domain"
	"github.com/billtrack/billing-system/internal/core/ports"
)

const (
	defaultPageLimit = 5
	maxPageLimit     = 100
)

// BillService implements the billing use cases over a BillRepository.
type BillService struct {
	repo   ports.BillRepository
	logger zerolog.Logger
}

func NewBillService(repo ports.BillRepository, logger zerolog.Logger) *BillService {
	return &BillService{repo: repo, logger: logger}
}

func (s *BillService) CreateBill(ctx context.Context, input ports.CreateBillInput) (*domain.Bill, error) {
	if input.Status == "" {
		input.Status = domain.BillStatusUnpaid
	}
	if input.Status != domain.BillStatusPaid && input.Status != domain.BillStatusUnpaid {
		return nil, domain.ErrInvalidBillStatus
	}

	now := time.Now().UTC()
	bill := &domain.Bill{
		BillingHolder: input.BillingHolder,
		Phone:         input.Phone,
		Amount:        input.Amount,
		Status:        input.Status,
		Dateline:      input.Dateline,
		BillAttacher:  input.AttacherID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, bill)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create bill")
		return nil, err
	}

	s.logger.Info().Str("bill_id", created.ID).Str("holder", created.BillingHolder).Msg("bill created")
	return created, nil
}

func (s *BillService) GetBill(ctx context.Context, id string) (*domain.Bill, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBills returns one page of bills plus the paid/unpaid totals the
// dashboard summary widgets show. Totals cover the whole filtered set, not
// just the returned page.
func (s *BillService) ListBills(ctx context.Context, filter ports.BillFilter) (*ports.BillListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.Status != "" && filter.Status != domain.BillStatusPaid && filter.Status != domain.BillStatusUnpaid {
		return nil, domain.ErrInvalidBillStatus
	}

	bills, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Totals come from an unpaginated pass over the same filter.
	all, _, err := s.repo.List(ctx, ports.BillFilter{Status: filter.Status, Search: filter.Search})
	if err != nil {
		return nil, err
	}
	var paid, unpaid float64
	for _, b := range all {
		switch b.Status {
		case domain.BillStatusPaid:
			paid += b.Amount
		case domain.BillStatusUnpaid:
			unpaid += b.Amount
		}
	}

	return &ports.BillListResult{
		Bills:        bills,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		PaidAmount:   paid,
		UnpaidAmount: unpaid,
	}, nil
}

func (s *BillService) UpdateBill(ctx context.Context, input ports.UpdateBillInput) (*domain.Bill, error) {
	if input.Status != domain.BillStatusPaid && input.Status != domain.BillStatusUnpaid {
		return nil, domain.ErrInvalidBillStatus
	}

	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	existing.BillingHolder = input.BillingHolder
	existing.Phone = input.Phone
	existing.Amount = input.Amount
	existing.Status = input.Status
	existing.Dateline = input.Dateline
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("bill_id", updated.ID).Str("status", updated.Status).Msg("bill updated")
	return updated, nil
}

func (s *BillService) DeleteBill(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("bill_id", id).Msg("bill deleted")
	return nil
}
