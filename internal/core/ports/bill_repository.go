package ports

import (
	"context"

	"github.com/billtrack/billing-system/internal/core/domain"
)

// BillFilter narrows a bill listing. Zero values mean "no constraint".
type BillFilter struct {
	// Status restricts to Paid or Unpaid.
	Status string
	// Search matches a case-insensitive substring of holder, phone or status.
	Search string
	Page   int
	Limit  int
}

// BillRepository defines the persistence contract for billing records.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) (*domain.Bill, error)
	FindByID(ctx context.Context, id string) (*domain.Bill, error)
	List(ctx context.Context, filter BillFilter) ([]*domain.Bill, int64, error)
	Update(ctx context.Context, bill *domain.Bill) (*domain.Bill, error)
	Delete(ctx context.Context, id string) error
}
