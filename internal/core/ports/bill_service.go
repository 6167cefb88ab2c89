package ports

import (
	"context"
	"time"

	"github.com/billtrack/billing-system/internal/core/domain"
)

// CreateBillInput carries all data needed to register a new bill.
type CreateBillInput struct {
	BillingHolder string
	Phone         string
	Amount        float64
	Status        string
	Dateline      time.Time
	// AttacherID is the user creating the bill, taken from the verified
	// token, never from the request body.
	AttacherID string
}

// UpdateBillInput carries the mutable bill fields for an update.
type UpdateBillInput struct {
	ID            string
	BillingHolder string
	Phone         string
	Amount        float64
	Status        string
	Dateline      time.Time
}

// BillListResult is the paginated listing plus the dashboard totals.
type BillListResult struct {
	Bills        []*domain.Bill
	Total        int64
	Page         int
	Limit        int
	PaidAmount   float64
	UnpaidAmount float64
}

// BillService defines the billing use cases.
type BillService interface {
	CreateBill(ctx context.Context, input CreateBillInput) (*domain.Bill, error)
	GetBill(ctx context.Context, id string) (*domain.Bill, error)
	ListBills(ctx context.Context, filter BillFilter) (*BillListResult, error)
	UpdateBill(ctx context.Context, input UpdateBillInput) (*domain.Bill, error)
	DeleteBill(ctx context.Context, id string) error
}
