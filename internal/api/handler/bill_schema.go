package handler

import (
	"time"

	"github.com/billtrack/billing-system/internal/core/domain"
)

type billRequest struct {
	BillingHolder string  `json:"billing_holder" validate:"required"`
	Phone         string  `json:"phone"          validate:"required"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	Status        string  `json:"status"         validate:"omitempty,oneof=Paid Unpaid"`
	Dateline      string  `json:"dateline"       validate:"required"`
}

// parseDateline accepts the date-input format the dashboard submits.
func parseDateline(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

type billResponse struct {
	Data *domain.Bill `json:"data"`
}

type billListResponse struct {
	Data         []*domain.Bill `json:"data"`
	Total        int64          `json:"total"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	PaidAmount   float64        `json:"paid_amount"`
	UnpaidAmount float64        `json:"unpaid_amount"`
}
