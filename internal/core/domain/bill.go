package domain

import (
	"errors"
	"time"
)

const (
	BillStatusPaid   = "Paid"
	BillStatusUnpaid = "Unpaid"
)

var (
	ErrBillNotFound      = errors.New("bill not found")
	ErrInvalidBillStatus = errors.New("invalid bill status")
)

// Bill is a single billing record shown on the dashboard. BillAttacher is
// the ID of the user who registered the bill.
type Bill struct {
	ID            string    `json:"id"`
	BillingHolder string    `json:"billing_holder"`
	Phone         string    `json:"phone"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	Dateline      time.Time `json:"dateline"`
	BillAttacher  string    `json:"bill_attacher,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
