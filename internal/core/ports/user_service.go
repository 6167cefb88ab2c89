package ports

import (
	"context"

	"github.com/billtrack/billing-system/internal/core/domain"
)

// UserService exposes read-only account views for the dashboard. All returned
// records are sanitized.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
