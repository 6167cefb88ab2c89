package ports

import (
	"context"

	"github.com/billtrack/billing-system/internal/core/domain"
)

// UserRepository defines the persistence contract for identity records.
// Implementations must enforce email uniqueness (a duplicate insert returns
// domain.ErrUserExists); the service-level existence check is best-effort
// only and loses the race between two concurrent registrations.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	List(ctx context.Context) ([]*domain.User, error)
}
