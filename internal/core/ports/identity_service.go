package ports

import (
	"context"

	"github.com/billtrack/billing-system/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     string
}

// LoginResult is returned on successful authentication. User is sanitized:
// the password hash is never populated.
type LoginResult struct {
	Token string
	User  *domain.User
}

// IdentityService defines the identity use cases: registration, login and
// password update.
type IdentityService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	UpdatePassword(ctx context.Context, email, newPassword string) error
}
