package ports

import "context"

// LoginThrottle limits failed login attempts per account. The identity
// service fails open when the throttle backend is unreachable: losing rate
// limiting is preferable to locking every account out of login.
type LoginThrottle interface {
	// Exceeded reports whether the account has spent its attempt budget.
	Exceeded(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against the account.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the account's counter after a successful login.
	Reset(ctx context.Context, email string) error
}
