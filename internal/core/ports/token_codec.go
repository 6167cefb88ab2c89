package ports

import (
	"time"

	"github.com/billtrack/billing-system/internal/core/domain"
)

// TokenCodec issues and verifies self-contained session tokens. Verification
// trusts the signature exclusively and never consults storage, so it cannot
// fail on store outages; the cost is that claims may be stale until expiry.
// The explicit now parameter keeps both operations deterministic under test.
type TokenCodec interface {
	Issue(subjectID, role string, now time.Time) (string, error)
	// Verify returns the embedded claims, domain.ErrTokenMalformed when the
	// encoding or signature is invalid, or domain.ErrTokenExpired when the
	// token is past its expiry.
	Verify(token string, now time.Time) (*domain.TokenClaims, error)
}
