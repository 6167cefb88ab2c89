package crypto

import "golang.org/x/crypto/bcrypt"

// BcryptHasher implements ports.PasswordHasher over bcrypt. Each Hash call
// draws a fresh random salt; salt and cost are encoded in the digest itself.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost factor. Costs outside
// bcrypt's supported range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compares in constant time via bcrypt. Any failure, including an
// unparseable digest, reads as a mismatch.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
