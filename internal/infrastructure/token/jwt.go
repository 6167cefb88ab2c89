package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/billtrack/billing-system/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// JWTCodec implements ports.TokenCodec with HS256-signed JWTs. The signing
// secret and lifetime are fixed at construction; rotating the secret
// invalidates every outstanding token.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *JWTCodec) TTL() time.Duration {
	return c.ttl
}

func (c *JWTCodec) Issue(subjectID, role string, now time.Time) (string, error) {
	now = now.UTC()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks signature and expiry against the supplied clock and returns
// the embedded claims unchanged. No storage lookup happens here: claims may
// be stale until expiry, which is the accepted trade-off.
func (c *JWTCodec) Verify(token string, now time.Time) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenMalformed
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return nil, domain.ErrTokenMalformed
	}

	out := &domain.TokenClaims{SubjectID: sub, Role: role}
	if iat, ok := claims["iat"].(float64); ok {
		out.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return out, nil
}
