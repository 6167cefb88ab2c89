package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin          = "admin"
	RoleBillingOfficer = "billingOfficer"
	RoleAccountant     = "accountant"
)

// Roles is the closed set of roles an account may hold.
var Roles = []string{RoleAdmin, RoleBillingOfficer, RoleAccountant}

// ValidRole reports whether role is a member of the closed role set.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingFields      = errors.New("missing required fields")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrForbidden          = errors.New("access forbidden")
)

// Token verification failures. Both collapse to 401 at the API boundary.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)

// User models an authenticated actor in the system. The password hash never
// leaves the process: it is excluded from JSON and stripped by Sanitized
// before any service returns the record.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to hand to callers: identical record with the
// password hash blanked.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// TokenClaims are the fields embedded in a session token. The token is the
// sole source of truth for role during its lifetime; a server-side role
// change does not reach tokens already in flight.
type TokenClaims struct {
	SubjectID string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
