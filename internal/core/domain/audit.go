package domain

import "time"

// Audit event actions recorded by the identity service.
const (
	AuditLoginSuccess    = "login_success"
	AuditLoginFailure    = "login_failure"
	AuditRegistered      = "registered"
	AuditPasswordChanged = "password_changed"
)

// AuditEvent is a best-effort record of an identity operation. Events are
// written asynchronously; losing one never fails the request that caused it.
type AuditEvent struct {
	Email      string    `json:"email"`
	Action     string    `json:"action"`
	Role       string    `json:"role,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
