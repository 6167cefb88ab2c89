package ports

import (
	"context"

	"github.com/billtrack/billing-system/internal/core/domain"
)

// AuditSink accepts identity audit events for asynchronous persistence.
// Record must not block the caller beyond a bounded enqueue; dropped or
// failed events are logged by the implementation, never surfaced.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
