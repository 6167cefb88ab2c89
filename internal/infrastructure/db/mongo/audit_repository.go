package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/billtrack/billing-system/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository persists identity audit events. Writes come from the
// dispatcher workers, never from a request path.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	Email      string `bson:"email"`
	Action     string `bson:"action"`
	Role       string `bson:"role,omitempty"`
	RemoteAddr string `bson:"remote_addr,omitempty"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditEvent{
		Email:      event.Email,
		Action:     event.Action,
		Role:       event.Role,
		RemoteAddr: event.RemoteAddr,
		OccurredAt: event.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
