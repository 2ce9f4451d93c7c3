package ports

import (
	"context"
	"time"

	"delegate/internal/core/domain"
)

// AuditEvent records one applied task command for the audit trail.
type AuditEvent struct {
	ID             string
	OrganisationID uint64
	TaskID         uint64
	ActorID        uint64
	Action         domain.ActionType
	OccurredAt     time.Time
}

type AuditRepository interface {
	Append(ctx context.Context, event AuditEvent) error
}
