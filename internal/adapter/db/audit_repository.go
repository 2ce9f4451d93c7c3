package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"delegate/internal/core/ports"
)

const appendAuditEventQuery = `
INSERT INTO audit_events (id, organisation_id, task_id, actor_id, action, occurred_at)
VALUES (?, ?, ?, ?, ?, ?);
`

type AuditRepository struct {
	db *sqlx.DB
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, event ports.AuditEvent) error {
	_, err := r.db.ExecContext(ctx, appendAuditEventQuery,
		event.ID,
		event.OrganisationID,
		event.TaskID,
		event.ActorID,
		string(event.Action),
		event.OccurredAt,
	)
	return err
}
