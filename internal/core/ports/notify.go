package ports

import (
	"context"

	"delegate/internal/core/domain"
)

// Notification describes a task event worth telling a user about. Delivery
// (WhatsApp, SMS, whatever the adapter speaks) is entirely outside the
// engine; failures are logged, never surfaced to the acting user.
type Notification struct {
	OrganisationID uint64
	RecipientID    uint64
	TaskID         uint64
	TaskTitle      string
	Action         domain.ActionType
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
