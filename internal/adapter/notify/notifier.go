package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"delegate/internal/core/ports"
)

// WebhookNotifier forwards task notifications to an external delivery
// gateway. The gateway owns the actual channels (WhatsApp, SMS); this
// adapter only posts the event. A circuit breaker keeps a misbehaving
// gateway from slowing every task command down.
type WebhookNotifier struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	settings := gobreaker.Settings{
		Name:    "notification-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("notifier circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

type webhookPayload struct {
	OrganisationID uint64 `json:"organisation_id"`
	RecipientID    uint64 `json:"recipient_id"`
	TaskID         uint64 `json:"task_id"`
	TaskTitle      string `json:"task_title"`
	Action         string `json:"action"`
}

func (n *WebhookNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	body, err := json.Marshal(webhookPayload{
		OrganisationID: notification.OrganisationID,
		RecipientID:    notification.RecipientID,
		TaskID:         notification.TaskID,
		TaskTitle:      notification.TaskTitle,
		Action:         string(notification.Action),
	})
	if err != nil {
		return err
	}

	_, err = n.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("notification gateway returned %d", resp.StatusCode)
		}
		return nil, nil
	})
	return err
}

var _ ports.Notifier = (*WebhookNotifier)(nil)

// LogNotifier is the fallback when no gateway is configured: it records the
// notification in the application log and succeeds.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, notification ports.Notification) error {
	zap.L().Info("notification",
		zap.Uint64("recipient_id", notification.RecipientID),
		zap.Uint64("task_id", notification.TaskID),
		zap.String("action", string(notification.Action)))
	return nil
}

var _ ports.Notifier = (*LogNotifier)(nil)
