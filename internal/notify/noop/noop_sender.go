package noop

import (
	"context"
	"log"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/notify"
	"flyerwatch/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op NotificationSender that logs the digest to
// stdout.
func NewNoopSender() port.NotificationSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, batch domain.NotificationBatch) error {
	log.Printf("[NOOP NOTIFY] user %d:\n%s", batch.UserID, notify.RenderText(batch))
	return nil
}
