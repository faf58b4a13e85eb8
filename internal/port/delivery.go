package port

import (
	"context"

	"flyerwatch/internal/domain"
)

// NotificationSender abstracts the delivery transport for notification
// batches. Delivery success or failure is the sender's concern; the caller
// only logs and moves on.
type NotificationSender interface {
	Send(ctx context.Context, batch domain.NotificationBatch) error
}
