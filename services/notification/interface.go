package notification

import (
	"context"

	"buskpod/models"
)

// Sender delivers one rendered notification over a single channel.
type Sender interface {
	Send(ctx context.Context, payload models.NotificationPayload) error
}
