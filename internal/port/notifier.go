package port

import (
	"context"

	"gstims/internal/domain"
)

// Notifier delivers user-facing status notifications. Delivery transport
// (email, websocket, etc.) is an implementation concern.
type Notifier interface {
	// PublishActionStatus announces the terminal status of a save/reset
	// request.
	PublishActionStatus(ctx context.Context, n domain.ActionStatusNotification) error

	// PublishUploadReady signals that a download cycle finished with no
	// queued invoices and pending actions can be uploaded.
	PublishUploadReady(ctx context.Context, gstin string) error
}
