// Package notify delivers IMS workflow notifications to users. Delivery is
// email plus server logs; the Notifier port keeps the transport swappable.
package notify

import (
	"context"
	"fmt"
	"log"

	"gstims/internal/domain"
	"gstims/internal/port"
)

type emailNotifier struct {
	sender     port.EmailSender
	recipients []string
}

// NewEmailNotifier creates a Notifier that emails the configured recipients.
// With no recipients configured it degrades to log-only delivery.
func NewEmailNotifier(sender port.EmailSender, recipients []string) port.Notifier {
	return &emailNotifier{sender: sender, recipients: recipients}
}

func (n *emailNotifier) PublishActionStatus(ctx context.Context, notification domain.ActionStatusNotification) error {
	statusLabel := domain.StatusCodeMap[notification.StatusCode]
	if statusLabel == "" {
		statusLabel = string(notification.StatusCode)
	}

	log.Printf("notify: %s %s request for %s finished with status %q",
		notification.ReturnType, notification.RequestType, notification.GSTIN, statusLabel)

	if len(n.recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%s %s request for %s: %s",
		notification.ReturnType, notification.RequestType, notification.GSTIN, statusLabel)

	textBody := fmt.Sprintf(
		"Your %s %s request for GSTIN %s (period %s) finished with status: %s.\n",
		notification.ReturnType, notification.RequestType,
		notification.GSTIN, notification.ReturnPeriod, statusLabel)
	if notification.StatusCode == domain.StatusError {
		textBody += fmt.Sprintf("Request ID for diagnostics: %s\n", notification.RequestID)
	}

	htmlBody := fmt.Sprintf(
		"<p>Your <b>%s %s</b> request for GSTIN <b>%s</b> (period %s) finished with status: <b>%s</b>.</p>",
		notification.ReturnType, notification.RequestType,
		notification.GSTIN, notification.ReturnPeriod, statusLabel)
	if notification.StatusCode == domain.StatusError {
		htmlBody += fmt.Sprintf("<p>Request ID for diagnostics: <code>%s</code></p>", notification.RequestID)
	}

	if err := n.sender.Send(ctx, n.recipients, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("notify.PublishActionStatus: %w", err)
	}
	return nil
}

func (n *emailNotifier) PublishUploadReady(ctx context.Context, gstin string) error {
	log.Printf("notify: download for %s complete, pending actions can be uploaded", gstin)

	if len(n.recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("IMS download for %s complete", gstin)
	textBody := fmt.Sprintf("The IMS download for GSTIN %s finished with no queued invoices. Pending actions are ready to upload.\n", gstin)
	htmlBody := fmt.Sprintf("<p>The IMS download for GSTIN <b>%s</b> finished with no queued invoices. Pending actions are ready to upload.</p>", gstin)

	if err := n.sender.Send(ctx, n.recipients, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("notify.PublishUploadReady: %w", err)
	}
	return nil
}
