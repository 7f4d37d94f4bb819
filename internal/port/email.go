package port

import "context"

// EmailSender defines the contract for sending notification emails.
type EmailSender interface {
	Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error
}
