package noop

import (
	"context"
	"log"
	"strings"

	"gstims/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs messages to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, to []string, subject, _, textBody string) error {
	log.Printf("[NOOP EMAIL] to=%s subject=%q body=%q", strings.Join(to, ","), subject, textBody)
	return nil
}
