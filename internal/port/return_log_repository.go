package port

import (
	"context"

	"github.com/google/uuid"

	"gstims/internal/domain"
)

// ReturnLogRepository manages the per-GSTIN return log and its action-request
// tokens. All mutation of the log goes through the sync orchestrator's
// guarded paths.
type ReturnLogRepository interface {
	// Get returns the return log by name, or domain.ErrReturnLogNotFound.
	Get(ctx context.Context, name string) (*domain.ReturnLog, error)

	// GetOrCreate returns the return log for the GSTIN, creating it on
	// first download.
	GetOrCreate(ctx context.Context, gstin string) (*domain.ReturnLog, error)

	// AddAction persists a new action-request token against the log.
	AddAction(ctx context.Context, action *domain.ReturnAction) error

	// FirstUnprocessedAction returns the oldest action of the given kind
	// with a token but no status, or nil when none is pending.
	FirstUnprocessedAction(ctx context.Context, logName string, requestType domain.RequestType) (*domain.ReturnAction, error)

	// HasUnprocessedAction reports whether any action request for the log
	// is still awaiting a terminal status.
	HasUnprocessedAction(ctx context.Context, logName string) (bool, error)

	// PendingRequestTypes lists the request types of unprocessed actions.
	PendingRequestTypes(ctx context.Context, logName string) ([]string, error)

	SetActionStatus(ctx context.Context, actionID uuid.UUID, status string) error

	// LatestFiled3BPeriod returns the most recent GSTR-3B filed period for
	// the company GSTIN in MMYYYY form, or "" when unknown.
	LatestFiled3BPeriod(ctx context.Context, company, gstin string) (string, error)
}

// IntegrationRequestRepository archives upload payloads keyed by request id.
type IntegrationRequestRepository interface {
	Save(ctx context.Context, req *domain.IntegrationRequest) error

	// GetByRequestID returns the archived request, or
	// domain.ErrIntegrationRequestNotFound.
	GetByRequestID(ctx context.Context, requestID string) (*domain.IntegrationRequest, error)
}
