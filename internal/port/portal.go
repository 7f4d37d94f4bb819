package port

import (
	"context"

	"gstims/internal/domain"
)

// UploadResponse is the portal's acknowledgement of a submitted batch.
type UploadResponse struct {
	ReferenceID string
	RequestID   string
}

// RequestStatusResponse is the portal's processing status for a submitted
// batch, queried by token.
type RequestStatusResponse struct {
	StatusCode  domain.StatusCode
	ErrorReport domain.ErrorReport
}

// DownloadResponse carries the result of an IMS invoice download.
type DownloadResponse struct {
	// HasQueuedInvoices is set when the portal reports invoices still being
	// processed; uploads must be skipped for this cycle.
	HasQueuedInvoices bool
	Invoices          map[domain.Category][]domain.PortalInvoice
}

// PortalClient is the OTP-authenticated client to the government tax portal.
// The wire protocol itself lives behind this interface.
type PortalClient interface {
	// ValidateAuthToken verifies the OTP-backed session for the GSTIN;
	// returns domain.ErrOTPRequired when re-authentication is needed.
	ValidateAuthToken(ctx context.Context, gstin string) error

	Save(ctx context.Context, gstin string, batch domain.UploadBatch) (*UploadResponse, error)
	Reset(ctx context.Context, gstin string, batch domain.UploadBatch) (*UploadResponse, error)

	GetRequestStatus(ctx context.Context, gstin, token string) (*RequestStatusResponse, error)

	Download(ctx context.Context, gstin string) (*DownloadResponse, error)
}
