package port

import (
	"context"
	"time"

	"gstims/internal/domain"
)

// PurchaseFilter narrows purchase invoice lookups.
type PurchaseFilter struct {
	Company      string
	CompanyGSTIN string
}

// LinkOptionFilter selects purchase invoice candidates for manual linking.
type LinkOptionFilter struct {
	SupplierGSTIN string // substring match
	BillFromDate  time.Time
	BillToDate    time.Time
	ShowMatched   bool // include already-reconciled invoices
}

// PurchaseInvoiceRepository provides read access to the purchase ledger and
// reconciliation-status updates.
type PurchaseInvoiceRepository interface {
	GetByName(ctx context.Context, name string) (*domain.PurchaseInvoice, error)

	// ListByNames returns the named purchase invoices; unknown names are
	// simply absent from the result.
	ListByNames(ctx context.Context, names []string, filter PurchaseFilter) ([]domain.PurchaseInvoice, error)

	// ListUnreconciled returns submitted, unreconciled purchase invoices
	// eligible for matching against inward supplies of the given doc type.
	ListUnreconciled(ctx context.Context, filter PurchaseFilter, docType domain.DocType) ([]domain.PurchaseInvoice, error)

	// ListLinkOptions returns candidates for manual linking.
	ListLinkOptions(ctx context.Context, companyGSTIN string, filter LinkOptionFilter) ([]domain.LinkOption, error)

	SetReconciliationStatus(ctx context.Context, names []string, status domain.ReconciliationStatus) error
}
