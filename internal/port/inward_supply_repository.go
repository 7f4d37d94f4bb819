package port

import (
	"context"

	"github.com/google/uuid"

	"gstims/internal/domain"
)

// ActionStateUpdate is one invoice's new action state, applied atomically as
// part of a batch by ApplyActionState.
type ActionStateUpdate struct {
	ID             uuid.UUID
	Action         domain.MatchAction
	PreviousAction domain.MatchAction
	IMSAction      domain.IMSAction
}

// InwardSupplyRepository provides access to per-invoice action state for
// supplier-reported inward supplies.
type InwardSupplyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InwardSupply, error)

	// List returns inward supplies for a company GSTIN, optionally
	// restricted to the given identifiers.
	List(ctx context.Context, companyGSTIN string, ids []uuid.UUID) ([]domain.InwardSupply, error)

	// ListForSave returns invoices pending upload whose action is one of
	// Accepted, Rejected, Pending. ListForReset returns invoices pending
	// upload whose action is No Action. The two sets never intersect.
	ListForSave(ctx context.Context, companyGSTIN string) ([]domain.InwardSupply, error)
	ListForReset(ctx context.Context, companyGSTIN string) ([]domain.InwardSupply, error)

	// ApplyActionState persists a batch of action-state transitions in one
	// transaction; no partial application is visible to other readers.
	ApplyActionState(ctx context.Context, updates []ActionStateUpdate) error

	// SyncPreviousIMSAction marks the given invoices as acknowledged by the
	// portal (previous_ims_action := ims_action).
	SyncPreviousIMSAction(ctx context.Context, companyGSTIN string, keys []domain.InvoiceKey) error

	// ResetPreviousIMSAction clears the acknowledged action for a category
	// ahead of re-applying a fresh download.
	ResetPreviousIMSAction(ctx context.Context, companyGSTIN string, classification domain.Classification, docType domain.DocType) error

	// Upsert inserts or updates a downloaded invoice, keyed by
	// (company_gstin, supplier_gstin, bill_no, classification, doc_type).
	Upsert(ctx context.Context, supply *domain.InwardSupply) error

	// ListIMSOnlyUnfiled returns IMS-downloaded invoices for the category
	// whose supplier has not filed; these are deleted when they disappear
	// from a fresh download.
	ListIMSOnlyUnfiled(ctx context.Context, companyGSTIN string, classification domain.Classification, docType domain.DocType) ([]domain.InwardSupply, error)
	Delete(ctx context.Context, ids []uuid.UUID) error

	// Link attaches a purchase invoice to an unlinked inward supply;
	// returns domain.ErrAlreadyLinked otherwise. Unlink clears the link.
	Link(ctx context.Context, id uuid.UUID, linkDoctype, linkName string, matchStatus domain.MatchStatus) error
	Unlink(ctx context.Context, ids []uuid.UUID) error
}
