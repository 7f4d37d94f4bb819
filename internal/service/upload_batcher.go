package service

import (
	"context"
	"fmt"
	"strings"

	"gstims/internal/domain"
	"gstims/internal/port"
)

// UploadBatcher groups upload-eligible invoices by portal category and
// serializes them to the wire format.
type UploadBatcher struct {
	inwardRepo port.InwardSupplyRepository
}

// NewUploadBatcher creates a new UploadBatcher.
func NewUploadBatcher(inwardRepo port.InwardSupplyRepository) *UploadBatcher {
	return &UploadBatcher{inwardRepo: inwardRepo}
}

// Build assembles the upload batch for the request type. The save set holds
// pending-upload invoices with a real action; the reset set holds
// pending-upload invoices reverting to No Action. An empty batch means
// nothing is eligible and the caller must treat the cycle as a no-op.
func (b *UploadBatcher) Build(ctx context.Context, companyGSTIN string, requestType domain.RequestType) (domain.UploadBatch, error) {
	var (
		supplies []domain.InwardSupply
		err      error
	)
	switch requestType {
	case domain.RequestTypeSave:
		supplies, err = b.inwardRepo.ListForSave(ctx, companyGSTIN)
	case domain.RequestTypeReset:
		supplies, err = b.inwardRepo.ListForReset(ctx, companyGSTIN)
	default:
		return nil, fmt.Errorf("uploadBatcher.Build: unknown request type %q", requestType)
	}
	if err != nil {
		return nil, fmt.Errorf("uploadBatcher.Build: %w", err)
	}

	batch := make(domain.UploadBatch)
	for i := range supplies {
		supply := &supplies[i]

		category, ok := domain.CategoryFor(supply.DocType, supply.IsAmended)
		if !ok {
			return nil, fmt.Errorf("uploadBatcher.Build: no category for %q (amended=%t)", supply.DocType, supply.IsAmended)
		}
		handler, ok := HandlerFor(category)
		if !ok {
			return nil, fmt.Errorf("uploadBatcher.Build: no handler for category %q", category)
		}

		key := strings.ToLower(string(category))
		batch[key] = append(batch[key], handler.ToPortal(supply))
	}
	return batch, nil
}
