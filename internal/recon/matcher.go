// Package recon implements the automatic matching pass that links inward
// supplies to purchase invoices ahead of IMS action work. Only exact matches
// on (supplier GSTIN, bill number, document kind) are linked automatically;
// everything else is left for manual linking.
package recon

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gstims/internal/domain"
	"gstims/internal/port"
)

type matcher struct {
	inwardRepo   port.InwardSupplyRepository
	purchaseRepo port.PurchaseInvoiceRepository
}

// NewMatcher creates the exact-match Reconciler.
func NewMatcher(inwardRepo port.InwardSupplyRepository, purchaseRepo port.PurchaseInvoiceRepository) port.Reconciler {
	return &matcher{inwardRepo: inwardRepo, purchaseRepo: purchaseRepo}
}

type matchKey struct {
	supplierGSTIN string
	billNo        string
}

func (m *matcher) Reconcile(ctx context.Context, company, companyGSTIN string) error {
	supplies, err := m.inwardRepo.List(ctx, companyGSTIN, nil)
	if err != nil {
		return fmt.Errorf("recon.Reconcile: %w", err)
	}

	filter := port.PurchaseFilter{Company: company, CompanyGSTIN: companyGSTIN}
	for _, docType := range []domain.DocType{domain.DocTypeInvoice, domain.DocTypeDebitNote, domain.DocTypeCreditNote} {
		purchases, err := m.purchaseRepo.ListUnreconciled(ctx, filter, docType)
		if err != nil {
			return fmt.Errorf("recon.Reconcile: %w", err)
		}
		if len(purchases) == 0 {
			continue
		}

		// Each purchase links at most once per pass.
		candidates := make(map[matchKey]*domain.PurchaseInvoice, len(purchases))
		for i := range purchases {
			p := &purchases[i]
			candidates[matchKey{supplierGSTIN: p.SupplierGSTIN, billNo: p.BillNo}] = p
		}

		var linked []string
		for i := range supplies {
			supply := &supplies[i]
			if supply.DocType != docType || supply.LinkName != "" {
				continue
			}

			key := matchKey{supplierGSTIN: supply.SupplierGSTIN, billNo: supply.BillNo}
			purchase, ok := candidates[key]
			if !ok {
				continue
			}
			delete(candidates, key)

			err := m.inwardRepo.Link(ctx, supply.ID, "Purchase Invoice", purchase.Name, domain.MatchStatusExact)
			if err != nil {
				if errors.Is(err, domain.ErrAlreadyLinked) {
					// Raced with a manual link; nothing to undo.
					continue
				}
				return fmt.Errorf("recon.Reconcile: %w", err)
			}
			linked = append(linked, purchase.Name)
		}

		if len(linked) > 0 {
			if err := m.purchaseRepo.SetReconciliationStatus(ctx, linked, domain.ReconStatusReconciled); err != nil {
				return fmt.Errorf("recon.Reconcile: %w", err)
			}
			log.Printf("recon: linked %d %s purchase(s) for %s", len(linked), docType, companyGSTIN)
		}
	}
	return nil
}
