package service

import (
	"github.com/shopspring/decimal"

	"gstims/internal/domain"
)

// buildReconciledView joins one inward supply with its (possibly absent)
// linked purchase invoice and computes the derived comparison fields. Source
// documents are retained on the view for downstream use.
func buildReconciledView(supply *domain.InwardSupply, purchase *domain.PurchaseInvoice) domain.ReconciledInvoiceView {
	view := domain.ReconciledInvoiceView{
		IMSAction:              supply.IMSAction,
		PreviousIMSAction:      supply.PreviousIMSAction,
		PendingUpload:          supply.PendingUpload(),
		IsPendingActionAllowed: supply.IsPendingActionAllowed,
		IsSupplierReturnFiled:  supply.IsSupplierReturnFiled,
		DocType:                supply.DocType,
		SupplierName:           supply.SupplierName,
		SupplierGSTIN:          supply.SupplierGSTIN,
		BillNo:                 supply.BillNo,
		MatchStatus:            supply.MatchStatus,
		Classification:         supply.Classification,

		InwardSupply:    supply,
		PurchaseInvoice: purchase,
	}

	// Differences are supplier-reported minus booked (2A/2B minus purchase).
	// Against an absent purchase they read as the full supplier values.
	if purchase == nil {
		view.TaxableValueDifference = supply.TaxableValue
		view.TaxDifference = totalTax(supply)
		return view
	}

	view.PostingDate = purchase.PostingDate.Format("2006-01-02")
	view.TaxableValueDifference = supply.TaxableValue.Sub(purchase.TaxableValue)
	view.TaxDifference = totalTax(supply).Sub(purchaseTotalTax(purchase))
	return view
}

func totalTax(s *domain.InwardSupply) decimal.Decimal {
	return s.IGST.Add(s.CGST).Add(s.SGST).Add(s.Cess)
}

func purchaseTotalTax(p *domain.PurchaseInvoice) decimal.Decimal {
	return p.IGST.Add(p.CGST).Add(p.SGST).Add(p.Cess)
}
