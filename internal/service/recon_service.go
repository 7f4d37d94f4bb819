package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"gstims/internal/domain"
	"gstims/internal/port"
)

// ReconService renders the merged reconciliation view and manages manual
// links between inward supplies and purchase invoices.
type ReconService struct {
	inwardRepo    port.InwardSupplyRepository
	purchaseRepo  port.PurchaseInvoiceRepository
	returnLogRepo port.ReturnLogRepository
	reconciler    port.Reconciler
	now           func() time.Time
}

// NewReconService creates a new ReconService.
func NewReconService(
	inwardRepo port.InwardSupplyRepository,
	purchaseRepo port.PurchaseInvoiceRepository,
	returnLogRepo port.ReturnLogRepository,
	reconciler port.Reconciler,
) *ReconService {
	return &ReconService{
		inwardRepo:    inwardRepo,
		purchaseRepo:  purchaseRepo,
		returnLogRepo: returnLogRepo,
		reconciler:    reconciler,
		now:           time.Now,
	}
}

// InvoiceData is the reconciliation view plus the request types still awaiting
// portal processing, rendered together for the UI.
type InvoiceData struct {
	InvoiceData    []domain.ReconciledInvoiceView `json:"invoice_data"`
	PendingActions []string                       `json:"pending_actions"`
}

// AutoReconcileAndGetData runs the automatic matching pass and returns the
// merged reconciliation view for the company GSTIN.
func (s *ReconService) AutoReconcileAndGetData(ctx context.Context, company, companyGSTIN string) (*InvoiceData, error) {
	if err := s.reconciler.Reconcile(ctx, company, companyGSTIN); err != nil {
		return nil, fmt.Errorf("reconService.AutoReconcileAndGetData: %w", err)
	}

	views, err := s.buildInvoiceData(ctx, company, companyGSTIN, nil, nil)
	if err != nil {
		return nil, err
	}

	pending, err := s.returnLogRepo.PendingRequestTypes(ctx, domain.ReturnLogName(companyGSTIN))
	if err != nil {
		return nil, fmt.Errorf("reconService.AutoReconcileAndGetData: %w", err)
	}
	if pending == nil {
		pending = []string{}
	}

	return &InvoiceData{InvoiceData: views, PendingActions: pending}, nil
}

// GetInvoiceDetails returns the single-pair view for a purchase invoice and
// an inward supply, used by the manual-matching dialog.
func (s *ReconService) GetInvoiceDetails(ctx context.Context, company, companyGSTIN string, purchaseName string, inwardSupplyID uuid.UUID) (*domain.ReconciledInvoiceView, error) {
	views, err := s.buildInvoiceData(ctx, company, companyGSTIN, []uuid.UUID{inwardSupplyID}, []string{purchaseName})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrInvoiceNotFound
	}
	return &views[0], nil
}

// buildInvoiceData joins the selected inward supplies with their linked
// purchases. When purchaseNames is nil the set is derived from the supplies'
// link references. Purchase lookups consume from a working map so a purchase
// is attached to at most one view.
func (s *ReconService) buildInvoiceData(ctx context.Context, company, companyGSTIN string, supplyIDs []uuid.UUID, purchaseNames []string) ([]domain.ReconciledInvoiceView, error) {
	supplies, err := s.inwardRepo.List(ctx, companyGSTIN, supplyIDs)
	if err != nil {
		return nil, fmt.Errorf("reconService.buildInvoiceData: %w", err)
	}

	if purchaseNames == nil {
		for i := range supplies {
			if supplies[i].LinkName != "" {
				purchaseNames = append(purchaseNames, supplies[i].LinkName)
			}
		}
	}

	purchases, err := s.purchaseRepo.ListByNames(ctx, purchaseNames,
		port.PurchaseFilter{Company: company, CompanyGSTIN: companyGSTIN})
	if err != nil {
		return nil, fmt.Errorf("reconService.buildInvoiceData: %w", err)
	}

	working := make(map[string]*domain.PurchaseInvoice, len(purchases))
	for i := range purchases {
		working[purchases[i].Name] = &purchases[i]
	}

	views := make([]domain.ReconciledInvoiceView, 0, len(supplies))
	for i := range supplies {
		supply := &supplies[i]

		var purchase *domain.PurchaseInvoice
		if supply.LinkName != "" {
			purchase = working[supply.LinkName]
			delete(working, supply.LinkName)
		} else if len(supplies) == 1 && len(working) == 1 {
			// Detail view for an unlinked pair: attach the one requested
			// purchase for side-by-side comparison.
			for name, p := range working {
				purchase = p
				delete(working, name)
			}
		}

		views = append(views, buildReconciledView(supply, purchase))
	}
	return views, nil
}

// LinkDocuments manually links a purchase invoice to an unlinked inward
// supply and marks both sides reconciled.
func (s *ReconService) LinkDocuments(ctx context.Context, inwardSupplyID uuid.UUID, linkDoctype, purchaseName string) error {
	if _, err := s.purchaseRepo.GetByName(ctx, purchaseName); err != nil {
		return fmt.Errorf("reconService.LinkDocuments: %w", err)
	}

	if err := s.inwardRepo.Link(ctx, inwardSupplyID, linkDoctype, purchaseName, domain.MatchStatusManual); err != nil {
		return fmt.Errorf("reconService.LinkDocuments: %w", err)
	}

	if err := s.purchaseRepo.SetReconciliationStatus(ctx, []string{purchaseName}, domain.ReconStatusReconciled); err != nil {
		return fmt.Errorf("reconService.LinkDocuments: %w", err)
	}
	return nil
}

// UnlinkDocuments clears manual links and returns the affected purchases to
// the unreconciled pool.
func (s *ReconService) UnlinkDocuments(ctx context.Context, companyGSTIN string, inwardSupplyIDs []uuid.UUID) error {
	supplies, err := s.inwardRepo.List(ctx, companyGSTIN, inwardSupplyIDs)
	if err != nil {
		return fmt.Errorf("reconService.UnlinkDocuments: %w", err)
	}

	var purchaseNames []string
	for i := range supplies {
		if supplies[i].LinkName != "" {
			purchaseNames = append(purchaseNames, supplies[i].LinkName)
		}
	}

	if err := s.inwardRepo.Unlink(ctx, inwardSupplyIDs); err != nil {
		return fmt.Errorf("reconService.UnlinkDocuments: %w", err)
	}
	if err := s.purchaseRepo.SetReconciliationStatus(ctx, purchaseNames, domain.ReconStatusUnreconciled); err != nil {
		return fmt.Errorf("reconService.UnlinkDocuments: %w", err)
	}
	return nil
}

// GetLinkOptions returns purchase invoice candidates for manual linking.
func (s *ReconService) GetLinkOptions(ctx context.Context, companyGSTIN string, filter port.LinkOptionFilter) ([]domain.LinkOption, error) {
	options, err := s.purchaseRepo.ListLinkOptions(ctx, companyGSTIN, filter)
	if err != nil {
		return nil, fmt.Errorf("reconService.GetLinkOptions: %w", err)
	}
	return options, nil
}

// GetPeriodOptions returns up to six prior monthly periods in MMYYYY form,
// bounded below by the later of six months ago and the most recent filed
// GSTR-3B period, and never earlier than July 2017.
func (s *ReconService) GetPeriodOptions(ctx context.Context, company, companyGSTIN string) ([]string, error) {
	latestFiled, err := s.returnLogRepo.LatestFiled3BPeriod(ctx, company, companyGSTIN)
	if err != nil {
		return nil, fmt.Errorf("reconService.GetPeriodOptions: %w", err)
	}

	now := s.now()
	lowerBound := sortablePeriod(now.AddDate(0, -7, 0).Format("012006"))
	if filed := sortablePeriod(latestFiled); filed > lowerBound {
		lowerBound = filed
	}
	if floor := sortablePeriod(domain.EarliestReturnPeriod[4:] + domain.EarliestReturnPeriod[:4]); floor > lowerBound {
		// EarliestReturnPeriod is stored as YYYYMM; one month before it is
		// the exclusive bound.
		lowerBound = floor - 1
	}

	periods := []string{}
	for date := now.AddDate(0, -1, 0); ; date = date.AddDate(0, -1, 0) {
		period := date.Format("012006")
		if sortablePeriod(period) <= lowerBound {
			break
		}
		periods = append(periods, period)
	}
	return periods, nil
}

// sortablePeriod converts an MMYYYY period into a comparable YYYYMM integer;
// empty or malformed input sorts before everything.
func sortablePeriod(period string) int {
	if len(period) != 6 {
		return 0
	}
	month, err := strconv.Atoi(period[:2])
	if err != nil {
		return 0
	}
	year, err := strconv.Atoi(period[2:])
	if err != nil {
		return 0
	}
	return year*100 + month
}
