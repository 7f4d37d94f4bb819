package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
	"gstims/internal/port"
	"gstims/internal/service"
	"gstims/mocks"
)

const testCompany = "Acme Traders Pvt Ltd"

type reconServiceMocks struct {
	inwardRepo    *mocks.MockInwardSupplyRepo
	purchaseRepo  *mocks.MockPurchaseInvoiceRepo
	returnLogRepo *mocks.MockReturnLogRepo
	reconciler    *mocks.MockReconciler
}

func setupReconService() (*service.ReconService, *reconServiceMocks) {
	m := &reconServiceMocks{
		inwardRepo:    new(mocks.MockInwardSupplyRepo),
		purchaseRepo:  new(mocks.MockPurchaseInvoiceRepo),
		returnLogRepo: new(mocks.MockReturnLogRepo),
		reconciler:    new(mocks.MockReconciler),
	}
	svc := service.NewReconService(m.inwardRepo, m.purchaseRepo, m.returnLogRepo, m.reconciler)
	return svc, m
}

func linkedSupplyWithValues() domain.InwardSupply {
	return domain.InwardSupply{
		ID:                uuid.New(),
		CompanyGSTIN:      testGSTIN,
		SupplierGSTIN:     "29AABCU9603R1ZJ",
		SupplierName:      "Universal Components",
		BillNo:            "INV-501",
		DocType:           domain.DocTypeInvoice,
		Classification:    domain.ClassificationB2B,
		TaxableValue:      decimal.NewFromInt(1000),
		IGST:              decimal.NewFromInt(180),
		IMSAction:         domain.ActionAccepted,
		PreviousIMSAction: domain.ActionNone,
		LinkDoctype:       "Purchase Invoice",
		LinkName:          "PINV-501",
		MatchStatus:       domain.MatchStatusExact,
	}
}

// --- AutoReconcileAndGetData ---

func TestReconService_AutoReconcileAndGetData_MergesLinkedPurchases(t *testing.T) {
	svc, m := setupReconService()

	supply := linkedSupplyWithValues()
	purchase := domain.PurchaseInvoice{
		Name:         "PINV-501",
		Company:      testCompany,
		CompanyGSTIN: testGSTIN,
		PostingDate:  time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		TaxableValue: decimal.NewFromInt(1100),
		IGST:         decimal.NewFromInt(198),
	}

	m.reconciler.On("Reconcile", mock.Anything, testCompany, testGSTIN).Return(nil)
	m.inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID(nil)).
		Return([]domain.InwardSupply{supply}, nil)
	m.purchaseRepo.On("ListByNames", mock.Anything, []string{"PINV-501"},
		port.PurchaseFilter{Company: testCompany, CompanyGSTIN: testGSTIN}).
		Return([]domain.PurchaseInvoice{purchase}, nil)
	m.returnLogRepo.On("PendingRequestTypes", mock.Anything, domain.ReturnLogName(testGSTIN)).
		Return([]string{"save"}, nil)

	data, err := svc.AutoReconcileAndGetData(context.Background(), testCompany, testGSTIN)

	assert.NoError(t, err)
	assert.Len(t, data.InvoiceData, 1)
	assert.Equal(t, []string{"save"}, data.PendingActions)

	view := data.InvoiceData[0]
	assert.Equal(t, "2026-06-15", view.PostingDate)
	assert.True(t, view.PendingUpload)
	// Supplier reported 1000/180, books carry 1100/198: the difference reads
	// supplier-minus-booked.
	assert.True(t, view.TaxableValueDifference.Equal(decimal.NewFromInt(-100)))
	assert.True(t, view.TaxDifference.Equal(decimal.NewFromInt(-18)))
	assert.NotNil(t, view.PurchaseInvoice)
}

func TestReconService_AutoReconcileAndGetData_UnlinkedSupplyHasFullValueDifferences(t *testing.T) {
	svc, m := setupReconService()

	supply := linkedSupplyWithValues()
	supply.LinkDoctype = ""
	supply.LinkName = ""
	supply.MatchStatus = domain.MatchStatusUnmatched

	m.reconciler.On("Reconcile", mock.Anything, testCompany, testGSTIN).Return(nil)
	m.inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID(nil)).
		Return([]domain.InwardSupply{supply}, nil)
	m.purchaseRepo.On("ListByNames", mock.Anything, []string(nil), mock.Anything).
		Return(nil, nil)
	m.returnLogRepo.On("PendingRequestTypes", mock.Anything, domain.ReturnLogName(testGSTIN)).
		Return(nil, nil)

	data, err := svc.AutoReconcileAndGetData(context.Background(), testCompany, testGSTIN)

	assert.NoError(t, err)
	assert.Len(t, data.InvoiceData, 1)
	assert.NotNil(t, data.PendingActions)
	assert.Empty(t, data.PendingActions)

	view := data.InvoiceData[0]
	assert.Empty(t, view.PostingDate)
	assert.Nil(t, view.PurchaseInvoice)
	assert.True(t, view.TaxableValueDifference.Equal(decimal.NewFromInt(1000)))
	assert.True(t, view.TaxDifference.Equal(decimal.NewFromInt(180)))
}

// --- GetInvoiceDetails ---

func TestReconService_GetInvoiceDetails_AttachesUnlinkedPair(t *testing.T) {
	svc, m := setupReconService()

	supply := linkedSupplyWithValues()
	supply.LinkName = ""
	purchase := domain.PurchaseInvoice{
		Name:         "PINV-777",
		PostingDate:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		TaxableValue: decimal.NewFromInt(1000),
		IGST:         decimal.NewFromInt(180),
	}

	m.inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID{supply.ID}).
		Return([]domain.InwardSupply{supply}, nil)
	m.purchaseRepo.On("ListByNames", mock.Anything, []string{"PINV-777"}, mock.Anything).
		Return([]domain.PurchaseInvoice{purchase}, nil)

	view, err := svc.GetInvoiceDetails(context.Background(), testCompany, testGSTIN, "PINV-777", supply.ID)

	assert.NoError(t, err)
	// The requested purchase is shown side by side even though nothing links
	// them yet.
	assert.NotNil(t, view.PurchaseInvoice)
	assert.Equal(t, "PINV-777", view.PurchaseInvoice.Name)
	assert.True(t, view.TaxableValueDifference.IsZero())
}

func TestReconService_GetInvoiceDetails_NotFound(t *testing.T) {
	svc, m := setupReconService()

	id := uuid.New()
	m.inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID{id}).
		Return([]domain.InwardSupply{}, nil)
	m.purchaseRepo.On("ListByNames", mock.Anything, []string{"PINV-1"}, mock.Anything).
		Return(nil, nil)

	_, err := svc.GetInvoiceDetails(context.Background(), testCompany, testGSTIN, "PINV-1", id)

	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

// --- LinkDocuments / UnlinkDocuments ---

func TestReconService_LinkDocuments_MarksBothSides(t *testing.T) {
	svc, m := setupReconService()

	id := uuid.New()
	m.purchaseRepo.On("GetByName", mock.Anything, "PINV-900").
		Return(&domain.PurchaseInvoice{Name: "PINV-900"}, nil)
	m.inwardRepo.On("Link", mock.Anything, id, "Purchase Invoice", "PINV-900", domain.MatchStatusManual).
		Return(nil)
	m.purchaseRepo.On("SetReconciliationStatus", mock.Anything, []string{"PINV-900"}, domain.ReconStatusReconciled).
		Return(nil)

	err := svc.LinkDocuments(context.Background(), id, "Purchase Invoice", "PINV-900")

	assert.NoError(t, err)
	m.inwardRepo.AssertExpectations(t)
	m.purchaseRepo.AssertExpectations(t)
}

func TestReconService_LinkDocuments_AlreadyLinked(t *testing.T) {
	svc, m := setupReconService()

	id := uuid.New()
	m.purchaseRepo.On("GetByName", mock.Anything, "PINV-900").
		Return(&domain.PurchaseInvoice{Name: "PINV-900"}, nil)
	m.inwardRepo.On("Link", mock.Anything, id, "Purchase Invoice", "PINV-900", domain.MatchStatusManual).
		Return(domain.ErrAlreadyLinked)

	err := svc.LinkDocuments(context.Background(), id, "Purchase Invoice", "PINV-900")

	assert.ErrorIs(t, err, domain.ErrAlreadyLinked)
	m.purchaseRepo.AssertNotCalled(t, "SetReconciliationStatus")
}

func TestReconService_UnlinkDocuments_ReturnsPurchasesToPool(t *testing.T) {
	svc, m := setupReconService()

	supply := linkedSupplyWithValues()
	ids := []uuid.UUID{supply.ID}

	m.inwardRepo.On("List", mock.Anything, testGSTIN, ids).
		Return([]domain.InwardSupply{supply}, nil)
	m.inwardRepo.On("Unlink", mock.Anything, ids).Return(nil)
	m.purchaseRepo.On("SetReconciliationStatus", mock.Anything, []string{"PINV-501"}, domain.ReconStatusUnreconciled).
		Return(nil)

	err := svc.UnlinkDocuments(context.Background(), testGSTIN, ids)

	assert.NoError(t, err)
	m.purchaseRepo.AssertExpectations(t)
}
