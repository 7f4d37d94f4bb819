package service_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstims/internal/config"
	"gstims/internal/csvexport"
	"gstims/internal/domain"
	"gstims/internal/port"
	"gstims/internal/service"
	"gstims/mocks"
)

func setupExportService() (*service.ExportService, *reconServiceMocks, *mocks.MockObjectStorage) {
	m := &reconServiceMocks{
		inwardRepo:    new(mocks.MockInwardSupplyRepo),
		purchaseRepo:  new(mocks.MockPurchaseInvoiceRepo),
		returnLogRepo: new(mocks.MockReturnLogRepo),
		reconciler:    new(mocks.MockReconciler),
	}
	recon := service.NewReconService(m.inwardRepo, m.purchaseRepo, m.returnLogRepo, m.reconciler)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(recon, storage, config.S3Config{
		Bucket:        "gstims-exports",
		PresignExpiry: 3600,
	})
	return svc, m, storage
}

func TestExportService_ExportCSV_StagesFile(t *testing.T) {
	svc, m, storage := setupExportService()

	supply := domain.InwardSupply{
		ID:            uuid.New(),
		CompanyGSTIN:  testGSTIN,
		SupplierGSTIN: "29AABCU9603R1ZJ",
		SupplierName:  "Universal Components",
		BillNo:        "INV-501",
		DocType:       domain.DocTypeInvoice,
		TaxableValue:  decimal.NewFromInt(1000),
		IGST:          decimal.NewFromInt(180),
		LinkName:      "PINV-501",
	}
	purchase := domain.PurchaseInvoice{
		Name:         "PINV-501",
		PostingDate:  time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		TaxableValue: decimal.NewFromInt(1000),
		IGST:         decimal.NewFromInt(180),
	}

	m.inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID(nil)).
		Return([]domain.InwardSupply{supply}, nil)
	m.purchaseRepo.On("ListByNames", mock.Anything, []string{"PINV-501"}, mock.Anything).
		Return([]domain.PurchaseInvoice{purchase}, nil)

	var uploaded []byte
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		body, err := io.ReadAll(in.Body)
		if err != nil {
			return false
		}
		uploaded = body
		return in.Bucket == "gstims-exports" && in.ContentType == "text/csv"
	})).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "gstims-exports", mock.AnythingOfType("string"), int64(3600)).
		Return("https://example.com/signed", nil)

	result, err := svc.ExportCSV(context.Background(), testCompany, testGSTIN)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.InvoiceCount)
	assert.Equal(t, "https://example.com/signed", result.DownloadURL)
	assert.Contains(t, result.Key, "exports/"+testGSTIN+"/")

	assert.True(t, bytes.HasPrefix(uploaded, csvexport.BOM))
	assert.Contains(t, string(uploaded), "INV-501")
	assert.Contains(t, string(uploaded), "2026-06-15")
	storage.AssertExpectations(t)
}

func TestExportService_ExportExcel_StagesWorkbook(t *testing.T) {
	svc, m, storage := setupExportService()

	m.inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID(nil)).
		Return([]domain.InwardSupply{}, nil)
	m.purchaseRepo.On("ListByNames", mock.Anything, []string(nil), mock.Anything).
		Return(nil, nil)

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.ContentType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	})).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "gstims-exports", mock.AnythingOfType("string"), int64(3600)).
		Return("https://example.com/signed.xlsx", nil)

	result, err := svc.ExportExcel(context.Background(), testCompany, testGSTIN)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.InvoiceCount)
	assert.Contains(t, result.Key, ".xlsx")
}
