package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
	"gstims/internal/service"
	"gstims/mocks"
)

func batchSupply(docType domain.DocType, isAmended bool, billNo string) domain.InwardSupply {
	return domain.InwardSupply{
		ID:            uuid.New(),
		CompanyGSTIN:  testGSTIN,
		SupplierGSTIN: "29AABCU9603R1ZJ",
		BillNo:        billNo,
		BillDate:      time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		DocType:       docType,
		IsAmended:     isAmended,
		IMSAction:     domain.ActionAccepted,
	}
}

func TestUploadBatcher_Build_GroupsByCategory(t *testing.T) {
	inwardRepo := new(mocks.MockInwardSupplyRepo)
	batcher := service.NewUploadBatcher(inwardRepo)

	supplies := []domain.InwardSupply{
		batchSupply(domain.DocTypeInvoice, false, "INV-1"),
		batchSupply(domain.DocTypeInvoice, false, "INV-2"),
		batchSupply(domain.DocTypeInvoice, true, "INV-3"),
		batchSupply(domain.DocTypeDebitNote, false, "DN-1"),
		batchSupply(domain.DocTypeCreditNote, true, "CN-1"),
	}
	inwardRepo.On("ListForSave", mock.Anything, testGSTIN).Return(supplies, nil)

	batch, err := batcher.Build(context.Background(), testGSTIN, domain.RequestTypeSave)

	assert.NoError(t, err)
	assert.Len(t, batch, 4)
	assert.Len(t, batch["b2b"], 2)
	assert.Len(t, batch["b2ba"], 1)
	assert.Len(t, batch["b2bdn"], 1)
	assert.Len(t, batch["b2bcna"], 1)

	// Wire field placement differs per category: invoices carry inum/idt,
	// notes carry nt_num/nt_dt.
	assert.Equal(t, "INV-1", batch["b2b"][0].InvoiceNo)
	assert.Equal(t, "20-05-2026", batch["b2b"][0].InvoiceDate)
	assert.Empty(t, batch["b2b"][0].NoteNo)
	assert.Equal(t, "DN-1", batch["b2bdn"][0].NoteNo)
	assert.Equal(t, "20-05-2026", batch["b2bdn"][0].NoteDate)
	assert.Empty(t, batch["b2bdn"][0].InvoiceNo)
}

func TestUploadBatcher_Build_ResetUsesResetSet(t *testing.T) {
	inwardRepo := new(mocks.MockInwardSupplyRepo)
	batcher := service.NewUploadBatcher(inwardRepo)

	supply := batchSupply(domain.DocTypeInvoice, false, "INV-9")
	supply.IMSAction = domain.ActionNone
	inwardRepo.On("ListForReset", mock.Anything, testGSTIN).
		Return([]domain.InwardSupply{supply}, nil)

	batch, err := batcher.Build(context.Background(), testGSTIN, domain.RequestTypeReset)

	assert.NoError(t, err)
	assert.Len(t, batch["b2b"], 1)
	assert.Equal(t, "N", batch["b2b"][0].Action)
	inwardRepo.AssertNotCalled(t, "ListForSave")
}

func TestUploadBatcher_Build_EmptyEligibleSet(t *testing.T) {
	inwardRepo := new(mocks.MockInwardSupplyRepo)
	batcher := service.NewUploadBatcher(inwardRepo)

	inwardRepo.On("ListForSave", mock.Anything, testGSTIN).
		Return([]domain.InwardSupply{}, nil)

	batch, err := batcher.Build(context.Background(), testGSTIN, domain.RequestTypeSave)

	assert.NoError(t, err)
	assert.Empty(t, batch)
}

func TestUploadBatcher_Build_UnknownRequestType(t *testing.T) {
	inwardRepo := new(mocks.MockInwardSupplyRepo)
	batcher := service.NewUploadBatcher(inwardRepo)

	_, err := batcher.Build(context.Background(), testGSTIN, domain.RequestType("delete"))

	assert.Error(t, err)
}
