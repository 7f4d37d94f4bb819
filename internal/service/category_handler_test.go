package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gstims/internal/domain"
	"gstims/internal/service"
)

func TestHandlerFor_CoversAllCategories(t *testing.T) {
	for _, category := range domain.AllCategories {
		handler, ok := service.HandlerFor(category)
		assert.True(t, ok, "no handler for %s", category)
		assert.Equal(t, category, handler.Category())

		resolved, ok := domain.CategoryFor(handler.DocType(), handler.IsAmended())
		assert.True(t, ok)
		assert.Equal(t, category, resolved)
	}

	_, ok := service.HandlerFor(domain.Category("B2C"))
	assert.False(t, ok)
}

func TestAmendedNoteHandler_RoundTrip(t *testing.T) {
	handler, ok := service.HandlerFor(domain.CategoryB2BCNA)
	assert.True(t, ok)

	originalNo := "CN-OLD-1"
	originalDate := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	supply := &domain.InwardSupply{
		CompanyGSTIN:     testGSTIN,
		SupplierGSTIN:    "29AABCU9603R1ZJ",
		BillNo:           "CN-NEW-1",
		BillDate:         time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		DocType:          domain.DocTypeCreditNote,
		IsAmended:        true,
		OriginalBillNo:   &originalNo,
		OriginalBillDate: &originalDate,
		PlaceOfSupply:    "29-Karnataka",
		TaxableValue:     decimal.NewFromInt(500),
		CGST:             decimal.NewFromInt(45),
		SGST:             decimal.NewFromInt(45),
		IMSAction:        domain.ActionRejected,
	}

	wire := handler.ToPortal(supply)
	assert.Equal(t, "CN-NEW-1", wire.NoteNo)
	assert.Equal(t, "10-05-2026", wire.NoteDate)
	assert.Equal(t, "CN-OLD-1", wire.OriginalNoteNo)
	assert.Equal(t, "02-04-2026", wire.OriginalNoteDate)
	assert.Equal(t, "R", wire.Action)
	assert.Empty(t, wire.InvoiceNo)
	assert.Empty(t, wire.InvoiceDate)

	assert.Equal(t, domain.InvoiceKey{BillNo: "CN-NEW-1", SupplierGSTIN: "29AABCU9603R1ZJ"},
		handler.InvoiceKeyOf(&wire))

	back, err := handler.FromPortal(testGSTIN, &wire)
	assert.NoError(t, err)
	assert.Equal(t, "CN-NEW-1", back.BillNo)
	assert.True(t, back.BillDate.Equal(supply.BillDate))
	assert.Equal(t, domain.DocTypeCreditNote, back.DocType)
	assert.True(t, back.IsAmended)
	assert.Equal(t, domain.ClassificationCDNRA, back.Classification)
	assert.Equal(t, "CN-OLD-1", *back.OriginalBillNo)
	assert.True(t, back.OriginalBillDate.Equal(originalDate))
	assert.Equal(t, domain.ActionRejected, back.IMSAction)
	assert.Equal(t, domain.ActionRejected, back.PreviousIMSAction)
}

func TestFromPortal_DownloadFlags(t *testing.T) {
	handler, _ := service.HandlerFor(domain.CategoryB2B)

	wire := domain.PortalInvoice{
		SupplierGSTIN:  "29AABCU9603R1ZJ",
		InvoiceNo:      "INV-9",
		InvoiceDate:    "01-07-2026",
		Action:         "",
		FiledStatus:    "F",
		PendingBlocked: "Y",
		SupplierForm:   "GSTR1",
		ReturnPeriod:   "062026",
	}

	supply, err := handler.FromPortal(testGSTIN, &wire)

	assert.NoError(t, err)
	// Missing action code reads as No Action.
	assert.Equal(t, domain.ActionNone, supply.IMSAction)
	assert.True(t, supply.IsSupplierReturnFiled)
	assert.False(t, supply.IsPendingActionAllowed)
	assert.Equal(t, "GSTR1", supply.SupplierReturnForm)
	assert.Equal(t, "062026", supply.SupReturnPeriod)
}
