package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gstims/internal/csvexport"
	"gstims/internal/domain"
)

func TestWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	views := []domain.ReconciledInvoiceView{
		{
			SupplierName:           "Universal Components",
			SupplierGSTIN:          "29AABCU9603R1ZJ",
			BillNo:                 "INV-501",
			DocType:                domain.DocTypeInvoice,
			Classification:         domain.ClassificationB2B,
			PostingDate:            "2026-06-15",
			MatchStatus:            domain.MatchStatusExact,
			IMSAction:              domain.ActionAccepted,
			PendingUpload:          true,
			IsSupplierReturnFiled:  true,
			TaxableValueDifference: decimal.NewFromFloat(100.5),
			TaxDifference:          decimal.NewFromInt(18),
		},
		{
			SupplierName:   "Mehta Industries",
			SupplierGSTIN:  "27AAHCM1234K1Z5",
			BillNo:         "CN-12",
			DocType:        domain.DocTypeCreditNote,
			Classification: domain.ClassificationCDNR,
			IMSAction:      domain.ActionNone,
		},
	}

	assert.NoError(t, w.WriteHeader())
	assert.NoError(t, w.WriteViews(views))
	w.Flush()
	assert.NoError(t, w.Error())

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	assert.Equal(t, "Supplier Name", rows[0][0])
	assert.Equal(t, "Tax Difference", rows[0][11])

	assert.Equal(t, []string{
		"Universal Components", "29AABCU9603R1ZJ", "INV-501",
		"Invoice", "B2B", "2026-06-15", "Exact Match", "Accepted",
		"true", "true", "100.50", "18.00",
	}, rows[1])

	assert.Equal(t, "false", rows[2][8])
	assert.Equal(t, "0.00", rows[2][10])
}
