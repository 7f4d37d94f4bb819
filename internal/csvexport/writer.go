package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"

	"gstims/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (12 columns).
var columns = []string{
	"Supplier Name",
	"Supplier GSTIN",
	"Bill No",
	"Doc Type",
	"Classification",
	"Posting Date",
	"Match Status",
	"IMS Action",
	"Pending Upload",
	"Supplier Return Filed",
	"Taxable Value Difference",
	"Tax Difference",
}

// Writer wraps csv.Writer for exporting reconciled invoice views as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteViews converts a batch of reconciled views to CSV rows and writes them.
func (w *Writer) WriteViews(views []domain.ReconciledInvoiceView) error {
	for i := range views {
		if err := w.csv.Write(viewToRow(&views[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error reports any error from a previous Write or Flush.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func viewToRow(v *domain.ReconciledInvoiceView) []string {
	return []string{
		v.SupplierName,
		v.SupplierGSTIN,
		v.BillNo,
		string(v.DocType),
		string(v.Classification),
		v.PostingDate,
		string(v.MatchStatus),
		string(v.IMSAction),
		strconv.FormatBool(v.PendingUpload),
		strconv.FormatBool(v.IsSupplierReturnFiled),
		v.TaxableValueDifference.StringFixed(2),
		v.TaxDifference.StringFixed(2),
	}
}
