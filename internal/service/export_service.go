package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"gstims/internal/config"
	"gstims/internal/csvexport"
	"gstims/internal/port"
)

const reconSheetName = "IMS Reconciliation"

var exportColumns = []string{
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

// ExportService renders the reconciliation view to Excel or CSV and stages
// the file in object storage behind a presigned URL.
type ExportService struct {
	recon   *ReconService
	storage port.ObjectStorage
	cfg     config.S3Config
}

// NewExportService creates a new ExportService.
func NewExportService(recon *ReconService, storage port.ObjectStorage, cfg config.S3Config) *ExportService {
	return &ExportService{recon: recon, storage: storage, cfg: cfg}
}

// ExportResult points at the staged export file.
type ExportResult struct {
	Key          string `json:"key"`
	DownloadURL  string `json:"download_url"`
	InvoiceCount int    `json:"invoice_count"`
}

// ExportExcel builds the reconciliation workbook for the company GSTIN,
// uploads it and returns a presigned download URL.
func (s *ExportService) ExportExcel(ctx context.Context, company, companyGSTIN string) (*ExportResult, error) {
	views, err := s.recon.buildInvoiceData(ctx, company, companyGSTIN, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("exportService.ExportExcel: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(reconSheetName)
	if err != nil {
		return nil, fmt.Errorf("exportService.ExportExcel: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("exportService.ExportExcel: %w", err)
	}

	for col, name := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("exportService.ExportExcel: %w", err)
		}
		if err := f.SetCellValue(reconSheetName, cell, name); err != nil {
			return nil, fmt.Errorf("exportService.ExportExcel: %w", err)
		}
	}

	for row, view := range views {
		values := []interface{}{
			view.SupplierName,
			view.SupplierGSTIN,
			view.BillNo,
			string(view.DocType),
			string(view.Classification),
			view.PostingDate,
			string(view.MatchStatus),
			string(view.IMSAction),
			view.PendingUpload,
			view.IsSupplierReturnFiled,
			view.TaxableValueDifference.StringFixed(2),
			view.TaxDifference.StringFixed(2),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("exportService.ExportExcel: %w", err)
			}
			if err := f.SetCellValue(reconSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("exportService.ExportExcel: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("exportService.ExportExcel: %w", err)
	}

	key := exportKey(companyGSTIN, "xlsx")
	return s.stage(ctx, key, &buf,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", len(views))
}

// ExportCSV builds the reconciliation CSV for the company GSTIN, uploads it
// and returns a presigned download URL.
func (s *ExportService) ExportCSV(ctx context.Context, company, companyGSTIN string) (*ExportResult, error) {
	views, err := s.recon.buildInvoiceData(ctx, company, companyGSTIN, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("exportService.ExportCSV: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.Write(csvexport.BOM); err != nil {
		return nil, fmt.Errorf("exportService.ExportCSV: %w", err)
	}
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("exportService.ExportCSV: %w", err)
	}
	if err := w.WriteViews(views); err != nil {
		return nil, fmt.Errorf("exportService.ExportCSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportService.ExportCSV: %w", err)
	}

	key := exportKey(companyGSTIN, "csv")
	return s.stage(ctx, key, &buf, "text/csv", len(views))
}

func (s *ExportService) stage(ctx context.Context, key string, body *bytes.Buffer, contentType string, count int) (*ExportResult, error) {
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        body,
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("exportService: uploading %s: %w", key, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("exportService: presigning %s: %w", key, err)
	}

	return &ExportResult{Key: key, DownloadURL: url, InvoiceCount: count}, nil
}

func exportKey(companyGSTIN, ext string) string {
	return fmt.Sprintf("exports/%s/ims-reconciliation-%s.%s",
		companyGSTIN, time.Now().UTC().Format("20060102-150405"), ext)
}
