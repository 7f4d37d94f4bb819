package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstims/internal/domain"
	"gstims/internal/port"
)

type purchaseInvoiceRepo struct {
	db *sqlx.DB
}

// NewPurchaseInvoiceRepo creates a new PostgreSQL-backed PurchaseInvoiceRepository.
func NewPurchaseInvoiceRepo(db *sqlx.DB) port.PurchaseInvoiceRepository {
	return &purchaseInvoiceRepo{db: db}
}

func (r *purchaseInvoiceRepo) GetByName(ctx context.Context, name string) (*domain.PurchaseInvoice, error) {
	var invoice domain.PurchaseInvoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM purchase_invoices WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("purchaseInvoiceRepo.GetByName: %w", err)
	}
	return &invoice, nil
}

func (r *purchaseInvoiceRepo) ListByNames(ctx context.Context, names []string, filter port.PurchaseFilter) ([]domain.PurchaseInvoice, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT * FROM purchase_invoices
		 WHERE name IN (?) AND company = ? AND company_gstin = ?`,
		names, filter.Company, filter.CompanyGSTIN)
	if err != nil {
		return nil, fmt.Errorf("purchaseInvoiceRepo.ListByNames: %w", err)
	}

	var invoices []domain.PurchaseInvoice
	err = r.db.SelectContext(ctx, &invoices, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("purchaseInvoiceRepo.ListByNames: %w", err)
	}
	return invoices, nil
}

func (r *purchaseInvoiceRepo) ListUnreconciled(ctx context.Context, filter port.PurchaseFilter, docType domain.DocType) ([]domain.PurchaseInvoice, error) {
	// Credit notes are represented in the ledger as purchase returns.
	isReturn := docType == domain.DocTypeCreditNote

	var invoices []domain.PurchaseInvoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM purchase_invoices
		 WHERE company = $1
		   AND company_gstin = $2
		   AND is_return = $3
		   AND reconciliation_status = $4
		 ORDER BY bill_date, bill_no`,
		filter.Company, filter.CompanyGSTIN, isReturn, domain.ReconStatusUnreconciled)
	if err != nil {
		return nil, fmt.Errorf("purchaseInvoiceRepo.ListUnreconciled: %w", err)
	}
	return invoices, nil
}

func (r *purchaseInvoiceRepo) ListLinkOptions(ctx context.Context, companyGSTIN string, filter port.LinkOptionFilter) ([]domain.LinkOption, error) {
	query, args := linkOptionsQuery(companyGSTIN, filter)

	var options []domain.LinkOption
	err := r.db.SelectContext(ctx, &options, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("purchaseInvoiceRepo.ListLinkOptions: %w", err)
	}
	return options, nil
}

func linkOptionsQuery(companyGSTIN string, filter port.LinkOptionFilter) (string, []interface{}) {
	query := `SELECT name, bill_no, bill_date, supplier_gstin, supplier_name,
	                 gst_category, is_return, taxable_value
	          FROM purchase_invoices
	          WHERE company_gstin = ?`
	args := []interface{}{companyGSTIN}

	if filter.SupplierGSTIN != "" {
		query += " AND supplier_gstin LIKE ?"
		args = append(args, "%"+filter.SupplierGSTIN+"%")
	}
	if !filter.BillFromDate.IsZero() {
		query += " AND bill_date >= ?"
		args = append(args, filter.BillFromDate)
	}
	if !filter.BillToDate.IsZero() {
		query += " AND bill_date <= ?"
		args = append(args, filter.BillToDate)
	}
	if !filter.ShowMatched {
		query += " AND reconciliation_status = ?"
		args = append(args, domain.ReconStatusUnreconciled)
	}
	query += " ORDER BY bill_date DESC, bill_no"
	return query, args
}

func (r *purchaseInvoiceRepo) SetReconciliationStatus(ctx context.Context, names []string, status domain.ReconciliationStatus) error {
	if len(names) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		"UPDATE purchase_invoices SET reconciliation_status = ? WHERE name IN (?)",
		status, names)
	if err != nil {
		return fmt.Errorf("purchaseInvoiceRepo.SetReconciliationStatus: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("purchaseInvoiceRepo.SetReconciliationStatus: %w", err)
	}
	return nil
}
