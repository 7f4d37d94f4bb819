package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstims/internal/domain"
	"gstims/internal/port"
)

type inwardSupplyRepo struct {
	db *sqlx.DB
}

// NewInwardSupplyRepo creates a new PostgreSQL-backed InwardSupplyRepository.
func NewInwardSupplyRepo(db *sqlx.DB) port.InwardSupplyRepository {
	return &inwardSupplyRepo{db: db}
}

func (r *inwardSupplyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InwardSupply, error) {
	var supply domain.InwardSupply
	err := r.db.GetContext(ctx, &supply,
		"SELECT * FROM inward_supplies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("inwardSupplyRepo.GetByID: %w", err)
	}
	return &supply, nil
}

func (r *inwardSupplyRepo) List(ctx context.Context, companyGSTIN string, ids []uuid.UUID) ([]domain.InwardSupply, error) {
	query := "SELECT * FROM inward_supplies WHERE company_gstin = ?"
	args := []interface{}{companyGSTIN}

	if len(ids) > 0 {
		var err error
		query, args, err = sqlx.In(
			"SELECT * FROM inward_supplies WHERE company_gstin = ? AND id IN (?)",
			companyGSTIN, ids)
		if err != nil {
			return nil, fmt.Errorf("inwardSupplyRepo.List: %w", err)
		}
	}

	var supplies []domain.InwardSupply
	err := r.db.SelectContext(ctx, &supplies, r.db.Rebind(query+" ORDER BY bill_date DESC, bill_no"), args...)
	if err != nil {
		return nil, fmt.Errorf("inwardSupplyRepo.List: %w", err)
	}
	return supplies, nil
}

// Save-eligible invoices have an action awaiting upload; reset-eligible ones
// revert to No Action. Both require ims_action <> previous_ims_action, so the
// two sets are disjoint by construction.
func (r *inwardSupplyRepo) ListForSave(ctx context.Context, companyGSTIN string) ([]domain.InwardSupply, error) {
	var supplies []domain.InwardSupply
	err := r.db.SelectContext(ctx, &supplies,
		`SELECT * FROM inward_supplies
		 WHERE company_gstin = $1
		   AND ims_action <> previous_ims_action
		   AND ims_action <> $2
		 ORDER BY doc_type, is_amended, bill_no`,
		companyGSTIN, domain.ActionNone)
	if err != nil {
		return nil, fmt.Errorf("inwardSupplyRepo.ListForSave: %w", err)
	}
	return supplies, nil
}

func (r *inwardSupplyRepo) ListForReset(ctx context.Context, companyGSTIN string) ([]domain.InwardSupply, error) {
	var supplies []domain.InwardSupply
	err := r.db.SelectContext(ctx, &supplies,
		`SELECT * FROM inward_supplies
		 WHERE company_gstin = $1
		   AND ims_action <> previous_ims_action
		   AND ims_action = $2
		 ORDER BY doc_type, is_amended, bill_no`,
		companyGSTIN, domain.ActionNone)
	if err != nil {
		return nil, fmt.Errorf("inwardSupplyRepo.ListForReset: %w", err)
	}
	return supplies, nil
}

func (r *inwardSupplyRepo) ApplyActionState(ctx context.Context, updates []port.ActionStateUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.ApplyActionState begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		`UPDATE inward_supplies
		 SET action = $1, previous_action = $2, ims_action = $3, updated_at = $4
		 WHERE id = $5`)
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.ApplyActionState prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, u := range updates {
		if _, err := stmt.ExecContext(ctx, u.Action, u.PreviousAction, u.IMSAction, now, u.ID); err != nil {
			return fmt.Errorf("inwardSupplyRepo.ApplyActionState update %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("inwardSupplyRepo.ApplyActionState commit: %w", err)
	}
	return nil
}

func (r *inwardSupplyRepo) SyncPreviousIMSAction(ctx context.Context, companyGSTIN string, keys []domain.InvoiceKey) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.SyncPreviousIMSAction begin: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		_, err := tx.ExecContext(ctx,
			`UPDATE inward_supplies
			 SET previous_ims_action = ims_action, updated_at = $1
			 WHERE company_gstin = $2 AND bill_no = $3 AND supplier_gstin = $4`,
			time.Now().UTC(), companyGSTIN, key.BillNo, key.SupplierGSTIN)
		if err != nil {
			return fmt.Errorf("inwardSupplyRepo.SyncPreviousIMSAction %s/%s: %w", key.SupplierGSTIN, key.BillNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("inwardSupplyRepo.SyncPreviousIMSAction commit: %w", err)
	}
	return nil
}

func (r *inwardSupplyRepo) ResetPreviousIMSAction(ctx context.Context, companyGSTIN string, classification domain.Classification, docType domain.DocType) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE inward_supplies
		 SET previous_ims_action = $1, updated_at = $2
		 WHERE company_gstin = $3 AND classification = $4 AND doc_type = $5`,
		domain.ActionNone, time.Now().UTC(), companyGSTIN, classification, docType)
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.ResetPreviousIMSAction: %w", err)
	}
	return nil
}

func (r *inwardSupplyRepo) Upsert(ctx context.Context, supply *domain.InwardSupply) error {
	now := time.Now().UTC()
	if supply.ID == uuid.Nil {
		supply.ID = uuid.New()
	}
	supply.CreatedAt = now
	supply.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inward_supplies (
			id, company_gstin, supplier_gstin, supplier_name, bill_no, bill_date,
			doc_type, is_amended, original_bill_no, original_bill_date, classification,
			supply_type, place_of_supply, document_value, taxable_value,
			igst, cgst, sgst, cess,
			action, previous_action, ims_action, previous_ims_action,
			link_doctype, link_name, match_status,
			is_pending_action_allowed, is_supplier_return_filed,
			supplier_return_form, sup_return_period,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19,
			$20, $21, $22, $23,
			$24, $25, $26,
			$27, $28,
			$29, $30,
			$31, $32
		)
		ON CONFLICT (company_gstin, supplier_gstin, bill_no, classification, doc_type)
		DO UPDATE SET
			supplier_name = EXCLUDED.supplier_name,
			bill_date = EXCLUDED.bill_date,
			is_amended = EXCLUDED.is_amended,
			original_bill_no = EXCLUDED.original_bill_no,
			original_bill_date = EXCLUDED.original_bill_date,
			supply_type = EXCLUDED.supply_type,
			place_of_supply = EXCLUDED.place_of_supply,
			document_value = EXCLUDED.document_value,
			taxable_value = EXCLUDED.taxable_value,
			igst = EXCLUDED.igst,
			cgst = EXCLUDED.cgst,
			sgst = EXCLUDED.sgst,
			cess = EXCLUDED.cess,
			previous_ims_action = EXCLUDED.previous_ims_action,
			ims_action = EXCLUDED.ims_action,
			is_pending_action_allowed = EXCLUDED.is_pending_action_allowed,
			is_supplier_return_filed = EXCLUDED.is_supplier_return_filed,
			supplier_return_form = EXCLUDED.supplier_return_form,
			sup_return_period = EXCLUDED.sup_return_period,
			updated_at = EXCLUDED.updated_at`,
		supply.ID, supply.CompanyGSTIN, supply.SupplierGSTIN, supply.SupplierName, supply.BillNo, supply.BillDate,
		supply.DocType, supply.IsAmended, supply.OriginalBillNo, supply.OriginalBillDate, supply.Classification,
		supply.SupplyType, supply.PlaceOfSupply, supply.DocumentValue, supply.TaxableValue,
		supply.IGST, supply.CGST, supply.SGST, supply.Cess,
		supply.Action, supply.PreviousAction, supply.IMSAction, supply.PreviousIMSAction,
		supply.LinkDoctype, supply.LinkName, supply.MatchStatus,
		supply.IsPendingActionAllowed, supply.IsSupplierReturnFiled,
		supply.SupplierReturnForm, supply.SupReturnPeriod,
		supply.CreatedAt, supply.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.Upsert: %w", err)
	}
	return nil
}

func (r *inwardSupplyRepo) ListIMSOnlyUnfiled(ctx context.Context, companyGSTIN string, classification domain.Classification, docType domain.DocType) ([]domain.InwardSupply, error) {
	var supplies []domain.InwardSupply
	err := r.db.SelectContext(ctx, &supplies,
		`SELECT * FROM inward_supplies
		 WHERE company_gstin = $1
		   AND classification = $2
		   AND doc_type = $3
		   AND is_supplier_return_filed = FALSE`,
		companyGSTIN, classification, docType)
	if err != nil {
		return nil, fmt.Errorf("inwardSupplyRepo.ListIMSOnlyUnfiled: %w", err)
	}
	return supplies, nil
}

func (r *inwardSupplyRepo) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM inward_supplies WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.Delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("inwardSupplyRepo.Delete: %w", err)
	}
	return nil
}

func (r *inwardSupplyRepo) Link(ctx context.Context, id uuid.UUID, linkDoctype, linkName string, matchStatus domain.MatchStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE inward_supplies
		 SET link_doctype = $1, link_name = $2, match_status = $3, updated_at = $4
		 WHERE id = $5 AND link_name = ''`,
		linkDoctype, linkName, matchStatus, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.Link: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.Link: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyLinked
	}
	return nil
}

func (r *inwardSupplyRepo) Unlink(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		`UPDATE inward_supplies
		 SET link_doctype = '', link_name = '', match_status = '', updated_at = ?
		 WHERE id IN (?)`,
		time.Now().UTC(), ids)
	if err != nil {
		return fmt.Errorf("inwardSupplyRepo.Unlink: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("inwardSupplyRepo.Unlink: %w", err)
	}
	return nil
}
