package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InwardSupply is a supplier-reported invoice line downloaded from the IMS,
// as known to the local system.
type InwardSupply struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CompanyGSTIN string    `db:"company_gstin" json:"company_gstin"`

	SupplierGSTIN string    `db:"supplier_gstin" json:"supplier_gstin"`
	SupplierName  string    `db:"supplier_name" json:"supplier_name"`
	BillNo        string    `db:"bill_no" json:"bill_no"`
	BillDate      time.Time `db:"bill_date" json:"bill_date"`

	DocType          DocType        `db:"doc_type" json:"doc_type"`
	IsAmended        bool           `db:"is_amended" json:"is_amended"`
	OriginalBillNo   *string        `db:"original_bill_no" json:"original_bill_no,omitempty"`
	OriginalBillDate *time.Time     `db:"original_bill_date" json:"original_bill_date,omitempty"`
	Classification   Classification `db:"classification" json:"classification"`

	SupplyType    string          `db:"supply_type" json:"supply_type"`
	PlaceOfSupply string          `db:"place_of_supply" json:"place_of_supply"`
	DocumentValue decimal.Decimal `db:"document_value" json:"document_value"`
	TaxableValue  decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	IGST          decimal.Decimal `db:"igst" json:"igst"`
	CGST          decimal.Decimal `db:"cgst" json:"cgst"`
	SGST          decimal.Decimal `db:"sgst" json:"sgst"`
	Cess          decimal.Decimal `db:"cess" json:"cess"`

	// Action is governed by reconciliation matching; IMSAction is the
	// user-facing override. PreviousAction shadows Action across a rejection
	// so it can be restored when the rejection is reversed.
	Action         MatchAction `db:"action" json:"action"`
	PreviousAction MatchAction `db:"previous_action" json:"previous_action"`

	// PreviousIMSAction is the last action acknowledged by the portal. An
	// invoice is pending upload while IMSAction differs from it.
	IMSAction         IMSAction `db:"ims_action" json:"ims_action"`
	PreviousIMSAction IMSAction `db:"previous_ims_action" json:"previous_ims_action"`

	LinkDoctype string `db:"link_doctype" json:"link_doctype"`
	LinkName    string `db:"link_name" json:"link_name"`

	MatchStatus            MatchStatus `db:"match_status" json:"match_status"`
	IsPendingActionAllowed bool        `db:"is_pending_action_allowed" json:"is_pending_action_allowed"`
	IsSupplierReturnFiled  bool        `db:"is_supplier_return_filed" json:"is_supplier_return_filed"`
	SupplierReturnForm     string      `db:"supplier_return_form" json:"supplier_return_form"`
	SupReturnPeriod        string      `db:"sup_return_period" json:"sup_return_period"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PendingUpload reports whether the invoice's action still has to be
// submitted to the portal.
func (s *InwardSupply) PendingUpload() bool {
	return s.IMSAction != s.PreviousIMSAction
}

// Key identifies the invoice within one company GSTIN across categories.
func (s *InwardSupply) Key() InvoiceKey {
	return InvoiceKey{BillNo: s.BillNo, SupplierGSTIN: s.SupplierGSTIN}
}

// InvoiceKey identifies an uploaded invoice in portal responses and error
// reports.
type InvoiceKey struct {
	BillNo        string
	SupplierGSTIN string
}

// PurchaseInvoice is the taxpayer's own purchase ledger entry.
type PurchaseInvoice struct {
	Name         string `db:"name" json:"name"`
	Company      string `db:"company" json:"company"`
	CompanyGSTIN string `db:"company_gstin" json:"company_gstin"`

	SupplierGSTIN string    `db:"supplier_gstin" json:"supplier_gstin"`
	SupplierName  string    `db:"supplier_name" json:"supplier_name"`
	BillNo        string    `db:"bill_no" json:"bill_no"`
	BillDate      time.Time `db:"bill_date" json:"bill_date"`
	PostingDate   time.Time `db:"posting_date" json:"posting_date"`

	GSTCategory          string               `db:"gst_category" json:"gst_category"`
	IsReturn             bool                 `db:"is_return" json:"is_return"`
	IsReverseCharge      bool                 `db:"is_reverse_charge" json:"is_reverse_charge"`
	PlaceOfSupply        string               `db:"place_of_supply" json:"place_of_supply"`
	ReconciliationStatus ReconciliationStatus `db:"reconciliation_status" json:"reconciliation_status"`

	TaxableValue decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	IGST         decimal.Decimal `db:"igst" json:"igst"`
	CGST         decimal.Decimal `db:"cgst" json:"cgst"`
	SGST         decimal.Decimal `db:"sgst" json:"sgst"`
	Cess         decimal.Decimal `db:"cess" json:"cess"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ReconciledInvoiceView is the read-only projection of an inward supply and
// its (possibly absent) linked purchase invoice. Constructed on demand,
// never persisted.
type ReconciledInvoiceView struct {
	IMSAction              IMSAction   `json:"ims_action"`
	PreviousIMSAction      IMSAction   `json:"previous_ims_action"`
	PendingUpload          bool        `json:"pending_upload"`
	IsPendingActionAllowed bool        `json:"is_pending_action_allowed"`
	IsSupplierReturnFiled  bool        `json:"is_supplier_return_filed"`
	DocType                DocType     `json:"doc_type"`
	PostingDate            string      `json:"posting_date"`
	SupplierName           string      `json:"supplier_name"`
	SupplierGSTIN          string      `json:"supplier_gstin"`
	BillNo                 string      `json:"bill_no"`
	MatchStatus            MatchStatus `json:"match_status"`
	Classification         Classification `json:"classification"`

	TaxableValueDifference decimal.Decimal `json:"taxable_value_difference"`
	TaxDifference          decimal.Decimal `json:"tax_difference"`

	// Source documents are retained for downstream use (export, linking).
	InwardSupply    *InwardSupply    `json:"_inward_supply"`
	PurchaseInvoice *PurchaseInvoice `json:"_purchase_invoice,omitempty"`
}

// PortalInvoice is an invoice shaped per the portal's wire schema. One struct
// covers all six categories; the formatter for each category fills the fields
// it owns.
type PortalInvoice struct {
	SupplierGSTIN   string `json:"stin"`
	ReturnPeriod    string `json:"rtnprd,omitempty"`
	InvoiceType     string `json:"inv_typ,omitempty"`
	SupplierForm    string `json:"srcform,omitempty"`
	PlaceOfSupply   string `json:"pos,omitempty"`
	Action          string `json:"action,omitempty"`
	PreviousStatus  string `json:"prev_status,omitempty"`
	FiledStatus     string `json:"srcfilstatus,omitempty"`
	PendingBlocked  string `json:"ispendactblocked,omitempty"`

	DocumentValue decimal.Decimal `json:"val"`
	TaxableValue  decimal.Decimal `json:"txval"`
	IGST          decimal.Decimal `json:"iamt"`
	CGST          decimal.Decimal `json:"camt"`
	SGST          decimal.Decimal `json:"samt"`
	Cess          decimal.Decimal `json:"cess"`

	// Invoice categories.
	InvoiceNo   string `json:"inum,omitempty"`
	InvoiceDate string `json:"idt,omitempty"`
	// Amended invoice categories.
	OriginalInvoiceNo   string `json:"oinum,omitempty"`
	OriginalInvoiceDate string `json:"oidt,omitempty"`
	// Note categories.
	NoteNo   string `json:"nt_num,omitempty"`
	NoteDate string `json:"nt_dt,omitempty"`
	// Amended note categories.
	OriginalNoteNo   string `json:"ont_num,omitempty"`
	OriginalNoteDate string `json:"ont_dt,omitempty"`
}

// UploadBatch maps a lower-cased portal category name to its formatted
// invoices. Constructed transiently per sync cycle.
type UploadBatch map[string][]PortalInvoice

// ErrorReportInvoice is one erroneous invoice in a portal error report.
type ErrorReportInvoice struct {
	InvoiceNo string `json:"inum"`
	ErrorCode string `json:"error_cd,omitempty"`
}

// ErrorReportSupplier groups erroneous invoices by supplier.
type ErrorReportSupplier struct {
	SupplierGSTIN string               `json:"stin"`
	Invoices      []ErrorReportInvoice `json:"inv"`
}

// ErrorReport maps a lower-cased category name to suppliers whose invoices
// the portal rejected.
type ErrorReport map[string][]ErrorReportSupplier

// Keys flattens the report into invoice keys across all categories. The
// portal reuses the same key shape for every category.
func (r ErrorReport) Keys() map[InvoiceKey]bool {
	keys := make(map[InvoiceKey]bool)
	for _, suppliers := range r {
		for _, supplier := range suppliers {
			for _, inv := range supplier.Invoices {
				keys[InvoiceKey{BillNo: inv.InvoiceNo, SupplierGSTIN: supplier.SupplierGSTIN}] = true
			}
		}
	}
	return keys
}

// ReturnLog is the per-GSTIN tax-return-log entity that anchors IMS action
// requests. Its name follows the portal convention IMS-ALL-<gstin>.
type ReturnLog struct {
	Name         string    `db:"name" json:"name"`
	GSTIN        string    `db:"gstin" json:"gstin"`
	ReturnPeriod string    `db:"return_period" json:"return_period"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ReturnLogName builds the canonical return log name for a company GSTIN.
func ReturnLogName(gstin string) string {
	return "IMS-ALL-" + gstin
}

// ReturnAction is a persisted action-request token correlating a submitted
// batch with its asynchronous processing status on the portal.
type ReturnAction struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	ReturnLogName string      `db:"return_log_name" json:"return_log_name"`
	RequestType   RequestType `db:"request_type" json:"request_type"`
	Token         string      `db:"token" json:"token"`
	RequestID     string      `db:"request_id" json:"request_id"`
	Status        *string     `db:"status" json:"status,omitempty"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// IntegrationRequest archives the payload submitted to the portal so the
// post-completion reconciliation can re-derive invoice state from exactly
// what was uploaded.
type IntegrationRequest struct {
	RequestID    string      `db:"request_id" json:"request_id"`
	CompanyGSTIN string      `db:"company_gstin" json:"company_gstin"`
	RequestType  RequestType `db:"request_type" json:"request_type"`
	Payload      []byte      `db:"payload" json:"payload"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// User is an authenticated user of the IMS tool.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Company      string    `db:"company" json:"company"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LinkOption is a purchase invoice candidate for manual linking.
type LinkOption struct {
	Name          string          `db:"name" json:"name"`
	BillNo        string          `db:"bill_no" json:"bill_no"`
	BillDate      time.Time       `db:"bill_date" json:"bill_date"`
	SupplierGSTIN string          `db:"supplier_gstin" json:"supplier_gstin"`
	SupplierName  string          `db:"supplier_name" json:"supplier_name"`
	GSTCategory   string          `db:"gst_category" json:"gst_category"`
	IsReturn      bool            `db:"is_return" json:"is_return"`
	TaxableValue  decimal.Decimal `db:"taxable_value" json:"taxable_value"`
}

// ActionStatusNotification carries the outcome of a save/reset request for
// user notification.
type ActionStatusNotification struct {
	ReturnType   string      // always "IMS" for this service
	ReturnPeriod string
	RequestType  RequestType
	StatusCode   StatusCode
	GSTIN        string
	RequestID    string // populated only for StatusError
}
