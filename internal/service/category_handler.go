package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gstims/internal/domain"
)

// portalDateLayout is the dd-mm-yyyy layout used by the portal wire schema.
const portalDateLayout = "02-01-2006"

// CategoryHandler formats invoices of one portal category to and from the
// wire schema. Each category owns different document-number and date fields,
// so the variants cannot share a single formatter.
type CategoryHandler interface {
	Category() domain.Category
	Classification() domain.Classification
	DocType() domain.DocType
	IsAmended() bool

	// ToPortal shapes an inward supply per the category's wire layout.
	ToPortal(s *domain.InwardSupply) domain.PortalInvoice

	// FromPortal converts a downloaded wire invoice into a local record.
	FromPortal(companyGSTIN string, p *domain.PortalInvoice) (*domain.InwardSupply, error)

	// InvoiceKeyOf extracts the identifying key from a wire invoice; the
	// document number lives in a category-specific field.
	InvoiceKeyOf(p *domain.PortalInvoice) domain.InvoiceKey
}

// categoryHandlers is the fixed dispatch table over the closed category set.
var categoryHandlers = map[domain.Category]CategoryHandler{
	domain.CategoryB2B:    invoiceHandler{},
	domain.CategoryB2BA:   amendedInvoiceHandler{},
	domain.CategoryB2BDN:  noteHandler{category: domain.CategoryB2BDN, docType: domain.DocTypeDebitNote},
	domain.CategoryB2BCN:  noteHandler{category: domain.CategoryB2BCN, docType: domain.DocTypeCreditNote},
	domain.CategoryB2BDNA: amendedNoteHandler{category: domain.CategoryB2BDNA, docType: domain.DocTypeDebitNote},
	domain.CategoryB2BCNA: amendedNoteHandler{category: domain.CategoryB2BCNA, docType: domain.DocTypeCreditNote},
}

// HandlerFor returns the formatter for the category.
func HandlerFor(category domain.Category) (CategoryHandler, bool) {
	h, ok := categoryHandlers[category]
	return h, ok
}

// basePortalInvoice fills the fields shared by every category.
func basePortalInvoice(s *domain.InwardSupply) domain.PortalInvoice {
	return domain.PortalInvoice{
		SupplierGSTIN: s.SupplierGSTIN,
		Action:        domain.ActionToCode[s.IMSAction],
		PlaceOfSupply: s.PlaceOfSupply,
		InvoiceType:   "R",
		DocumentValue: s.DocumentValue,
		TaxableValue:  s.TaxableValue,
		IGST:          s.IGST,
		CGST:          s.CGST,
		SGST:          s.SGST,
		Cess:          s.Cess,
	}
}

// baseInwardSupply fills the fields shared by every category from a
// downloaded wire invoice.
func baseInwardSupply(companyGSTIN string, h CategoryHandler, p *domain.PortalInvoice) *domain.InwardSupply {
	action := domain.ActionCodeMap[p.Action]
	if action == "" {
		action = domain.ActionNone
	}
	return &domain.InwardSupply{
		ID:                uuid.New(),
		CompanyGSTIN:      companyGSTIN,
		SupplierGSTIN:     p.SupplierGSTIN,
		DocType:           h.DocType(),
		IsAmended:         h.IsAmended(),
		Classification:    h.Classification(),
		PlaceOfSupply:     p.PlaceOfSupply,
		DocumentValue:     p.DocumentValue,
		TaxableValue:      p.TaxableValue,
		IGST:              p.IGST,
		CGST:              p.CGST,
		SGST:              p.SGST,
		Cess:              p.Cess,
		IMSAction:         action,
		PreviousIMSAction: action,
		Action:            domain.MatchActionNone,
		PreviousAction:    domain.MatchActionNone,

		IsPendingActionAllowed: p.PendingBlocked != "Y",
		IsSupplierReturnFiled:  p.FiledStatus == "F",
		SupplierReturnForm:     p.SupplierForm,
		SupReturnPeriod:        p.ReturnPeriod,
	}
}

func parsePortalDate(category domain.Category, field, value string) (time.Time, error) {
	t, err := time.Parse(portalDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid %s %q: %w", category, field, value, err)
	}
	return t, nil
}

// invoiceHandler formats plain B2B invoices.
type invoiceHandler struct{}

func (invoiceHandler) Category() domain.Category             { return domain.CategoryB2B }
func (invoiceHandler) Classification() domain.Classification { return domain.ClassificationB2B }
func (invoiceHandler) DocType() domain.DocType               { return domain.DocTypeInvoice }
func (invoiceHandler) IsAmended() bool                       { return false }

func (h invoiceHandler) ToPortal(s *domain.InwardSupply) domain.PortalInvoice {
	p := basePortalInvoice(s)
	p.InvoiceNo = s.BillNo
	p.InvoiceDate = s.BillDate.Format(portalDateLayout)
	return p
}

func (h invoiceHandler) FromPortal(companyGSTIN string, p *domain.PortalInvoice) (*domain.InwardSupply, error) {
	s := baseInwardSupply(companyGSTIN, h, p)
	s.BillNo = p.InvoiceNo
	date, err := parsePortalDate(h.Category(), "idt", p.InvoiceDate)
	if err != nil {
		return nil, err
	}
	s.BillDate = date
	return s, nil
}

func (invoiceHandler) InvoiceKeyOf(p *domain.PortalInvoice) domain.InvoiceKey {
	return domain.InvoiceKey{BillNo: p.InvoiceNo, SupplierGSTIN: p.SupplierGSTIN}
}

// amendedInvoiceHandler formats B2BA (amended invoice) records, which carry
// the original invoice reference alongside the revised one.
type amendedInvoiceHandler struct{}

func (amendedInvoiceHandler) Category() domain.Category             { return domain.CategoryB2BA }
func (amendedInvoiceHandler) Classification() domain.Classification { return domain.ClassificationB2BA }
func (amendedInvoiceHandler) DocType() domain.DocType               { return domain.DocTypeInvoice }
func (amendedInvoiceHandler) IsAmended() bool                       { return true }

func (h amendedInvoiceHandler) ToPortal(s *domain.InwardSupply) domain.PortalInvoice {
	p := basePortalInvoice(s)
	p.InvoiceNo = s.BillNo
	p.InvoiceDate = s.BillDate.Format(portalDateLayout)
	if s.OriginalBillNo != nil {
		p.OriginalInvoiceNo = *s.OriginalBillNo
	}
	if s.OriginalBillDate != nil {
		p.OriginalInvoiceDate = s.OriginalBillDate.Format(portalDateLayout)
	}
	return p
}

func (h amendedInvoiceHandler) FromPortal(companyGSTIN string, p *domain.PortalInvoice) (*domain.InwardSupply, error) {
	s := baseInwardSupply(companyGSTIN, h, p)
	s.BillNo = p.InvoiceNo
	date, err := parsePortalDate(h.Category(), "idt", p.InvoiceDate)
	if err != nil {
		return nil, err
	}
	s.BillDate = date

	if p.OriginalInvoiceNo != "" {
		original := p.OriginalInvoiceNo
		s.OriginalBillNo = &original
	}
	if p.OriginalInvoiceDate != "" {
		originalDate, err := parsePortalDate(h.Category(), "oidt", p.OriginalInvoiceDate)
		if err != nil {
			return nil, err
		}
		s.OriginalBillDate = &originalDate
	}
	return s, nil
}

func (amendedInvoiceHandler) InvoiceKeyOf(p *domain.PortalInvoice) domain.InvoiceKey {
	return domain.InvoiceKey{BillNo: p.InvoiceNo, SupplierGSTIN: p.SupplierGSTIN}
}

// noteHandler formats debit and credit notes (CDNR categories).
type noteHandler struct {
	category domain.Category
	docType  domain.DocType
}

func (h noteHandler) Category() domain.Category             { return h.category }
func (h noteHandler) Classification() domain.Classification { return domain.ClassificationCDNR }
func (h noteHandler) DocType() domain.DocType               { return h.docType }
func (noteHandler) IsAmended() bool                         { return false }

func (h noteHandler) ToPortal(s *domain.InwardSupply) domain.PortalInvoice {
	p := basePortalInvoice(s)
	p.NoteNo = s.BillNo
	p.NoteDate = s.BillDate.Format(portalDateLayout)
	return p
}

func (h noteHandler) FromPortal(companyGSTIN string, p *domain.PortalInvoice) (*domain.InwardSupply, error) {
	s := baseInwardSupply(companyGSTIN, h, p)
	s.BillNo = p.NoteNo
	date, err := parsePortalDate(h.category, "nt_dt", p.NoteDate)
	if err != nil {
		return nil, err
	}
	s.BillDate = date
	return s, nil
}

func (noteHandler) InvoiceKeyOf(p *domain.PortalInvoice) domain.InvoiceKey {
	return domain.InvoiceKey{BillNo: p.NoteNo, SupplierGSTIN: p.SupplierGSTIN}
}

// amendedNoteHandler formats amended debit and credit notes (CDNRA
// categories).
type amendedNoteHandler struct {
	category domain.Category
	docType  domain.DocType
}

func (h amendedNoteHandler) Category() domain.Category             { return h.category }
func (h amendedNoteHandler) Classification() domain.Classification { return domain.ClassificationCDNRA }
func (h amendedNoteHandler) DocType() domain.DocType               { return h.docType }
func (amendedNoteHandler) IsAmended() bool                         { return true }

func (h amendedNoteHandler) ToPortal(s *domain.InwardSupply) domain.PortalInvoice {
	p := basePortalInvoice(s)
	p.NoteNo = s.BillNo
	p.NoteDate = s.BillDate.Format(portalDateLayout)
	if s.OriginalBillNo != nil {
		p.OriginalNoteNo = *s.OriginalBillNo
	}
	if s.OriginalBillDate != nil {
		p.OriginalNoteDate = s.OriginalBillDate.Format(portalDateLayout)
	}
	return p
}

func (h amendedNoteHandler) FromPortal(companyGSTIN string, p *domain.PortalInvoice) (*domain.InwardSupply, error) {
	s := baseInwardSupply(companyGSTIN, h, p)
	s.BillNo = p.NoteNo
	date, err := parsePortalDate(h.category, "nt_dt", p.NoteDate)
	if err != nil {
		return nil, err
	}
	s.BillDate = date

	if p.OriginalNoteNo != "" {
		original := p.OriginalNoteNo
		s.OriginalBillNo = &original
	}
	if p.OriginalNoteDate != "" {
		originalDate, err := parsePortalDate(h.category, "ont_dt", p.OriginalNoteDate)
		if err != nil {
			return nil, err
		}
		s.OriginalBillDate = &originalDate
	}
	return s, nil
}

func (amendedNoteHandler) InvoiceKeyOf(p *domain.PortalInvoice) domain.InvoiceKey {
	return domain.InvoiceKey{BillNo: p.NoteNo, SupplierGSTIN: p.SupplierGSTIN}
}
