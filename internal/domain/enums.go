package domain

// DocType classifies an inward supply document.
type DocType string

const (
	DocTypeInvoice    DocType = "Invoice"
	DocTypeDebitNote  DocType = "Debit Note"
	DocTypeCreditNote DocType = "Credit Note"
)

// IMSAction is the user-facing action recorded against an inward supply on the
// Invoice Management System.
type IMSAction string

const (
	ActionNone     IMSAction = "No Action"
	ActionAccepted IMSAction = "Accepted"
	ActionRejected IMSAction = "Rejected"
	ActionPending  IMSAction = "Pending"
)

// ValidIMSActions maps the accepted values for UpdateAction input.
var ValidIMSActions = map[IMSAction]bool{
	ActionNone:     true,
	ActionAccepted: true,
	ActionRejected: true,
	ActionPending:  true,
}

// MatchAction is the reconciliation-governed action on an inward supply. It
// moves independently of IMSAction except for the Rejected-shadowing rule in
// ActionService.UpdateAction.
type MatchAction string

const (
	MatchActionNone                 MatchAction = "No Action"
	MatchActionIgnore               MatchAction = "Ignore"
	MatchActionPending              MatchAction = "Pending"
	MatchActionAcceptMyValues       MatchAction = "Accept My Values"
	MatchActionAcceptSupplierValues MatchAction = "Accept Supplier Values"
)

// Category is the portal-defined classification of an invoice group.
type Category string

const (
	CategoryB2B    Category = "B2B"
	CategoryB2BA   Category = "B2BA"
	CategoryB2BDN  Category = "B2BDN"
	CategoryB2BDNA Category = "B2BDNA"
	CategoryB2BCN  Category = "B2BCN"
	CategoryB2BCNA Category = "B2BCNA"
)

// AllCategories is the closed set of portal categories.
var AllCategories = []Category{
	CategoryB2B, CategoryB2BA,
	CategoryB2BDN, CategoryB2BDNA,
	CategoryB2BCN, CategoryB2BCNA,
}

// CategoryFor resolves the portal category for a (doc type, amendment) pair.
func CategoryFor(docType DocType, isAmended bool) (Category, bool) {
	key := amendKey(docType, isAmended)
	cat, ok := categoryMap[key]
	return cat, ok
}

var categoryMap = map[string]Category{
	"Invoice_0":     CategoryB2B,
	"Invoice_1":     CategoryB2BA,
	"Debit Note_0":  CategoryB2BDN,
	"Debit Note_1":  CategoryB2BDNA,
	"Credit Note_0": CategoryB2BCN,
	"Credit Note_1": CategoryB2BCNA,
}

func amendKey(docType DocType, isAmended bool) string {
	if isAmended {
		return string(docType) + "_1"
	}
	return string(docType) + "_0"
}

// Classification is the GSTR-2B style classification stored on an inward
// supply. Amended and note categories collapse to CDNR/CDNRA.
type Classification string

const (
	ClassificationB2B   Classification = "B2B"
	ClassificationB2BA  Classification = "B2BA"
	ClassificationCDNR  Classification = "CDNR"
	ClassificationCDNRA Classification = "CDNRA"
)

// RequestType distinguishes the two portal upload flows.
type RequestType string

const (
	RequestTypeSave  RequestType = "save"
	RequestTypeReset RequestType = "reset"
)

// StatusCode is the portal's processing status for a submitted batch.
type StatusCode string

const (
	StatusProcessed           StatusCode = "P"
	StatusProcessedWithErrors StatusCode = "PE"
	StatusError               StatusCode = "ER"
	StatusInProgress          StatusCode = "IP"
)

// StatusCodeMap maps portal status codes to their stored labels.
var StatusCodeMap = map[StatusCode]string{
	StatusProcessed:           "Processed",
	StatusProcessedWithErrors: "Processed with Errors",
	StatusError:               "Error",
	StatusInProgress:          "In Progress",
}

// ActionCodeMap maps portal action codes to IMS actions.
var ActionCodeMap = map[string]IMSAction{
	"A": ActionAccepted,
	"R": ActionRejected,
	"P": ActionPending,
	"N": ActionNone,
}

// ActionToCode is the reverse of ActionCodeMap.
var ActionToCode = map[IMSAction]string{
	ActionAccepted: "A",
	ActionRejected: "R",
	ActionPending:  "P",
	ActionNone:     "N",
}

// ReconciliationStatus is the purchase invoice's reconciliation state.
type ReconciliationStatus string

const (
	ReconStatusUnreconciled  ReconciliationStatus = "Unreconciled"
	ReconStatusReconciled    ReconciliationStatus = "Reconciled"
	ReconStatusIgnored       ReconciliationStatus = "Ignored"
	ReconStatusNotApplicable ReconciliationStatus = "Not Applicable"
)

// MatchStatus describes how an inward supply matched a purchase invoice.
type MatchStatus string

const (
	MatchStatusUnmatched MatchStatus = ""
	MatchStatusExact     MatchStatus = "Exact Match"
	MatchStatusSuggested MatchStatus = "Suggested Match"
	MatchStatusMismatch  MatchStatus = "Mismatch"
	MatchStatusManual    MatchStatus = "Manual Match"
)

// UserRole defines the role hierarchy within a company.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// EarliestReturnPeriod is the first supported GST tax period (July 2017),
// in sortable YYYYMM form.
const EarliestReturnPeriod = "201707"
