package port

import "context"

// Reconciler runs the automatic matching pass linking inward supplies to
// purchase invoices. The matching algorithm is pluggable; the IMS workflow
// only depends on its side effects (link_name, match_status).
type Reconciler interface {
	Reconcile(ctx context.Context, company, companyGSTIN string) error
}
