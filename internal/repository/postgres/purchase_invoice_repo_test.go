package postgres

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx/reflectx"
	"github.com/stretchr/testify/assert"

	"gstims/internal/domain"
	"gstims/internal/port"
)

// Every column selected by linkOptionsQuery must map onto a LinkOption field
// under sqlx's default mapper, or Select fails at scan time with a missing
// destination error.
func TestLinkOptionColumnsScanIntoStruct(t *testing.T) {
	columns := []string{
		"name", "bill_no", "bill_date", "supplier_gstin",
		"supplier_name", "gst_category", "is_return", "taxable_value",
	}

	mapper := reflectx.NewMapperFunc("db", strings.ToLower)
	traversals := mapper.TraversalsByName(reflect.TypeOf(domain.LinkOption{}), columns)

	for i, traversal := range traversals {
		assert.NotEmptyf(t, traversal, "column %q has no destination field", columns[i])
	}
}

func TestLinkOptionsQuery_UnreconciledOnlyByDefault(t *testing.T) {
	query, args := linkOptionsQuery("24AAACC1206D1ZM", port.LinkOptionFilter{})

	assert.Contains(t, query, "reconciliation_status = ?")
	assert.Equal(t, []interface{}{"24AAACC1206D1ZM", domain.ReconStatusUnreconciled}, args)
}

func TestLinkOptionsQuery_ShowMatchedDropsStatusFilter(t *testing.T) {
	query, args := linkOptionsQuery("24AAACC1206D1ZM", port.LinkOptionFilter{ShowMatched: true})

	assert.NotContains(t, query, "reconciliation_status")
	assert.Equal(t, []interface{}{"24AAACC1206D1ZM"}, args)
}
