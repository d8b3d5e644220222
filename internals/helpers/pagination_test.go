package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsLimitOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 25}
	assert.Equal(t, 25, p.Limit())
	assert.Equal(t, 50, p.Offset())
}

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "fee_audit_log_created_at",
		"action":     "fee_audit_log_action_type",
	}

	p := Params{SortBy: "created_at", SortOrder: "desc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	assert.NoError(t, err)
	assert.Equal(t, "fee_audit_log_created_at DESC", clause)

	// kolom di luar whitelist jatuh ke default, bukan error
	p = Params{SortBy: "'; DROP TABLE students; --", SortOrder: "asc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	assert.NoError(t, err)
	assert.Equal(t, "fee_audit_log_created_at ASC", clause)
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(101, Params{Page: 2, PerPage: 25})
	assert.EqualValues(t, 101, meta.Total)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 5, meta.TotalPages)
}
