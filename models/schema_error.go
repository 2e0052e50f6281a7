package models

import (
	"fmt"
	"strings"
)

// SchemaError reports a telemetry export whose structure cannot be
// normalized: a truncated header, or columns that a derivation needs.
type SchemaError struct {
	Reason  string
	Columns []string // offending or missing column names, if any
}

func (e *SchemaError) Error() string {
	if len(e.Columns) == 0 {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: %s: %s", e.Reason, strings.Join(e.Columns, ", "))
}

// MissingColumns builds a SchemaError for absent columns.
func MissingColumns(cols ...string) *SchemaError {
	return &SchemaError{Reason: "missing expected columns", Columns: cols}
}
