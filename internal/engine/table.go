// Package engine reconstructs normalized invoice records from loosely
// structured tables: it maps free-text headers onto canonical fields,
// partitions rows into per-invoice groups, and assembles each group into a
// reconciled invoice record.
package engine

import "strings"

// Row is a single source row, keyed by header string. Cells are raw scalar
// values as exported; typed resolution happens once at assembly time.
type Row map[string]string

// Get returns the raw cell under the given column header.
func (r Row) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Table is an already-materialized spreadsheet export: an ordered header
// list plus rows keyed by header. File decoding is the caller's concern.
type Table struct {
	Headers []string
	Rows    []Row
}

// Empty reports whether the table carries no usable data.
func (t Table) Empty() bool {
	return len(t.Headers) == 0 || len(t.Rows) == 0
}

// cell returns the trimmed value of a column in a row, or "" when absent.
func cell(r Row, col string) string {
	v, _ := r.Get(col)
	return strings.TrimSpace(v)
}
