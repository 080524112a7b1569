package engine

import (
	"github.com/invoiceflow/ingest-cli/internal/schema"
)

// compositeKeySep joins invoice number and date in a grouping key. The unit
// separator cannot appear in sane header data, so numbers containing
// underscores or dashes never collide.
const compositeKeySep = "\x1f"

// Group is the set of source rows belonging to one invoice.
type Group struct {
	Key  string
	Rows []Row
}

// SplitGroups partitions the table's rows into invoice-sized groups.
//
// Without a mapped invoice-number column the whole table is one group (the
// single-invoice file assumption). Otherwise rows group by the invoice-number
// cell, extended with the invoice-date cell when that column is also mapped,
// so a number reused across billing periods still yields distinct invoices.
// Rows with a blank invoice-number cell cannot belong to any identifiable
// invoice and are dropped. Group order follows first appearance in the table.
func SplitGroups(t Table, m ColumnMapping) []Group {
	numAssign, ok := m.Lookup(schema.FieldInvoiceNumber)
	if !ok {
		return []Group{{Rows: t.Rows}}
	}

	dateAssign, hasDate := m.Lookup(schema.FieldInvoiceDate)

	byKey := make(map[string]int)
	var groups []Group
	for _, row := range t.Rows {
		number := cell(row, numAssign.Column)
		if number == "" {
			continue
		}

		key := number
		if hasDate {
			key = number + compositeKeySep + cell(row, dateAssign.Column)
		}

		idx, seen := byKey[key]
		if !seen {
			idx = len(groups)
			byKey[key] = idx
			groups = append(groups, Group{Key: key})
		}
		groups[idx].Rows = append(groups[idx].Rows, row)
	}

	return groups
}
