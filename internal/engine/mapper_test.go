package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceflow/ingest-cli/internal/schema"
)

func TestMapColumns_StandardHeaders(t *testing.T) {
	headers := []string{"Invoice #", "Date", "Customer", "Description", "Qty", "Rate", "Amount"}
	m := MapColumns(schema.Default(), headers)

	assert.Equal(t, "Invoice #", m.Column(schema.FieldInvoiceNumber))
	assert.Equal(t, "Date", m.Column(schema.FieldInvoiceDate))
	assert.Equal(t, "Customer", m.Column(schema.FieldClientName))
	assert.Equal(t, "Description", m.Column(schema.FieldDescription))
	assert.Equal(t, "Qty", m.Column(schema.FieldQuantity))
	assert.Equal(t, "Rate", m.Column(schema.FieldRate))
	assert.Equal(t, "Amount", m.Column(schema.FieldAmount))
}

func TestMapColumns_ExactMatchesScore100(t *testing.T) {
	// "Date" must be present: without it invoice_date, allocated before
	// due_date, claims "Due Date" itself ("date" is a substring, partial 100).
	m := MapColumns(schema.Default(), []string{"Invoice Number", "Date", "Due Date"})

	a, ok := m.Lookup(schema.FieldInvoiceNumber)
	require.True(t, ok)
	assert.Equal(t, 100, a.Confidence)

	a, ok = m.Lookup(schema.FieldInvoiceDate)
	require.True(t, ok)
	assert.Equal(t, "Date", a.Column)
	assert.Equal(t, 100, a.Confidence)

	a, ok = m.Lookup(schema.FieldDueDate)
	require.True(t, ok)
	assert.Equal(t, "Due Date", a.Column)
	assert.Equal(t, 100, a.Confidence)
}

func TestMapColumns_OneToOne(t *testing.T) {
	headers := []string{"Invoice #", "Date", "Customer", "Email", "Address", "Description", "Qty", "Rate", "Amount", "Tax", "Total", "Terms", "Notes", "Currency", "Status", "PO Number"}
	m := MapColumns(schema.Default(), headers)

	seen := make(map[string]schema.Field)
	for _, f := range m.MappedFields() {
		a, _ := m.Lookup(f)
		prev, dup := seen[a.Column]
		require.False(t, dup, "column %q assigned to both %s and %s", a.Column, prev, f)
		seen[a.Column] = f
	}
}

func TestMapColumns_UnrecognizableHeaders(t *testing.T) {
	m := MapColumns(schema.Default(), []string{"col1", "col2"})
	assert.True(t, m.Empty())
	assert.Empty(t, m.MappedFields())
	assert.Zero(t, m.AverageConfidence())
}

func TestMapColumns_GreedyPriorityOrder(t *testing.T) {
	// A lone "Amount" never reaches the amount field: client_name is
	// allocated first and its "account" synonym clears the ratio threshold
	// (77), so it claims the column and both quantity and amount stay
	// unassigned. Known consequence of the greedy field-priority allocation.
	m := MapColumns(schema.Default(), []string{"Amount"})

	a, ok := m.Lookup(schema.FieldClientName)
	require.True(t, ok)
	assert.Equal(t, "Amount", a.Column)
	assert.Equal(t, 77, a.Confidence)
	assert.False(t, m.Has(schema.FieldQuantity))
	assert.False(t, m.Has(schema.FieldAmount))
}

func TestMapColumns_AmbiguousHeadersResolveByPriority(t *testing.T) {
	// Without "Date" or "Customer" anchor columns, the date and client
	// fields claim the closest-scoring leftovers: "txn date" token-sorts to
	// 75 against "Tax Rate" and "account" scores 77 against "Amount".
	m := MapColumns(schema.Default(), []string{"Description", "Qty", "Amount", "Tax Rate"})

	assert.Equal(t, "Tax Rate", m.Column(schema.FieldInvoiceDate))
	assert.Equal(t, "Amount", m.Column(schema.FieldClientName))
	assert.Equal(t, "Description", m.Column(schema.FieldDescription))
	assert.Equal(t, "Qty", m.Column(schema.FieldQuantity))
	assert.False(t, m.Has(schema.FieldRate))
	assert.False(t, m.Has(schema.FieldAmount))
	assert.False(t, m.Has(schema.FieldTaxRate))
}

func TestMapColumns_BareTaxClaimedBySubtotal(t *testing.T) {
	// "tax" is a substring of subtotal's "taxable amount" (partial 100), and
	// subtotal is allocated before tax_amount.
	headers := []string{"Invoice #", "Date", "Customer", "Description", "Qty", "Rate", "Amount", "Tax"}
	m := MapColumns(schema.Default(), headers)

	assert.Equal(t, "Tax", m.Column(schema.FieldSubtotal))
	assert.Equal(t, "Amount", m.Column(schema.FieldAmount))
	assert.False(t, m.Has(schema.FieldTaxAmount))
}

func TestMapColumns_FuzzyHeader(t *testing.T) {
	m := MapColumns(schema.Default(), []string{"Invoce Nmbr"})
	a, ok := m.Lookup(schema.FieldInvoiceNumber)
	require.True(t, ok)
	assert.Equal(t, "Invoce Nmbr", a.Column)
	assert.GreaterOrEqual(t, a.Confidence, 70)
	assert.Less(t, a.Confidence, 100)
}

func TestMapColumns_SubstringHeaderScores100(t *testing.T) {
	// "Invoce Number" still contains the "num" synonym verbatim, so the
	// partial strategy saturates despite the typo.
	m := MapColumns(schema.Default(), []string{"Invoce Number"})
	a, ok := m.Lookup(schema.FieldInvoiceNumber)
	require.True(t, ok)
	assert.Equal(t, 100, a.Confidence)
}

func TestMapColumns_UnmatchedFieldAbsent(t *testing.T) {
	m := MapColumns(schema.Default(), []string{"Invoice #", "Date"})
	assert.False(t, m.Has(schema.FieldClientEmail))
	assert.False(t, m.Has(schema.FieldTaxRate))
}

func TestMapColumns_Deterministic(t *testing.T) {
	headers := []string{"Invoice #", "Date", "Customer", "Description", "Qty", "Rate", "Amount"}
	first := MapColumns(schema.Default(), headers)
	second := MapColumns(schema.Default(), headers)
	assert.Equal(t, first.Confidences(), second.Confidences())
	assert.Equal(t, first.MappedFields(), second.MappedFields())
}

func TestMapColumns_AverageConfidence(t *testing.T) {
	m := MapColumns(schema.Default(), []string{"Invoice Number", "Date", "Due Date"})
	assert.InDelta(t, 100.0, m.AverageConfidence(), 1e-9)
}
