package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceflow/ingest-cli/internal/schema"
)

var engineNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(concurrency int) *Engine {
	return New(schema.Default(), Options{
		Concurrency: concurrency,
		Now:         func() time.Time { return engineNow },
	})
}

func standardTable() Table {
	return Table{
		Headers: []string{"Invoice #", "Date", "Customer", "Description", "Qty", "Rate", "Amount"},
		Rows: []Row{
			{"Invoice #": "INV-1", "Date": "01/15/2024", "Customer": "Acme Corp", "Description": "design", "Qty": "1", "Rate": "100.00", "Amount": "100.00"},
			{"Invoice #": "INV-1", "Date": "01/15/2024", "Customer": "Acme Corp", "Description": "build", "Qty": "1", "Rate": "50.00", "Amount": "50.00"},
		},
	}
}

func TestParse_SingleInvoiceAcrossRows(t *testing.T) {
	outcome, err := newTestEngine(1).Parse(context.Background(), standardTable())
	require.NoError(t, err)

	require.Len(t, outcome.Invoices, 1)
	inv := outcome.Invoices[0]
	assert.Equal(t, "INV-1", inv.InvoiceNumber)
	require.Len(t, inv.LineItems, 2)
	assert.InDelta(t, 150.00, inv.Subtotal, 1e-9)
	assert.InDelta(t, 0.0, inv.TaxAmount, 1e-9)
	assert.InDelta(t, 150.00, inv.Total, 1e-9)
}

func TestParse_EmptyTable(t *testing.T) {
	e := newTestEngine(1)

	_, err := e.Parse(context.Background(), Table{})
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = e.Parse(context.Background(), Table{Headers: []string{"Invoice #"}})
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestParse_NoRecognizableColumns(t *testing.T) {
	tbl := Table{
		Headers: []string{"col1", "col2"},
		Rows:    []Row{{"col1": "a", "col2": "b"}},
	}
	_, err := newTestEngine(1).Parse(context.Background(), tbl)
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestParse_NoValidInvoices(t *testing.T) {
	tbl := Table{
		Headers: []string{"Invoice #", "Description", "Amount"},
		Rows: []Row{
			{"Invoice #": "INV-1", "Description": "", "Amount": "100.00"},
			{"Invoice #": "INV-2", "Description": "  ", "Amount": "50.00"},
		},
	}
	_, err := newTestEngine(1).Parse(context.Background(), tbl)
	assert.ErrorIs(t, err, ErrNoInvoices)
}

func TestParse_ReusedNumberDifferentDates(t *testing.T) {
	tbl := Table{
		Headers: []string{"Invoice #", "Date", "Description", "Qty", "Amount"},
		Rows: []Row{
			{"Invoice #": "INV-1", "Date": "01/15/2024", "Description": "january", "Qty": "1", "Amount": "100.00"},
			{"Invoice #": "INV-1", "Date": "02/15/2024", "Description": "february", "Qty": "1", "Amount": "200.00"},
		},
	}
	outcome, err := newTestEngine(1).Parse(context.Background(), tbl)
	require.NoError(t, err)

	require.Len(t, outcome.Invoices, 2)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), outcome.Invoices[0].InvoiceDate)
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), outcome.Invoices[1].InvoiceDate)
}

func TestParse_Metadata(t *testing.T) {
	outcome, err := newTestEngine(1).Parse(context.Background(), standardTable())
	require.NoError(t, err)

	md := outcome.Metadata
	assert.Equal(t, 2, md.RowCount)
	assert.Equal(t, 7, md.ColumnCount)
	assert.Equal(t, 1, md.InvoiceCount)
	assert.Len(t, md.MappedFields, 7)
	assert.Contains(t, md.MappedFields, "invoice_number")
	assert.Equal(t, 100, md.Confidence["invoice_number"])
	assert.InDelta(t, 100.0, md.AvgConfidence, 1e-9)
}

func TestParse_Idempotent(t *testing.T) {
	e := newTestEngine(1)
	first, err := e.Parse(context.Background(), standardTable())
	require.NoError(t, err)
	second, err := e.Parse(context.Background(), standardTable())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_ConcurrentMatchesSerial(t *testing.T) {
	tbl := Table{Headers: []string{"Invoice #", "Date", "Description", "Qty", "Amount"}}
	for i := 0; i < 50; i++ {
		tbl.Rows = append(tbl.Rows, Row{
			"Invoice #":   fmt.Sprintf("INV-%03d", i),
			"Date":        "01/15/2024",
			"Description": fmt.Sprintf("work item %d", i),
			"Qty":         "1",
			"Amount":      fmt.Sprintf("%d.00", i+1),
		})
	}

	serial, err := newTestEngine(1).Parse(context.Background(), tbl)
	require.NoError(t, err)
	parallel, err := newTestEngine(4).Parse(context.Background(), tbl)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	require.Len(t, parallel.Invoices, 50)
	assert.Equal(t, "INV-000", parallel.Invoices[0].InvoiceNumber)
	assert.Equal(t, "INV-049", parallel.Invoices[49].InvoiceNumber)
}

func TestParse_SkipsGroupsWithoutLineItems(t *testing.T) {
	tbl := Table{
		Headers: []string{"Invoice #", "Description", "Qty", "Amount"},
		Rows: []Row{
			{"Invoice #": "INV-1", "Description": "kept", "Qty": "1", "Amount": "10.00"},
			{"Invoice #": "INV-2", "Description": "", "Qty": "1", "Amount": "20.00"},
		},
	}
	outcome, err := newTestEngine(1).Parse(context.Background(), tbl)
	require.NoError(t, err)

	require.Len(t, outcome.Invoices, 1)
	assert.Equal(t, "INV-1", outcome.Invoices[0].InvoiceNumber)
	assert.Equal(t, 1, outcome.Metadata.InvoiceCount)
}
