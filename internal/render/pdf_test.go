package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceflow/ingest-cli/internal/model"
)

func testInvoice() model.Invoice {
	due := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	return model.Invoice{
		InvoiceNumber: "INV-1",
		InvoiceDate:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		ClientName:    "Acme Corp",
		ClientEmail:   "billing@acme.test",
		ClientAddress: "123 Market St\nSan Francisco, CA 94103",
		Currency:      "USD",
		Status:        model.InvoiceStatusDraft,
		LineItems: []model.LineItem{
			{Description: "design work", Quantity: 10, Rate: 150, Amount: 1500},
			{Description: "hosting", Quantity: 1, Rate: 25.50, Amount: 25.50},
		},
		Subtotal:  1525.50,
		TaxRate:   7.25,
		TaxAmount: 110.60,
		Total:     1636.10,
		Terms:     "Net 30",
		Notes:     "Thank you for your business.",
	}
}

func TestInvoice_ProducesPDF(t *testing.T) {
	out, err := Invoice(testInvoice())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 1000)
}

func TestInvoice_MinimalRecord(t *testing.T) {
	inv := model.Invoice{
		InvoiceNumber: "INV-2",
		InvoiceDate:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		ClientName:    "Unknown Client",
		Status:        model.InvoiceStatusDraft,
		LineItems:     []model.LineItem{{Description: "work", Quantity: 1, Amount: 100}},
		Subtotal:      100,
		Total:         100,
	}
	out, err := Invoice(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestInvoice_Deterministic(t *testing.T) {
	// Same record renders to the same bytes apart from embedded timestamps,
	// so at minimum the size must agree run to run.
	a, err := Invoice(testInvoice())
	require.NoError(t, err)
	b, err := Invoice(testInvoice())
	require.NoError(t, err)
	assert.Equal(t, len(a), len(b))
}
