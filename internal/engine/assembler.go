package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/invoiceflow/ingest-cli/internal/model"
	"github.com/invoiceflow/ingest-cli/internal/normalize"
	"github.com/invoiceflow/ingest-cli/internal/schema"
)

// Documented defaults for header fields missing from the source.
const (
	defaultClientName     = "Unknown Client"
	defaultCurrency       = "USD"
	generatedNumberPrefix = "INV-"
)

// fieldString resolves a canonical field in a row to its trimmed cell value,
// or "" when the field is unmapped or the cell is blank.
func fieldString(row Row, m ColumnMapping, f schema.Field) string {
	a, ok := m.Lookup(f)
	if !ok {
		return ""
	}
	return cell(row, a.Column)
}

// fieldDate resolves a canonical field to a parsed date.
func fieldDate(row Row, m ColumnMapping, f schema.Field) (time.Time, bool) {
	a, ok := m.Lookup(f)
	if !ok {
		return time.Time{}, false
	}
	return normalize.Date(cell(row, a.Column))
}

// fieldNumber resolves a canonical field to a parsed amount. ok is false
// when the field is unmapped or the cell did not parse; the value is then 0.
func fieldNumber(row Row, m ColumnMapping, f schema.Field) (float64, bool) {
	a, ok := m.Lookup(f)
	if !ok {
		return 0, false
	}
	return normalize.Amount(cell(row, a.Column))
}

// AssembleInvoice builds one normalized invoice record from a row group.
//
// Header-level fields come from the first row only; line items vary
// row-to-row, header fields do not. A row contributes a line item only when
// its description is non-empty — other rows are formatting rows common in
// multi-row exports. A group yielding zero line items yields no record.
// now anchors the generated invoice number and the invoice-date default.
func AssembleInvoice(g Group, m ColumnMapping, now time.Time) (*model.Invoice, bool) {
	if len(g.Rows) == 0 {
		return nil, false
	}
	first := g.Rows[0]

	inv := model.Invoice{
		ClientName:    defaultClientName,
		Currency:      defaultCurrency,
		Status:        model.InvoiceStatusDraft,
		ClientEmail:   fieldString(first, m, schema.FieldClientEmail),
		ClientAddress: fieldString(first, m, schema.FieldClientAddress),
		Terms:         fieldString(first, m, schema.FieldTerms),
		Notes:         fieldString(first, m, schema.FieldNotes),
		PONumber:      fieldString(first, m, schema.FieldPONumber),
	}

	inv.InvoiceNumber = fieldString(first, m, schema.FieldInvoiceNumber)
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = generatedNumberPrefix + now.Format("20060102150405")
	}

	if d, ok := fieldDate(first, m, schema.FieldInvoiceDate); ok {
		inv.InvoiceDate = d
	} else {
		inv.InvoiceDate = now
	}
	if d, ok := fieldDate(first, m, schema.FieldDueDate); ok {
		inv.DueDate = &d
	}

	if name := fieldString(first, m, schema.FieldClientName); name != "" {
		inv.ClientName = name
	}
	if currency := fieldString(first, m, schema.FieldCurrency); currency != "" {
		inv.Currency = currency
	}
	if status := fieldString(first, m, schema.FieldStatus); status != "" {
		inv.Status = model.InvoiceStatus(status)
	}

	for _, row := range g.Rows {
		description := fieldString(row, m, schema.FieldDescription)
		if description == "" {
			continue
		}

		quantity := 1.0
		if v, ok := fieldNumber(row, m, schema.FieldQuantity); ok {
			quantity = v
		}
		rate := 0.0
		if v, ok := fieldNumber(row, m, schema.FieldRate); ok {
			rate = v
		}
		amount, _ := fieldNumber(row, m, schema.FieldAmount)
		if amount == 0 && quantity > 0 && rate > 0 {
			amount = quantity * rate
		}

		inv.LineItems = append(inv.LineItems, model.LineItem{
			Description: description,
			Quantity:    quantity,
			Rate:        rate,
			Amount:      amount,
		})
	}

	if len(inv.LineItems) == 0 {
		zap.L().Warn("no line items in group", zap.String("invoice", inv.InvoiceNumber))
		return nil, false
	}

	for _, item := range inv.LineItems {
		inv.Subtotal += item.Amount
	}

	// Reconcile tax from whichever of rate/amount the source supplies. When
	// both are present they are trusted as given, minor inconsistency and all.
	taxAmount, _ := fieldNumber(first, m, schema.FieldTaxAmount)
	taxRate, _ := fieldNumber(first, m, schema.FieldTaxRate)
	if taxAmount > 0 && taxRate == 0 && inv.Subtotal > 0 {
		taxRate = taxAmount / inv.Subtotal * 100
	} else if taxRate > 0 && taxAmount == 0 {
		taxAmount = inv.Subtotal * taxRate / 100
	}
	inv.TaxRate = taxRate
	inv.TaxAmount = taxAmount
	inv.Total = inv.Subtotal + taxAmount

	return &inv, true
}
