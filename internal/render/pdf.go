// Package render produces PDF documents from invoice records.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotisserie/eris"

	"github.com/invoiceflow/ingest-cli/internal/model"
)

const dateLayout = "Jan 2, 2006"

// Invoice renders a single invoice as an A4 PDF.
func Invoice(inv model.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "INVOICE")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	metaLine(pdf, "Invoice #", inv.InvoiceNumber)
	metaLine(pdf, "Date", inv.InvoiceDate.Format(dateLayout))
	if inv.DueDate != nil {
		metaLine(pdf, "Due Date", inv.DueDate.Format(dateLayout))
	}
	metaLine(pdf, "Status", string(inv.Status))
	if inv.PONumber != "" {
		metaLine(pdf, "PO Number", inv.PONumber)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Bill To")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, inv.ClientName)
	pdf.Ln(6)
	if inv.ClientEmail != "" {
		pdf.Cell(0, 6, inv.ClientEmail)
		pdf.Ln(6)
	}
	if inv.ClientAddress != "" {
		pdf.MultiCell(0, 6, inv.ClientAddress, "", "L", false)
	}
	pdf.Ln(6)

	itemTable(pdf, inv)
	totals(pdf, inv)

	if inv.Terms != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, "Terms")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, inv.Terms, "", "L", false)
	}
	if inv.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, "Notes")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, eris.Wrapf(err, "render: output pdf for invoice %s", inv.InvoiceNumber)
	}
	return buf.Bytes(), nil
}

func metaLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(30, 6, label)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}

var itemWidths = [4]float64{95, 25, 35, 35}

func itemTable(pdf *gofpdf.Fpdf, inv model.Invoice) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	headers := [4]string{"Description", "Qty", "Rate", "Amount"}
	aligns := [4]string{"L", "R", "R", "R"}
	for i, h := range headers {
		pdf.CellFormat(itemWidths[i], 8, h, "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.LineItems {
		pdf.CellFormat(itemWidths[0], 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(itemWidths[1], 7, trimZeros(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(itemWidths[2], 7, money(item.Rate, inv.Currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(itemWidths[3], 7, money(item.Amount, inv.Currency), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

func totals(pdf *gofpdf.Fpdf, inv model.Invoice) {
	labelW := itemWidths[0] + itemWidths[1] + itemWidths[2]

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(itemWidths[3], 7, money(inv.Subtotal, inv.Currency), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	if inv.TaxAmount != 0 {
		pdf.CellFormat(labelW, 7, fmt.Sprintf("Tax (%s%%)", trimZeros(inv.TaxRate)), "", 0, "R", false, 0, "")
		pdf.CellFormat(itemWidths[3], 7, money(inv.TaxAmount, inv.Currency), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(itemWidths[3], 8, money(inv.Total, inv.Currency), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

func money(v float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%.2f %s", v, currency)
}

// trimZeros formats a quantity or rate without trailing decimal zeros.
func trimZeros(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
