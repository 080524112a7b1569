package model

import (
	"time"
)

// InvoiceStatus represents the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// LineItem is a single billable line on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Invoice is a fully normalized invoice record reconstructed from a row group.
// Constructed once by the assembler; the engine never mutates it afterward.
type Invoice struct {
	ID            string     `json:"id,omitempty"`
	UploadID      string     `json:"upload_id,omitempty"`
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   time.Time  `json:"invoice_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email,omitempty"`
	ClientAddress string `json:"client_address,omitempty"`

	LineItems []LineItem `json:"line_items"`

	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"tax_rate"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`

	Terms    string        `json:"terms,omitempty"`
	Notes    string        `json:"notes,omitempty"`
	PONumber string        `json:"po_number,omitempty"`
	Currency string        `json:"currency"`
	Status   InvoiceStatus `json:"status"`

	CreatedAt time.Time `json:"created_at,omitzero"`
}

// ParseMetadata summarizes what the engine recognized in one table.
type ParseMetadata struct {
	RowCount      int            `json:"total_rows"`
	ColumnCount   int            `json:"total_columns"`
	MappedFields  []string       `json:"mapped_fields"`
	Confidence    map[string]int `json:"confidence_scores"`
	InvoiceCount  int            `json:"invoices_found"`
	AvgConfidence float64        `json:"avg_confidence"`
}

// ParseOutcome is the result of running the parse engine over one table.
type ParseOutcome struct {
	Invoices []Invoice     `json:"invoices"`
	Metadata ParseMetadata `json:"metadata"`
}
