// Package store persists uploads and parsed invoices behind a common
// interface with SQLite and PostgreSQL implementations.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/invoiceflow/ingest-cli/internal/model"
)

// ErrNotFound is returned when a requested upload or invoice does not exist.
var ErrNotFound = eris.New("not found")

// InvoiceFilter specifies criteria for listing invoices.
type InvoiceFilter struct {
	Status   model.InvoiceStatus `json:"status,omitempty"`
	Client   string              `json:"client,omitempty"`
	UploadID string              `json:"upload_id,omitempty"`
	Limit    int                 `json:"limit,omitempty"`
	Offset   int                 `json:"offset,omitempty"`
}

// Store defines the persistence interface for the ingest pipeline.
type Store interface {
	// Uploads
	CreateUpload(ctx context.Context, filename string, size int64) (*model.Upload, error)
	CompleteUpload(ctx context.Context, uploadID string, invoiceCount int) error
	FailUpload(ctx context.Context, uploadID string, reason string) error
	GetUpload(ctx context.Context, uploadID string) (*model.Upload, error)

	// Invoices
	SaveInvoices(ctx context.Context, uploadID string, invoices []model.Invoice) ([]model.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
