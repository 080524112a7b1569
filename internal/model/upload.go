package model

import "time"

// UploadStatus tracks the lifecycle of an ingested file.
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusFailed     UploadStatus = "failed"
)

// Upload records one ingested source file and its processing outcome.
type Upload struct {
	ID           string       `json:"id"`
	Filename     string       `json:"filename"`
	Size         int64        `json:"file_size"`
	Status       UploadStatus `json:"status"`
	InvoiceCount int          `json:"invoices_count"`
	Error        string       `json:"error_message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
