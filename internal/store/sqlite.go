package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/invoiceflow/ingest-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS uploads (
	id            TEXT PRIMARY KEY,
	filename      TEXT NOT NULL,
	size          INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'pending',
	invoice_count INTEGER NOT NULL DEFAULT 0,
	error         TEXT,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS invoices (
	id             TEXT PRIMARY KEY,
	upload_id      TEXT REFERENCES uploads(id),
	invoice_number TEXT NOT NULL,
	client_name    TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'draft',
	doc            TEXT NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_uploads_status ON uploads(status);
CREATE INDEX IF NOT EXISTS idx_invoices_upload_id ON invoices(upload_id);
CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices(status);
CREATE INDEX IF NOT EXISTS idx_invoices_client_name ON invoices(client_name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateUpload(ctx context.Context, filename string, size int64) (*model.Upload, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (id, filename, size, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, filename, size, string(model.UploadStatusProcessing), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert upload")
	}

	return &model.Upload{
		ID:        id,
		Filename:  filename,
		Size:      size,
		Status:    model.UploadStatusProcessing,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteUpload(ctx context.Context, uploadID string, invoiceCount int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE uploads SET status = ?, invoice_count = ?, error = NULL WHERE id = ?`,
		string(model.UploadStatusCompleted), invoiceCount, uploadID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete upload %s", uploadID)
	}
	return checkRowsAffected(res, "upload", uploadID)
}

func (s *SQLiteStore) FailUpload(ctx context.Context, uploadID string, reason string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE uploads SET status = ?, error = ? WHERE id = ?`,
		string(model.UploadStatusFailed), reason, uploadID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fail upload %s", uploadID)
	}
	return checkRowsAffected(res, "upload", uploadID)
}

func (s *SQLiteStore) GetUpload(ctx context.Context, uploadID string) (*model.Upload, error) {
	var u model.Upload
	var errMsg sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, size, status, invoice_count, error, created_at FROM uploads WHERE id = ?`,
		uploadID,
	).Scan(&u.ID, &u.Filename, &u.Size, &u.Status, &u.InvoiceCount, &errMsg, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "upload %s", uploadID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get upload %s", uploadID)
	}
	u.Error = errMsg.String
	return &u, nil
}

func (s *SQLiteStore) SaveInvoices(ctx context.Context, uploadID string, invoices []model.Invoice) ([]model.Invoice, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	saved := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		inv.ID = uuid.New().String()
		inv.UploadID = uploadID
		inv.CreatedAt = now

		doc, err := json.Marshal(inv)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: marshal invoice")
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO invoices (id, upload_id, invoice_number, client_name, status, doc, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			inv.ID, uploadID, inv.InvoiceNumber, inv.ClientName, string(inv.Status), string(doc), now,
		)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: insert invoice %s", inv.InvoiceNumber)
		}
		saved = append(saved, inv)
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit invoices")
	}
	return saved, nil
}

func (s *SQLiteStore) GetInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM invoices WHERE id = ?`,
		invoiceID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "invoice %s", invoiceID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get invoice %s", invoiceID)
	}
	return unmarshalInvoice([]byte(doc))
}

func (s *SQLiteStore) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	query := `SELECT doc FROM invoices WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Client != "" {
		query += ` AND client_name LIKE ?`
		args = append(args, "%"+filter.Client+"%")
	}
	if filter.UploadID != "" {
		query += ` AND upload_id = ?`
		args = append(args, filter.UploadID)
	}
	query += ` ORDER BY created_at DESC, id`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list invoices")
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan invoice")
		}
		inv, err := unmarshalInvoice([]byte(doc))
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, eris.Wrap(rows.Err(), "sqlite: list invoices iterate")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

func unmarshalInvoice(doc []byte) (*model.Invoice, error) {
	var inv model.Invoice
	if err := json.Unmarshal(doc, &inv); err != nil {
		return nil, eris.Wrap(err, "unmarshal invoice doc")
	}
	return &inv, nil
}
