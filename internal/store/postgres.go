package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/invoiceflow/ingest-cli/internal/db"
	"github.com/invoiceflow/ingest-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_upload":   `INSERT INTO uploads (id, filename, size, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
	"complete_upload": `UPDATE uploads SET status = $1, invoice_count = $2, error = NULL WHERE id = $3`,
	"fail_upload":     `UPDATE uploads SET status = $1, error = $2 WHERE id = $3`,
	"get_upload":      `SELECT id, filename, size, status, invoice_count, error, created_at FROM uploads WHERE id = $1`,
	"get_invoice":     `SELECT doc FROM invoices WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS uploads (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	filename      TEXT NOT NULL,
	size          BIGINT NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'pending',
	invoice_count INTEGER NOT NULL DEFAULT 0,
	error         TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS invoices (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	upload_id      TEXT REFERENCES uploads(id),
	invoice_number TEXT NOT NULL,
	client_name    TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'draft',
	doc            JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_uploads_status ON uploads(status);
CREATE INDEX IF NOT EXISTS idx_invoices_upload_id ON invoices(upload_id);
CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices(status);
CREATE INDEX IF NOT EXISTS idx_invoices_client_name ON invoices(client_name);
CREATE INDEX IF NOT EXISTS idx_invoices_number ON invoices(invoice_number);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateUpload(ctx context.Context, filename string, size int64) (*model.Upload, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO uploads (id, filename, size, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, filename, size, string(model.UploadStatusProcessing), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert upload")
	}

	return &model.Upload{
		ID:        id,
		Filename:  filename,
		Size:      size,
		Status:    model.UploadStatusProcessing,
		CreatedAt: now,
	}, nil
}

func (s *PostgresStore) CompleteUpload(ctx context.Context, uploadID string, invoiceCount int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE uploads SET status = $1, invoice_count = $2, error = NULL WHERE id = $3`,
		string(model.UploadStatusCompleted), invoiceCount, uploadID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete upload %s", uploadID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "upload %s", uploadID)
	}
	return nil
}

func (s *PostgresStore) FailUpload(ctx context.Context, uploadID string, reason string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE uploads SET status = $1, error = $2 WHERE id = $3`,
		string(model.UploadStatusFailed), reason, uploadID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: fail upload %s", uploadID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "upload %s", uploadID)
	}
	return nil
}

func (s *PostgresStore) GetUpload(ctx context.Context, uploadID string) (*model.Upload, error) {
	var u model.Upload
	var errMsg *string

	err := s.pool.QueryRow(ctx,
		`SELECT id, filename, size, status, invoice_count, error, created_at FROM uploads WHERE id = $1`,
		uploadID,
	).Scan(&u.ID, &u.Filename, &u.Size, &u.Status, &u.InvoiceCount, &errMsg, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "upload %s", uploadID)
		}
		return nil, eris.Wrapf(err, "postgres: get upload %s", uploadID)
	}
	if errMsg != nil {
		u.Error = *errMsg
	}
	return &u, nil
}

var invoiceColumns = []string{"id", "upload_id", "invoice_number", "client_name", "status", "doc", "created_at"}

func (s *PostgresStore) SaveInvoices(ctx context.Context, uploadID string, invoices []model.Invoice) ([]model.Invoice, error) {
	now := time.Now().UTC()

	saved := make([]model.Invoice, 0, len(invoices))
	rows := make([][]any, 0, len(invoices))
	for _, inv := range invoices {
		inv.ID = uuid.New().String()
		inv.UploadID = uploadID
		inv.CreatedAt = now

		doc, err := json.Marshal(inv)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: marshal invoice")
		}
		rows = append(rows, []any{inv.ID, uploadID, inv.InvoiceNumber, inv.ClientName, string(inv.Status), doc, now})
		saved = append(saved, inv)
	}

	if _, err := db.CopyFrom(ctx, s.pool, "invoices", invoiceColumns, rows); err != nil {
		return nil, eris.Wrapf(err, "postgres: save invoices for upload %s", uploadID)
	}
	return saved, nil
}

func (s *PostgresStore) GetInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM invoices WHERE id = $1`,
		invoiceID,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "invoice %s", invoiceID)
		}
		return nil, eris.Wrapf(err, "postgres: get invoice %s", invoiceID)
	}
	return unmarshalInvoice(doc)
}

func (s *PostgresStore) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	query := `SELECT doc FROM invoices WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	if filter.Client != "" {
		query += fmt.Sprintf(` AND client_name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Client+"%")
		argIdx++
	}
	if filter.UploadID != "" {
		query += fmt.Sprintf(` AND upload_id = $%d`, argIdx)
		args = append(args, filter.UploadID)
		argIdx++
	}
	query += ` ORDER BY created_at DESC, id`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list invoices")
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan invoice")
		}
		inv, err := unmarshalInvoice(doc)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, eris.Wrap(rows.Err(), "postgres: list invoices iterate")
}
