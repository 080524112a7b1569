package engine

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/invoiceflow/ingest-cli/internal/model"
	"github.com/invoiceflow/ingest-cli/internal/schema"
)

// Structural failures. Field-level problems degrade to defaults; only these
// three abort a file.
var (
	ErrEmptyTable = eris.New("file is empty")
	ErrNoColumns  = eris.New("could not detect any recognizable columns")
	ErrNoInvoices = eris.New("no valid invoices found in file")
)

// Options tunes engine behavior.
type Options struct {
	// Concurrency bounds parallel group assembly. Values <= 1 assemble
	// serially. Output order is stable either way.
	Concurrency int

	// Now overrides the clock, for deterministic tests.
	Now func() time.Time
}

// Engine turns materialized tables into invoice records. Stateless across
// invocations apart from the read-only schema; safe for concurrent use.
type Engine struct {
	schema      *schema.Schema
	concurrency int
	now         func() time.Time
}

// New creates an Engine over the given schema.
func New(s *schema.Schema, opts Options) *Engine {
	e := &Engine{
		schema:      s,
		concurrency: opts.Concurrency,
		now:         opts.Now,
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Parse maps the table's columns, partitions its rows into invoice groups,
// and assembles each group into a record. Field-level parse failures degrade
// to documented defaults; the whole file fails only on an empty table, an
// unrecognizable header set, or zero assembled invoices. No panic escapes:
// malformed input surfaces as an error, never a fault.
func (e *Engine) Parse(ctx context.Context, t Table) (outcome model.ParseOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("parse panic", zap.Any("panic", r))
			outcome = model.ParseOutcome{}
			err = eris.Errorf("error parsing file: %v", r)
		}
	}()

	if t.Empty() {
		return outcome, ErrEmptyTable
	}
	zap.L().Info("parsing table",
		zap.Int("rows", len(t.Rows)),
		zap.Int("columns", len(t.Headers)),
	)

	mapping := MapColumns(e.schema, t.Headers)
	if mapping.Empty() {
		return outcome, ErrNoColumns
	}

	groups := SplitGroups(t, mapping)
	zap.L().Info("split invoice groups", zap.Int("groups", len(groups)))

	invoices, err := e.assembleAll(ctx, groups, mapping)
	if err != nil {
		return model.ParseOutcome{}, err
	}
	if len(invoices) == 0 {
		return model.ParseOutcome{}, ErrNoInvoices
	}

	fields := make([]string, 0, len(mapping.MappedFields()))
	for _, f := range mapping.MappedFields() {
		fields = append(fields, string(f))
	}

	outcome = model.ParseOutcome{
		Invoices: invoices,
		Metadata: model.ParseMetadata{
			RowCount:      len(t.Rows),
			ColumnCount:   len(t.Headers),
			MappedFields:  fields,
			Confidence:    mapping.Confidences(),
			InvoiceCount:  len(invoices),
			AvgConfidence: mapping.AverageConfidence(),
		},
	}
	return outcome, nil
}

// assembleAll builds invoices from groups, optionally in parallel. Groups
// have no data dependency on one another; results keep discovery order via
// indexed slots.
func (e *Engine) assembleAll(ctx context.Context, groups []Group, mapping ColumnMapping) ([]model.Invoice, error) {
	now := e.now()
	slots := make([]*model.Invoice, len(groups))

	if e.concurrency == 1 || len(groups) < 2 {
		for i, g := range groups {
			if inv, ok := AssembleInvoice(g, mapping, now); ok {
				slots[i] = inv
			}
		}
	} else {
		eg, _ := errgroup.WithContext(ctx)
		eg.SetLimit(e.concurrency)
		for i, g := range groups {
			eg.Go(func() error {
				if inv, ok := AssembleInvoice(g, mapping, now); ok {
					slots[i] = inv
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, eris.Wrap(err, "assemble groups")
		}
	}

	invoices := make([]model.Invoice, 0, len(groups))
	for _, inv := range slots {
		if inv != nil {
			invoices = append(invoices, *inv)
		}
	}
	return invoices, nil
}
