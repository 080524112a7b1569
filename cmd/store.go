package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/invoiceflow/ingest-cli/internal/engine"
	"github.com/invoiceflow/ingest-cli/internal/schema"
	"github.com/invoiceflow/ingest-cli/internal/store"
)

// openStore creates the store selected by config and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("parse"); err != nil {
		return nil, err
	}

	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		st, err = store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	return st, nil
}

// newEngine builds the parse engine with the configured vocabulary overlay.
func newEngine(concurrency int) (*engine.Engine, error) {
	s := schema.Default()
	if cfg.Parse.VocabularyFile != "" {
		if err := s.LoadOverlayFile(cfg.Parse.VocabularyFile); err != nil {
			return nil, eris.Wrap(err, "load vocabulary overlay")
		}
	}

	if concurrency <= 0 {
		concurrency = cfg.Parse.Concurrency
	}
	return engine.New(s, engine.Options{Concurrency: concurrency, Now: time.Now}), nil
}
