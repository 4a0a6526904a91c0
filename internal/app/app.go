// Package app wires configuration to a loaded expense service.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/expense/store"
)

// OpenRepository builds the snapshot backend named by cfg.Storage.Backend.
// The returned cleanup releases its connections.
func OpenRepository(ctx context.Context, cfg *config.Config) (expense.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return store.NewMemory(), noop, nil

	case config.BackendFile:
		f, err := store.NewFile(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}

		return f, noop, nil

	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
		}

		return store.NewSQLite(db), db.Close, nil

	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		return store.NewPostgres(db), db.Close, nil

	case config.BackendRedis:
		client, err := database.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}

		return store.NewRedis(client, cfg.Redis.Prefix), client.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// NewService opens the configured backend and loads the ledger from it.
func NewService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*expense.Service, func() error, error) {
	repo, cleanup, err := OpenRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := expense.NewService(repo,
		expense.WithKey(cfg.Storage.Key),
		expense.WithLogger(logger),
	)

	if err := svc.Load(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("loading ledger: %w", err)
	}

	svc.Subscribe(func(expenses []expense.Expense) {
		logger.Debug("ledger changed", "count", len(expenses), "total", expense.Total(expenses).StringFixed(2))
	})

	logger.Info("ledger ready",
		"backend", cfg.Storage.Backend,
		"key", cfg.Storage.Key,
		"count", len(svc.List()),
	)

	return svc, cleanup, nil
}
