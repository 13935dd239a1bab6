package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nonutti-ng/web/internal/adapter/memory"
	"github.com/nonutti-ng/web/internal/adapter/postgres"
	"github.com/nonutti-ng/web/internal/adapter/postgres/settings"
	"github.com/nonutti-ng/web/internal/adapter/sqlite"
	"github.com/nonutti-ng/web/internal/config"
)

// settingsStore is what the services and the health check need from a backend.
type settingsStore interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
	Update(ctx context.Context, scope, key string, fn func(current string, ok bool) (string, error)) error
	Ping(ctx context.Context) error
}

// openStore connects the configured backend. The returned func releases it.
// PostgreSQL migrations are applied by cmd/migrate, not here.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (settingsStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		st, err := sqlite.Open(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("app.openStore: sqlite: %w", err)
		}
		return st, closeLogged(logger, "sqlite", st.Close), nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("app.openStore: postgres: %w", err)
		}
		return settings.New(pool), pool.Close, nil

	default:
		return memory.NewStore(), func() {}, nil
	}
}

// closeLogged adapts a fallible close to a deferred func, logging failures.
func closeLogged(logger *slog.Logger, backend string, closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			logger.Error("close store", slog.String("store", backend), slog.String("error", err.Error()))
		}
	}
}
