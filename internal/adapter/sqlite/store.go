// Package sqlite implements the key/value settings store on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/nonutti-ng/web/internal/config"
	"github.com/nonutti-ng/web/migrations"
)

const table = "settings"

// Store persists settings in SQLite. A single connection serializes writers.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the database at cfg.Path and applies
// migrations.
func Open(ctx context.Context, cfg config.SQLiteConfig, logger *slog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	log := logger.With("adapter", "sqlite")
	if len(results) > 0 {
		log.DebugContext(ctx, "sqlite migrations applied", slog.Int("count", len(results)))
	}

	return &Store{db: db, log: log}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under scope/key. ok is false when absent.
func (s *Store) Get(ctx context.Context, scope, key string) (string, bool, error) {
	return get(ctx, s.db, scope, key)
}

// Set upserts the value stored under scope/key.
func (s *Store) Set(ctx context.Context, scope, key, value string) error {
	return set(ctx, s.db, scope, key, value)
}

// Delete removes scope/key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, scope, key string) error {
	query, args, err := squirrel.
		Delete(table).
		Where(squirrel.Eq{"scope": scope, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: delete %s/%s: %w", scope, key, err)
	}
	return nil
}

// Update applies fn to the current value inside one transaction.
func (s *Store) Update(ctx context.Context, scope, key string, fn func(current string, ok bool) (string, error)) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	current, ok, err := get(ctx, tx, scope, key)
	if err != nil {
		return err
	}
	next, err := fn(current, ok)
	if err != nil {
		return err
	}
	if err = set(ctx, tx, scope, key, next); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func get(ctx context.Context, q execer, scope, key string) (string, bool, error) {
	query, args, err := squirrel.
		Select("value").
		From(table).
		Where(squirrel.Eq{"scope": scope, "key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("sqlite: build select: %w", err)
	}

	var value string
	err = q.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite: get %s/%s: %w", scope, key, err)
	}
	return value, true, nil
}

func set(ctx context.Context, q execer, scope, key, value string) error {
	query, args, err := squirrel.
		Insert(table).
		Columns("scope", "key", "value", "updated_at").
		Values(scope, key, value, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build upsert: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: set %s/%s: %w", scope, key, err)
	}
	return nil
}
