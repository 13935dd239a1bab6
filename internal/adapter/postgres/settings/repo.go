// Package settings implements the key/value settings store using PostgreSQL.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nonutti-ng/web/internal/adapter/postgres"
)

const table = "settings"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo stores per-scope settings in the settings table.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// Get returns the value stored under scope/key. ok is false when absent.
func (r *Repo) Get(ctx context.Context, scope, key string) (string, bool, error) {
	return r.get(ctx, scope, key, false)
}

// Set upserts the value stored under scope/key.
func (r *Repo) Set(ctx context.Context, scope, key, value string) error {
	query, args, err := psql.
		Insert(table).
		Columns("scope", "key", "value", "updated_at").
		Values(scope, key, value, squirrel.Expr("now()")).
		Suffix("ON CONFLICT (scope, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("settings: build upsert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "setting", scope+"/"+key)
	}
	return nil
}

// Delete removes scope/key. Deleting an absent key is not an error.
func (r *Repo) Delete(ctx context.Context, scope, key string) error {
	query, args, err := psql.
		Delete(table).
		Where(squirrel.Eq{"scope": scope, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("settings: build delete: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "setting", scope+"/"+key)
	}
	return nil
}

// Update reads scope/key under a row lock, applies fn and writes the result
// back in one transaction.
func (r *Repo) Update(ctx context.Context, scope, key string, fn func(current string, ok bool) (string, error)) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, ok, err := r.get(ctx, scope, key, true)
		if err != nil {
			return err
		}
		next, err := fn(current, ok)
		if err != nil {
			return err
		}
		return r.Set(ctx, scope, key, next)
	})
}

// Ping checks database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repo) get(ctx context.Context, scope, key string, forUpdate bool) (string, bool, error) {
	b := psql.
		Select("value").
		From(table).
		Where(squirrel.Eq{"scope": scope, "key": key})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return "", false, fmt.Errorf("settings: build select: %w", err)
	}

	var value string
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, postgres.MapError(err, "setting", scope+"/"+key)
	}
	return value, true, nil
}
