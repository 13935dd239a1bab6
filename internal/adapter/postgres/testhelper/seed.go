package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewScope returns a scope no other test uses.
func NewScope() string {
	return uuid.NewString()
}

// SeedSetting inserts a settings row under a fresh scope and returns the scope.
func SeedSetting(t *testing.T, pool *pgxpool.Pool, key, value string) string {
	t.Helper()

	scope := NewScope()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO settings (scope, key, value) VALUES ($1, $2, $3)`,
		scope, key, value,
	)
	if err != nil {
		t.Fatalf("testhelper: seed setting: %v", err)
	}
	return scope
}
