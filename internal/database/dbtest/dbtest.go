// Package dbtest opens throwaway SQLite databases for package tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-stockbot/internal/database"
	"github.com/jmoiron/sqlx"
)

// New returns a migrated SQLite database in t.TempDir(), closed on cleanup.
func New(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), &database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "bot.db"),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
