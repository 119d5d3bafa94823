package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		category_id INTEGER NOT NULL,
		name        TEXT    NOT NULL,
		qty         REAL    NOT NULL,
		limit_qty   REAL    DEFAULT NULL,
		below_limit INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY(category_id) REFERENCES categories(id) ON DELETE CASCADE,
		UNIQUE(category_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS subscribers (
		chat_id INTEGER PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id               INTEGER   PRIMARY KEY AUTOINCREMENT,
		user_id          INTEGER   NOT NULL,
		text             TEXT      NOT NULL,
		is_done          INTEGER   NOT NULL DEFAULT 0,
		created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		task_category_id INTEGER   NOT NULL CHECK (task_category_id IN (1, 2, 3))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_open ON tasks(task_category_id, is_done)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		qty         DOUBLE PRECISION NOT NULL,
		limit_qty   DOUBLE PRECISION,
		below_limit BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE(category_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS subscribers (
		chat_id BIGINT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id               BIGSERIAL PRIMARY KEY,
		user_id          BIGINT NOT NULL,
		text             TEXT NOT NULL,
		is_done          BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		task_category_id SMALLINT NOT NULL CHECK (task_category_id IN (1, 2, 3))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_open ON tasks(task_category_id, is_done)`,
}

// Columns added after the first release; older SQLite files lack them.
var sqliteProductColumns = []struct {
	name string
	ddl  string
}{
	{"limit_qty", "ALTER TABLE products ADD COLUMN limit_qty REAL DEFAULT NULL"},
	{"below_limit", "ALTER TABLE products ADD COLUMN below_limit INTEGER NOT NULL DEFAULT 0"},
}

// Migrate creates missing tables and columns. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == DriverPostgres {
		schema = postgresSchema
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	if db.DriverName() == DriverSQLite {
		return upgradeSQLiteProducts(ctx, db)
	}
	return nil
}

func upgradeSQLiteProducts(ctx context.Context, db *sqlx.DB) error {
	var cols []string
	if err := db.SelectContext(ctx, &cols, `SELECT name FROM pragma_table_info('products')`); err != nil {
		return fmt.Errorf("read products columns: %w", err)
	}
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[c] = true
	}
	for _, col := range sqliteProductColumns {
		if have[col.name] {
			continue
		}
		if _, err := db.ExecContext(ctx, col.ddl); err != nil {
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
