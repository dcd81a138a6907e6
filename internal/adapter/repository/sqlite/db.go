// Package sqlite stores invoices in a local SQLite file using the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/simaogato/invoicedesk-backend/internal/logger"
)

// Stored formats for date and timestamp columns
const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339Nano
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection serializes writers
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	db := &DB{DB: sqlDB}
	if err := db.migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("SQLite database opened", zap.String("path", path))
	return db, nil
}

func (db *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id    TEXT PRIMARY KEY,
			name  TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id           TEXT PRIMARY KEY,
			number       TEXT NOT NULL UNIQUE,
			customer_id  TEXT NOT NULL REFERENCES customers(id),
			invoice_date TEXT NOT NULL,
			due_date     TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS line_items (
			id          TEXT PRIMARY KEY,
			invoice_id  TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			quantity    INTEGER NOT NULL CHECK (quantity >= 1),
			unit_price  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_line_items_invoice ON line_items(invoice_id)`,
		`CREATE TABLE IF NOT EXISTS deposits (
			id           TEXT PRIMARY KEY,
			invoice_id   TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			amount       TEXT NOT NULL,
			deposit_date TEXT NOT NULL,
			note         TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deposits_invoice ON deposits(invoice_id, deposit_date)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
