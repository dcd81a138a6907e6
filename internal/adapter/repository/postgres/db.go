package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=invoicedesk sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id    UUID PRIMARY KEY,
			name  TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id           UUID PRIMARY KEY,
			number       TEXT NOT NULL UNIQUE,
			customer_id  UUID NOT NULL REFERENCES customers(id),
			invoice_date DATE NOT NULL,
			due_date     DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS line_items (
			id          UUID PRIMARY KEY,
			invoice_id  UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			quantity    INTEGER NOT NULL CHECK (quantity >= 1),
			unit_price  NUMERIC(14, 2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_line_items_invoice ON line_items(invoice_id)`,
		`CREATE TABLE IF NOT EXISTS deposits (
			id           UUID PRIMARY KEY,
			invoice_id   UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			amount       NUMERIC(14, 2) NOT NULL CHECK (amount > 0),
			deposit_date DATE NOT NULL,
			note         TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deposits_invoice ON deposits(invoice_id, deposit_date)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
