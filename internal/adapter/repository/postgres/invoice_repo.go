package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
)

// invoiceRepository implements domain.InvoiceRepository
type invoiceRepository struct {
	db *DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *DB) domain.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// GetByID retrieves an invoice and its line items
func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `
		SELECT id, number, customer_id, invoice_date, due_date
		FROM invoices
		WHERE id = $1
	`

	var inv domain.Invoice
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID,
		&inv.Number,
		&inv.CustomerID,
		&inv.InvoiceDate,
		&inv.DueDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invoice by ID: %w", err)
	}

	items, err := r.lineItems(ctx, `WHERE invoice_id = $1`, id)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items[inv.ID]

	return &inv, nil
}

// List retrieves all invoices ordered by due date
func (r *invoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	query := `
		SELECT id, number, customer_id, invoice_date, due_date
		FROM invoices
		ORDER BY due_date, number
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.CustomerID, &inv.InvoiceDate, &inv.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	items, err := r.lineItems(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		inv.LineItems = items[inv.ID]
	}

	return invoices, nil
}

// lineItems loads line items grouped by invoice ID
func (r *invoiceRepository) lineItems(ctx context.Context, where string, args ...interface{}) (map[uuid.UUID][]domain.LineItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price
		FROM line_items
		` + where + `
		ORDER BY invoice_id, description, id
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.LineItem)
	for rows.Next() {
		var li domain.LineItem
		var priceStr string
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &priceStr); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}

		// Parse unit_price (NUMERIC)
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse unit_price: %w", err)
		}
		li.UnitPrice = price

		out[li.InvoiceID] = append(out[li.InvoiceID], li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line items: %w", err)
	}
	return out, nil
}

// Create creates a new invoice with all its line items in a database transaction
func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertInvoiceQuery := `
		INSERT INTO invoices (id, number, customer_id, invoice_date, due_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = dbTx.ExecContext(ctx, insertInvoiceQuery,
		invoice.ID,
		invoice.Number,
		invoice.CustomerID,
		invoice.InvoiceDate,
		invoice.DueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	insertItemQuery := `
		INSERT INTO line_items (id, invoice_id, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, li := range invoice.LineItems {
		_, err = dbTx.ExecContext(ctx, insertItemQuery,
			li.ID,
			invoice.ID,
			li.Description,
			li.Quantity,
			li.UnitPrice.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
