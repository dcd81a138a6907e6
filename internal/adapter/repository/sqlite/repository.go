package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
)

// customerRepository implements domain.CustomerRepository
type customerRepository struct {
	db *DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *DB) domain.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email FROM customers WHERE id = ?`, id.String(),
	).Scan(&c.ID, &c.Name, &c.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, email) VALUES (?, ?, ?)`,
		customer.ID.String(), customer.Name, customer.Email,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// invoiceRepository implements domain.InvoiceRepository
type invoiceRepository struct {
	db *DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *DB) domain.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, number, customer_id, invoice_date, due_date`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var invoiceDate, dueDate string
	if err := row.Scan(&inv.ID, &inv.Number, &inv.CustomerID, &invoiceDate, &dueDate); err != nil {
		return nil, err
	}

	var err error
	if inv.InvoiceDate, err = parseDate(invoiceDate); err != nil {
		return nil, fmt.Errorf("parse invoice_date: %w", err)
	}
	if inv.DueDate, err = parseDate(dueDate); err != nil {
		return nil, fmt.Errorf("parse due_date: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id.String(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	items, err := r.lineItems(ctx, `WHERE invoice_id = ?`, id.String())
	if err != nil {
		return nil, err
	}
	inv.LineItems = items[inv.ID]
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY due_date, number`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	// release the single connection before querying line items
	rows.Close()

	items, err := r.lineItems(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		inv.LineItems = items[inv.ID]
	}
	return invoices, nil
}

func (r *invoiceRepository) lineItems(ctx context.Context, where string, args ...interface{}) (map[uuid.UUID][]domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, invoice_id, description, quantity, unit_price FROM line_items `+where+
			` ORDER BY invoice_id, description, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.LineItem)
	for rows.Next() {
		var li domain.LineItem
		var price string
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &price); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		if li.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse unit_price: %w", err)
		}
		out[li.InvoiceID] = append(out[li.InvoiceID], li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line items: %w", err)
	}
	return out, nil
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (`+invoiceColumns+`) VALUES (?, ?, ?, ?, ?)`,
		invoice.ID.String(),
		invoice.Number,
		invoice.CustomerID.String(),
		formatDate(invoice.InvoiceDate),
		formatDate(invoice.DueDate),
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	for _, li := range invoice.LineItems {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO line_items (id, invoice_id, description, quantity, unit_price) VALUES (?, ?, ?, ?, ?)`,
			li.ID.String(), invoice.ID.String(), li.Description, li.Quantity, li.UnitPrice.String(),
		)
		if err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// depositRepository implements domain.DepositRepository
type depositRepository struct {
	db *DB
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *DB) domain.DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]domain.Deposit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, invoice_id, amount, deposit_date, note, created_at
		FROM deposits
		WHERE invoice_id = ?
		ORDER BY deposit_date, created_at`, invoiceID.String())
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer rows.Close()

	deposits := make([]domain.Deposit, 0)
	for rows.Next() {
		var d domain.Deposit
		var amount, depositDate, createdAt string
		if err := rows.Scan(&d.ID, &d.InvoiceID, &amount, &depositDate, &d.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		if d.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		if d.DepositDate, err = parseDate(depositDate); err != nil {
			return nil, fmt.Errorf("parse deposit_date: %w", err)
		}
		if d.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		deposits = append(deposits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deposits: %w", err)
	}
	return deposits, nil
}

func (r *depositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deposits (id, invoice_id, amount, deposit_date, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		deposit.ID.String(),
		deposit.InvoiceID.String(),
		deposit.Amount.String(),
		formatDate(deposit.DepositDate),
		deposit.Note,
		deposit.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}
