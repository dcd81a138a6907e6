package domain

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence operations
type CustomerRepository interface {
	// GetByID retrieves a customer by its ID
	// Returns an error wrapping ErrNotFound when no customer matches
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// Create creates a new customer
	Create(ctx context.Context, customer *Customer) error
}

// InvoiceRepository defines the interface for invoice persistence operations
type InvoiceRepository interface {
	// GetByID retrieves an invoice with its line items
	// Deposits are loaded separately through DepositRepository
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// List retrieves all invoices with their line items, ordered by due date
	List(ctx context.Context) ([]*Invoice, error)

	// Create creates a new invoice and its line items
	Create(ctx context.Context, invoice *Invoice) error
}

// DepositRepository defines the interface for deposit persistence operations
type DepositRepository interface {
	// ListByInvoiceID retrieves the deposits of an invoice ordered by deposit date
	ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Deposit, error)

	// Create creates a new deposit
	Create(ctx context.Context, deposit *Deposit) error
}
