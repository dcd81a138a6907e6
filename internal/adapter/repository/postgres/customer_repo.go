package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
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

// GetByID retrieves a customer by its ID
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, name, email
		FROM customers
		WHERE id = $1
	`

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID: %w", err)
	}
	return &c, nil
}

// Create creates a new customer
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, customer.ID, customer.Name, customer.Email); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}
