// Package memory keeps invoices, customers and deposits in process memory.
// It backs the "memory" database driver used for demos and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
)

// Store holds all entities behind a single lock
type Store struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]domain.Customer
	invoices  map[uuid.UUID]domain.Invoice
	deposits  map[uuid.UUID][]domain.Deposit
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		customers: make(map[uuid.UUID]domain.Customer),
		invoices:  make(map[uuid.UUID]domain.Invoice),
		deposits:  make(map[uuid.UUID][]domain.Deposit),
	}
}

// customerRepository implements domain.CustomerRepository
type customerRepository struct{ s *Store }

// invoiceRepository implements domain.InvoiceRepository
type invoiceRepository struct{ s *Store }

// depositRepository implements domain.DepositRepository
type depositRepository struct{ s *Store }

// NewCustomerRepository creates a customer repository backed by s
func NewCustomerRepository(s *Store) domain.CustomerRepository {
	return &customerRepository{s: s}
}

// NewInvoiceRepository creates an invoice repository backed by s
func NewInvoiceRepository(s *Store) domain.InvoiceRepository {
	return &invoiceRepository{s: s}
}

// NewDepositRepository creates a deposit repository backed by s
func NewDepositRepository(s *Store) domain.DepositRepository {
	return &depositRepository{s: s}
}

func (r *customerRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r *customerRepository) Create(_ context.Context, customer *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.customers[customer.ID]; exists {
		return fmt.Errorf("customer %s already exists", customer.ID)
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *invoiceRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
	}
	return cloneInvoice(inv), nil
}

func (r *invoiceRepository) List(_ context.Context) ([]*domain.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		out = append(out, cloneInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].Number < out[j].Number
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (r *invoiceRepository) Create(_ context.Context, invoice *domain.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.invoices[invoice.ID]; exists {
		return fmt.Errorf("invoice %s already exists", invoice.ID)
	}
	stored := *cloneInvoice(*invoice)
	stored.Deposits = nil
	r.s.invoices[invoice.ID] = stored
	return nil
}

func (r *depositRepository) ListByInvoiceID(_ context.Context, invoiceID uuid.UUID) ([]domain.Deposit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := append([]domain.Deposit(nil), r.s.deposits[invoiceID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DepositDate.Before(out[j].DepositDate)
	})
	return out, nil
}

func (r *depositRepository) Create(_ context.Context, deposit *domain.Deposit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.invoices[deposit.InvoiceID]; !ok {
		return fmt.Errorf("invoice %s: %w", deposit.InvoiceID, domain.ErrNotFound)
	}
	r.s.deposits[deposit.InvoiceID] = append(r.s.deposits[deposit.InvoiceID], *deposit)
	return nil
}

func cloneInvoice(inv domain.Invoice) *domain.Invoice {
	inv.LineItems = append([]domain.LineItem(nil), inv.LineItems...)
	inv.Deposits = append([]domain.Deposit(nil), inv.Deposits...)
	return &inv
}
