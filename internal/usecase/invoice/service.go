package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
)

// Details is everything the invoice page shows
type Details struct {
	Invoice       *domain.Invoice
	Customer      *domain.Customer
	LineItems     []domain.LineItem
	Deposits      []domain.Deposit
	TotalAmount   decimal.Decimal
	TotalDeposits decimal.Decimal
	DueStatus     domain.DueStatus
	DueDisplay    string
}

// InvoiceService handles invoice read operations
type InvoiceService struct {
	InvoiceRepo  domain.InvoiceRepository
	CustomerRepo domain.CustomerRepository
	DepositRepo  domain.DepositRepository

	// Now returns the current time; due dates are measured against it
	Now func() time.Time
}

// NewInvoiceService creates a new InvoiceService instance
func NewInvoiceService(
	invoiceRepo domain.InvoiceRepository,
	customerRepo domain.CustomerRepository,
	depositRepo domain.DepositRepository,
) *InvoiceService {
	return &InvoiceService{
		InvoiceRepo:  invoiceRepo,
		CustomerRepo: customerRepo,
		DepositRepo:  depositRepo,
		Now:          time.Now,
	}
}

// GetInvoiceDetails loads an invoice with its customer, line items and
// deposits and computes totals and due status.
// Returns an error wrapping domain.ErrNotFound for unknown IDs.
func (s *InvoiceService) GetInvoiceDetails(ctx context.Context, invoiceID uuid.UUID) (*Details, error) {
	inv, err := s.InvoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return s.details(ctx, inv, s.Now())
}

// ListOverdue returns the details of every invoice that is overdue as of asOf
func (s *InvoiceService) ListOverdue(ctx context.Context, asOf time.Time) ([]*Details, error) {
	invoices, err := s.InvoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	var overdue []*Details
	for _, inv := range invoices {
		// skip invoices that cannot be overdue yet
		if !domain.DateOnly(inv.DueDate).Before(domain.DateOnly(asOf)) {
			continue
		}
		d, err := s.details(ctx, inv, asOf)
		if err != nil {
			return nil, err
		}
		if d.DueStatus == domain.DueStatusOverdue {
			overdue = append(overdue, d)
		}
	}
	return overdue, nil
}

func (s *InvoiceService) details(ctx context.Context, inv *domain.Invoice, today time.Time) (*Details, error) {
	customer, err := s.CustomerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer for invoice %s: %w", inv.ID, err)
	}

	deposits, err := s.DepositRepo.ListByInvoiceID(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	inv.Deposits = deposits

	status, display := inv.Due(today)

	return &Details{
		Invoice:       inv,
		Customer:      customer,
		LineItems:     inv.LineItems,
		Deposits:      deposits,
		TotalAmount:   inv.TotalAmount(),
		TotalDeposits: inv.TotalDeposits(),
		DueStatus:     status,
		DueDisplay:    display,
	}, nil
}
