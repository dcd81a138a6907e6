package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
)

// Fixed UUIDs for demo records, so seeding can run on every start
var (
	DemoCustomerSantaMonica = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	DemoCustomerStankonia   = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	DemoCustomerWideOpen    = uuid.MustParse("00000000-0000-0000-0000-000000000103")

	DemoInvoiceOpen    = uuid.MustParse("00000000-0000-0000-0000-000000000201")
	DemoInvoiceOverdue = uuid.MustParse("00000000-0000-0000-0000-000000000202")
	DemoInvoicePaid    = uuid.MustParse("00000000-0000-0000-0000-000000000203")
)

// demoInvoice describes a seeded invoice relative to the seeding date
type demoInvoice struct {
	ID         uuid.UUID
	Number     string
	CustomerID uuid.UUID
	InvoiceAgo int
	DueIn      int
	Items      []demoItem
	Deposits   []demoDeposit
}

type demoItem struct {
	Description string
	Quantity    int
	UnitPrice   string
}

type demoDeposit struct {
	DaysAgo int
	Amount  string
	Note    string
}

// DemoSeeder fills an empty store with demo customers, invoices and deposits
type DemoSeeder struct {
	CustomerRepo domain.CustomerRepository
	InvoiceRepo  domain.InvoiceRepository
	DepositRepo  domain.DepositRepository

	Now func() time.Time
}

// NewDemoSeeder creates a new DemoSeeder instance
func NewDemoSeeder(
	customerRepo domain.CustomerRepository,
	invoiceRepo domain.InvoiceRepository,
	depositRepo domain.DepositRepository,
) *DemoSeeder {
	return &DemoSeeder{
		CustomerRepo: customerRepo,
		InvoiceRepo:  invoiceRepo,
		DepositRepo:  depositRepo,
		Now:          time.Now,
	}
}

// Seed ensures the demo records exist. Records already present are left
// untouched; dates are laid out relative to Now on first seeding.
func (s *DemoSeeder) Seed(ctx context.Context) error {
	customers := []domain.Customer{
		{ID: DemoCustomerSantaMonica, Name: "Santa Monica", Email: "billing@santamonica.example"},
		{ID: DemoCustomerStankonia, Name: "Stankonia", Email: "accounts@stankonia.example"},
		{ID: DemoCustomerWideOpen, Name: "Wide Open Spaces", Email: "ap@wideopen.example"},
	}
	for i := range customers {
		c := customers[i]
		_, err := s.CustomerRepo.GetByID(ctx, c.ID)
		switch {
		case err == nil:
			continue
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("failed to check customer %s: %w", c.Name, err)
		}

		if err := c.Validate(); err != nil {
			return err
		}
		if err := s.CustomerRepo.Create(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", c.Name, err)
		}
	}

	invoices := []demoInvoice{
		{
			ID: DemoInvoiceOpen, Number: "1001", CustomerID: DemoCustomerSantaMonica,
			InvoiceAgo: 30, DueIn: 10,
			Items: []demoItem{
				{Description: "Pro Plan", Quantity: 2, UnitPrice: "10"},
				{Description: "Custom", Quantity: 1, UnitPrice: "17.77"},
				{Description: "Migration", Quantity: 1, UnitPrice: "1000"},
			},
			Deposits: []demoDeposit{
				{DaysAgo: 25, Amount: "200", Note: "initial payment"},
				{DaysAgo: 14, Amount: "150"},
				{DaysAgo: 14, Amount: "50", Note: "top up"},
				{DaysAgo: 3, Amount: "300"},
			},
		},
		{
			ID: DemoInvoiceOverdue, Number: "1002", CustomerID: DemoCustomerStankonia,
			InvoiceAgo: 40, DueIn: -5,
			Items: []demoItem{
				{Description: "Base Plan", Quantity: 1, UnitPrice: "500"},
				{Description: "Onboarding", Quantity: 3, UnitPrice: "125"},
			},
			Deposits: []demoDeposit{
				{DaysAgo: 20, Amount: "250"},
			},
		},
		{
			ID: DemoInvoicePaid, Number: "1003", CustomerID: DemoCustomerWideOpen,
			InvoiceAgo: 60, DueIn: -30,
			Items: []demoItem{
				{Description: "Consulting", Quantity: 4, UnitPrice: "150"},
			},
			Deposits: []demoDeposit{
				{DaysAgo: 45, Amount: "300"},
				{DaysAgo: 31, Amount: "300"},
			},
		},
	}

	today := domain.DateOnly(s.Now())
	for _, di := range invoices {
		_, err := s.InvoiceRepo.GetByID(ctx, di.ID)
		switch {
		case err == nil:
			continue
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("failed to check invoice %s: %w", di.Number, err)
		}

		if err := s.seedInvoice(ctx, di, today); err != nil {
			return err
		}
	}

	return nil
}

func (s *DemoSeeder) seedInvoice(ctx context.Context, di demoInvoice, today time.Time) error {
	inv := &domain.Invoice{
		ID:          di.ID,
		Number:      di.Number,
		CustomerID:  di.CustomerID,
		InvoiceDate: today.AddDate(0, 0, -di.InvoiceAgo),
		DueDate:     today.AddDate(0, 0, di.DueIn),
	}
	for _, item := range di.Items {
		inv.LineItems = append(inv.LineItems, domain.LineItem{
			ID:          uuid.New(),
			InvoiceID:   inv.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   decimal.RequireFromString(item.UnitPrice),
		})
	}

	if err := inv.Validate(); err != nil {
		return err
	}
	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return fmt.Errorf("failed to seed invoice %s: %w", inv.Number, err)
	}

	for _, dd := range di.Deposits {
		d := &domain.Deposit{
			ID:          uuid.New(),
			InvoiceID:   inv.ID,
			Amount:      decimal.RequireFromString(dd.Amount),
			DepositDate: today.AddDate(0, 0, -dd.DaysAgo),
			Note:        dd.Note,
			CreatedAt:   s.Now(),
		}
		if err := d.Validate(); err != nil {
			return err
		}
		if err := s.DepositRepo.Create(ctx, d); err != nil {
			return fmt.Errorf("failed to seed deposit for invoice %s: %w", inv.Number, err)
		}
	}
	return nil
}
