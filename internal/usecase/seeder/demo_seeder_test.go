package seeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/invoicedesk-backend/internal/adapter/repository/memory"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func newMemorySeeder(now time.Time) (*DemoSeeder, *memory.Store) {
	store := memory.NewStore()
	s := NewDemoSeeder(
		memory.NewCustomerRepository(store),
		memory.NewInvoiceRepository(store),
		memory.NewDepositRepository(store),
	)
	s.Now = func() time.Time { return now }
	return s, store
}

func TestDemoSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)
	s, _ := newMemorySeeder(now)

	require.NoError(t, s.Seed(ctx))

	inv, err := s.InvoiceRepo.GetByID(ctx, DemoInvoiceOpen)
	require.NoError(t, err)
	assert.Equal(t, "1001", inv.Number)
	assert.Len(t, inv.LineItems, 3)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)
	assert.Equal(t, time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC), inv.DueDate)

	deposits, err := s.DepositRepo.ListByInvoiceID(ctx, DemoInvoiceOpen)
	require.NoError(t, err)
	assert.Len(t, deposits, 4)

	overdue, err := s.InvoiceRepo.GetByID(ctx, DemoInvoiceOverdue)
	require.NoError(t, err)
	overdue.Deposits, err = s.DepositRepo.ListByInvoiceID(ctx, DemoInvoiceOverdue)
	require.NoError(t, err)
	status, display := overdue.Due(now)
	assert.Equal(t, domain.DueStatusOverdue, status)
	assert.Equal(t, "Overdue by 5 days", display)

	paid, err := s.InvoiceRepo.GetByID(ctx, DemoInvoicePaid)
	require.NoError(t, err)
	paid.Deposits, err = s.DepositRepo.ListByInvoiceID(ctx, DemoInvoicePaid)
	require.NoError(t, err)
	status, _ = paid.Due(now)
	assert.Equal(t, domain.DueStatusPaid, status)
}

func TestDemoSeeder_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemorySeeder(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, s.Seed(ctx))
	s.Now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, s.Seed(ctx))

	invoices, err := s.InvoiceRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, invoices, 3)

	deposits, err := s.DepositRepo.ListByInvoiceID(ctx, DemoInvoiceOpen)
	require.NoError(t, err)
	assert.Len(t, deposits, 4, "second run must not duplicate deposits")
}

func TestDemoSeeder_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCustomerRepository)
	s := NewDemoSeeder(mockRepo, nil, nil)

	dbErr := errors.New("connection refused")
	mockRepo.On("GetByID", ctx, DemoCustomerSantaMonica).Return(nil, dbErr)

	err := s.Seed(ctx)
	assert.ErrorIs(t, err, dbErr)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
