package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func invoiceWith(total, paid string, due time.Time) *Invoice {
	inv := &Invoice{
		ID:          uuid.New(),
		Number:      "INV-1",
		CustomerID:  uuid.New(),
		InvoiceDate: due.AddDate(0, 0, -30),
		DueDate:     due,
		LineItems: []LineItem{
			{ID: uuid.New(), Description: "Consulting", Quantity: 1, UnitPrice: decimal.RequireFromString(total)},
		},
	}
	if paid != "0" {
		inv.Deposits = []Deposit{{ID: uuid.New(), Amount: decimal.RequireFromString(paid), DepositDate: due}}
	}
	return inv
}

func TestInvoice_Due(t *testing.T) {
	today := date("2024-03-15").Add(17 * time.Hour)

	tests := []struct {
		name        string
		total       string
		paid        string
		due         time.Time
		wantStatus  DueStatus
		wantDisplay string
	}{
		{name: "fully paid", total: "100", paid: "100.00", due: date("2024-01-01"), wantStatus: DueStatusPaid, wantDisplay: "Paid"},
		{name: "overpaid", total: "100", paid: "150", due: date("2024-04-01"), wantStatus: DueStatusOverpaid, wantDisplay: "Overpaid"},
		{name: "due today", total: "100", paid: "0", due: date("2024-03-15"), wantStatus: DueStatusDue, wantDisplay: "Due Today"},
		{name: "due tomorrow", total: "100", paid: "10", due: date("2024-03-16"), wantStatus: DueStatusDue, wantDisplay: "Due Tomorrow"},
		{name: "due yesterday", total: "100", paid: "0", due: date("2024-03-14"), wantStatus: DueStatusOverdue, wantDisplay: "Due Yesterday"},
		{name: "overdue by days", total: "100", paid: "0", due: date("2024-03-05"), wantStatus: DueStatusOverdue, wantDisplay: "Overdue by 10 days"},
		{name: "due in days", total: "100", paid: "0", due: date("2024-04-14"), wantStatus: DueStatusDue, wantDisplay: "Due in 30 days"},
		{name: "zero total with no deposits is paid", total: "0", paid: "0", due: date("2024-03-01"), wantStatus: DueStatusPaid, wantDisplay: "Paid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := invoiceWith(tt.total, tt.paid, tt.due)
			status, display := inv.Due(today)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantDisplay, display)
		})
	}
}

func TestInvoice_Totals(t *testing.T) {
	inv := &Invoice{
		LineItems: []LineItem{
			{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("100")},
		},
		Deposits: []Deposit{
			{Amount: decimal.RequireFromString("50.50")},
			{Amount: decimal.RequireFromString("9.47")},
		},
	}

	assert.True(t, decimal.RequireFromString("159.97").Equal(inv.TotalAmount()))
	assert.True(t, decimal.RequireFromString("59.97").Equal(inv.TotalDeposits()))
}

func TestInvoice_Validate(t *testing.T) {
	valid := func() Invoice {
		return Invoice{
			Number:      "INV-7",
			CustomerID:  uuid.New(),
			InvoiceDate: date("2024-01-01"),
			DueDate:     date("2024-02-01"),
			LineItems:   []LineItem{{Quantity: 2, UnitPrice: decimal.NewFromInt(5)}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Invoice)
		wantErr bool
		errMsg  string
	}{
		{name: "valid invoice", mutate: func(*Invoice) {}},
		{name: "missing number", mutate: func(i *Invoice) { i.Number = "" }, wantErr: true, errMsg: "invoice number is required"},
		{name: "missing customer", mutate: func(i *Invoice) { i.CustomerID = uuid.Nil }, wantErr: true, errMsg: "invoice must belong to a customer"},
		{name: "due before invoiced", mutate: func(i *Invoice) { i.DueDate = date("2023-12-31") }, wantErr: true, errMsg: "due date cannot be before invoice date"},
		{name: "zero quantity", mutate: func(i *Invoice) { i.LineItems[0].Quantity = 0 }, wantErr: true, errMsg: "line item 0: quantity must be at least 1"},
		{name: "negative price", mutate: func(i *Invoice) { i.LineItems[0].UnitPrice = decimal.NewFromInt(-1) }, wantErr: true, errMsg: "line item 0: unit price cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := valid()
			tt.mutate(&inv)
			err := inv.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	assert.Equal(t, 0, DaysBetween(date("2024-03-15"), date("2024-03-15").Add(23*time.Hour)))
	assert.Equal(t, 1, DaysBetween(time.Date(2024, 3, 15, 23, 0, 0, 0, loc), date("2024-03-16")))
	assert.Equal(t, -31, DaysBetween(date("2024-04-01"), date("2024-03-01")))
	// leap year
	assert.Equal(t, 366, DaysBetween(date("2024-01-01"), date("2025-01-01")))
}
