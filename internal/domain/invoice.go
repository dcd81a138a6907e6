package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueStatus summarizes an invoice's payment state
type DueStatus string

const (
	DueStatusPaid     DueStatus = "paid"
	DueStatusOverpaid DueStatus = "overpaid"
	DueStatusOverdue  DueStatus = "overdue"
	DueStatusDue      DueStatus = "due"
)

// Invoice is a bill sent to a customer
type Invoice struct {
	ID          uuid.UUID
	Number      string
	CustomerID  uuid.UUID
	InvoiceDate time.Time
	DueDate     time.Time
	LineItems   []LineItem
	Deposits    []Deposit
}

// LineItem is one billed product or service on an invoice
type LineItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Total returns quantity × unit price.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// TotalAmount is the sum of all line item totals
func (inv *Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, li := range inv.LineItems {
		total = total.Add(li.Total())
	}
	return total
}

// TotalDeposits is the sum of all deposits received
func (inv *Invoice) TotalDeposits() decimal.Decimal {
	total := decimal.Zero
	for _, d := range inv.Deposits {
		total = total.Add(d.Amount)
	}
	return total
}

// Validate ensures the invoice adheres to domain rules
func (inv *Invoice) Validate() error {
	if inv.Number == "" {
		return errors.New("invoice number is required")
	}
	if inv.CustomerID == uuid.Nil {
		return errors.New("invoice must belong to a customer")
	}
	if inv.DueDate.Before(inv.InvoiceDate) {
		return errors.New("due date cannot be before invoice date")
	}
	for i, li := range inv.LineItems {
		if li.Quantity < 1 {
			return fmt.Errorf("line item %d: quantity must be at least 1", i)
		}
		if li.UnitPrice.IsNegative() {
			return fmt.Errorf("line item %d: unit price cannot be negative", i)
		}
	}
	return nil
}

// Due computes the invoice's status and its display text as of today.
// Days are counted between calendar dates, so any time of day is ignored.
func (inv *Invoice) Due(today time.Time) (DueStatus, string) {
	total := inv.TotalAmount()
	paid := inv.TotalDeposits()
	days := DaysBetween(today, inv.DueDate)

	var status DueStatus
	switch {
	case paid.Equal(total):
		status = DueStatusPaid
	case paid.GreaterThan(total):
		status = DueStatusOverpaid
	case days < 0:
		status = DueStatusOverdue
	default:
		status = DueStatusDue
	}

	switch status {
	case DueStatusPaid:
		return status, "Paid"
	case DueStatusOverpaid:
		return status, "Overpaid"
	}

	switch {
	case days == 0:
		return status, "Due Today"
	case days == 1:
		return status, "Due Tomorrow"
	case days == -1:
		return status, "Due Yesterday"
	case days < 0:
		return status, fmt.Sprintf("Overdue by %d days", -days)
	default:
		return status, fmt.Sprintf("Due in %d days", days)
	}
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// DateOnly returns t's calendar date as UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
