package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentReminder asks a customer to settle the outstanding balance of an
// overdue invoice
type PaymentReminder struct {
	ID            uuid.UUID
	InvoiceID     uuid.UUID
	InvoiceNumber string
	CustomerID    uuid.UUID
	CustomerEmail string
	Outstanding   decimal.Decimal
	DaysOverdue   int
	GeneratedAt   time.Time
}
