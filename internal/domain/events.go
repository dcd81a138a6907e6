package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositCreated is published after a deposit has been stored
type DepositCreated struct {
	InvoiceID   uuid.UUID       `json:"invoiceId"`
	DepositID   uuid.UUID       `json:"depositId"`
	Amount      decimal.Decimal `json:"amount"`
	DepositDate time.Time       `json:"depositDate"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// EventPublisher delivers domain events to interested parties
type EventPublisher interface {
	PublishDepositCreated(ctx context.Context, event DepositCreated) error
}
