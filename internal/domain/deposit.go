package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit field names used in validation errors
const (
	FieldAmount      = "amount"
	FieldDepositDate = "depositDate"
)

// Deposit validation messages
const (
	MsgAmountNotNumber    = "Must be a number"
	MsgAmountNotPositive  = "Must be greater than 0"
	MsgAmountTooPrecise   = "Must only have two decimal places"
	MsgDepositDateInvalid = "Please enter a valid date"
)

// Deposit is a payment received against an invoice
type Deposit struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Amount      decimal.Decimal
	DepositDate time.Time
	Note        string
	CreatedAt   time.Time
}

// Validate checks the amount and date rules, collecting every failure into a
// *ValidationError.
func (d *Deposit) Validate() error {
	verr := &ValidationError{}
	if msg := ValidateAmount(d.Amount); msg != "" {
		verr.Add(FieldAmount, msg)
	}
	if d.DepositDate.IsZero() {
		verr.Add(FieldDepositDate, MsgDepositDateInvalid)
	}
	return verr.ErrOrNil()
}

// ValidateAmount returns the user-facing message for an invalid deposit
// amount, or "" when it is acceptable.
func ValidateAmount(amount decimal.Decimal) string {
	if amount.LessThanOrEqual(decimal.Zero) {
		return MsgAmountNotPositive
	}
	if !amount.Equal(amount.Round(2)) {
		return MsgAmountTooPrecise
	}
	return ""
}
