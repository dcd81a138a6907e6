package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0.01", want: ""},
		{amount: "100", want: ""},
		{amount: "12.50", want: ""},
		{amount: "0", want: MsgAmountNotPositive},
		{amount: "-5", want: MsgAmountNotPositive},
		{amount: "1.001", want: MsgAmountTooPrecise},
		{amount: "-1.001", want: MsgAmountNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateAmount(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestDeposit_Validate(t *testing.T) {
	d := Deposit{ID: uuid.New(), InvoiceID: uuid.New(), Amount: decimal.NewFromInt(10), DepositDate: time.Now()}
	assert.NoError(t, d.Validate())

	d.Amount = decimal.Zero
	d.DepositDate = time.Time{}
	err := d.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		FieldAmount:      MsgAmountNotPositive,
		FieldDepositDate: MsgDepositDateInvalid,
	}, verr.Fields())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidationError(t *testing.T) {
	var empty ValidationError
	assert.NoError(t, empty.ErrOrNil())
	assert.Equal(t, "validation failed", empty.Error())

	var nilErr *ValidationError
	assert.NoError(t, nilErr.ErrOrNil())

	verr := &ValidationError{}
	verr.Add(FieldAmount, MsgAmountNotNumber)
	verr.Add(FieldAmount, MsgAmountTooPrecise)
	verr.Add(FieldDepositDate, MsgDepositDateInvalid)

	assert.Equal(t, MsgAmountNotNumber, verr.Message(FieldAmount))
	assert.Equal(t, "", verr.Message("note"))
	assert.Equal(t, MsgAmountNotNumber, verr.Fields()[FieldAmount])
	assert.Equal(t,
		"validation failed: amount: Must be a number; amount: Must only have two decimal places; depositDate: Please enter a valid date",
		verr.Error())
}
