package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"150", "$150.00"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"0.015", "$0.02"},
		{"-42.1", "-$42.10"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "1/9/2024", Date(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "12/31/2023", Date(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "", Quantity(1))
	assert.Equal(t, "(2x)", Quantity(2))
	assert.Equal(t, "(1,500x)", Quantity(1500))
}
