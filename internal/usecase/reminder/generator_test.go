package reminder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details(number string, due time.Time, total, paid string) *invoice.Details {
	return &invoice.Details{
		Invoice:       &domain.Invoice{ID: uuid.New(), Number: number, DueDate: due},
		Customer:      &domain.Customer{ID: uuid.New(), Email: number + "@example.com"},
		TotalAmount:   decimal.RequireFromString(total),
		TotalDeposits: decimal.RequireFromString(paid),
		DueStatus:     domain.DueStatusOverdue,
	}
}

func TestGenerateReminders(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	overdue := []*invoice.Details{
		details("A-2", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "500", "200"),
		details("A-1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "100", "0"),
		details("A-3", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "80", "10"),
	}

	reminders := GenerateReminders(overdue, asOf)
	require.Len(t, reminders, 3)

	assert.Equal(t, "A-1", reminders[0].InvoiceNumber)
	assert.Equal(t, 39, reminders[0].DaysOverdue)
	assert.True(t, reminders[0].Outstanding.Equal(decimal.NewFromInt(100)))

	// same days overdue, ordered by number
	assert.Equal(t, "A-2", reminders[1].InvoiceNumber)
	assert.Equal(t, "A-3", reminders[2].InvoiceNumber)
	assert.True(t, reminders[1].Outstanding.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "A-2@example.com", reminders[1].CustomerEmail)
	assert.Equal(t, asOf, reminders[1].GeneratedAt)
}

func TestGenerateReminders_SkipsSettledAndCurrent(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	overdue := []*invoice.Details{
		details("paid", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "100", "100"),
		details("overpaid", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "100", "150"),
		details("due-today", asOf, "100", "0"),
	}

	assert.Empty(t, GenerateReminders(overdue, asOf))
	assert.NotNil(t, GenerateReminders(nil, asOf))
}
