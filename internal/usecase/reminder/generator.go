package reminder

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/invoice"
)

// GenerateReminders builds a PaymentReminder for every invoice in overdue
// that still has a positive outstanding balance as of asOf.
//
// Logic:
//   - Outstanding = total amount - total deposits
//   - Invoices that are settled or not yet past due are skipped
//   - Reminders are ordered most overdue first, then by invoice number
func GenerateReminders(overdue []*invoice.Details, asOf time.Time) []domain.PaymentReminder {
	reminders := make([]domain.PaymentReminder, 0, len(overdue))

	for _, d := range overdue {
		outstanding := d.TotalAmount.Sub(d.TotalDeposits)
		if outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}

		days := domain.DaysBetween(d.Invoice.DueDate, asOf)
		if days <= 0 {
			continue
		}

		r := domain.PaymentReminder{
			ID:            uuid.New(),
			InvoiceID:     d.Invoice.ID,
			InvoiceNumber: d.Invoice.Number,
			Outstanding:   outstanding,
			DaysOverdue:   days,
			GeneratedAt:   asOf,
		}
		if d.Customer != nil {
			r.CustomerID = d.Customer.ID
			r.CustomerEmail = d.Customer.Email
		}
		reminders = append(reminders, r)
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].DaysOverdue != reminders[j].DaysOverdue {
			return reminders[i].DaysOverdue > reminders[j].DaysOverdue
		}
		return reminders[i].InvoiceNumber < reminders[j].InvoiceNumber
	})
	return reminders
}
