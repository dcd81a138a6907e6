// Package scheduler runs the service's periodic jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/simaogato/invoicedesk-backend/internal/logger"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/invoice"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/reminder"
)

// OverdueLister lists the invoices overdue at a point in time
type OverdueLister interface {
	ListOverdue(ctx context.Context, asOf time.Time) ([]*invoice.Details, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Invoices OverdueLister
	Now      func() time.Time
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler. Cron expressions include a seconds
// field.
func NewScheduler(ctx context.Context, invoices OverdueLister) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Invoices: invoices,
		Now:      time.Now,
		Ctx:      ctx,
	}
}

// RegisterAll registers the overdue sweep.
func (s *Scheduler) RegisterAll(overdueCron string) error {
	if _, err := s.Cron.AddFunc(overdueCron, func() { s.RunOverdueSweep() }); err != nil {
		return fmt.Errorf("register overdue sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("Scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("Scheduler stopped")
}

// RunOverdueSweep logs a payment reminder for every overdue invoice with an
// outstanding balance and returns how many were produced.
func (s *Scheduler) RunOverdueSweep() int {
	asOf := s.Now()
	log := logger.FromContext(s.Ctx).With(zap.String("job", "overdue_sweep"))

	overdue, err := s.Invoices.ListOverdue(s.Ctx, asOf)
	if err != nil {
		log.Error("Overdue sweep failed", zap.Error(err))
		return 0
	}

	reminders := reminder.GenerateReminders(overdue, asOf)
	for _, r := range reminders {
		log.Info("Payment reminder",
			zap.String("invoice_id", r.InvoiceID.String()),
			zap.String("invoice_number", r.InvoiceNumber),
			zap.String("customer_email", r.CustomerEmail),
			zap.String("outstanding", r.Outstanding.StringFixed(2)),
			zap.Int("days_overdue", r.DaysOverdue),
		)
	}
	log.Info("Overdue sweep finished",
		zap.Int("overdue", len(overdue)),
		zap.Int("reminders", len(reminders)),
	)
	return len(reminders)
}
