package chartfeed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/invoicedesk-backend/internal/chart"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/logger"
)

// ChartService builds deposit charts for invoices
type ChartService struct {
	InvoiceRepo domain.InvoiceRepository
	DepositRepo domain.DepositRepository
	Layout      chart.Layout
}

// NewChartService creates a new ChartService using the default layout
func NewChartService(invoiceRepo domain.InvoiceRepository, depositRepo domain.DepositRepository) *ChartService {
	return &ChartService{
		InvoiceRepo: invoiceRepo,
		DepositRepo: depositRepo,
		Layout:      chart.DefaultLayout(),
	}
}

// DepositSeries returns the cumulative deposit series of an invoice
func (s *ChartService) DepositSeries(ctx context.Context, invoiceID uuid.UUID) ([]chart.SeriesPoint, error) {
	if _, err := s.InvoiceRepo.GetByID(ctx, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	deposits, err := s.DepositRepo.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}

	points := make([]chart.DepositPoint, len(deposits))
	for i, d := range deposits {
		points[i] = chart.DepositPoint{Date: d.DepositDate, Amount: d.Amount}
	}
	return chart.BuildSeries(points), nil
}

// DepositChart returns the running-balance chart of an invoice, or nil when
// there are fewer than two dates to plot.
func (s *ChartService) DepositChart(ctx context.Context, invoiceID uuid.UUID) (*chart.DepositChart, error) {
	series, err := s.DepositSeries(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if len(series) < 2 {
		return nil, nil
	}

	c, err := chart.NewDepositChart(series, s.Layout)
	if err != nil {
		logger.FromContext(ctx).Error("Deposit chart generation failed",
			zap.String("invoice_id", invoiceID.String()),
			zap.Int("points", len(series)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to build deposit chart: %w", err)
	}
	return c, nil
}
