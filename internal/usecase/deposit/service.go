package deposit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/format"
	"github.com/simaogato/invoicedesk-backend/internal/logger"
)

// CreateDepositInput holds the raw form values for a new deposit
type CreateDepositInput struct {
	InvoiceID   uuid.UUID
	Amount      string
	DepositDate string
	Note        string
}

// DepositService handles deposit creation
type DepositService struct {
	InvoiceRepo domain.InvoiceRepository
	DepositRepo domain.DepositRepository
	Publisher   domain.EventPublisher

	Now func() time.Time
}

// NewDepositService creates a new DepositService instance.
// publisher may be nil when nothing listens for deposit events.
func NewDepositService(
	invoiceRepo domain.InvoiceRepository,
	depositRepo domain.DepositRepository,
	publisher domain.EventPublisher,
) *DepositService {
	return &DepositService{
		InvoiceRepo: invoiceRepo,
		DepositRepo: depositRepo,
		Publisher:   publisher,
		Now:         time.Now,
	}
}

// CreateDeposit validates and stores a deposit against an invoice, then
// publishes a DepositCreated event.
// Logic:
//   - unknown invoice: error wrapping domain.ErrNotFound
//   - bad amount or date: *domain.ValidationError listing every invalid field
//   - publish failures are logged and do not fail the deposit
func (s *DepositService) CreateDeposit(ctx context.Context, input CreateDepositInput) (*domain.Deposit, error) {
	if _, err := s.InvoiceRepo.GetByID(ctx, input.InvoiceID); err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	amount, date, err := ParseInput(input.Amount, input.DepositDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	deposit := &domain.Deposit{
		ID:          uuid.New(),
		InvoiceID:   input.InvoiceID,
		Amount:      amount,
		DepositDate: date,
		Note:        strings.TrimSpace(input.Note),
		CreatedAt:   now,
	}

	if err := s.DepositRepo.Create(ctx, deposit); err != nil {
		return nil, fmt.Errorf("failed to create deposit: %w", err)
	}

	if s.Publisher != nil {
		event := domain.DepositCreated{
			InvoiceID:   deposit.InvoiceID,
			DepositID:   deposit.ID,
			Amount:      deposit.Amount,
			DepositDate: deposit.DepositDate,
			OccurredAt:  now,
		}
		if err := s.Publisher.PublishDepositCreated(ctx, event); err != nil {
			logger.FromContext(ctx).Error("Failed to publish deposit event",
				zap.String("invoice_id", deposit.InvoiceID.String()),
				zap.String("deposit_id", deposit.ID.String()),
				zap.Error(err),
			)
		}
	}

	return deposit, nil
}

// ParseInput validates raw amount and date strings. An empty amount counts
// as zero. All field failures are returned together as a
// *domain.ValidationError.
func ParseInput(rawAmount, rawDate string) (decimal.Decimal, time.Time, error) {
	verr := &domain.ValidationError{}

	amount := decimal.Zero
	if s := strings.TrimSpace(rawAmount); s != "" {
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			verr.Add(domain.FieldAmount, domain.MsgAmountNotNumber)
		} else {
			amount = parsed
		}
	}
	if verr.Message(domain.FieldAmount) == "" {
		if msg := domain.ValidateAmount(amount); msg != "" {
			verr.Add(domain.FieldAmount, msg)
		}
	}

	date, err := time.Parse(format.DateLayout, strings.TrimSpace(rawDate))
	if err != nil {
		verr.Add(domain.FieldDepositDate, domain.MsgDepositDateInvalid)
	}

	if err := verr.ErrOrNil(); err != nil {
		return decimal.Zero, time.Time{}, err
	}
	return amount, date, nil
}
