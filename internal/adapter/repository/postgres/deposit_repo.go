package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
)

// depositRepository implements domain.DepositRepository
type depositRepository struct {
	db *DB
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *DB) domain.DepositRepository {
	return &depositRepository{db: db}
}

// ListByInvoiceID retrieves the deposits of an invoice ordered by deposit date
func (r *depositRepository) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]domain.Deposit, error) {
	query := `
		SELECT id, invoice_id, amount, deposit_date, note, created_at
		FROM deposits
		WHERE invoice_id = $1
		ORDER BY deposit_date, created_at
	`

	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	defer rows.Close()

	deposits := make([]domain.Deposit, 0)
	for rows.Next() {
		var d domain.Deposit
		var amountStr string
		if err := rows.Scan(&d.ID, &d.InvoiceID, &amountStr, &d.DepositDate, &d.Note, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}

		// Parse amount (NUMERIC)
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		d.Amount = amount

		deposits = append(deposits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposits: %w", err)
	}

	return deposits, nil
}

// Create creates a new deposit
func (r *depositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	query := `
		INSERT INTO deposits (id, invoice_id, amount, deposit_date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		deposit.ID,
		deposit.InvoiceID,
		deposit.Amount.String(),
		deposit.DepositDate,
		deposit.Note,
		deposit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}
