package postgres

import (
	"context"
	"errors"
	"fmt"

	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, checkout_session_id, wallet_id, wallet_token, wallet_source,
		amount, currency, status, mandate_reference, mandate_valid, created_at,
		processing_at, completed_at, error_code, error_message, refunded_amount, refunded_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a settlement record within a transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.CheckoutSessionID, t.WalletID, t.WalletToken, t.WalletSource,
		t.Amount, t.Currency, t.Status, t.MandateReference, t.MandateValid, t.CreatedAt,
		t.ProcessingAt, t.CompletedAt, t.ErrorCode, t.ErrorMessage, t.RefundedAmount, t.RefundedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Get fetches a transaction by ID.
func (r *TransactionRepo) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t := &domain.Transaction{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CheckoutSessionID, &t.WalletID, &t.WalletToken, &t.WalletSource,
		&t.Amount, &t.Currency, &t.Status, &t.MandateReference, &t.MandateValid, &t.CreatedAt,
		&t.ProcessingAt, &t.CompletedAt, &t.ErrorCode, &t.ErrorMessage, &t.RefundedAmount, &t.RefundedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// GetForUpdate fetches a transaction by ID with a row lock held until the
// surrounding transaction commits.
func (r *TransactionRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	t := &domain.Transaction{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CheckoutSessionID, &t.WalletID, &t.WalletToken, &t.WalletSource,
		&t.Amount, &t.Currency, &t.Status, &t.MandateReference, &t.MandateValid, &t.CreatedAt,
		&t.ProcessingAt, &t.CompletedAt, &t.ErrorCode, &t.ErrorMessage, &t.RefundedAmount, &t.RefundedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction for update: %w", err)
	}
	return t, nil
}

// Update rewrites the mutable settlement fields within a transaction.
func (r *TransactionRepo) Update(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `UPDATE transactions SET
		status = $2, processing_at = $3, completed_at = $4, error_code = $5,
		error_message = $6, refunded_amount = $7, refunded_at = $8
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		t.ID, t.Status, t.ProcessingAt, t.CompletedAt, t.ErrorCode,
		t.ErrorMessage, t.RefundedAmount, t.RefundedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update transaction: transaction %s not found", t.ID)
	}
	return nil
}

// List returns transactions newest first, optionally filtered by status.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	args := []any{}
	if params.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *params.Status)
	}
	query += ` ORDER BY created_at DESC`
	if params.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, params.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.CheckoutSessionID, &t.WalletID, &t.WalletToken, &t.WalletSource,
			&t.Amount, &t.Currency, &t.Status, &t.MandateReference, &t.MandateValid, &t.CreatedAt,
			&t.ProcessingAt, &t.CompletedAt, &t.ErrorCode, &t.ErrorMessage, &t.RefundedAmount, &t.RefundedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}
