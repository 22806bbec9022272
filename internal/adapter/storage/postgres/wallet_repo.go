package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agent-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet account into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.WalletAccount) error {
	query := `INSERT INTO wallet_accounts (wallet_id, owner_id, balance, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		w.WalletID, w.OwnerID, w.Balance, w.Currency, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet account: %w", err)
	}
	return nil
}

// Get fetches a wallet account by ID (without locking).
func (r *WalletRepo) Get(ctx context.Context, walletID string) (*domain.WalletAccount, error) {
	query := `SELECT wallet_id, owner_id, balance, currency, created_at, updated_at
		FROM wallet_accounts WHERE wallet_id = $1`

	w := &domain.WalletAccount{}
	err := r.pool.QueryRow(ctx, query, walletID).Scan(
		&w.WalletID, &w.OwnerID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet account: %w", err)
	}
	return w, nil
}

// GetForUpdate fetches a wallet account with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, walletID string) (*domain.WalletAccount, error) {
	query := `SELECT wallet_id, owner_id, balance, currency, created_at, updated_at
		FROM wallet_accounts WHERE wallet_id = $1 FOR UPDATE`

	w := &domain.WalletAccount{}
	err := tx.QueryRow(ctx, query, walletID).Scan(
		&w.WalletID, &w.OwnerID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet account for update: %w", err)
	}
	return w, nil
}

// UpdateBalance sets the account balance within a transaction.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID string, newBalance int64) error {
	query := `UPDATE wallet_accounts SET balance = $2, updated_at = $3 WHERE wallet_id = $1`

	tag, err := tx.Exec(ctx, query, walletID, newBalance, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update wallet balance: wallet %s not found", walletID)
	}
	return nil
}
