package ports

import (
	"context"

	"agent-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// DBTransactor opens storage transactions for multi-step atomic writes.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type WalletRepository interface {
	Create(ctx context.Context, account *domain.WalletAccount) error
	Get(ctx context.Context, walletID string) (*domain.WalletAccount, error)
	// GetForUpdate takes a row lock; the caller holds it until commit.
	GetForUpdate(ctx context.Context, tx pgx.Tx, walletID string) (*domain.WalletAccount, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID string, newBalance int64) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *domain.WalletToken) error
	Get(ctx context.Context, token string) (*domain.WalletToken, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, token string) (*domain.WalletToken, error)
	MarkUsed(ctx context.Context, tx pgx.Tx, token string) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	Get(ctx context.Context, id string) (*domain.Transaction, error)
	// GetForUpdate takes a row lock; the caller holds it until commit.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Transaction, error)
	// Update rewrites the mutable fields of an existing transaction row.
	Update(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, error)
}
