// Package memory provides map-backed implementations of the storage ports.
// The server runs on it when no database is configured, and the service and
// integration tests use it directly.
package memory

import (
	"context"
	"fmt"
	"sync"

	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store holds every collection behind one mutex. The ledger serializes
// writers per wallet above this layer, so a single coarse lock here is
// enough for correctness.
type Store struct {
	mu      sync.Mutex
	wallets map[string]domain.WalletAccount
	tokens  map[string]domain.WalletToken
	txns    map[string]domain.Transaction
	order   []string // transaction ids in insertion order
}

func NewStore() *Store {
	return &Store{
		wallets: make(map[string]domain.WalletAccount),
		tokens:  make(map[string]domain.WalletToken),
		txns:    make(map[string]domain.Transaction),
	}
}

// Wallets returns the store as a ports.WalletRepository.
func (s *Store) Wallets() ports.WalletRepository { return (*walletRepo)(s) }

// Tokens returns the store as a ports.TokenRepository.
func (s *Store) Tokens() ports.TokenRepository { return (*tokenRepo)(s) }

// Transactions returns the store as a ports.TransactionRepository.
func (s *Store) Transactions() ports.TransactionRepository { return (*transactionRepo)(s) }

// Transactor returns a no-op ports.DBTransactor.
func (s *Store) Transactor() ports.DBTransactor { return noopTransactor{} }

type walletRepo Store

func (r *walletRepo) Create(ctx context.Context, account *domain.WalletAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[account.WalletID] = *account
	return nil
}

func (r *walletRepo) Get(ctx context.Context, walletID string) (*domain.WalletAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.wallets[walletID]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (r *walletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, walletID string) (*domain.WalletAccount, error) {
	return r.Get(ctx, walletID)
}

func (r *walletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID string, newBalance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("update wallet balance: wallet %s not found", walletID)
	}
	account.Balance = newBalance
	r.wallets[walletID] = account
	return nil
}

type tokenRepo Store

func (r *tokenRepo) Create(ctx context.Context, token *domain.WalletToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = *token
	return nil
}

func (r *tokenRepo) Get(ctx context.Context, token string) (*domain.WalletToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *tokenRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, token string) (*domain.WalletToken, error) {
	return r.Get(ctx, token)
}

// MarkUsed consumes a token, failing if it is absent or already used, the
// same way the SQL used = FALSE guard reports zero affected rows.
func (r *tokenRepo) MarkUsed(ctx context.Context, tx pgx.Tx, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.Used {
		return fmt.Errorf("mark token used: token already consumed")
	}
	t.Used = true
	r.tokens[token] = t
	return nil
}

type transactionRepo Store

func (r *transactionRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns[txn.ID] = *txn
	r.order = append(r.order, txn.ID)
	return nil
}

func (r *transactionRepo) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[id]
	if !ok {
		return nil, nil
	}
	return &txn, nil
}

func (r *transactionRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Transaction, error) {
	return r.Get(ctx, id)
}

func (r *transactionRepo) Update(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.txns[txn.ID]; !ok {
		return fmt.Errorf("update transaction: transaction %s not found", txn.ID)
	}
	r.txns[txn.ID] = *txn
	return nil
}

func (r *transactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Transaction, 0, len(r.order))
	// Newest first.
	for i := len(r.order) - 1; i >= 0; i-- {
		txn := r.txns[r.order[i]]
		if params.Status != nil && txn.Status != *params.Status {
			continue
		}
		out = append(out, txn)
		if params.Limit > 0 && len(out) >= params.Limit {
			break
		}
	}
	return out, nil
}

type noopTransactor struct{}

func (noopTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx for the map-backed store.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
