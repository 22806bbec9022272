package memory

import (
	"context"
	"testing"
	"time"

	"agent-settlement/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepo_UpdateBalance_UnknownWallet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Wallets().UpdateBalance(ctx, nil, "wal_missing", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wal_missing")
}

func TestWalletRepo_UpdateBalance(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	account := &domain.WalletAccount{WalletID: "wal_1", Balance: 50000, Currency: "BRL"}
	require.NoError(t, store.Wallets().Create(ctx, account))

	require.NoError(t, store.Wallets().UpdateBalance(ctx, nil, "wal_1", 41020))
	got, err := store.Wallets().Get(ctx, "wal_1")
	require.NoError(t, err)
	assert.Equal(t, int64(41020), got.Balance)
}

// MarkUsed mirrors the SQL used = FALSE guard: consuming a missing or
// already-used token fails instead of silently succeeding.
func TestTokenRepo_MarkUsed_Consumed(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	token := &domain.WalletToken{
		Token:     "stk_abc",
		WalletID:  "wal_1",
		OwnerID:   "store",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Tokens().Create(ctx, token))

	require.NoError(t, store.Tokens().MarkUsed(ctx, nil, "stk_abc"))

	err := store.Tokens().MarkUsed(ctx, nil, "stk_abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already consumed")

	err = store.Tokens().MarkUsed(ctx, nil, "stk_missing")
	require.Error(t, err)
}

func TestTransactionRepo_Update_UnknownTransaction(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	txn := &domain.Transaction{ID: "psp_txn_missing", Status: domain.TransactionStatusCompleted}
	err := store.Transactions().Update(ctx, nil, txn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "psp_txn_missing")
}

func TestTransactionRepo_GetForUpdate(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	txn := &domain.Transaction{
		ID:        "psp_txn_1",
		Amount:    8980,
		Currency:  "BRL",
		Status:    domain.TransactionStatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Transactions().Create(ctx, nil, txn))

	got, err := store.Transactions().GetForUpdate(ctx, nil, "psp_txn_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(8980), got.Amount)

	got, err = store.Transactions().GetForUpdate(ctx, nil, "psp_txn_missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
