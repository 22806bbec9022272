package postgres

import (
	"context"
	"testing"
	"time"

	"agent-settlement/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount() *domain.WalletAccount {
	return &domain.WalletAccount{
		WalletID:  "wal_7f3a21c09be44d1",
		OwnerID:   "user-shopper-1",
		Balance:   50000,
		Currency:  "BRL",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func accountColumns() []string {
	return []string{"wallet_id", "owner_id", "balance", "currency", "created_at", "updated_at"}
}

func accountRow(w *domain.WalletAccount) *pgxmock.Rows {
	return pgxmock.NewRows(accountColumns()).AddRow(
		w.WalletID, w.OwnerID, w.Balance, w.Currency, w.CreatedAt, w.UpdatedAt,
	)
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestAccount()

	mock.ExpectExec("INSERT INTO wallet_accounts").
		WithArgs(w.WalletID, w.OwnerID, w.Balance, w.Currency, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestAccount()

	mock.ExpectQuery("SELECT .+ FROM wallet_accounts WHERE wallet_id").
		WithArgs(w.WalletID).
		WillReturnRows(accountRow(w))

	result, err := repo.Get(context.Background(), w.WalletID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.WalletID, result.WalletID)
	assert.Equal(t, int64(50000), result.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM wallet_accounts WHERE wallet_id").
		WithArgs("wal_missing").
		WillReturnRows(pgxmock.NewRows(accountColumns()))

	result, err := repo.Get(context.Background(), "wal_missing")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestAccount()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallet_accounts WHERE wallet_id .+ FOR UPDATE").
		WithArgs(w.WalletID).
		WillReturnRows(accountRow(w))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetForUpdate(context.Background(), tx, w.WalletID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.WalletID, result.WalletID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestAccount()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallet_accounts SET balance").
		WithArgs(w.WalletID, int64(41020), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalance(context.Background(), tx, w.WalletID, 41020)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalance_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallet_accounts SET balance").
		WithArgs("wal_missing", int64(100), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalance(context.Background(), tx, "wal_missing", 100)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
