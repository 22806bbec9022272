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

func newTestToken() *domain.WalletToken {
	exp := time.Now().UTC().Add(15 * time.Minute).Truncate(time.Microsecond)
	return &domain.WalletToken{
		Token:     "stk_2b9dd4a01ce7f83640aa51b2",
		WalletID:  "wal_7f3a21c09be44d1",
		OwnerID:   "user-shopper-1",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		ExpiresAt: &exp,
		Used:      false,
	}
}

func tokenColumns() []string {
	return []string{"token", "wallet_id", "owner_id", "created_at", "expires_at", "used"}
}

func tokenRow(tok *domain.WalletToken) *pgxmock.Rows {
	return pgxmock.NewRows(tokenColumns()).AddRow(
		tok.Token, tok.WalletID, tok.OwnerID, tok.CreatedAt, tok.ExpiresAt, tok.Used,
	)
}

func TestTokenRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTokenRepo(mock)
	tok := newTestToken()

	mock.ExpectExec("INSERT INTO wallet_tokens").
		WithArgs(tok.Token, tok.WalletID, tok.OwnerID, tok.CreatedAt, tok.ExpiresAt, tok.Used).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), tok)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTokenRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM wallet_tokens WHERE token").
		WithArgs("stk_unknown").
		WillReturnRows(pgxmock.NewRows(tokenColumns()))

	result, err := repo.Get(context.Background(), "stk_unknown")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_GetForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTokenRepo(mock)
	tok := newTestToken()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallet_tokens WHERE token .+ FOR UPDATE").
		WithArgs(tok.Token).
		WillReturnRows(tokenRow(tok))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetForUpdate(context.Background(), tx, tok.Token)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, tok.WalletID, result.WalletID)
	assert.False(t, result.Used)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_MarkUsed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTokenRepo(mock)
	tok := newTestToken()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallet_tokens SET used = TRUE").
		WithArgs(tok.Token).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.MarkUsed(context.Background(), tx, tok.Token)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_MarkUsed_AlreadyConsumed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTokenRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallet_tokens SET used = TRUE").
		WithArgs("stk_spent").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.MarkUsed(context.Background(), tx, "stk_spent")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
