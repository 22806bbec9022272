package postgres

import (
	"context"
	"errors"
	"fmt"

	"agent-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TokenRepo implements ports.TokenRepository.
type TokenRepo struct {
	pool Pool
}

// NewTokenRepo creates a new TokenRepo.
func NewTokenRepo(pool Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

// Create inserts a freshly issued one-time token.
func (r *TokenRepo) Create(ctx context.Context, t *domain.WalletToken) error {
	query := `INSERT INTO wallet_tokens (token, wallet_id, owner_id, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		t.Token, t.WalletID, t.OwnerID, t.CreatedAt, t.ExpiresAt, t.Used,
	)
	if err != nil {
		return fmt.Errorf("insert wallet token: %w", err)
	}
	return nil
}

// Get fetches a token by its value (without locking).
func (r *TokenRepo) Get(ctx context.Context, token string) (*domain.WalletToken, error) {
	query := `SELECT token, wallet_id, owner_id, created_at, expires_at, used
		FROM wallet_tokens WHERE token = $1`

	t := &domain.WalletToken{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&t.Token, &t.WalletID, &t.OwnerID, &t.CreatedAt, &t.ExpiresAt, &t.Used,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet token: %w", err)
	}
	return t, nil
}

// GetForUpdate fetches a token with pessimistic locking so that concurrent
// redemptions serialize on the row. MUST be called within a transaction.
func (r *TokenRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, token string) (*domain.WalletToken, error) {
	query := `SELECT token, wallet_id, owner_id, created_at, expires_at, used
		FROM wallet_tokens WHERE token = $1 FOR UPDATE`

	t := &domain.WalletToken{}
	err := tx.QueryRow(ctx, query, token).Scan(
		&t.Token, &t.WalletID, &t.OwnerID, &t.CreatedAt, &t.ExpiresAt, &t.Used,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet token for update: %w", err)
	}
	return t, nil
}

// MarkUsed consumes the token within a transaction. The used = FALSE guard
// makes the consumption a compare-and-set even without the row lock.
func (r *TokenRepo) MarkUsed(ctx context.Context, tx pgx.Tx, token string) error {
	query := `UPDATE wallet_tokens SET used = TRUE WHERE token = $1 AND used = FALSE`

	tag, err := tx.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark token used: token already consumed")
	}
	return nil
}
