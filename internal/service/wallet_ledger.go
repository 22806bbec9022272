package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"
	"agent-settlement/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const lockStripes = 64

// LedgerService implements ports.Ledger with pessimistic locking. Every
// balance mutation runs inside a storage transaction with the wallet row
// locked; a striped in-process mutex additionally serializes writers to the
// same wallet so storage backends without real row locks keep the same
// one-winner guarantee.
type LedgerService struct {
	wallets    ports.WalletRepository
	tokens     ports.TokenRepository
	txns       ports.TransactionRepository
	transactor ports.DBTransactor
	locks      [lockStripes]sync.Mutex
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	wallets ports.WalletRepository,
	tokens ports.TokenRepository,
	txns ports.TransactionRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		wallets:    wallets,
		tokens:     tokens,
		txns:       txns,
		transactor: transactor,
		log:        log.With().Str("component", "ledger").Logger(),
	}
}

func (s *LedgerService) lockFor(walletID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(walletID))
	return &s.locks[h.Sum32()%lockStripes]
}

func (s *LedgerService) CreateAccount(ctx context.Context, ownerID string, initialBalance int64, currency string) (*domain.WalletAccount, error) {
	if initialBalance < 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	now := time.Now().UTC()
	account := &domain.WalletAccount{
		WalletID:  "wal_" + uuid.NewString(),
		OwnerID:   ownerID,
		Balance:   initialBalance,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.wallets.Create(ctx, account); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}
	s.log.Info().
		Str("wallet_id", account.WalletID).
		Str("owner_id", ownerID).
		Int64("balance", initialBalance).
		Str("currency", currency).
		Msg("wallet account created")
	return account, nil
}

func (s *LedgerService) GetAccount(ctx context.Context, walletID string) (*domain.WalletAccount, error) {
	account, err := s.wallets.Get(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrUnknownWallet()
	}
	return account, nil
}

// IssueToken mints a one-time stk_ token against an existing wallet.
// ttl <= 0 issues a token that never expires.
func (s *LedgerService) IssueToken(ctx context.Context, walletID, ownerID string, ttl time.Duration) (*domain.WalletToken, error) {
	account, err := s.wallets.Get(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrUnknownWallet()
	}

	now := time.Now().UTC()
	token := &domain.WalletToken{
		Token:     domain.NewStoreToken(),
		WalletID:  walletID,
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		token.ExpiresAt = &expires
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create token: %w", err))
	}
	s.log.Debug().Str("wallet_id", walletID).Msg("wallet token issued")
	return token, nil
}

// RedeemAndDebit consumes a one-time token and debits its wallet in a single
// atomic step. Concurrent redemptions of the same token see exactly one
// success; the losers get TokenAlreadyUsed and no balance change.
func (s *LedgerService) RedeemAndDebit(ctx context.Context, req ports.DebitRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	// Unlocked pre-read, just to learn which wallet to serialize on.
	token, err := s.tokens.Get(ctx, req.Token)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get token: %w", err))
	}
	if token == nil {
		return nil, apperror.ErrUnknownToken()
	}

	lock := s.lockFor(token.WalletID)
	lock.Lock()
	defer lock.Unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Re-read under lock; the pre-read state may already be stale.
	token, err = s.tokens.GetForUpdate(ctx, dbTx, req.Token)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock token: %w", err))
	}
	if token == nil {
		return nil, apperror.ErrUnknownToken()
	}
	if token.Used {
		return nil, apperror.ErrTokenAlreadyUsed()
	}
	now := time.Now().UTC()
	if token.Expired(now) {
		return nil, apperror.ErrWalletTokenExpired()
	}

	wallet, err := s.wallets.GetForUpdate(ctx, dbTx, token.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrUnknownWallet()
	}
	if req.Currency != "" && req.Currency != wallet.Currency {
		return nil, apperror.ErrCurrencyMismatch(wallet.Currency, req.Currency)
	}
	if !wallet.CanDebit(req.Amount) {
		return nil, apperror.ErrInsufficientBalance(wallet.Balance)
	}

	newBalance := wallet.Balance - req.Amount
	txn := &domain.Transaction{
		ID:                domain.NewTransactionID(),
		CheckoutSessionID: req.CheckoutSessionID,
		WalletID:          wallet.WalletID,
		WalletToken:       req.Token,
		WalletSource:      domain.WalletSourceStore,
		Amount:            req.Amount,
		Currency:          wallet.Currency,
		Status:            domain.TransactionStatusCompleted,
		MandateReference:  req.MandateReference,
		MandateValid:      req.MandateValid,
		CreatedAt:         now,
		ProcessingAt:      &now,
		CompletedAt:       &now,
	}

	if err := s.tokens.MarkUsed(ctx, dbTx, req.Token); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark token used: %w", err))
	}
	if err := s.wallets.UpdateBalance(ctx, dbTx, wallet.WalletID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txns.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.TokensRedeemedTotal.Inc()
	s.log.Info().
		Str("tx_id", txn.ID).
		Str("wallet_id", wallet.WalletID).
		Int64("amount", req.Amount).
		Int64("new_balance", newBalance).
		Msg("token redeemed and wallet debited")
	return txn, nil
}

// Credit increases a wallet balance, for refunds and operator top-ups.
func (s *LedgerService) Credit(ctx context.Context, walletID string, amount int64, reason string) (*domain.WalletAccount, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	lock := s.lockFor(walletID)
	lock.Lock()
	defer lock.Unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.wallets.GetForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrUnknownWallet()
	}

	newBalance := wallet.Balance + amount
	if err := s.wallets.UpdateBalance(ctx, dbTx, walletID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = time.Now().UTC()
	s.log.Info().
		Str("wallet_id", walletID).
		Int64("amount", amount).
		Int64("new_balance", newBalance).
		Str("reason", reason).
		Msg("wallet credited")
	return wallet, nil
}

// RecordRefund credits the debited wallet and accumulates the refund on the
// transaction in one storage transaction. Eligibility and clamping run inside
// the critical section on the transaction state read under lock, so two
// racing refunds see exactly one winner per remainder and the accumulated
// refund never exceeds the original amount.
func (s *LedgerService) RecordRefund(ctx context.Context, transactionID string, amount int64) (int64, *domain.Transaction, *domain.WalletAccount, error) {
	if amount <= 0 {
		return 0, nil, nil, apperror.ErrInvalidAmount()
	}

	// Unlocked pre-read, just to learn which wallet to serialize on.
	txn, err := s.txns.Get(ctx, transactionID)
	if err != nil {
		return 0, nil, nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		return 0, nil, nil, apperror.ErrTransactionNotFound()
	}

	lock := s.lockFor(txn.WalletID)
	lock.Lock()
	defer lock.Unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return 0, nil, nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Re-read under lock; a concurrent refund may have landed since the
	// pre-read, so RefundedAmount must come from the locked row.
	txn, err = s.txns.GetForUpdate(ctx, dbTx, transactionID)
	if err != nil {
		return 0, nil, nil, apperror.InternalError(fmt.Errorf("lock transaction: %w", err))
	}
	if txn == nil {
		return 0, nil, nil, apperror.ErrTransactionNotFound()
	}
	if !txn.IsRefundable() {
		return 0, nil, nil, apperror.ErrNotRefundable(txn.RefundableRemainder())
	}

	wallet, err := s.wallets.GetForUpdate(ctx, dbTx, txn.WalletID)
	if err != nil {
		return 0, nil, nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return 0, nil, nil, apperror.ErrUnknownWallet()
	}

	now := time.Now().UTC()
	applied := txn.ApplyRefund(amount, now)
	if applied == 0 {
		return 0, nil, nil, apperror.ErrNotRefundable(0)
	}
	if err := s.txns.Update(ctx, dbTx, txn); err != nil {
		return 0, nil, nil, apperror.InternalError(fmt.Errorf("update transaction: %w", err))
	}
	newBalance := wallet.Balance + applied
	if err := s.wallets.UpdateBalance(ctx, dbTx, txn.WalletID, newBalance); err != nil {
		return 0, nil, nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return 0, nil, nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = now
	metrics.RefundsProcessedTotal.Inc()
	s.log.Info().
		Str("tx_id", txn.ID).
		Int64("amount", applied).
		Str("status", string(txn.Status)).
		Msg("refund recorded")
	return applied, txn, wallet, nil
}

// RecordSettlement appends a transaction record. Balances are untouched.
func (s *LedgerService) RecordSettlement(ctx context.Context, txn *domain.Transaction) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.txns.Create(ctx, dbTx, txn); err != nil {
		return apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	txn, err := s.txns.Get(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound()
	}
	return txn, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, error) {
	list, err := s.txns.List(ctx, params)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return list, nil
}
