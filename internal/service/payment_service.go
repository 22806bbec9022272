package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"
	"agent-settlement/pkg/metrics"

	"github.com/rs/zerolog"
)

const idempotencyTTL = 24 * time.Hour

// SettlementServiceImpl implements ports.SettlementService. It orchestrates
// one payment end to end: idempotency check, mandate validation, wallet
// routing by token namespace, and the atomic debit. A supplied mandate that
// fails validation aborts the payment; mandates are never advisory.
type SettlementServiceImpl struct {
	ledger       ports.Ledger
	validator    ports.MandateValidator
	personal     ports.PersonalWalletClient
	idempCache   ports.IdempotencyCache
	merchantName string
	log          zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	ledger ports.Ledger,
	validator ports.MandateValidator,
	personal ports.PersonalWalletClient,
	idempCache ports.IdempotencyCache,
	merchantName string,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		ledger:       ledger,
		validator:    validator,
		personal:     personal,
		idempCache:   idempCache,
		merchantName: merchantName,
		log:          log.With().Str("component", "settlement").Logger(),
	}
}

func (s *SettlementServiceImpl) Process(ctx context.Context, req ports.ProcessPaymentRequest) (*ports.ProcessPaymentResult, error) {
	start := time.Now()
	defer func() {
		metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}()

	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.WalletToken == "" {
		return nil, apperror.Validation("wallet_token is required")
	}

	idempKey := "settle:" + req.CheckoutSessionID
	if req.CheckoutSessionID != "" && s.idempCache != nil {
		cached, err := s.idempCache.Get(ctx, idempKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("idempotency check failed, falling through")
		}
		if cached != nil {
			var result ports.ProcessPaymentResult
			if err := json.Unmarshal(cached, &result); err == nil {
				s.log.Info().Str("checkout_session_id", req.CheckoutSessionID).Msg("returning cached settlement result")
				return &result, nil
			}
		}
	}

	source := domain.SourceOfToken(req.WalletToken)

	mandateRef, mandateValid, err := s.checkMandate(req)
	if err != nil {
		s.recordFailure(ctx, req, source, mandateRef, err)
		return nil, err
	}

	var result *ports.ProcessPaymentResult
	switch source {
	case domain.WalletSourceStore:
		result, err = s.settleStore(ctx, req, mandateRef, mandateValid)
	case domain.WalletSourcePersonal:
		result, err = s.settlePersonal(ctx, req, mandateRef, mandateValid)
	default:
		err = apperror.ErrUnknownToken()
	}
	if err != nil {
		s.recordFailure(ctx, req, source, mandateRef, err)
		return nil, err
	}

	metrics.PaymentsProcessedTotal.WithLabelValues(string(result.Status)).Inc()
	if req.CheckoutSessionID != "" && s.idempCache != nil {
		if payload, marshalErr := json.Marshal(result); marshalErr == nil {
			if cacheErr := s.idempCache.Set(ctx, idempKey, payload, idempotencyTTL); cacheErr != nil {
				s.log.Warn().Err(cacheErr).Str("key", idempKey).Msg("failed to cache settlement result")
			}
		}
	}
	return result, nil
}

// checkMandate enforces the mandate policy. A payment mandate binds to one
// exact cart; a spending-limit mandate caps the amount. Either kind, when
// supplied, must validate or the payment fails.
func (s *SettlementServiceImpl) checkMandate(req ports.ProcessPaymentRequest) (*string, bool, error) {
	switch {
	case req.PaymentMandate != nil:
		if req.CartMandate == nil {
			return nil, false, apperror.Validation("payment mandate supplied without its cart mandate")
		}
		ref := req.PaymentMandate.Contents.PaymentMandateID
		// The cart itself must still hold at settlement time: merchant
		// signature, hash binding and expiry, not just the user's
		// authorization over its hash.
		if _, err := s.validator.ValidateCart(*req.CartMandate); err != nil {
			return &ref, false, err
		}
		if err := s.validator.ValidatePayment(*req.PaymentMandate, *req.CartMandate, s.merchantName); err != nil {
			return &ref, false, err
		}
		if req.Amount != req.CartMandate.Contents.Total.MinorUnits {
			return &ref, false, apperror.Validation("amount does not match the authorized cart total")
		}
		if req.Currency != "" && req.Currency != req.CartMandate.Contents.Total.Currency {
			return &ref, false, apperror.ErrCurrencyMismatch(req.CartMandate.Contents.Total.Currency, req.Currency)
		}
		return &ref, true, nil

	case req.SpendingLimitToken != "":
		ref := "spending-limit"
		if _, err := s.validator.ValidateSpendingLimit(req.SpendingLimitToken, s.merchantName, &req.Amount); err != nil {
			return &ref, false, err
		}
		return &ref, true, nil
	}
	return nil, false, nil
}

func (s *SettlementServiceImpl) settleStore(ctx context.Context, req ports.ProcessPaymentRequest, mandateRef *string, mandateValid bool) (*ports.ProcessPaymentResult, error) {
	txn, err := s.ledger.RedeemAndDebit(ctx, ports.DebitRequest{
		Token:             req.WalletToken,
		Amount:            req.Amount,
		Currency:          req.Currency,
		CheckoutSessionID: req.CheckoutSessionID,
		MandateReference:  mandateRef,
		MandateValid:      mandateValid,
	})
	if err != nil {
		return nil, err
	}

	result := &ports.ProcessPaymentResult{
		Success:       true,
		TransactionID: txn.ID,
		Status:        txn.Status,
		Message:       "payment completed",
		Amount:        txn.Amount,
		WalletSource:  domain.WalletSourceStore,
	}
	if account, balErr := s.ledger.GetAccount(ctx, txn.WalletID); balErr == nil {
		result.NewBalance = &account.Balance
	}
	s.log.Info().
		Str("tx_id", txn.ID).
		Str("checkout_session_id", req.CheckoutSessionID).
		Int64("amount", req.Amount).
		Bool("mandate_valid", mandateValid).
		Msg("store wallet settlement completed")
	return result, nil
}

func (s *SettlementServiceImpl) settlePersonal(ctx context.Context, req ports.ProcessPaymentRequest, mandateRef *string, mandateValid bool) (*ports.ProcessPaymentResult, error) {
	if s.personal == nil {
		return nil, apperror.ErrSettlementUnavailable(errors.New("no personal wallet endpoint configured"))
	}
	reply, err := s.personal.ProcessPayment(ctx, ports.PersonalDebitRequest{
		Token:             req.WalletToken,
		Amount:            req.Amount,
		Description:       "checkout " + req.CheckoutSessionID,
		CheckoutSessionID: req.CheckoutSessionID,
	})
	if err != nil {
		return nil, apperror.ErrSettlementUnavailable(err)
	}
	if !reply.Success {
		return nil, personalFailureError(reply.Error)
	}

	// The money moved remotely; keep a local record for listing and audit.
	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:                domain.NewTransactionID(),
		CheckoutSessionID: req.CheckoutSessionID,
		WalletToken:       req.WalletToken,
		WalletSource:      domain.WalletSourcePersonal,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Status:            domain.TransactionStatusCompleted,
		MandateReference:  mandateRef,
		MandateValid:      mandateValid,
		CreatedAt:         now,
		ProcessingAt:      &now,
		CompletedAt:       &now,
	}
	if recordErr := s.ledger.RecordSettlement(ctx, txn); recordErr != nil {
		s.log.Error().Err(recordErr).Str("tx_id", txn.ID).Msg("failed to record delegated settlement")
	}

	result := &ports.ProcessPaymentResult{
		Success:       true,
		TransactionID: txn.ID,
		Status:        txn.Status,
		Message:       "payment completed via personal wallet",
		Amount:        req.Amount,
		WalletSource:  domain.WalletSourcePersonal,
	}
	if reply.NewBalance >= 0 {
		balance := reply.NewBalance
		result.NewBalance = &balance
	}
	s.log.Info().
		Str("tx_id", txn.ID).
		Str("remote_tx_id", reply.TransactionID).
		Int64("amount", req.Amount).
		Msg("personal wallet settlement completed")
	return result, nil
}

// personalFailureError maps the delegated wallet's error strings onto the
// local taxonomy so both namespaces fail identically.
func personalFailureError(remote string) error {
	switch remote {
	case "token_already_used":
		return apperror.ErrTokenAlreadyUsed()
	case "insufficient_balance":
		return apperror.ErrInsufficientBalance(0)
	case "unknown_token", "invalid_token":
		return apperror.ErrUnknownToken()
	case "token_expired":
		return apperror.ErrWalletTokenExpired()
	default:
		return apperror.Wrap("PAY_005", "Delegated wallet rejected the payment", 502, errors.New(remote))
	}
}

// recordFailure appends a FAILED transaction for a settlement that was
// rejected before or during the debit.
func (s *SettlementServiceImpl) recordFailure(ctx context.Context, req ports.ProcessPaymentRequest, source domain.WalletSource, mandateRef *string, cause error) {
	code, message := "SYS_001", cause.Error()
	var appErr *apperror.AppError
	if errors.As(cause, &appErr) {
		code, message = appErr.Code, appErr.Message
	}
	metrics.PaymentsFailedTotal.WithLabelValues(code).Inc()
	metrics.PaymentsProcessedTotal.WithLabelValues(string(domain.TransactionStatusFailed)).Inc()

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:                domain.NewTransactionID(),
		CheckoutSessionID: req.CheckoutSessionID,
		WalletToken:       req.WalletToken,
		WalletSource:      source,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Status:            domain.TransactionStatusFailed,
		MandateReference:  mandateRef,
		CreatedAt:         now,
		ErrorCode:         &code,
		ErrorMessage:      &message,
	}
	if err := s.ledger.RecordSettlement(ctx, txn); err != nil {
		s.log.Error().Err(err).Str("checkout_session_id", req.CheckoutSessionID).Msg("failed to record failed settlement")
	}
	s.log.Warn().
		Str("tx_id", txn.ID).
		Str("error_code", code).
		Str("checkout_session_id", req.CheckoutSessionID).
		Msg("settlement failed")
}

func (s *SettlementServiceImpl) Refund(ctx context.Context, req ports.RefundRequest) (*ports.RefundResult, error) {
	txn, err := s.ledger.GetTransaction(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if txn.WalletSource != domain.WalletSourceStore {
		// Delegated wallets hold the money; there is nothing local to credit.
		return nil, apperror.ErrNotRefundable(0)
	}
	if !txn.IsRefundable() {
		return nil, apperror.ErrNotRefundable(txn.RefundableRemainder())
	}

	remainder := txn.RefundableRemainder()
	amount := remainder
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, apperror.ErrInvalidAmount()
		}
		amount = *req.Amount
		if amount > remainder {
			// Over-asking refunds the remainder, never more.
			amount = remainder
		}
	}

	// The ledger re-checks eligibility and clamps under its own lock; the
	// applied amount is authoritative when refunds race.
	applied, updated, wallet, err := s.ledger.RecordRefund(ctx, req.TransactionID, amount)
	if err != nil {
		return nil, err
	}

	result := &ports.RefundResult{
		Success:        true,
		TransactionID:  updated.ID,
		RefundedAmount: applied,
		Status:         updated.Status,
		Message:        fmt.Sprintf("refunded %d %s", applied, updated.Currency),
		NewBalance:     &wallet.Balance,
	}
	s.log.Info().
		Str("tx_id", updated.ID).
		Int64("amount", applied).
		Str("status", string(updated.Status)).
		Str("reason", req.Reason).
		Msg("refund completed")
	return result, nil
}

func (s *SettlementServiceImpl) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.ledger.GetTransaction(ctx, id)
}

func (s *SettlementServiceImpl) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, error) {
	return s.ledger.ListTransactions(ctx, params)
}
