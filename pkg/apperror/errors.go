package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Mandate Validation (MAN) ----

func ErrMalformedToken() *AppError {
	return New("MAN_001", "Malformed mandate token", http.StatusBadRequest)
}

func ErrUnsupportedAlgorithm(alg string) *AppError {
	return New("MAN_002", fmt.Sprintf("Unsupported signing algorithm: %s", alg), http.StatusBadRequest)
}

func ErrInvalidSignature() *AppError {
	return New("MAN_003", "Invalid mandate signature", http.StatusUnauthorized)
}

func ErrMandateExpired() *AppError {
	return New("MAN_004", "Mandate has expired", http.StatusForbidden)
}

func ErrAudienceMismatch() *AppError {
	return New("MAN_005", "Mandate audience does not match this recipient", http.StatusForbidden)
}

func ErrTamperedContents() *AppError {
	return New("MAN_006", "Cart hash mismatch, contents were modified after signing", http.StatusForbidden)
}

func ErrLimitExceeded(requested, limit int64) *AppError {
	return New("MAN_007", fmt.Sprintf("Amount %d exceeds mandate limit %d", requested, limit), http.StatusForbidden)
}

func ErrMissingAuthorization() *AppError {
	return New("MAN_008", "Mandate carries no authorization token", http.StatusBadRequest)
}

func ErrMandateReplayed() *AppError {
	return New("MAN_009", "Mandate nonce has already been redeemed", http.StatusForbidden)
}

// ---- Mandate Construction (CART) ----

func ErrEmptyCart() *AppError {
	return New("CART_001", "Cart must contain at least one item", http.StatusBadRequest)
}

func ErrExpiredCartInput() *AppError {
	return New("CART_002", "Cart contents have already expired", http.StatusBadRequest)
}

// ---- Wallet Ledger (WAL) ----

func ErrUnknownToken() *AppError {
	return New("WAL_001", "Unknown wallet token", http.StatusNotFound)
}

func ErrTokenAlreadyUsed() *AppError {
	return New("WAL_002", "Wallet token has already been redeemed", http.StatusConflict)
}

func ErrInsufficientBalance(available int64) *AppError {
	return New("WAL_003", fmt.Sprintf("Insufficient balance, available: %d", available), http.StatusPaymentRequired)
}

func ErrUnknownWallet() *AppError {
	return New("WAL_004", "Wallet not found", http.StatusNotFound)
}

func ErrWalletTokenExpired() *AppError {
	return New("WAL_005", "Wallet token has expired", http.StatusForbidden)
}

// ---- Payment Processing (PAY) ----

func ErrInvalidAmount() *AppError {
	return New("PAY_001", "Invalid amount", http.StatusBadRequest)
}

func ErrTransactionNotFound() *AppError {
	return New("PAY_002", "Transaction not found", http.StatusNotFound)
}

func ErrNotRefundable(remainder int64) *AppError {
	return New("PAY_003", fmt.Sprintf("Transaction not eligible for refund, refundable remainder: %d", remainder), http.StatusBadRequest)
}

func ErrCurrencyMismatch(want, got string) *AppError {
	return New("PAY_004", fmt.Sprintf("Currency mismatch: wallet holds %s, payment requested %s", want, got), http.StatusBadRequest)
}

func ErrSettlementUnavailable(err error) *AppError {
	return Wrap("PAY_005", "Delegated wallet service unavailable", http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidAdminKey() *AppError {
	return New("AUTH_001", "Invalid admin API key", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("PAY_001", message, http.StatusBadRequest)
}
