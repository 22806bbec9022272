package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error_WithoutWrapped(t *testing.T) {
	err := New("MAN_003", "Invalid mandate signature", http.StatusUnauthorized)
	assert.Equal(t, "[MAN_003] Invalid mandate signature", err.Error())
}

func TestAppError_Error_WithWrapped(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, inner)
	assert.Equal(t, "[SYS_001] Internal server error: boom", err.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := InternalError(fmt.Errorf("settle: %w", inner))
	assert.True(t, errors.Is(err, inner))
}

func TestErrorCodes_AreStable(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{ErrMalformedToken(), "MAN_001", http.StatusBadRequest},
		{ErrUnsupportedAlgorithm("HS256"), "MAN_002", http.StatusBadRequest},
		{ErrInvalidSignature(), "MAN_003", http.StatusUnauthorized},
		{ErrMandateExpired(), "MAN_004", http.StatusForbidden},
		{ErrAudienceMismatch(), "MAN_005", http.StatusForbidden},
		{ErrTamperedContents(), "MAN_006", http.StatusForbidden},
		{ErrLimitExceeded(9000, 5000), "MAN_007", http.StatusForbidden},
		{ErrMissingAuthorization(), "MAN_008", http.StatusBadRequest},
		{ErrEmptyCart(), "CART_001", http.StatusBadRequest},
		{ErrExpiredCartInput(), "CART_002", http.StatusBadRequest},
		{ErrUnknownToken(), "WAL_001", http.StatusNotFound},
		{ErrTokenAlreadyUsed(), "WAL_002", http.StatusConflict},
		{ErrInsufficientBalance(5000), "WAL_003", http.StatusPaymentRequired},
		{ErrUnknownWallet(), "WAL_004", http.StatusNotFound},
		{ErrTransactionNotFound(), "PAY_002", http.StatusNotFound},
		{ErrNotRefundable(0), "PAY_003", http.StatusBadRequest},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.HTTPStatus)
	}
}

func TestErrLimitExceeded_Message(t *testing.T) {
	err := ErrLimitExceeded(8980, 5000)
	assert.Contains(t, err.Message, "8980")
	assert.Contains(t, err.Message, "5000")
}

func TestErrNotRefundable_CarriesRemainder(t *testing.T) {
	err := ErrNotRefundable(5980)
	assert.Contains(t, err.Message, "5980")
}
