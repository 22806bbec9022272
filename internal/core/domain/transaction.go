package domain

import "time"

// TransactionStatus is the lifecycle state of a settlement transaction.
type TransactionStatus string

const (
	TransactionStatusPending           TransactionStatus = "PENDING"
	TransactionStatusProcessing        TransactionStatus = "PROCESSING"
	TransactionStatusCompleted         TransactionStatus = "COMPLETED"
	TransactionStatusFailed            TransactionStatus = "FAILED"
	TransactionStatusPartiallyRefunded TransactionStatus = "PARTIALLY_REFUNDED"
	TransactionStatusRefunded          TransactionStatus = "REFUNDED"
)

// Transaction is an immutable ledger record of one settlement attempt.
// Once terminal, only the refund fields may change.
type Transaction struct {
	ID                string            `json:"id"`
	CheckoutSessionID string            `json:"checkout_session_id"`
	WalletID          string            `json:"wallet_id,omitempty"`
	WalletToken       string            `json:"-"` // capability value, never exposed
	WalletSource      WalletSource      `json:"wallet_source"`
	Amount            int64             `json:"amount"` // minor units
	Currency          string            `json:"currency"`
	Status            TransactionStatus `json:"status"`
	MandateReference  *string           `json:"mandate_reference,omitempty"`
	MandateValid      bool              `json:"mandate_valid"`
	CreatedAt         time.Time         `json:"created_at"`
	ProcessingAt      *time.Time        `json:"processing_at,omitempty"`
	CompletedAt       *time.Time        `json:"completed_at,omitempty"`
	ErrorCode         *string           `json:"error_code,omitempty"`
	ErrorMessage      *string           `json:"error_message,omitempty"`
	RefundedAmount    int64             `json:"refunded_amount"`
	RefundedAt        *time.Time        `json:"refunded_at,omitempty"`
}

// NewTransactionID mints a transaction identifier.
func NewTransactionID() string {
	return "psp_txn_" + randomHex(12)
}

// IsTerminal reports whether the transaction reached a final state.
func (t *Transaction) IsTerminal() bool {
	switch t.Status {
	case TransactionStatusCompleted, TransactionStatusFailed,
		TransactionStatusPartiallyRefunded, TransactionStatusRefunded:
		return true
	}
	return false
}

// IsRefundable reports whether any amount can still be returned.
func (t *Transaction) IsRefundable() bool {
	switch t.Status {
	case TransactionStatusCompleted, TransactionStatusPartiallyRefunded:
		return t.RefundedAmount < t.Amount
	}
	return false
}

// RefundableRemainder is how much of the original amount is still refundable.
func (t *Transaction) RefundableRemainder() int64 {
	remainder := t.Amount - t.RefundedAmount
	if remainder < 0 {
		return 0
	}
	return remainder
}

// ApplyRefund accumulates a refund, clamped to the refundable remainder,
// and moves the status to PARTIALLY_REFUNDED or REFUNDED. It returns the
// amount actually applied, which is 0 when nothing is refundable.
func (t *Transaction) ApplyRefund(amount int64, at time.Time) int64 {
	if !t.IsRefundable() {
		return 0
	}
	if remainder := t.RefundableRemainder(); amount > remainder {
		amount = remainder
	}
	if amount <= 0 {
		return 0
	}
	t.RefundedAmount += amount
	t.RefundedAt = &at
	if t.RefundedAmount >= t.Amount {
		t.Status = TransactionStatusRefunded
	} else {
		t.Status = TransactionStatusPartiallyRefunded
	}
	return amount
}
