package dto

import "agent-settlement/internal/core/domain"

// CreateWalletRequest is the request body for opening a ledger account.
type CreateWalletRequest struct {
	OwnerID        string `json:"owner_id" binding:"required,min=1,max=100"`
	InitialBalance int64  `json:"initial_balance" binding:"gte=0"`
	Currency       string `json:"currency" binding:"required,len=3"`
}

// WalletResponse is the response body for wallet operations.
type WalletResponse struct {
	WalletID  string `json:"wallet_id"`
	OwnerID   string `json:"owner_id"`
	Balance   int64  `json:"balance"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
}

// IssueTokenRequest is the request body for minting a one-time payment token.
type IssueTokenRequest struct {
	OwnerID    string `json:"owner_id" binding:"required"`
	TTLSeconds int64  `json:"ttl_seconds" binding:"gte=0"`
}

// TokenResponse is the response body for a freshly issued token.
type TokenResponse struct {
	Token     string  `json:"token"`
	WalletID  string  `json:"wallet_id"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

// TopupRequest is the request body for a wallet credit.
type TopupRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"max=200"`
}

// ProcessPaymentRequest is the request body for settlement.
type ProcessPaymentRequest struct {
	CheckoutSessionID  string                 `json:"checkout_session_id" binding:"required,max=100"`
	Amount             int64                  `json:"amount" binding:"required,gt=0"`
	Currency           string                 `json:"currency" binding:"required,len=3"`
	WalletToken        string                 `json:"wallet_token" binding:"required"`
	SpendingLimitToken string                 `json:"spending_limit_token,omitempty"`
	PaymentMandate     *domain.PaymentMandate `json:"payment_mandate,omitempty"`
	CartMandate        *domain.CartMandate    `json:"cart_mandate,omitempty"`
}

// RefundRequest is the request body for refund processing.
type RefundRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Amount        *int64 `json:"amount,omitempty"`
	Reason        string `json:"reason" binding:"max=200"`
}

// TransactionResponse is the response body for transaction lookups.
type TransactionResponse struct {
	ID                string  `json:"id"`
	CheckoutSessionID string  `json:"checkout_session_id"`
	WalletID          string  `json:"wallet_id,omitempty"`
	WalletSource      string  `json:"wallet_source"`
	Amount            int64   `json:"amount"`
	Currency          string  `json:"currency"`
	Status            string  `json:"status"`
	MandateReference  *string `json:"mandate_reference,omitempty"`
	MandateValid      bool    `json:"mandate_valid"`
	RefundedAmount    int64   `json:"refunded_amount"`
	ErrorCode         *string `json:"error_code,omitempty"`
	ErrorMessage      *string `json:"error_message,omitempty"`
	CreatedAt         string  `json:"created_at"`
	CompletedAt       *string `json:"completed_at,omitempty"`
	RefundedAt        *string `json:"refunded_at,omitempty"`
}

// CartItemInput is one line item in a cart construction request.
type CartItemInput struct {
	Label     string `json:"label" binding:"required,max=200"`
	UnitPrice int64  `json:"unit_price" binding:"required,gt=0"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// BuildIntentRequest is the request body for intent mandate construction.
type BuildIntentRequest struct {
	Description           string   `json:"description" binding:"required,max=500"`
	Merchants             []string `json:"merchants,omitempty"`
	SKUs                  []string `json:"skus,omitempty"`
	ConfirmationRequired  bool     `json:"confirmation_required"`
	RefundabilityRequired bool     `json:"refundability_required"`
	TTLSeconds            int64    `json:"ttl_seconds" binding:"gte=0"`
}

// SignCartRequest is the request body for merchant cart signing.
type SignCartRequest struct {
	CartID          string          `json:"cart_id,omitempty"`
	MerchantName    string          `json:"merchant_name,omitempty"`
	Items           []CartItemInput `json:"items" binding:"required,min=1,dive"`
	Currency        string          `json:"currency" binding:"required,len=3"`
	TTLSeconds      int64           `json:"ttl_seconds" binding:"gte=0"`
	AcceptedMethods []string        `json:"accepted_methods,omitempty"`
}

// SignPaymentRequest is the request body for user payment authorization.
type SignPaymentRequest struct {
	Cart          domain.CartMandate `json:"cart_mandate" binding:"required"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	PayerName     string             `json:"payer_name,omitempty"`
	PayerEmail    string             `json:"payer_email,omitempty"`
	TTLSeconds    int64              `json:"ttl_seconds" binding:"gte=0"`
}

// FullFlowRequest is the request body for the complete demo chain:
// intent, signed cart and signed payment in one call.
type FullFlowRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Cart        SignCartRequest `json:"cart" binding:"required"`
	Payment     struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
		PayerName     string `json:"payer_name,omitempty"`
		PayerEmail    string `json:"payer_email,omitempty"`
	} `json:"payment" binding:"required"`
}

// SpendingLimitRequest is the request body for legacy ceiling mandates.
type SpendingLimitRequest struct {
	MaxAmount   int64  `json:"max_amount" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Beneficiary string `json:"beneficiary" binding:"required,max=100"`
	TTLSeconds  int64  `json:"ttl_seconds" binding:"gte=0"`
}

// SpendingLimitResponse carries the signed ceiling token.
type SpendingLimitResponse struct {
	Token string `json:"token"`
}

// ValidateCartRequest is the request body for standalone cart verification.
type ValidateCartRequest struct {
	Cart domain.CartMandate `json:"cart_mandate" binding:"required"`
}

// CartValidationResponse is the successful cart verification reply.
type CartValidationResponse struct {
	Valid    bool   `json:"valid"`
	CartID   string `json:"cart_id"`
	Merchant string `json:"merchant"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
