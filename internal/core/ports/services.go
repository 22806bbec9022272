package ports

import (
	"context"
	"crypto/ed25519"
	"time"

	"agent-settlement/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWK is the public half of a signing keypair in JSON Web Key form.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
}

// KeyManager owns one Ed25519 keypair for a principal role (merchant or user).
// Key material is write-once at construction and safe for concurrent reads.
type KeyManager interface {
	KeyID() string
	// Sign produces a deterministic signature over the exact input bytes.
	Sign(data []byte) []byte
	// Verify never panics; it returns false on any malformed input.
	Verify(data, signature []byte) bool
	Public() ed25519.PublicKey
	Private() ed25519.PrivateKey
	// PublicJWK exports the public key for interoperable publication.
	PublicJWK() JWK
}

// KeyResolver maps a key id from a token header to a verification key.
type KeyResolver interface {
	ResolveKey(keyID string) (ed25519.PublicKey, bool)
}

// CanonicalHasher produces a deterministic content digest of a structured
// value. Semantically equal values hash identically; any field change
// changes the digest. This is the tamper-evidence primitive every mandate
// relies on.
type CanonicalHasher interface {
	Hash(v any) (string, error)
}

// MandateCodec encodes and verifies the three-part signed-token wire format
// (base64url header.payload.signature, unpadded) shared by all mandate kinds.
type MandateCodec interface {
	// Encode signs claims with the given keypair and returns the token.
	Encode(claims jwt.Claims, signer KeyManager) (string, error)
	// Verify decodes the token into claims, checking structure, algorithm,
	// signature (via the resolver) and expiry — in that order.
	Verify(token string, claims jwt.Claims, keys KeyResolver) error
	// DecodeUnverified parses the token without checking the signature.
	// Callers must never trust the claims before a Verify call.
	DecodeUnverified(token string, claims jwt.Claims) (header map[string]any, err error)
}

// CartItemInput is one line of business input to cart construction,
// priced per unit.
type CartItemInput struct {
	Label     string
	UnitPrice int64 // minor units
	Quantity  int64
}

// IntentRequest is the business input to intent construction.
type IntentRequest struct {
	Description          string
	Merchants            []string
	SKUs                 []string
	ConfirmationRequired bool
	RefundabilityRequired bool
	TTL                  time.Duration
}

// CartRequest is the business input to cart construction.
type CartRequest struct {
	CartID          string
	MerchantName    string
	Items           []CartItemInput
	Currency        string
	TTL             time.Duration
	AcceptedMethods []string
}

// PaymentMandateRequest captures the user's confirmation of one cart.
type PaymentMandateRequest struct {
	PaymentMethod string
	PayerName     string
	PayerEmail    string
	TTL           time.Duration
}

// MandateFlow bundles the full three-step chain for the demo flow.
type MandateFlow struct {
	Intent  domain.IntentMandate   `json:"intent_mandate"`
	Cart    domain.CartMandate     `json:"cart_mandate"`
	Payment domain.PaymentMandate  `json:"payment_mandate"`
	FlowID  string                 `json:"flow_id"`
}

// MandateBuilder constructs mandate values from business inputs.
type MandateBuilder interface {
	BuildIntent(req IntentRequest) domain.IntentMandate
	BuildCartContents(req CartRequest) (domain.CartContents, error)
	SignCart(contents domain.CartContents, audience string, ttl time.Duration) (domain.CartMandate, error)
	SignPayment(cart domain.CartMandate, req PaymentMandateRequest) (domain.PaymentMandate, error)
	CreateSpendingLimit(limit domain.SpendingLimit, beneficiary string, ttl time.Duration) (string, error)
	FullFlow(description string, cart CartRequest, payment PaymentMandateRequest) (*MandateFlow, error)
}

// CartValidation is the successful result of cart mandate validation.
type CartValidation struct {
	CartID   string
	Merchant string
	Total    domain.Amount
}

// MandateValidator verifies received mandates: signature, expiry, audience,
// and hash binding against current contents.
type MandateValidator interface {
	ValidateCart(m domain.CartMandate) (*CartValidation, error)
	// ValidatePayment checks the user authorization and its binding to the
	// given cart. audience is the merchant identity presenting the payment.
	ValidatePayment(m domain.PaymentMandate, cart domain.CartMandate, audience string) error
	// ValidateSpendingLimit verifies a legacy amount-ceiling mandate.
	// requiredAmount, when non-nil, is checked against the ceiling.
	ValidateSpendingLimit(token string, expectedAudience string, requiredAmount *int64) (*domain.SpendingLimit, error)
}

// DebitRequest carries one atomic redeem-and-debit.
type DebitRequest struct {
	Token             string
	Amount            int64
	Currency          string
	CheckoutSessionID string
	MandateReference  *string
	MandateValid      bool
}

// Ledger holds named balance accounts, issues one-time payment tokens and
// performs atomic debits/credits with a persistent transaction log.
type Ledger interface {
	CreateAccount(ctx context.Context, ownerID string, initialBalance int64, currency string) (*domain.WalletAccount, error)
	GetAccount(ctx context.Context, walletID string) (*domain.WalletAccount, error)
	IssueToken(ctx context.Context, walletID, ownerID string, ttl time.Duration) (*domain.WalletToken, error)
	// RedeemAndDebit is a single atomic step: token lookup, used-flag check,
	// balance check, balance mutation and transaction append. Concurrent
	// calls with the same token produce exactly one success.
	RedeemAndDebit(ctx context.Context, req DebitRequest) (*domain.Transaction, error)
	// Credit increases a wallet balance unconditionally (refunds, top-ups).
	Credit(ctx context.Context, walletID string, amount int64, reason string) (*domain.WalletAccount, error)
	// RecordRefund credits the originally debited wallet and accumulates the
	// refund on the transaction, atomically. Eligibility is re-checked and the
	// amount clamped to the refundable remainder under the same lock that
	// guards the balance, so concurrent refunds never exceed the original
	// amount. Returns the amount actually applied.
	RecordRefund(ctx context.Context, transactionID string, amount int64) (int64, *domain.Transaction, *domain.WalletAccount, error)
	// RecordSettlement appends a transaction record without touching any
	// balance: FAILED settlements and externally settled transactions.
	RecordSettlement(ctx context.Context, txn *domain.Transaction) error
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, error)
}

// ProcessPaymentRequest is the settlement contract consumed by the
// transport/orchestration layer.
type ProcessPaymentRequest struct {
	CheckoutSessionID string
	Amount            int64
	Currency          string
	WalletToken       string
	// SpendingLimitToken is the legacy mandate form (optional).
	SpendingLimitToken string
	// PaymentMandate plus the cart it references (optional, full chain).
	PaymentMandate *domain.PaymentMandate
	CartMandate    *domain.CartMandate
}

// ProcessPaymentResult is returned on successful settlement.
type ProcessPaymentResult struct {
	Success       bool                     `json:"success"`
	TransactionID string                   `json:"transaction_id"`
	Status        domain.TransactionStatus `json:"status"`
	Message       string                   `json:"message"`
	Amount        int64                    `json:"amount"`
	NewBalance    *int64                   `json:"new_balance,omitempty"`
	WalletSource  domain.WalletSource      `json:"wallet_source"`
}

// RefundRequest asks for a partial or full refund of a completed transaction.
type RefundRequest struct {
	TransactionID string
	Amount        *int64 // nil = refund the full remainder
	Reason        string
}

// RefundResult is returned on successful refund.
type RefundResult struct {
	Success        bool                     `json:"success"`
	TransactionID  string                   `json:"transaction_id"`
	RefundedAmount int64                    `json:"refunded_amount"`
	Status         domain.TransactionStatus `json:"status"`
	Message        string                   `json:"message"`
	NewBalance     *int64                   `json:"new_balance,omitempty"`
}

// TransactionListParams filters transaction listings.
type TransactionListParams struct {
	Status *domain.TransactionStatus
	Limit  int
}

// SettlementService orchestrates one payment: wallet resolution by token
// namespace, mandate validation, atomic debit and later refund.
type SettlementService interface {
	Process(ctx context.Context, req ProcessPaymentRequest) (*ProcessPaymentResult, error)
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, error)
}

// PersonalDebitRequest is a debit delegated to the user agent's wallet service.
type PersonalDebitRequest struct {
	Token             string
	Amount            int64
	Description       string
	CheckoutSessionID string
}

// PersonalDebitResult is the delegated wallet service's reply.
type PersonalDebitResult struct {
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	NewBalance    int64  `json:"new_balance"`
}

// PersonalWalletClient settles wtk_ tokens against the external
// personal-wallet service.
type PersonalWalletClient interface {
	ProcessPayment(ctx context.Context, req PersonalDebitRequest) (*PersonalDebitResult, error)
}

// IdempotencyCache is the fast-path duplicate-settlement check.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil when absent
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NonceStore tracks one-time mandate nonces for replay prevention.
type NonceStore interface {
	// CheckAndSet atomically records a nonce. Returns true if the nonce is
	// new (valid), false if already redeemed.
	CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error)
}

// APIKeyVerifier hashes and verifies operator API keys.
type APIKeyVerifier interface {
	Hash(key string) (string, error)
	Verify(key string, encodedHash string) (bool, error)
}

// RequestSigner produces signed conformance headers for outbound calls to
// collaborator services.
type RequestSigner interface {
	SignRequest(method, path string, payload []byte) (map[string]string, error)
}
