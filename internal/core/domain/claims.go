package domain

import "github.com/golang-jwt/jwt/v5"

// Mandate token header constants. Every mandate token carries
// {"alg":"EdDSA","typ":"mandate","kid":<key id>}.
const (
	MandateTokenType = "mandate"
	MandateAlgorithm = "EdDSA"
)

// Subjects distinguishing the mandate kinds on the wire.
const (
	SubjectCartAuthorization    = "cart-authorization"
	SubjectPaymentAuthorization = "payment-authorization"
	SubjectSpendingLimit        = "agent-autonomous-action"
)

// CartAuthorizationClaims is the payload of a merchant's cart token. The
// registered ID claim (jti) carries the one-time nonce.
type CartAuthorizationClaims struct {
	jwt.RegisteredClaims
	CartHash string `json:"cart_hash"`
	CartID   string `json:"cart_id"`
}

// PaymentAuthorizationClaims is the payload of a user's payment token.
// TransactionData is [cart_hash, payment_hash]: the digest of the cart being
// paid for, then the digest of the PaymentMandateContents themselves.
type PaymentAuthorizationClaims struct {
	jwt.RegisteredClaims
	Nonce           string    `json:"nonce"`
	TransactionData [2]string `json:"transaction_data"`
}

// CartHash returns the digest of the cart this payment authorizes.
func (c PaymentAuthorizationClaims) CartHash() string { return c.TransactionData[0] }

// PaymentHash returns the digest of the payment mandate contents.
func (c PaymentAuthorizationClaims) PaymentHash() string { return c.TransactionData[1] }

// SpendingLimitClaims is the payload of a legacy spending-limit mandate:
// an amount ceiling with audience and expiry, no cart binding.
type SpendingLimitClaims struct {
	jwt.RegisteredClaims
	Scope   string        `json:"scope"`
	Mandate SpendingLimit `json:"mandate"`
}
