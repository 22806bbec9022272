package domain

import "time"

// IntentMandate expresses what the user principal wants to buy, in natural
// language, before any cart exists. It is never signed: it states preference,
// not authorization, and expires by wall clock.
type IntentMandate struct {
	NaturalLanguageDescription string    `json:"natural_language_description"`
	AllowedMerchants           []string  `json:"merchants,omitempty"`
	AllowedSKUs                []string  `json:"skus,omitempty"`
	ConfirmationRequired       bool      `json:"user_cart_confirmation_required"`
	RefundabilityRequired      bool      `json:"requires_refundability"`
	Expiry                     time.Time `json:"intent_expiry"`
}

// Expired reports whether the intent has lapsed at the given instant.
func (m IntentMandate) Expired(now time.Time) bool {
	return now.After(m.Expiry)
}

// CartItem is one line of a cart. Amount is the line total
// (unit price already multiplied by Quantity).
type CartItem struct {
	Label    string `json:"label"`
	Amount   Amount `json:"amount"`
	Quantity int64  `json:"quantity"`
}

// CartContents is the merchant's fixed offer: items, prices and expiry.
// Immutable once signed — any later change must break hash verification.
type CartContents struct {
	ID                   string     `json:"id"`
	MerchantName         string     `json:"merchant_name"`
	PaymentDetailsID     string     `json:"payment_details_id"`
	LineItems            []CartItem `json:"line_items"`
	Total                Amount     `json:"total"`
	ConfirmationRequired bool       `json:"user_cart_confirmation_required"`
	AcceptedMethods      []string   `json:"accepted_methods"`
	Expiry               time.Time  `json:"cart_expiry"`
}

// Expired reports whether the cart offer has lapsed at the given instant.
func (c CartContents) Expired(now time.Time) bool {
	return now.After(c.Expiry)
}

// CartMandate pairs cart contents with the merchant's signed authorization.
// The token payload binds a content hash of Contents plus the cart id, so a
// mutation of Contents after signing is detectable even though the token's
// own signature still verifies.
type CartMandate struct {
	Contents              CartContents `json:"contents"`
	MerchantAuthorization string       `json:"merchant_authorization,omitempty"`
}

// PaymentMandateContents captures the user's confirmed payment decision for
// one specific cart.
type PaymentMandateContents struct {
	PaymentMandateID string    `json:"payment_mandate_id"`
	PaymentDetailsID string    `json:"payment_details_id"`
	Total            Amount    `json:"payment_details_total"`
	PaymentMethod    string    `json:"payment_method"`
	PayerName        string    `json:"payer_name,omitempty"`
	PayerEmail       string    `json:"payer_email,omitempty"`
	MerchantAgent    string    `json:"merchant_agent"`
	Timestamp        time.Time `json:"timestamp"`
}

// PaymentMandate pairs payment contents with the user's signed authorization.
// The token's transaction_data embeds both the cart hash and the hash of
// Contents, binding the authorization to one unmodified cart.
type PaymentMandate struct {
	Contents          PaymentMandateContents `json:"payment_mandate_contents"`
	UserAuthorization string                 `json:"user_authorization"`
}

// SpendingLimit is the legacy mandate form: an amount ceiling in one currency,
// with no cart binding.
type SpendingLimit struct {
	MaxAmount int64  `json:"max_amount"`
	Currency  string `json:"currency"`
}

// PaymentScope is the scope claim required on spending-limit mandates.
const PaymentScope = "ucp:payment"
