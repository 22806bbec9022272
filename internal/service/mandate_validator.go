package service

import (
	"context"
	"time"

	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"
	"agent-settlement/pkg/metrics"

	"github.com/rs/zerolog"
)

// nonceScopePayment namespaces payment-authorization nonces in the store.
const nonceScopePayment = "payment-mandate"

// mandateValidator verifies received mandates. Checks run in a fixed order
// and stop at the first failure: presence, structure, algorithm, signature,
// expiry, audience, then content-hash binding. Replay tracking is optional
// and only applies to payment authorizations.
type mandateValidator struct {
	codec        ports.MandateCodec
	hasher       ports.CanonicalHasher
	keys         ports.KeyResolver
	nonces       ports.NonceStore // nil disables replay tracking
	cartAudience string
	logger       zerolog.Logger
}

func NewMandateValidator(
	codec ports.MandateCodec,
	hasher ports.CanonicalHasher,
	keys ports.KeyResolver,
	nonces ports.NonceStore,
	logger zerolog.Logger,
) *mandateValidator {
	return &mandateValidator{
		codec:        codec,
		hasher:       hasher,
		keys:         keys,
		nonces:       nonces,
		cartAudience: UserAgentAudience,
		logger:       logger.With().Str("component", "mandate_validator").Logger(),
	}
}

func (v *mandateValidator) ValidateCart(m domain.CartMandate) (*ports.CartValidation, error) {
	if m.MerchantAuthorization == "" {
		return nil, v.reject("missing_authorization", apperror.ErrMissingAuthorization())
	}

	var claims domain.CartAuthorizationClaims
	if err := v.codec.Verify(m.MerchantAuthorization, &claims, v.keys); err != nil {
		return nil, v.reject("token", err)
	}
	if claims.Subject != domain.SubjectCartAuthorization {
		return nil, v.reject("subject", apperror.ErrMalformedToken())
	}
	if !audienceContains(claims.Audience, v.cartAudience) {
		return nil, v.reject("audience", apperror.ErrAudienceMismatch())
	}

	cartHash, err := v.hasher.Hash(m.Contents)
	if err != nil {
		return nil, err
	}
	if cartHash != claims.CartHash || m.Contents.ID != claims.CartID {
		return nil, v.reject("cart_hash", apperror.ErrTamperedContents())
	}
	if m.Contents.Expired(time.Now().UTC()) {
		return nil, v.reject("cart_expiry", apperror.ErrMandateExpired())
	}

	return &ports.CartValidation{
		CartID:   m.Contents.ID,
		Merchant: m.Contents.MerchantName,
		Total:    m.Contents.Total,
	}, nil
}

func (v *mandateValidator) ValidatePayment(m domain.PaymentMandate, cart domain.CartMandate, audience string) error {
	if m.UserAuthorization == "" {
		return v.reject("missing_authorization", apperror.ErrMissingAuthorization())
	}

	var claims domain.PaymentAuthorizationClaims
	if err := v.codec.Verify(m.UserAuthorization, &claims, v.keys); err != nil {
		return v.reject("token", err)
	}
	if claims.Subject != domain.SubjectPaymentAuthorization {
		return v.reject("subject", apperror.ErrMalformedToken())
	}
	if !audienceContains(claims.Audience, audience) {
		return v.reject("audience", apperror.ErrAudienceMismatch())
	}

	// The authorization binds one exact cart and one exact payment record.
	cartHash, err := v.hasher.Hash(cart.Contents)
	if err != nil {
		return err
	}
	if cartHash != claims.CartHash() {
		return v.reject("cart_binding", apperror.ErrTamperedContents())
	}
	paymentHash, err := v.hasher.Hash(m.Contents)
	if err != nil {
		return err
	}
	if paymentHash != claims.PaymentHash() {
		return v.reject("payment_binding", apperror.ErrTamperedContents())
	}

	if v.nonces != nil && claims.Nonce != "" {
		ttl := DefaultPaymentTTL
		if claims.ExpiresAt != nil {
			// Keep the nonce a little past token expiry.
			ttl = time.Until(claims.ExpiresAt.Time) + time.Minute
		}
		fresh, err := v.nonces.CheckAndSet(context.Background(), nonceScopePayment, claims.Nonce, ttl)
		if err != nil {
			return apperror.InternalError(err)
		}
		if !fresh {
			return v.reject("replay", apperror.ErrMandateReplayed())
		}
	}
	return nil
}

func (v *mandateValidator) ValidateSpendingLimit(token string, expectedAudience string, requiredAmount *int64) (*domain.SpendingLimit, error) {
	if token == "" {
		return nil, v.reject("missing_authorization", apperror.ErrMissingAuthorization())
	}

	var claims domain.SpendingLimitClaims
	if err := v.codec.Verify(token, &claims, v.keys); err != nil {
		return nil, v.reject("token", err)
	}
	if claims.Subject != domain.SubjectSpendingLimit || claims.Scope != domain.PaymentScope {
		return nil, v.reject("subject", apperror.ErrMalformedToken())
	}
	if !audienceContains(claims.Audience, expectedAudience) {
		return nil, v.reject("audience", apperror.ErrAudienceMismatch())
	}
	if requiredAmount != nil && *requiredAmount > claims.Mandate.MaxAmount {
		return nil, v.reject("limit", apperror.ErrLimitExceeded(*requiredAmount, claims.Mandate.MaxAmount))
	}

	limit := claims.Mandate
	return &limit, nil
}

func (v *mandateValidator) reject(kind string, err error) error {
	metrics.MandateValidationFailures.WithLabelValues(kind).Inc()
	v.logger.Warn().Str("kind", kind).Err(err).Msg("mandate rejected")
	return err
}

func audienceContains(aud []string, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
