package service

import (
	"time"

	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultCartTTL bounds how long a signed cart stays payable.
	DefaultCartTTL = 15 * time.Minute
	// DefaultPaymentTTL bounds how long a payment authorization stays
	// presentable. Deliberately shorter than the cart window.
	DefaultPaymentTTL = 5 * time.Minute
	// DefaultIntentTTL bounds the shopping window of an intent.
	DefaultIntentTTL = time.Hour

	// UserAgentAudience names the consumer of merchant-signed carts.
	UserAgentAudience = "user-agent"
)

// mandateBuilder constructs and signs mandates for the three-step flow:
// intent (unsigned), cart (merchant-signed), payment (user-signed).
type mandateBuilder struct {
	codec        ports.MandateCodec
	hasher       ports.CanonicalHasher
	merchantKey  ports.KeyManager
	userKey      ports.KeyManager
	merchantName string
	logger       zerolog.Logger
}

func NewMandateBuilder(
	codec ports.MandateCodec,
	hasher ports.CanonicalHasher,
	merchantKey ports.KeyManager,
	userKey ports.KeyManager,
	merchantName string,
	logger zerolog.Logger,
) *mandateBuilder {
	return &mandateBuilder{
		codec:        codec,
		hasher:       hasher,
		merchantKey:  merchantKey,
		userKey:      userKey,
		merchantName: merchantName,
		logger:       logger.With().Str("component", "mandate_builder").Logger(),
	}
}

func (b *mandateBuilder) BuildIntent(req ports.IntentRequest) domain.IntentMandate {
	ttl := req.TTL
	if ttl <= 0 {
		ttl = DefaultIntentTTL
	}
	merchants := req.Merchants
	if len(merchants) == 0 {
		merchants = []string{b.merchantName}
	}
	return domain.IntentMandate{
		NaturalLanguageDescription: req.Description,
		AllowedMerchants:           merchants,
		AllowedSKUs:                req.SKUs,
		ConfirmationRequired:       req.ConfirmationRequired,
		RefundabilityRequired:      req.RefundabilityRequired,
		Expiry:                     time.Now().UTC().Add(ttl),
	}
}

func (b *mandateBuilder) BuildCartContents(req ports.CartRequest) (domain.CartContents, error) {
	if len(req.Items) == 0 {
		return domain.CartContents{}, apperror.ErrEmptyCart()
	}
	ttl := req.TTL
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	cartID := req.CartID
	if cartID == "" {
		cartID = "cart_" + uuid.NewString()
	}
	merchant := req.MerchantName
	if merchant == "" {
		merchant = b.merchantName
	}
	methods := req.AcceptedMethods
	if len(methods) == 0 {
		methods = []string{"wallet_token"}
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	var total int64
	for _, in := range req.Items {
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		line := in.UnitPrice * qty
		items = append(items, domain.CartItem{
			Label:    in.Label,
			Amount:   domain.Amount{Currency: req.Currency, MinorUnits: line},
			Quantity: qty,
		})
		total += line
	}

	return domain.CartContents{
		ID:               cartID,
		MerchantName:     merchant,
		PaymentDetailsID: "pd_" + uuid.NewString(),
		LineItems:        items,
		Total:            domain.Amount{Currency: req.Currency, MinorUnits: total},
		AcceptedMethods:  methods,
		Expiry:           time.Now().UTC().Add(ttl),
	}, nil
}

func (b *mandateBuilder) SignCart(contents domain.CartContents, audience string, ttl time.Duration) (domain.CartMandate, error) {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	if audience == "" {
		audience = UserAgentAudience
	}
	cartHash, err := b.hasher.Hash(contents)
	if err != nil {
		return domain.CartMandate{}, err
	}
	now := time.Now().UTC()
	claims := &domain.CartAuthorizationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    contents.MerchantName,
			Subject:   domain.SubjectCartAuthorization,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		CartHash: cartHash,
		CartID:   contents.ID,
	}
	token, err := b.codec.Encode(claims, b.merchantKey)
	if err != nil {
		return domain.CartMandate{}, err
	}
	b.logger.Debug().Str("cart_id", contents.ID).Str("cart_hash", cartHash).Msg("cart mandate signed")
	return domain.CartMandate{
		Contents:              contents,
		MerchantAuthorization: token,
	}, nil
}

func (b *mandateBuilder) SignPayment(cart domain.CartMandate, req ports.PaymentMandateRequest) (domain.PaymentMandate, error) {
	if cart.Contents.Expired(time.Now().UTC()) {
		return domain.PaymentMandate{}, apperror.ErrExpiredCartInput()
	}
	ttl := req.TTL
	if ttl <= 0 {
		ttl = DefaultPaymentTTL
	}
	method := req.PaymentMethod
	if method == "" {
		method = "wallet_token"
	}
	now := time.Now().UTC()
	contents := domain.PaymentMandateContents{
		PaymentMandateID: "pm_" + uuid.NewString(),
		PaymentDetailsID: cart.Contents.PaymentDetailsID,
		Total:            cart.Contents.Total,
		PaymentMethod:    method,
		PayerName:        req.PayerName,
		PayerEmail:       req.PayerEmail,
		MerchantAgent:    cart.Contents.MerchantName,
		Timestamp:        now,
	}

	cartHash, err := b.hasher.Hash(cart.Contents)
	if err != nil {
		return domain.PaymentMandate{}, err
	}
	paymentHash, err := b.hasher.Hash(contents)
	if err != nil {
		return domain.PaymentMandate{}, err
	}

	claims := &domain.PaymentAuthorizationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    b.userKey.KeyID(),
			Subject:   domain.SubjectPaymentAuthorization,
			Audience:  jwt.ClaimStrings{cart.Contents.MerchantName},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Nonce:           uuid.NewString(),
		TransactionData: [2]string{cartHash, paymentHash},
	}
	token, err := b.codec.Encode(claims, b.userKey)
	if err != nil {
		return domain.PaymentMandate{}, err
	}
	b.logger.Debug().Str("payment_mandate_id", contents.PaymentMandateID).Msg("payment mandate signed")
	return domain.PaymentMandate{
		Contents:          contents,
		UserAuthorization: token,
	}, nil
}

func (b *mandateBuilder) CreateSpendingLimit(limit domain.SpendingLimit, beneficiary string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultIntentTTL
	}
	now := time.Now().UTC()
	claims := &domain.SpendingLimitClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    b.userKey.KeyID(),
			Subject:   domain.SubjectSpendingLimit,
			Audience:  jwt.ClaimStrings{beneficiary},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Scope:   domain.PaymentScope,
		Mandate: limit,
	}
	return b.codec.Encode(claims, b.userKey)
}

// FullFlow runs the complete chain in one call: intent, cart, signed cart,
// signed payment. The demo and the end-to-end tests drive this.
func (b *mandateBuilder) FullFlow(description string, cart ports.CartRequest, payment ports.PaymentMandateRequest) (*ports.MandateFlow, error) {
	intent := b.BuildIntent(ports.IntentRequest{
		Description:          description,
		ConfirmationRequired: true,
	})
	contents, err := b.BuildCartContents(cart)
	if err != nil {
		return nil, err
	}
	signedCart, err := b.SignCart(contents, UserAgentAudience, cart.TTL)
	if err != nil {
		return nil, err
	}
	signedPayment, err := b.SignPayment(signedCart, payment)
	if err != nil {
		return nil, err
	}
	return &ports.MandateFlow{
		Intent:  intent,
		Cart:    signedCart,
		Payment: signedPayment,
		FlowID:  uuid.NewString(),
	}, nil
}
