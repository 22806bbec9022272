package service

import (
	"testing"
	"time"

	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"
	"agent-settlement/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func signedCart(t *testing.T, f *mandateFixture) domain.CartMandate {
	t.Helper()
	contents, err := f.builder.BuildCartContents(bookstoreCart())
	require.NoError(t, err)
	cart, err := f.builder.SignCart(contents, "", 0)
	require.NoError(t, err)
	return cart
}

func TestMandateValidator_ValidateCart_MissingAuthorization(t *testing.T) {
	f := newMandateFixture(t)

	cart := signedCart(t, f)
	cart.MerchantAuthorization = ""
	_, err := f.validator.ValidateCart(cart)
	assertAppCode(t, err, "MAN_008")
}

func TestMandateValidator_ValidateCart_TamperedPrice(t *testing.T) {
	f := newMandateFixture(t)

	cart := signedCart(t, f)
	// A one-cent discount after signing must be caught.
	cart.Contents.Total.MinorUnits -= 1
	_, err := f.validator.ValidateCart(cart)
	assertAppCode(t, err, "MAN_006")
}

func TestMandateValidator_ValidateCart_TamperedLineItem(t *testing.T) {
	f := newMandateFixture(t)

	cart := signedCart(t, f)
	cart.Contents.LineItems[0].Quantity = 10
	_, err := f.validator.ValidateCart(cart)
	assertAppCode(t, err, "MAN_006")
}

func TestMandateValidator_ValidateCart_ExpiredContents(t *testing.T) {
	f := newMandateFixture(t)

	contents, err := f.builder.BuildCartContents(bookstoreCart())
	require.NoError(t, err)
	contents.Expiry = time.Now().UTC().Add(-time.Minute)
	// Token itself is fresh; the offer inside it is not.
	cart, err := f.builder.SignCart(contents, "", time.Hour)
	require.NoError(t, err)

	_, err = f.validator.ValidateCart(cart)
	assertAppCode(t, err, "MAN_004")
}

func TestMandateValidator_ValidateCart_ForeignSigner(t *testing.T) {
	f := newMandateFixture(t)
	other := newMandateFixture(t) // different keys, unknown to f's ring

	cart := signedCart(t, other)
	_, err := f.validator.ValidateCart(cart)
	assertAppCode(t, err, "MAN_003")
}

func TestMandateValidator_ValidatePayment_WrongAudience(t *testing.T) {
	f := newMandateFixture(t)

	cart := signedCart(t, f)
	payment, err := f.builder.SignPayment(cart, ports.PaymentMandateRequest{})
	require.NoError(t, err)

	err = f.validator.ValidatePayment(payment, cart, "some-other-merchant")
	assertAppCode(t, err, "MAN_005")
}

func TestMandateValidator_ValidatePayment_CartSwap(t *testing.T) {
	f := newMandateFixture(t)

	cart := signedCart(t, f)
	payment, err := f.builder.SignPayment(cart, ports.PaymentMandateRequest{})
	require.NoError(t, err)

	// Present the authorization against a different cart.
	otherContents, err := f.builder.BuildCartContents(ports.CartRequest{
		Currency: "BRL",
		Items:    []ports.CartItemInput{{Label: "Expensive Book", UnitPrice: 99900, Quantity: 1}},
	})
	require.NoError(t, err)
	otherCart, err := f.builder.SignCart(otherContents, "", 0)
	require.NoError(t, err)

	err = f.validator.ValidatePayment(payment, otherCart, "virtual-bookstore")
	assertAppCode(t, err, "MAN_006")
}

func TestMandateValidator_ValidatePayment_TamperedContents(t *testing.T) {
	f := newMandateFixture(t)

	cart := signedCart(t, f)
	payment, err := f.builder.SignPayment(cart, ports.PaymentMandateRequest{})
	require.NoError(t, err)
	payment.Contents.Total.MinorUnits = 1

	err = f.validator.ValidatePayment(payment, cart, "virtual-bookstore")
	assertAppCode(t, err, "MAN_006")
}

func TestMandateValidator_ValidatePayment_ReplayRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newMandateFixture(t)
	nonces := mocks.NewMockNonceStore(ctrl)
	codec := NewMandateCodec()
	hasher := NewCanonicalHasher()
	validator := NewMandateValidator(codec, hasher, f.ring, nonces, zerolog.Nop())

	cart := signedCart(t, f)
	payment, err := f.builder.SignPayment(cart, ports.PaymentMandateRequest{})
	require.NoError(t, err)

	gomock.InOrder(
		nonces.EXPECT().CheckAndSet(gomock.Any(), "payment-mandate", gomock.Any(), gomock.Any()).Return(true, nil),
		nonces.EXPECT().CheckAndSet(gomock.Any(), "payment-mandate", gomock.Any(), gomock.Any()).Return(false, nil),
	)

	require.NoError(t, validator.ValidatePayment(payment, cart, "virtual-bookstore"))
	err = validator.ValidatePayment(payment, cart, "virtual-bookstore")
	assertAppCode(t, err, "MAN_009")
}

func TestMandateValidator_SpendingLimit_Exceeded(t *testing.T) {
	f := newMandateFixture(t)

	token, err := f.builder.CreateSpendingLimit(domain.SpendingLimit{MaxAmount: 5000, Currency: "BRL"}, "virtual-bookstore", time.Hour)
	require.NoError(t, err)

	required := int64(8980)
	_, err = f.validator.ValidateSpendingLimit(token, "virtual-bookstore", &required)
	assertAppCode(t, err, "MAN_007")

	within := int64(5000)
	_, err = f.validator.ValidateSpendingLimit(token, "virtual-bookstore", &within)
	require.NoError(t, err)
}

func TestMandateValidator_SpendingLimit_WrongAudience(t *testing.T) {
	f := newMandateFixture(t)

	token, err := f.builder.CreateSpendingLimit(domain.SpendingLimit{MaxAmount: 5000, Currency: "BRL"}, "virtual-bookstore", time.Hour)
	require.NoError(t, err)

	_, err = f.validator.ValidateSpendingLimit(token, "another-store", nil)
	assertAppCode(t, err, "MAN_005")
}

func TestMandateValidator_SpendingLimit_Expired(t *testing.T) {
	f := newMandateFixture(t)

	token, err := f.builder.CreateSpendingLimit(domain.SpendingLimit{MaxAmount: 5000, Currency: "BRL"}, "virtual-bookstore", -time.Minute)
	require.NoError(t, err)

	_, err = f.validator.ValidateSpendingLimit(token, "virtual-bookstore", nil)
	assertAppCode(t, err, "MAN_004")
}
