package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyManager_SignVerify(t *testing.T) {
	km, err := NewKeyManager()
	require.NoError(t, err)

	msg := []byte("the exact bytes that were signed")
	sig := km.Sign(msg)
	assert.Len(t, sig, 64)
	assert.True(t, km.Verify(msg, sig))

	// Any bit flip must fail verification.
	tampered := append([]byte(nil), msg...)
	tampered[0] ^= 0x01
	assert.False(t, km.Verify(tampered, sig))

	badSig := append([]byte(nil), sig...)
	badSig[10] ^= 0x01
	assert.False(t, km.Verify(msg, badSig))
}

func TestKeyManager_VerifyMalformedSignature(t *testing.T) {
	km, err := NewKeyManager()
	require.NoError(t, err)

	assert.False(t, km.Verify([]byte("data"), nil))
	assert.False(t, km.Verify([]byte("data"), []byte("short")))
}

func TestKeyManager_KeyIDDeterministic(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")
	a, err := NewKeyManagerFromSeed(seed)
	require.NoError(t, err)
	b, err := NewKeyManagerFromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, a.KeyID(), b.KeyID())
	assert.True(t, strings.HasPrefix(a.KeyID(), "key-"))

	other, err := NewKeyManager()
	require.NoError(t, err)
	assert.NotEqual(t, a.KeyID(), other.KeyID())
}

func TestKeyManager_FromSeedRejectsBadLength(t *testing.T) {
	_, err := NewKeyManagerFromSeed([]byte("too short"))
	assert.Error(t, err)
}

func TestKeyManager_PublicJWK(t *testing.T) {
	km, err := NewKeyManager()
	require.NoError(t, err)

	jwk := km.PublicJWK()
	assert.Equal(t, "OKP", jwk.Kty)
	assert.Equal(t, "Ed25519", jwk.Crv)
	assert.Equal(t, "EdDSA", jwk.Alg)
	assert.Equal(t, "sig", jwk.Use)
	assert.Equal(t, km.KeyID(), jwk.Kid)
	assert.NotEmpty(t, jwk.X)
	// base64url alphabet only, no padding
	assert.NotContains(t, jwk.X, "=")
	assert.NotContains(t, jwk.X, "+")
	assert.NotContains(t, jwk.X, "/")
}

func TestKeyRing_ResolveAndJWKS(t *testing.T) {
	merchant, err := NewKeyManager()
	require.NoError(t, err)
	user, err := NewKeyManager()
	require.NoError(t, err)

	ring := NewKeyRing()
	ring.Register(merchant)
	ring.Register(user)

	pub, ok := ring.ResolveKey(merchant.KeyID())
	require.True(t, ok)
	assert.Equal(t, merchant.Public(), pub)

	_, ok = ring.ResolveKey("key-unknown")
	assert.False(t, ok)

	assert.Len(t, ring.JWKS(), 2)
}
