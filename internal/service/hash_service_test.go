package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2KeyVerifier_HashAndVerify(t *testing.T) {
	v := NewArgon2KeyVerifier()

	hash, err := v.Hash("admin-key-123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := v.Verify("admin-key-123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify("wrong-key", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2KeyVerifier_UniqueSalt(t *testing.T) {
	v := NewArgon2KeyVerifier()

	h1, err := v.Hash("same-key")
	require.NoError(t, err)
	h2, err := v.Hash("same-key")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	for _, h := range []string{h1, h2} {
		ok, err := v.Verify("same-key", h)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestArgon2KeyVerifier_RejectsMalformedHash(t *testing.T) {
	v := NewArgon2KeyVerifier()

	for _, bad := range []string{"", "plainhash", "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"} {
		_, err := v.Verify("key", bad)
		assert.Error(t, err)
	}
}
