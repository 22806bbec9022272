package service

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"
)

// ed25519KeyManager holds one keypair for a principal role. The key material
// never changes after construction, so reads need no locking.
type ed25519KeyManager struct {
	priv  ed25519.PrivateKey
	pub   ed25519.PublicKey
	keyID string
}

// NewKeyManager generates a fresh Ed25519 keypair.
func NewKeyManager() (ports.KeyManager, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, apperror.Wrap("SYS_001", "failed to generate keypair", 500, err)
	}
	return newKeyManagerFromPair(pub, priv), nil
}

// NewKeyManagerFromSeed rebuilds a keypair from a stored 32-byte seed.
// Same seed, same key id.
func NewKeyManagerFromSeed(seed []byte) (ports.KeyManager, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, apperror.New("SYS_001", fmt.Sprintf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed)), 500)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return newKeyManagerFromPair(pub, priv), nil
}

func newKeyManagerFromPair(pub ed25519.PublicKey, priv ed25519.PrivateKey) *ed25519KeyManager {
	return &ed25519KeyManager{
		priv:  priv,
		pub:   pub,
		keyID: DeriveKeyID(pub),
	}
}

// DeriveKeyID builds the stable key identifier from a public key:
// "key-" plus the unpadded base64url of the first 8 key bytes.
func DeriveKeyID(pub ed25519.PublicKey) string {
	return "key-" + base64.RawURLEncoding.EncodeToString(pub[:8])
}

func (k *ed25519KeyManager) KeyID() string { return k.keyID }

func (k *ed25519KeyManager) Sign(data []byte) []byte {
	return ed25519.Sign(k.priv, data)
}

func (k *ed25519KeyManager) Verify(data, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(k.pub, data, signature)
}

func (k *ed25519KeyManager) Public() ed25519.PublicKey   { return k.pub }
func (k *ed25519KeyManager) Private() ed25519.PrivateKey { return k.priv }

func (k *ed25519KeyManager) PublicJWK() ports.JWK {
	return ports.JWK{
		Kty: "OKP",
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(k.pub),
		Kid: k.keyID,
		Use: "sig",
		Alg: "EdDSA",
	}
}

// KeyRing resolves verification keys by key id. Registration happens at
// startup; lookups are concurrent.
type KeyRing struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

func NewKeyRing() *KeyRing {
	return &KeyRing{keys: make(map[string]ed25519.PublicKey)}
}

// Register adds a keypair's public half under its key id.
func (r *KeyRing) Register(km ports.KeyManager) {
	r.RegisterPublic(km.KeyID(), km.Public())
}

// RegisterPublic adds a bare public key, e.g. one fetched from a
// collaborator's key endpoint.
func (r *KeyRing) RegisterPublic(keyID string, pub ed25519.PublicKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[keyID] = pub
}

func (r *KeyRing) ResolveKey(keyID string) (ed25519.PublicKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pub, ok := r.keys[keyID]
	return pub, ok
}

// JWKS returns every registered key in JWK set form for publication.
func (r *KeyRing) JWKS() []ports.JWK {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := make([]ports.JWK, 0, len(r.keys))
	for kid, pub := range r.keys {
		set = append(set, ports.JWK{
			Kty: "OKP",
			Crv: "Ed25519",
			X:   base64.RawURLEncoding.EncodeToString(pub),
			Kid: kid,
			Use: "sig",
			Alg: "EdDSA",
		})
	}
	return set
}
