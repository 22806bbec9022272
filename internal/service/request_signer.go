package service

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"time"

	"agent-settlement/internal/core/ports"

	"github.com/google/uuid"
)

// Ed25519RequestSigner signs outbound requests to collaborator services with
// the caller's identity key. The receiver verifies against the published JWK.
type Ed25519RequestSigner struct {
	key ports.KeyManager
}

// NewRequestSigner creates a request signer bound to one keypair.
func NewRequestSigner(key ports.KeyManager) *Ed25519RequestSigner {
	return &Ed25519RequestSigner{key: key}
}

// SignRequest produces the signed header set for one request.
// The signing input is "timestamp.nonce.method.path.payload".
func (s *Ed25519RequestSigner) SignRequest(method, path string, payload []byte) (map[string]string, error) {
	timestamp := fmt.Sprintf("%d", time.Now().UTC().Unix())
	nonce := uuid.NewString()

	signingInput := fmt.Sprintf("%s.%s.%s.%s.%s", timestamp, nonce, method, path, string(payload))
	signature := s.key.Sign([]byte(signingInput))

	return map[string]string{
		"request-id":        uuid.NewString(),
		"idempotency-key":   uuid.NewString(),
		"ucp-timestamp":     timestamp,
		"ucp-nonce":         nonce,
		"ucp-key-id":        s.key.KeyID(),
		"request-signature": base64.RawURLEncoding.EncodeToString(signature),
	}, nil
}

// VerifyRequest checks a signed header set against the given public key
// resolver. Returns false on any missing header or bad signature.
func VerifyRequest(keys ports.KeyResolver, method, path string, payload []byte, headers map[string]string) bool {
	timestamp := headers["ucp-timestamp"]
	nonce := headers["ucp-nonce"]
	keyID := headers["ucp-key-id"]
	encodedSig := headers["request-signature"]
	if timestamp == "" || nonce == "" || keyID == "" || encodedSig == "" {
		return false
	}
	pub, ok := keys.ResolveKey(keyID)
	if !ok {
		return false
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return false
	}
	signingInput := fmt.Sprintf("%s.%s.%s.%s.%s", timestamp, nonce, method, path, string(payload))
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub, []byte(signingInput), sig)
}
