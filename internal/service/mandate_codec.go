package service

import (
	"errors"
	"fmt"

	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
)

var errUnsupportedAlg = errors.New("unsupported signing algorithm")

// mandateCodec implements the three-part signed-token wire format on top of
// EdDSA. Verification order is fixed: structure, algorithm, signature, then
// time-based claims. A token must never be reported expired before its
// signature has been checked.
type mandateCodec struct {
	parser *jwt.Parser
}

func NewMandateCodec() *mandateCodec {
	return &mandateCodec{
		parser: jwt.NewParser(),
	}
}

func (c *mandateCodec) Encode(claims jwt.Claims, signer ports.KeyManager) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["typ"] = domain.MandateTokenType
	token.Header["kid"] = signer.KeyID()
	signed, err := token.SignedString(signer.Private())
	if err != nil {
		return "", apperror.Wrap("SYS_001", "failed to sign mandate", 500, err)
	}
	return signed, nil
}

func (c *mandateCodec) Verify(tokenString string, claims jwt.Claims, keys ports.KeyResolver) error {
	_, err := c.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("%w: %v", errUnsupportedAlg, t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		pub, ok := keys.ResolveKey(kid)
		if !ok {
			// An unknown key cannot vouch for anything.
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return pub, nil
	})
	if err != nil {
		return mapTokenError(err, tokenString)
	}
	return nil
}

func (c *mandateCodec) DecodeUnverified(tokenString string, claims jwt.Claims) (map[string]any, error) {
	token, _, err := c.parser.ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, apperror.ErrMalformedToken()
	}
	return token.Header, nil
}

// mapTokenError translates jwt parse failures into the service taxonomy.
func mapTokenError(err error, tokenString string) error {
	switch {
	case errors.Is(err, errUnsupportedAlg):
		return apperror.ErrUnsupportedAlgorithm(algFromToken(tokenString))
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperror.ErrMalformedToken()
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperror.ErrInvalidSignature()
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return apperror.ErrMandateExpired()
	default:
		return apperror.ErrInvalidSignature()
	}
}

// algFromToken recovers the declared algorithm for error reporting only.
func algFromToken(tokenString string) string {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "unknown"
	}
	if alg, ok := token.Header["alg"].(string); ok {
		return alg
	}
	return "unknown"
}
