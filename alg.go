package jwt

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	_ "crypto/sha256" // ignore:lint
	_ "crypto/sha512"
	"fmt"
)

// Algorithm names, as written in the "alg" header field (RFC 7518).
// Names are case-sensitive.
const (
	NameNone  = "none"
	NameHS256 = "HS256"
	NameHS384 = "HS384"
	NameHS512 = "HS512"
	NameRS256 = "RS256"
	NameRS384 = "RS384"
	NameRS512 = "RS512"
	NamePS256 = "PS256"
	NamePS384 = "PS384"
	NamePS512 = "PS512"
	NameES256 = "ES256"
	NameES384 = "ES384"
	NameES512 = "ES512"
	NameEdDSA = "EdDSA"
)

// Algorithm represents a signing algorithm bound to its key material.
//
// An Algorithm is created once through one of the family constructors
// (HMAC256, RSA256, RSAPSS256, ECDSA256, Ed25519, None...), which validate the key
// eagerly and return ErrInvalidKey on a mismatch. After construction it holds no
// mutable state and is safe for concurrent use.
//
// **Security**: the Verifier never selects an Algorithm from the token's own "alg"
// header. The caller pins the Algorithm out-of-band and the header must match its Name.
//
// Example custom algorithm implementation:
//
//	type customAlg struct{ key []byte }
//
//	func (a *customAlg) Name() string { return "X-CUSTOM" }
//
//	func (a *customAlg) Sign(data []byte) ([]byte, error) {
//	    // custom signing logic
//	    return signature, nil
//	}
//
//	func (a *customAlg) Verify(data, signature []byte) error {
//	    // custom verification logic, return jwt.ErrInvalidSignature on mismatch.
//	    return nil
//	}
type Algorithm interface {
	// Name returns the algorithm identifier for the "alg" header field.
	Name() string
	// Sign returns the raw (not base64 encoded) signature of "data",
	// which is the ASCII form of base64url(header) "." base64url(payload).
	// Verify-only algorithms return ErrInvalidKey.
	Sign(data []byte) ([]byte, error)
	// Verify returns nil when "signature" is valid for "data"
	// and ErrInvalidSignature otherwise. Implementations must not leak
	// where a signature differs.
	Verify(data, signature []byte) error
}

// NewAlgorithm returns the algorithm registered under "name" (exact match),
// bound to the given keys. Keys are untyped so that a caller reading
// them from configuration does not have to switch on the family:
//
//   - HMAC: []byte (or string) shared secret as "private", "public" is ignored
//   - RSA, RSA-PSS: *rsa.PrivateKey / *rsa.PublicKey
//   - ECDSA: *ecdsa.PrivateKey / *ecdsa.PublicKey
//   - EdDSA: ed25519.PrivateKey / ed25519.PublicKey
//   - none: no keys
//
// Either key may be nil (sign-only or verify-only). A key of the wrong type
// fails with ErrInvalidKey and an unknown name with ErrAlgorithmNotAllowed.
func NewAlgorithm(name string, private, public any) (Algorithm, error) {
	family, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrAlgorithmNotAllowed, name)
	}

	return family(private, public)
}

// Algorithms returns the names NewAlgorithm accepts.
func Algorithms() []string {
	return []string{
		NameHS256, NameHS384, NameHS512,
		NameRS256, NameRS384, NameRS512,
		NamePS256, NamePS384, NamePS512,
		NameES256, NameES384, NameES512,
		NameEdDSA, NameNone,
	}
}

type familyFunc func(private, public any) (Algorithm, error)

var families = map[string]familyFunc{
	NameNone: func(_, _ any) (Algorithm, error) { return None(), nil },

	NameHS256: hmacFamily(HMAC256),
	NameHS384: hmacFamily(HMAC384),
	NameHS512: hmacFamily(HMAC512),

	NameRS256: rsaFamily(RSA256),
	NameRS384: rsaFamily(RSA384),
	NameRS512: rsaFamily(RSA512),
	NamePS256: rsaFamily(RSAPSS256),
	NamePS384: rsaFamily(RSAPSS384),
	NamePS512: rsaFamily(RSAPSS512),

	NameES256: ecdsaFamily(ECDSA256),
	NameES384: ecdsaFamily(ECDSA384),
	NameES512: ecdsaFamily(ECDSA512),

	NameEdDSA: func(private, public any) (Algorithm, error) {
		var (
			priv ed25519.PrivateKey
			pub  ed25519.PublicKey
			ok   bool
		)
		if private != nil {
			if priv, ok = private.(ed25519.PrivateKey); !ok {
				return nil, fmt.Errorf("%w: EdDSA: expected ed25519.PrivateKey, got %T", ErrInvalidKey, private)
			}
		}
		if public != nil {
			if pub, ok = public.(ed25519.PublicKey); !ok {
				return nil, fmt.Errorf("%w: EdDSA: expected ed25519.PublicKey, got %T", ErrInvalidKey, public)
			}
		}
		return Ed25519(pub, priv)
	},
}

func hmacFamily(newAlg func([]byte) (Algorithm, error)) familyFunc {
	return func(private, _ any) (Algorithm, error) {
		switch secret := private.(type) {
		case []byte:
			return newAlg(secret)
		case string:
			return newAlg([]byte(secret))
		default:
			return nil, fmt.Errorf("%w: HMAC: expected []byte secret, got %T", ErrInvalidKey, private)
		}
	}
}

func rsaFamily(newAlg func(*rsa.PublicKey, *rsa.PrivateKey) (Algorithm, error)) familyFunc {
	return func(private, public any) (Algorithm, error) {
		var (
			priv *rsa.PrivateKey
			pub  *rsa.PublicKey
			ok   bool
		)
		if private != nil {
			if priv, ok = private.(*rsa.PrivateKey); !ok {
				return nil, fmt.Errorf("%w: RSA: expected *rsa.PrivateKey, got %T", ErrInvalidKey, private)
			}
		}
		if public != nil {
			if pub, ok = public.(*rsa.PublicKey); !ok {
				return nil, fmt.Errorf("%w: RSA: expected *rsa.PublicKey, got %T", ErrInvalidKey, public)
			}
		}
		return newAlg(pub, priv)
	}
}

func ecdsaFamily(newAlg func(*ecdsa.PublicKey, *ecdsa.PrivateKey) (Algorithm, error)) familyFunc {
	return func(private, public any) (Algorithm, error) {
		var (
			priv *ecdsa.PrivateKey
			pub  *ecdsa.PublicKey
			ok   bool
		)
		if private != nil {
			if priv, ok = private.(*ecdsa.PrivateKey); !ok {
				return nil, fmt.Errorf("%w: ECDSA: expected *ecdsa.PrivateKey, got %T", ErrInvalidKey, private)
			}
		}
		if public != nil {
			if pub, ok = public.(*ecdsa.PublicKey); !ok {
				return nil, fmt.Errorf("%w: ECDSA: expected *ecdsa.PublicKey, got %T", ErrInvalidKey, public)
			}
		}
		return newAlg(pub, priv)
	}
}

// isNone reports whether "alg" is the unsecured algorithm.
func isNone(alg Algorithm) bool {
	return alg != nil && alg.Name() == NameNone
}
