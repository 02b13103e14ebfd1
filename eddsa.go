package jwt

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
)

type algEdDSA struct {
	name       string
	publicKey  ed25519.PublicKey
	privateKey ed25519.PrivateKey
}

// Ed25519 returns the EdDSA algorithm over the Ed25519 curve.
// When "public" is nil it is derived from "private".
// Keys of the wrong size fail with ErrInvalidKey.
func Ed25519(public ed25519.PublicKey, private ed25519.PrivateKey) (Algorithm, error) {
	if public == nil && private == nil {
		return nil, fmt.Errorf("%w: %s: missing key", ErrInvalidKey, NameEdDSA)
	}

	if private != nil {
		if len(private) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("%w: %s: private key must be %d bytes", ErrInvalidKey, NameEdDSA, ed25519.PrivateKeySize)
		}

		derived := private.Public().(ed25519.PublicKey)
		if public == nil {
			public = derived
		} else if !bytes.Equal(public, derived) {
			return nil, fmt.Errorf("%w: %s: public key does not match the private key", ErrInvalidKey, NameEdDSA)
		}
	}

	if len(public) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: %s: public key must be %d bytes", ErrInvalidKey, NameEdDSA, ed25519.PublicKeySize)
	}

	return &algEdDSA{name: NameEdDSA, publicKey: public, privateKey: private}, nil
}

func (a *algEdDSA) Name() string {
	return a.name
}

func (a *algEdDSA) Sign(headerAndPayload []byte) ([]byte, error) {
	if a.privateKey == nil {
		return nil, fmt.Errorf("%w: %s: no private key to sign with", ErrInvalidKey, a.name)
	}

	return ed25519.Sign(a.privateKey, headerAndPayload), nil
}

func (a *algEdDSA) Verify(headerAndPayload []byte, signature []byte) error {
	if !ed25519.Verify(a.publicKey, headerAndPayload, signature) {
		return ErrInvalidSignature
	}

	return nil
}
