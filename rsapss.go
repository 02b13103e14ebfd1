package jwt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// algRSAPSS implements the Algorithm interface for RSA-PSS signature algorithms.
// It supports PS256, PS384, and PS512 variants using RSASSA-PSS padding
// with SHA-256, SHA-384, and SHA-512 respectively.
//
// RSASSA-PSS is a probabilistic signature scheme: signing the same input
// twice yields two different, equally valid, signatures.
type algRSAPSS struct {
	name       string          // Algorithm name (e.g., "PS256", "PS384", "PS512")
	opts       *rsa.PSSOptions // PSS options including hash function and salt length
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey
}

// RSAPSS256 returns the PS256 algorithm. Keys follow the rules of RSA256.
func RSAPSS256(public *rsa.PublicKey, private *rsa.PrivateKey) (Algorithm, error) {
	return newRSAPSS(NamePS256, crypto.SHA256, public, private)
}

// RSAPSS384 returns the PS384 algorithm. Keys follow the rules of RSA256.
func RSAPSS384(public *rsa.PublicKey, private *rsa.PrivateKey) (Algorithm, error) {
	return newRSAPSS(NamePS384, crypto.SHA384, public, private)
}

// RSAPSS512 returns the PS512 algorithm. Keys follow the rules of RSA256.
func RSAPSS512(public *rsa.PublicKey, private *rsa.PrivateKey) (Algorithm, error) {
	return newRSAPSS(NamePS512, crypto.SHA512, public, private)
}

func newRSAPSS(name string, hash crypto.Hash, public *rsa.PublicKey, private *rsa.PrivateKey) (Algorithm, error) {
	publicKey, err := checkRSAKeys(name, public, private)
	if err != nil {
		return nil, err
	}

	return &algRSAPSS{
		name: name,
		opts: &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
			Hash:       hash,
		},
		publicKey:  publicKey,
		privateKey: private,
	}, nil
}

// Name returns the algorithm name (e.g., "PS256", "PS384", "PS512").
func (a *algRSAPSS) Name() string {
	return a.name
}

// Sign creates an RSA-PSS signature with a random salt.
func (a *algRSAPSS) Sign(headerAndPayload []byte) ([]byte, error) {
	if a.privateKey == nil {
		return nil, fmt.Errorf("%w: %s: no private key to sign with", ErrInvalidKey, a.name)
	}

	h := a.opts.Hash.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return nil, err
	}

	hashed := h.Sum(nil)
	return rsa.SignPSS(rand.Reader, a.privateKey, a.opts.Hash, hashed, a.opts)
}

// Verify verifies an RSA-PSS signature.
func (a *algRSAPSS) Verify(headerAndPayload []byte, signature []byte) error {
	h := a.opts.Hash.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return err
	}

	hashed := h.Sum(nil)
	if err = rsa.VerifyPSS(a.publicKey, a.opts.Hash, hashed, signature, a.opts); err != nil {
		return ErrInvalidSignature
	}

	return nil
}
