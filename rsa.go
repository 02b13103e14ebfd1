package jwt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// minRSAKeyBits is the smallest modulus accepted for RS* and PS* (RFC 7518 §3.3).
const minRSAKeyBits = 2048

// algRSA implements the Algorithm interface for RSA signature algorithms.
// It supports RS256, RS384, and RS512 variants using PKCS#1 v1.5 padding
// with SHA-256, SHA-384, and SHA-512 respectively.
type algRSA struct {
	name       string      // Algorithm name (e.g., "RS256", "RS384", "RS512")
	hasher     crypto.Hash // Hash function to use (SHA256, SHA384, or SHA512)
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey // nil for verify-only algorithms.
}

// RSA256 returns the RS256 algorithm. The private key is only required
// for signing; when "public" is nil it is derived from "private".
// Both nil, a modulus below 2048 bits or a public key that does not
// belong to the private one fail with ErrInvalidKey.
func RSA256(public *rsa.PublicKey, private *rsa.PrivateKey) (Algorithm, error) {
	return newRSA(NameRS256, crypto.SHA256, public, private)
}

// RSA384 returns the RS384 algorithm, see RSA256.
func RSA384(public *rsa.PublicKey, private *rsa.PrivateKey) (Algorithm, error) {
	return newRSA(NameRS384, crypto.SHA384, public, private)
}

// RSA512 returns the RS512 algorithm, see RSA256.
func RSA512(public *rsa.PublicKey, private *rsa.PrivateKey) (Algorithm, error) {
	return newRSA(NameRS512, crypto.SHA512, public, private)
}

func newRSA(name string, hasher crypto.Hash, public *rsa.PublicKey, private *rsa.PrivateKey) (Algorithm, error) {
	publicKey, err := checkRSAKeys(name, public, private)
	if err != nil {
		return nil, err
	}

	return &algRSA{name: name, hasher: hasher, publicKey: publicKey, privateKey: private}, nil
}

// checkRSAKeys validates an RSA key pair and returns the public key to verify with.
func checkRSAKeys(name string, public *rsa.PublicKey, private *rsa.PrivateKey) (*rsa.PublicKey, error) {
	if public == nil && private == nil {
		return nil, fmt.Errorf("%w: %s: missing key", ErrInvalidKey, name)
	}

	if private != nil {
		if public == nil {
			public = &private.PublicKey
		} else if !public.Equal(&private.PublicKey) {
			return nil, fmt.Errorf("%w: %s: public key does not match the private key", ErrInvalidKey, name)
		}
	}

	if public.N == nil || public.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: %s: key size must be at least %d bits", ErrInvalidKey, name, minRSAKeyBits)
	}

	return public, nil
}

// Name returns the algorithm name (e.g., "RS256", "RS384", "RS512").
func (a *algRSA) Name() string {
	return a.name
}

// Sign creates an RSA signature using PKCS#1 v1.5 padding.
// Verify-only instances return ErrInvalidKey.
func (a *algRSA) Sign(headerAndPayload []byte) ([]byte, error) {
	if a.privateKey == nil {
		return nil, fmt.Errorf("%w: %s: no private key to sign with", ErrInvalidKey, a.name)
	}

	h := a.hasher.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return nil, err
	}

	hashed := h.Sum(nil)
	return rsa.SignPKCS1v15(rand.Reader, a.privateKey, a.hasher, hashed)
}

// Verify verifies an RSA signature using PKCS#1 v1.5 padding.
func (a *algRSA) Verify(headerAndPayload []byte, signature []byte) error {
	h := a.hasher.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return err
	}

	hashed := h.Sum(nil)
	if err = rsa.VerifyPKCS1v15(a.publicKey, a.hasher, hashed, signature); err != nil {
		return ErrInvalidSignature
	}

	return nil
}

// Key Helpers.

// MustLoadRSA accepts private and public PEM file paths
// and returns a pair of private and public RSA keys.
//
// This function panics if either key file cannot be read or parsed.
// Use LoadPrivateKeyRSA and LoadPublicKeyRSA for error handling.
//
// Example:
//
//	privateKey, publicKey := jwt.MustLoadRSA("rsa_private.pem", "rsa_public.pem")
//	alg, err := jwt.RSA256(publicKey, privateKey)
func MustLoadRSA(privateKeyFilename, publicKeyFilename string) (*rsa.PrivateKey, *rsa.PublicKey) {
	privateKey, err := LoadPrivateKeyRSA(privateKeyFilename)
	if err != nil {
		panic(err)
	}

	publicKey, err := LoadPublicKeyRSA(publicKeyFilename)
	if err != nil {
		panic(err)
	}

	return privateKey, publicKey
}

// LoadPrivateKeyRSA loads and parses a PEM-encoded RSA private key from a file.
func LoadPrivateKeyRSA(filename string) (*rsa.PrivateKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePrivateKeyRSA(b)
}

// LoadPublicKeyRSA loads and parses a PEM-encoded RSA public key from a file.
func LoadPublicKeyRSA(filename string) (*rsa.PublicKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePublicKeyRSA(b)
}

// ParsePrivateKeyRSA decodes and parses PEM-encoded RSA private key bytes
// in PKCS#1 or PKCS#8 format.
func ParsePrivateKeyRSA(key []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, fmt.Errorf("private key: malformed or missing PEM format (RSA)")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
			pKey, ok := key.(*rsa.PrivateKey)
			if !ok {
				return nil, fmt.Errorf("private key: expected a type of *rsa.PrivateKey")
			}

			privateKey = pKey
		} else {
			return nil, err
		}
	}

	return privateKey, nil
}

// ParsePublicKeyRSA decodes and parses PEM-encoded RSA public key bytes
// in PKIX format, or a certificate containing an RSA public key.
func ParsePublicKeyRSA(key []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, fmt.Errorf("public key: malformed or missing PEM format (RSA)")
	}

	parsedKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		if cert, err := x509.ParseCertificate(block.Bytes); err == nil {
			parsedKey = cert.PublicKey
		} else {
			return nil, err
		}
	}

	publicKey, ok := parsedKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key: expected a type of *rsa.PublicKey")
	}

	return publicKey, nil
}
