package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"
)

// algECDSA implements the Algorithm interface for ECDSA signature algorithms.
// Signatures are the fixed size R || S concatenation of RFC 7518 §3.4,
// not the ASN.1 form crypto/ecdsa produces by default.
type algECDSA struct {
	name       string
	hasher     crypto.Hash
	curve      elliptic.Curve
	keySize    int // bytes of R and S each.
	publicKey  *ecdsa.PublicKey
	privateKey *ecdsa.PrivateKey
}

// ECDSA256 returns the ES256 algorithm, keys must be on the P-256 curve.
// The private key is only required for signing; when "public" is nil
// it is derived from "private".
func ECDSA256(public *ecdsa.PublicKey, private *ecdsa.PrivateKey) (Algorithm, error) {
	return newECDSA(NameES256, crypto.SHA256, elliptic.P256(), 32, public, private)
}

// ECDSA384 returns the ES384 algorithm, keys must be on the P-384 curve.
func ECDSA384(public *ecdsa.PublicKey, private *ecdsa.PrivateKey) (Algorithm, error) {
	return newECDSA(NameES384, crypto.SHA384, elliptic.P384(), 48, public, private)
}

// ECDSA512 returns the ES512 algorithm, keys must be on the P-521 curve.
func ECDSA512(public *ecdsa.PublicKey, private *ecdsa.PrivateKey) (Algorithm, error) {
	return newECDSA(NameES512, crypto.SHA512, elliptic.P521(), 66, public, private)
}

func newECDSA(name string, hasher crypto.Hash, curve elliptic.Curve, keySize int, public *ecdsa.PublicKey, private *ecdsa.PrivateKey) (Algorithm, error) {
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

	if public.Curve == nil || public.Curve.Params().Name != curve.Params().Name {
		return nil, fmt.Errorf("%w: %s: expected a key on the %s curve", ErrInvalidKey, name, curve.Params().Name)
	}

	return &algECDSA{
		name:       name,
		hasher:     hasher,
		curve:      curve,
		keySize:    keySize,
		publicKey:  public,
		privateKey: private,
	}, nil
}

func (a *algECDSA) Name() string {
	return a.name
}

func (a *algECDSA) Sign(headerAndPayload []byte) ([]byte, error) {
	if a.privateKey == nil {
		return nil, fmt.Errorf("%w: %s: no private key to sign with", ErrInvalidKey, a.name)
	}

	h := a.hasher.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return nil, err
	}

	r, s, err := ecdsa.Sign(rand.Reader, a.privateKey, h.Sum(nil))
	if err != nil {
		return nil, err
	}

	// Left pad R and S to the key size.
	signature := make([]byte, 2*a.keySize)
	r.FillBytes(signature[:a.keySize])
	s.FillBytes(signature[a.keySize:])

	return signature, nil
}

func (a *algECDSA) Verify(headerAndPayload []byte, signature []byte) error {
	if len(signature) != 2*a.keySize {
		return ErrInvalidSignature
	}

	h := a.hasher.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return err
	}

	r := new(big.Int).SetBytes(signature[:a.keySize])
	s := new(big.Int).SetBytes(signature[a.keySize:])

	if !ecdsa.Verify(a.publicKey, h.Sum(nil), r, s) {
		return ErrInvalidSignature
	}

	return nil
}

// Key Helpers.

// MustLoadECDSA accepts private and public PEM file paths
// and returns a pair of private and public ECDSA keys.
// Pass the returned private key to one of the ECDSA algorithms.
//
// It panics if the files were not found or unable to read from.
func MustLoadECDSA(privateKeyFilename, publicKeyFilename string) (*ecdsa.PrivateKey, *ecdsa.PublicKey) {
	privateKey, err := LoadPrivateKeyECDSA(privateKeyFilename)
	if err != nil {
		panic(err)
	}

	publicKey, err := LoadPublicKeyECDSA(publicKeyFilename)
	if err != nil {
		panic(err)
	}

	return privateKey, publicKey
}

// LoadPrivateKeyECDSA accepts a file path of a PEM-encoded ECDSA private key
// and returns the ECDSA private key Go value.
func LoadPrivateKeyECDSA(filename string) (*ecdsa.PrivateKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePrivateKeyECDSA(b)
}

// LoadPublicKeyECDSA accepts a file path of a PEM-encoded ECDSA public key
// and returns the ECDSA public key Go value.
func LoadPublicKeyECDSA(filename string) (*ecdsa.PublicKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePublicKeyECDSA(b)
}

// ParsePrivateKeyECDSA decodes and parses the
// PEM-encoded ECDSA private key's raw contents,
// SEC 1 ("EC PRIVATE KEY") or PKCS#8.
func ParsePrivateKeyECDSA(key []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, fmt.Errorf("private key: malformed or missing PEM format (ECDSA)")
	}

	if privateKey, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return privateKey, nil
	}

	parsedKey, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	privateKey, ok := parsedKey.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key: expected a type of *ecdsa.PrivateKey")
	}

	return privateKey, nil
}

// ParsePublicKeyECDSA decodes and parses the
// PEM-encoded ECDSA public key's raw contents.
func ParsePublicKeyECDSA(key []byte) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, fmt.Errorf("public key: malformed or missing PEM format (ECDSA)")
	}

	parsedKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		if cert, err := x509.ParseCertificate(block.Bytes); err == nil {
			parsedKey = cert.PublicKey
		} else {
			return nil, err
		}
	}

	publicKey, ok := parsedKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key: expected a type of *ecdsa.PublicKey")
	}

	return publicKey, nil
}
