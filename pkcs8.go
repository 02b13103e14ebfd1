package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/youmark/pkcs8"
)

// ErrKeyPassword is returned by ParsePrivateKey when an encrypted
// PKCS#8 key is given without a password or with a wrong one.
var ErrKeyPassword = errors.New("jwt: missing or invalid private key password")

// LoadPrivateKey reads a PEM-encoded private key file, see ParsePrivateKey.
func LoadPrivateKey(filename string, password []byte) (crypto.PrivateKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePrivateKey(b, password)
}

// LoadPublicKey reads a PEM-encoded public key file, see ParsePublicKey.
func LoadPublicKey(filename string) (crypto.PublicKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePublicKey(b)
}

// ParsePrivateKey decodes a PEM-encoded private key of any supported family:
// PKCS#1 ("RSA PRIVATE KEY"), SEC 1 ("EC PRIVATE KEY"), PKCS#8 ("PRIVATE KEY")
// and password protected PKCS#8 ("ENCRYPTED PRIVATE KEY").
//
// The result is a *rsa.PrivateKey, *ecdsa.PrivateKey or ed25519.PrivateKey,
// ready to be passed to NewAlgorithm.
func ParsePrivateKey(key []byte, password []byte) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, fmt.Errorf("private key: malformed or missing PEM format")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		return x509.ParseECPrivateKey(block.Bytes)
	case "ENCRYPTED PRIVATE KEY":
		if len(password) == 0 {
			return nil, ErrKeyPassword
		}

		parsed, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		if err != nil {
			// a wrong password usually surfaces as an ASN.1 error of the decrypted bytes.
			return nil, fmt.Errorf("%w: %v", ErrKeyPassword, err)
		}

		return checkPrivateKeyType(parsed)
	default:
		parsed, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("private key: %w", err)
		}

		return checkPrivateKeyType(parsed)
	}
}

func checkPrivateKeyType(key any) (crypto.PrivateKey, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey, *ecdsa.PrivateKey:
		return k, nil
	case ed25519.PrivateKey:
		return k, nil
	case *ed25519.PrivateKey:
		return *k, nil
	default:
		return nil, fmt.Errorf("private key: unsupported key type %T", key)
	}
}

// ParsePublicKey decodes a PEM-encoded PKIX public key, PKCS#1 RSA public key
// or the public key of a certificate.
// The result is a *rsa.PublicKey, *ecdsa.PublicKey or ed25519.PublicKey.
func ParsePublicKey(key []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, fmt.Errorf("public key: malformed or missing PEM format")
	}

	var (
		parsed any
		err    error
	)

	switch block.Type {
	case "RSA PUBLIC KEY":
		parsed, err = x509.ParsePKCS1PublicKey(block.Bytes)
	case "CERTIFICATE":
		var cert *x509.Certificate
		if cert, err = x509.ParseCertificate(block.Bytes); err == nil {
			parsed = cert.PublicKey
		}
	default:
		parsed, err = x509.ParsePKIXPublicKey(block.Bytes)
	}
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}

	switch k := parsed.(type) {
	case *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey:
		return k, nil
	default:
		return nil, fmt.Errorf("public key: unsupported key type %T", parsed)
	}
}

// MustLoadEdDSA accepts private and public PEM filenames
// and returns a pair of private and public ed25519 keys.
//
// It panics if the files were not found or unable to read from.
func MustLoadEdDSA(privateKeyFilename, publicKeyFilename string) (ed25519.PrivateKey, ed25519.PublicKey) {
	privateKey, err := LoadPrivateKeyEdDSA(privateKeyFilename)
	if err != nil {
		panic(err)
	}

	publicKey, err := LoadPublicKeyEdDSA(publicKeyFilename)
	if err != nil {
		panic(err)
	}

	return privateKey, publicKey
}

// LoadPrivateKeyEdDSA accepts a file path of a PEM-encoded ed25519 private key
// and returns the ed25519 private key Go value.
func LoadPrivateKeyEdDSA(filename string) (ed25519.PrivateKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePrivateKeyEdDSA(b)
}

// LoadPublicKeyEdDSA accepts a file path of a PEM-encoded ed25519 public key
// and returns the ed25519 public key Go value.
func LoadPublicKeyEdDSA(filename string) (ed25519.PublicKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePublicKeyEdDSA(b)
}

// ParsePrivateKeyEdDSA decodes and parses the
// PEM-encoded ed25519 (PKCS#8) private key's raw contents.
func ParsePrivateKeyEdDSA(key []byte) (ed25519.PrivateKey, error) {
	parsed, err := ParsePrivateKey(key, nil)
	if err != nil {
		return nil, err
	}

	privateKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key: expected a type of ed25519.PrivateKey")
	}

	return privateKey, nil
}

// ParsePublicKeyEdDSA decodes and parses the
// PEM-encoded ed25519 public key's raw contents.
func ParsePublicKeyEdDSA(key []byte) (ed25519.PublicKey, error) {
	parsed, err := ParsePublicKey(key)
	if err != nil {
		return nil, err
	}

	publicKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key: expected a type of ed25519.PublicKey")
	}

	return publicKey, nil
}
