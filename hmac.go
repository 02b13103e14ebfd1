package jwt

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha256" // ignore:lint
	_ "crypto/sha512"
	"fmt"
	"os"
)

type algHMAC struct {
	name   string
	hasher crypto.Hash
	secret []byte
}

// HMAC256 returns the HS256 algorithm bound to the shared "secret".
// An empty secret fails with ErrInvalidKey.
func HMAC256(secret []byte) (Algorithm, error) {
	return newHMAC(NameHS256, crypto.SHA256, secret)
}

// HMAC384 returns the HS384 algorithm bound to the shared "secret".
func HMAC384(secret []byte) (Algorithm, error) {
	return newHMAC(NameHS384, crypto.SHA384, secret)
}

// HMAC512 returns the HS512 algorithm bound to the shared "secret".
func HMAC512(secret []byte) (Algorithm, error) {
	return newHMAC(NameHS512, crypto.SHA512, secret)
}

func newHMAC(name string, hasher crypto.Hash, secret []byte) (Algorithm, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: %s: empty secret", ErrInvalidKey, name)
	}

	// Own the secret, the caller may reuse its buffer.
	key := make([]byte, len(secret))
	copy(key, secret)

	return &algHMAC{name: name, hasher: hasher, secret: key}, nil
}

func (a *algHMAC) Name() string {
	return a.name
}

func (a *algHMAC) Sign(headerAndPayload []byte) ([]byte, error) {
	h := hmac.New(a.hasher.New, a.secret)
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return nil, err // this should never happen according to the internal docs.
	}

	return h.Sum(nil), nil
}

func (a *algHMAC) Verify(headerAndPayload []byte, signature []byte) error {
	expectedSignature, err := a.Sign(headerAndPayload)
	if err != nil {
		return err
	}

	// constant time.
	if !hmac.Equal(expectedSignature, signature) {
		return ErrInvalidSignature
	}

	return nil
}

// Key Helper.

// ReadFile is used to read key files from the local disk.
// It can be replaced to read keys from an embedded filesystem.
var ReadFile = os.ReadFile

// MustLoadHMAC accepts a single filename
// which its plain text data should contain the HMAC shared key.
//
// It panics if the file was not found or unable to read from.
func MustLoadHMAC(filenameOrRaw string) []byte {
	key, err := LoadHMAC(filenameOrRaw)
	if err != nil {
		panic(err)
	}

	return key
}

// LoadHMAC accepts a single filename
// which its plain text data should contain the HMAC shared key.
// If the file does not exist, the argument itself is the key.
func LoadHMAC(filenameOrRaw string) ([]byte, error) {
	if fileExists(filenameOrRaw) {
		// load contents from file.
		return ReadFile(filenameOrRaw)
	}

	// otherwise just cast the argument to []byte
	return []byte(filenameOrRaw), nil
}

// fileExists tries to report whether the local physical "path" exists and it's not a directory.
func fileExists(path string) bool {
	f, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}
