package jwt

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

const sep = "."

// Token is a decoded, immutable, token.
//
// A Token returned by Decode is NOT trusted: nothing about its signature
// or its claims has been checked yet. Use a Verifier to get a verified Token.
type Token struct {
	raw          string
	header       *document
	payload      *document
	headerJSON   []byte
	payloadJSON  []byte
	signature    []byte
	signingInput string
	unsigned     bool // two segment form.
}

// Decode splits "token" on '.', decodes each segment and parses
// the header and the payload. It makes no trust decisions.
//
// It fails with ErrMalformedToken unless the token has two or three segments,
// ErrMalformedEncoding on bad base64url and ErrMalformedPayload when the header
// or the payload is not a JSON object.
func Decode(token string) (*Token, error) {
	parts := strings.Split(token, sep)
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 2 or 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	headerJSON, err := Base64Decode(parts[0])
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	payloadJSON, err := Base64Decode(parts[1])
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	var signature []byte
	if len(parts) == 3 {
		if signature, err = Base64Decode(parts[2]); err != nil {
			return nil, fmt.Errorf("signature: %w", err)
		}
	}

	header, err := decodeDocument(headerJSON)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	payload, err := decodeDocument(payloadJSON)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	return &Token{
		raw:          token,
		header:       header,
		payload:      payload,
		headerJSON:   headerJSON,
		payloadJSON:  payloadJSON,
		signature:    signature,
		signingInput: parts[0] + sep + parts[1],
		unsigned:     len(parts) == 2,
	}, nil
}

// Decode16 decodes a token produced by Creator.SignBase16.
func Decode16(token string) (*Token, error) {
	s, err := DecodeBase16(token)
	if err != nil {
		return nil, err
	}

	return Decode(s)
}

// Decode32 decodes a token produced by Creator.SignBase32.
func Decode32(token string) (*Token, error) {
	s, err := DecodeBase32(token)
	if err != nil {
		return nil, err
	}

	return Decode(s)
}

// Header returns the JOSE header.
func (t *Token) Header() Header {
	return Header{doc: t.header}
}

// Algorithm returns the header's self-declared "alg".
func (t *Token) Algorithm() string {
	return t.Header().Algorithm()
}

// Type returns the header's "typ".
func (t *Token) Type() string {
	return t.Header().Type()
}

// KeyID returns the header's "kid".
func (t *Token) KeyID() string {
	return t.Header().KeyID()
}

// HeaderClaim returns a header field.
func (t *Token) HeaderClaim(name string) Claim {
	return t.Header().Get(name)
}

// Claim returns the payload claim of "name", absent when the token does not hold it.
func (t *Token) Claim(name string) Claim {
	v, ok := t.payload.get(name)
	if !ok {
		return Claim{}
	}

	return newClaim(v)
}

// Claims returns all the payload claims.
func (t *Token) Claims() map[string]Claim {
	claims := make(map[string]Claim, t.payload.len())
	for _, name := range t.payload.keys {
		claims[name] = newClaim(t.payload.values[name])
	}

	return claims
}

// ClaimNames returns the payload claim names in source order.
func (t *Token) ClaimNames() []string {
	return t.payload.names()
}

// Issuer returns the "iss" claim.
func (t *Token) Issuer() string {
	s, _ := t.Claim(ClaimIssuer).AsString()
	return s
}

// Subject returns the "sub" claim.
func (t *Token) Subject() string {
	s, _ := t.Claim(ClaimSubject).AsString()
	return s
}

// Audience returns the "aud" claim. A single string
// is returned as a one element slice.
func (t *Token) Audience() []string {
	return audienceOf(t.Claim(ClaimAudience))
}

func audienceOf(c Claim) []string {
	if s, ok := c.AsString(); ok {
		return []string{s}
	}

	values, _ := c.AsStrings()
	return values
}

// ExpiresAt returns the "exp" claim, zero when absent or not a number.
func (t *Token) ExpiresAt() time.Time {
	v, _ := t.Claim(ClaimExpiresAt).AsTime()
	return v
}

// NotBefore returns the "nbf" claim, zero when absent or not a number.
func (t *Token) NotBefore() time.Time {
	v, _ := t.Claim(ClaimNotBefore).AsTime()
	return v
}

// IssuedAt returns the "iat" claim, zero when absent or not a number.
func (t *Token) IssuedAt() time.Time {
	v, _ := t.Claim(ClaimIssuedAt).AsTime()
	return v
}

// ID returns the "jti" claim.
func (t *Token) ID() string {
	s, _ := t.Claim(ClaimJWTID).AsString()
	return s
}

// RegisteredClaims returns the standard claims of the payload.
func (t *Token) RegisteredClaims() RegisteredClaims {
	seconds := func(name string) int64 {
		v, ok := t.Claim(name).AsTime()
		if !ok {
			return 0
		}
		return v.Unix()
	}

	return RegisteredClaims{
		NotBefore: seconds(ClaimNotBefore),
		IssuedAt:  seconds(ClaimIssuedAt),
		Expiry:    seconds(ClaimExpiresAt),
		ID:        t.ID(),
		Issuer:    t.Issuer(),
		Subject:   t.Subject(),
		Audience:  t.Audience(),
	}
}

// Unmarshal decodes the raw payload JSON into "dest".
// Struct fields tagged with `json:"name,required"` must be non-zero,
// otherwise it fails with a *ClaimError wrapping ErrMissingRequiredClaim.
//
// Example Code:
//
//	var claims struct {
//	    UserID string `json:"userId,required"`
//	}
//	err := tok.Unmarshal(&claims)
func (t *Token) Unmarshal(dest any) error {
	if err := json.Unmarshal(t.payloadJSON, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return meetRequirements(reflect.ValueOf(dest))
}

// HeaderJSON returns a copy of the decoded header bytes.
func (t *Token) HeaderJSON() []byte {
	return copyBytes(t.headerJSON)
}

// PayloadJSON returns a copy of the decoded payload bytes.
func (t *Token) PayloadJSON() []byte {
	return copyBytes(t.payloadJSON)
}

// Signature returns a copy of the raw signature, empty for unsigned tokens.
func (t *Token) Signature() []byte {
	return copyBytes(t.signature)
}

// SigningInput returns the encoded header "." payload, the exact bytes the signature covers.
func (t *Token) SigningInput() string {
	return t.signingInput
}

// Unsigned reports whether the token came in the two segment form.
func (t *Token) Unsigned() bool {
	return t.unsigned
}

// String returns the token as it was given to Decode.
func (t *Token) String() string {
	return t.raw
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}

	c := make([]byte, len(b))
	copy(c, b)
	return c
}
