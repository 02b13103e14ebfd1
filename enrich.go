package jwt

import (
	"fmt"
	"sort"
)

// Creator returns a new Creator holding the claims and the extra header
// fields ("kid", "cty"...) of the token, in source order.
// The "alg" field is dropped, the new token takes the name of the Algorithm passed to Sign.
func (t *Token) Creator() *Creator {
	c := NewCreator()
	c.payload = t.payload.clone()

	for _, name := range t.header.keys {
		if name == HeaderAlgorithm {
			continue
		}
		c.header.put(name, t.header.values[name])
	}

	return c
}

// Enrich creates a new token by merging the claims of "tok" with "extraClaims"
// and signing the result with "alg". Extra claims override existing ones
// and are appended in sorted key order.
//
// It's not possible to modify just the payload of a JWT without changing
// the signature, since the signature is calculated over the entire header.payload content.
// Enrich does not verify "tok": pass a Token returned by a Verifier.
//
// Example usage:
//
//	tok, err := verifier.Verify(accessToken, time.Now())
//	if err != nil { ... }
//	enriched, err := jwt.Enrich(tok, alg, map[string]any{
//	    "role":        "admin",
//	    "permissions": []string{"read", "write", "delete"},
//	})
func Enrich(tok *Token, alg Algorithm, extraClaims map[string]any) (string, error) {
	if tok == nil {
		return "", fmt.Errorf("enrich: %w", ErrMalformedToken)
	}

	names := make([]string, 0, len(extraClaims))
	for name := range extraClaims {
		names = append(names, name)
	}
	sort.Strings(names)

	c := tok.Creator()
	for _, name := range names {
		c.WithClaim(name, extraClaims[name])
	}

	return c.Sign(alg)
}
