package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Verifier checks tokens against a pinned Algorithm and a claims policy.
// It is built by Verification.Build, is immutable and safe for concurrent use.
//
// Verification runs in this order and stops at the first failure:
//  1. the header "alg" must equal the pinned Algorithm name (ErrAlgorithmNotAllowed)
//  2. the signature (ErrInvalidSignature)
//  3. the required claims (ErrMissingRequiredClaim)
//  4. the exact-match claims (ErrInvalidClaim)
//  5. "exp", "iat" and "nbf" against "now" and the leeway
//     (ErrTokenExpired, ErrInvalidClaim, ErrTokenNotYetValid)
//  6. the custom validators
type Verifier struct {
	alg        Algorithm
	expected   *document
	required   []string
	leeways    map[string]time.Duration
	allowNone  bool
	logger     logrus.FieldLogger
	observer   Observer
	validators []TokenValidator
}

// Verify decodes and verifies "token" at "now".
// The returned Token holds the claims as typed Claim values.
//
// Example Code:
//
//	tok, err := verifier.Verify(token, time.Now())
//	if err != nil {
//	    var claimErr *jwt.ClaimError
//	    if errors.As(err, &claimErr) { ... }
//	    return err
//	}
func (v *Verifier) Verify(token string, now time.Time) (*Token, error) {
	return v.verifyEncoded(token, now, Decode)
}

// VerifyBase16 verifies a token produced by Creator.SignBase16.
func (v *Verifier) VerifyBase16(token string, now time.Time) (*Token, error) {
	return v.verifyEncoded(token, now, Decode16)
}

// VerifyBase32 verifies a token produced by Creator.SignBase32.
func (v *Verifier) VerifyBase32(token string, now time.Time) (*Token, error) {
	return v.verifyEncoded(token, now, Decode32)
}

// VerifyToken verifies an already decoded token.
func (v *Verifier) VerifyToken(tok *Token, now time.Time) (*Token, error) {
	return v.verifyDecoded(tok, now, time.Now())
}

func (v *Verifier) verifyEncoded(token string, now time.Time, decode func(string) (*Token, error)) (*Token, error) {
	start := time.Now()

	tok, err := decode(token)
	if err != nil {
		v.reject("", err)
		v.observe(start, err)
		return nil, err
	}

	return v.verifyDecoded(tok, now, start)
}

func (v *Verifier) verifyDecoded(tok *Token, now time.Time, start time.Time) (*Token, error) {
	err := v.verify(tok, now)
	v.observe(start, err)
	if err != nil {
		declared := ""
		if tok != nil {
			declared = tok.Algorithm()
		}
		v.reject(declared, err)
		return nil, err
	}

	return tok, nil
}

func (v *Verifier) verify(tok *Token, now time.Time) error {
	if tok == nil {
		return ErrMalformedToken
	}

	if err := v.checkAlgorithm(tok); err != nil {
		return err
	}

	if err := v.alg.Verify([]byte(tok.signingInput), tok.signature); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			return ErrInvalidSignature
		}
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	for _, name := range v.required {
		if c := tok.Claim(name); c.IsAbsent() || c.IsNull() {
			return missingClaim(name)
		}
	}

	for _, name := range v.expected.keys {
		got, ok := tok.payload.get(name)
		if !ok || !claimMatches(name, v.expected.values[name], got) {
			return invalidClaim(name)
		}
	}

	if err := v.checkTime(tok, now); err != nil {
		return err
	}

	for _, validator := range v.validators {
		if err := validator.ValidateToken(tok); err != nil {
			return err
		}
	}

	return nil
}

func (v *Verifier) checkAlgorithm(tok *Token) error {
	none := isNone(v.alg)
	if none && !v.allowNone {
		return fmt.Errorf("%w: none algorithm isn't allowed", ErrAlgorithmNotAllowed)
	}

	// Never trust the token to pick the algorithm, only compare.
	if declared := tok.Algorithm(); declared != v.alg.Name() {
		return fmt.Errorf("%w: expected %q", ErrAlgorithmNotAllowed, v.alg.Name())
	}

	if tok.unsigned && !none {
		return fmt.Errorf("%w: missing signature segment", ErrMalformedToken)
	}

	return nil
}

func claimMatches(name string, expected, got any) bool {
	if name == ClaimAudience {
		return multisetEqual(asArray(expected), asArray(got))
	}

	return valuesEqual(expected, got)
}

func (v *Verifier) checkTime(tok *Token, now time.Time) error {
	exp, ok, err := timeClaim(tok, ClaimExpiresAt)
	if err != nil {
		return err
	}
	if ok {
		// inclusive: a token is still valid at exactly exp + leeway.
		if limit := exp.Add(v.leeways[ClaimExpiresAt]); now.After(limit) {
			return &TimeError{At: limit, Err: ErrTokenExpired}
		}
	}

	iat, ok, err := timeClaim(tok, ClaimIssuedAt)
	if err != nil {
		return err
	}
	if ok && now.Before(iat.Add(-v.leeways[ClaimIssuedAt])) {
		return invalidClaim(ClaimIssuedAt)
	}

	nbf, ok, err := timeClaim(tok, ClaimNotBefore)
	if err != nil {
		return err
	}
	if ok {
		if limit := nbf.Add(-v.leeways[ClaimNotBefore]); now.Before(limit) {
			return &TimeError{At: limit, Err: ErrTokenNotYetValid}
		}
	}

	return nil
}

// timeClaim reports false when the claim is absent, a present non-numeric value is invalid.
func timeClaim(tok *Token, name string) (time.Time, bool, error) {
	c := tok.Claim(name)
	if c.IsAbsent() {
		return time.Time{}, false, nil
	}

	t, ok := c.AsTime()
	if !ok {
		return time.Time{}, false, invalidClaim(name)
	}

	return t, true, nil
}

func (v *Verifier) observe(start time.Time, err error) {
	if v.observer != nil {
		v.observer.ObserveVerify(v.alg.Name(), time.Since(start), err)
	}
}

func (v *Verifier) reject(declared string, err error) {
	v.logger.WithFields(logrus.Fields{
		"alg_pinned":   v.alg.Name(),
		"alg_declared": declared,
		"reason":       err.Error(),
	}).Debug("jwt: token rejected")
}
