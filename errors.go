package jwt

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformedEncoding indicates that a token segment (or an alternate
	// base16/base32 envelope) is not valid for its encoding: characters outside
	// the alphabet, padding where none is allowed or a length that cannot form
	// whole bytes.
	ErrMalformedEncoding = errors.New("jwt: malformed encoding")
	// ErrMalformedToken indicates that the token has not the expected form
	// (it's not two or three dot separated segments).
	ErrMalformedToken = errors.New("jwt: malformed token")
	// ErrMalformedPayload indicates that the header or the payload is not a JSON object,
	// or that a claim could not be projected to the requested type.
	ErrMalformedPayload = errors.New("jwt: malformed payload")
	// ErrInvalidKey indicates that the key material does not fit the algorithm.
	// Algorithm constructors return it, never the verification step.
	ErrInvalidKey = errors.New("jwt: invalid key")
	// ErrAlgorithmNotAllowed is returned when the "none" algorithm is used
	// without an explicit opt-in or when the token declares an algorithm
	// other than the one the verifier was pinned to.
	ErrAlgorithmNotAllowed = errors.New("jwt: algorithm not allowed")
	// ErrInvalidSignature indicates that signature verification has failed.
	//
	// Treat it as a security event: either the token was tampered with
	// or the wrong key was used.
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	// ErrMissingRequiredClaim indicates that a claim required by the
	// creator or by the verification policy is absent.
	ErrMissingRequiredClaim = errors.New("jwt: missing required claim")
	// ErrInvalidClaim indicates that a claim value is invalid or does not
	// match the value required by the verification policy.
	ErrInvalidClaim = errors.New("jwt: invalid claim")
	// ErrTokenExpired indicates that the token is used after "exp" (plus leeway).
	ErrTokenExpired = errors.New("jwt: token expired")
	// ErrTokenNotYetValid indicates that the token is used before "nbf" (minus leeway).
	ErrTokenNotYetValid = errors.New("jwt: token not valid yet")
)

// ClaimError reports a claim level failure.
// It wraps ErrMissingRequiredClaim or ErrInvalidClaim.
//
// Usage:
//
//	var claimErr *jwt.ClaimError
//	if errors.As(err, &claimErr) {
//	    log.Printf("rejected claim: %s", claimErr.Name)
//	}
type ClaimError struct {
	Name string
	Err  error
}

func (e *ClaimError) Error() string {
	switch e.Err {
	case ErrMissingRequiredClaim:
		return fmt.Sprintf("jwt: the Claim '%s' is required but missing.", e.Name)
	case ErrInvalidClaim:
		return fmt.Sprintf("jwt: the Claim '%s' value doesn't match the required one.", e.Name)
	default:
		return fmt.Sprintf("%v: %s", e.Err, e.Name)
	}
}

func (e *ClaimError) Unwrap() error {
	return e.Err
}

func missingClaim(name string) error {
	return &ClaimError{Name: name, Err: ErrMissingRequiredClaim}
}

func invalidClaim(name string) error {
	return &ClaimError{Name: name, Err: ErrInvalidClaim}
}

// TimeError reports a violated time window, At is the boundary
// (exp + leeway or nbf - leeway) that "now" crossed.
// It wraps ErrTokenExpired or ErrTokenNotYetValid.
type TimeError struct {
	At  time.Time
	Err error
}

func (e *TimeError) Error() string {
	switch e.Err {
	case ErrTokenExpired:
		return fmt.Sprintf("jwt: the Token has expired on %s.", e.At.UTC().Format(time.RFC1123))
	case ErrTokenNotYetValid:
		return fmt.Sprintf("jwt: the Token can't be used before %s.", e.At.UTC().Format(time.RFC1123))
	default:
		return fmt.Sprintf("%v: %s", e.Err, e.At.UTC().Format(time.RFC3339))
	}
}

func (e *TimeError) Unwrap() error {
	return e.Err
}
