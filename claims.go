package jwt

import "time"

// Registered claim names (RFC 7519 §4.1).
const (
	ClaimIssuer    = "iss"
	ClaimSubject   = "sub"
	ClaimAudience  = "aud"
	ClaimExpiresAt = "exp"
	ClaimNotBefore = "nbf"
	ClaimIssuedAt  = "iat"
	ClaimJWTID     = "jti"
)

// IsRegisteredClaim reports whether "name" is one of the registered claim names.
func IsRegisteredClaim(name string) bool {
	switch name {
	case ClaimIssuer, ClaimSubject, ClaimAudience, ClaimExpiresAt, ClaimNotBefore, ClaimIssuedAt, ClaimJWTID:
		return true
	default:
		return false
	}
}

// RegisteredClaims holds the standard JWT claims of a decoded token.
// Absent claims are left to their zero value. See Token.RegisteredClaims.
type RegisteredClaims struct {
	// The opposite of the exp claim. A number representing a specific
	// date and time in the format “seconds since epoch” as defined by POSIX.
	// This claim sets the exact moment from which this JWT is considered valid.
	NotBefore int64 `json:"nbf,omitempty"`
	// A number representing a specific date and time (in the same
	// format as exp and nbf) at which this JWT was issued.
	IssuedAt int64 `json:"iat,omitempty"`
	// A number representing a specific date and time in the
	// format “seconds since epoch” as defined by POSIX.
	// This claims sets the exact moment from which
	// this JWT is considered invalid. The Verifier allows for a certain skew
	// between clocks, see Verification.AcceptExpiresAt.
	Expiry int64 `json:"exp,omitempty"`
	// A string representing a unique identifier for this JWT. This claim may be
	// used to differentiate JWTs with other similar content (preventing replays, for instance). It is
	// up to the implementation to guarantee uniqueness.
	ID string `json:"jti,omitempty"`
	// A string or URI that uniquely identifies the party
	// that issued the JWT. Its interpretation is application specific (there is no central authority
	// managing issuers).
	Issuer string `json:"iss,omitempty"`
	// A string or URI that uniquely identifies the party
	// that this JWT carries information about.
	Subject string `json:"sub,omitempty"`
	// Either a single string or URI or an array of such
	// values that uniquely identify the intended recipients of this JWT.
	// A single string is returned as a one element slice.
	Audience []string `json:"aud,omitempty"`
}

// ExpiresAt returns the "exp" claim as time, zero when absent.
func (c RegisteredClaims) ExpiresAt() time.Time {
	return unixOrZero(c.Expiry)
}

// NotBeforeTime returns the "nbf" claim as time, zero when absent.
func (c RegisteredClaims) NotBeforeTime() time.Time {
	return unixOrZero(c.NotBefore)
}

// IssuedAtTime returns the "iat" claim as time, zero when absent.
func (c RegisteredClaims) IssuedAtTime() time.Time {
	return unixOrZero(c.IssuedAt)
}

// Timeleft returns the remaining time before the token expires at "now",
// zero when it has no "exp" claim or it is already expired.
func (c RegisteredClaims) Timeleft(now time.Time) time.Duration {
	if c.Expiry == 0 {
		return 0
	}

	if left := time.Unix(c.Expiry, 0).Sub(now); left > 0 {
		return left
	}

	return 0
}

func unixOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}

	return time.Unix(sec, 0)
}
