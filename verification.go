package jwt

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenValidator provides further token validation, after the signature,
// the required and exact-match claims and the time windows have been checked.
type TokenValidator interface {
	ValidateToken(tok *Token) error
}

// TokenValidatorFunc is the interface-as-function shortcut for a TokenValidator.
type TokenValidatorFunc func(tok *Token) error

// ValidateToken completes the TokenValidator interface.
func (fn TokenValidatorFunc) ValidateToken(tok *Token) error {
	return fn(tok)
}

// Verification is the builder of a Verifier policy: the pinned Algorithm,
// the claims that must be present, the claims that must hold an exact value
// and the clock skew tolerated on "exp", "nbf" and "iat".
//
// Like the Creator, invalid input is recorded eagerly and returned by Build.
//
// Example Code:
//
//	verifier, err := jwt.Require(alg).
//	    WithIssuer("auth0").
//	    WithClaim("userId", "u1").
//	    AcceptLeeway(time.Minute).
//	    Build()
type Verification struct {
	alg        Algorithm
	expected   *document
	required   []string
	leeway     time.Duration
	leeways    map[string]time.Duration
	allowNone  bool
	logger     logrus.FieldLogger
	observer   Observer
	validators []TokenValidator
	err        error
}

// Require starts a Verification pinned to "alg". Tokens declaring
// any other "alg" header are rejected with ErrAlgorithmNotAllowed.
func Require(alg Algorithm) *Verification {
	return &Verification{
		alg:      alg,
		expected: newDocument(),
		leeways:  make(map[string]time.Duration),
	}
}

func (v *Verification) fail(err error) *Verification {
	if v.err == nil {
		v.err = err
	}

	return v
}

func (v *Verification) expect(name string, value any) *Verification {
	if v.err != nil {
		return v
	}

	if name == "" {
		return v.fail(fmt.Errorf("%w: empty claim name", ErrInvalidClaim))
	}

	n, err := normalizeValue(value)
	if err != nil {
		return v.fail(&ClaimError{Name: name, Err: fmt.Errorf("%w: %v", ErrInvalidClaim, err)})
	}

	v.expected.put(name, n)
	return v
}

// WithIssuer requires the "iss" claim to be "issuer".
func (v *Verification) WithIssuer(issuer string) *Verification {
	return v.expect(ClaimIssuer, issuer)
}

// WithSubject requires the "sub" claim to be "subject".
func (v *Verification) WithSubject(subject string) *Verification {
	return v.expect(ClaimSubject, subject)
}

// WithAudience requires the "aud" claim to hold exactly the given audiences,
// in any order. A token "aud" string equals a one element audience.
func (v *Verification) WithAudience(audience ...string) *Verification {
	if len(audience) == 0 {
		if v.err != nil {
			return v
		}
		return v.fail(invalidClaim(ClaimAudience))
	}

	return v.expect(ClaimAudience, audience)
}

// WithJWTID requires the "jti" claim to be "id".
func (v *Verification) WithJWTID(id string) *Verification {
	return v.expect(ClaimJWTID, id)
}

// WithClaim requires the claim "name" to be equal to "expected",
// which accepts the same kinds as Creator.WithClaim. Numbers compare
// by value, times by epoch seconds and arrays ignore the order.
func (v *Verification) WithClaim(name string, expected any) *Verification {
	return v.expect(name, expected)
}

// WithArrayClaim requires the claim "name" to hold exactly
// the given strings, in any order.
func (v *Verification) WithArrayClaim(name string, values ...string) *Verification {
	if values == nil {
		values = []string{}
	}

	return v.expect(name, values)
}

// RequireClaim requires the claims to be present, with any non-null value.
func (v *Verification) RequireClaim(names ...string) *Verification {
	v.required = append(v.required, names...)
	return v
}

// AcceptLeeway sets the default clock skew tolerance of "exp", "nbf" and "iat".
func (v *Verification) AcceptLeeway(leeway time.Duration) *Verification {
	if leeway < 0 {
		return v.fail(fmt.Errorf("jwt: leeway must be a non-negative duration, got %s", leeway))
	}

	v.leeway = leeway
	return v
}

// AcceptExpiresAt overrides the leeway of "exp".
func (v *Verification) AcceptExpiresAt(leeway time.Duration) *Verification {
	return v.acceptFor(ClaimExpiresAt, leeway)
}

// AcceptNotBefore overrides the leeway of "nbf".
func (v *Verification) AcceptNotBefore(leeway time.Duration) *Verification {
	return v.acceptFor(ClaimNotBefore, leeway)
}

// AcceptIssuedAt overrides the leeway of "iat".
func (v *Verification) AcceptIssuedAt(leeway time.Duration) *Verification {
	return v.acceptFor(ClaimIssuedAt, leeway)
}

func (v *Verification) acceptFor(name string, leeway time.Duration) *Verification {
	if leeway < 0 {
		return v.fail(fmt.Errorf("jwt: %s leeway must be a non-negative duration, got %s", name, leeway))
	}

	v.leeways[name] = leeway
	return v
}

// AllowNone permits the unsecured "none" algorithm. Defaults to false.
func (v *Verification) AllowNone(allow bool) *Verification {
	v.allowNone = allow
	return v
}

// WithLogger sets the logger rejected tokens are reported to, at debug level.
func (v *Verification) WithLogger(logger logrus.FieldLogger) *Verification {
	v.logger = logger
	return v
}

// WithObserver reports every verification outcome to "o".
func (v *Verification) WithObserver(o Observer) *Verification {
	v.observer = o
	return v
}

// WithValidator appends custom validators, run last in the given order.
func (v *Verification) WithValidator(validators ...TokenValidator) *Verification {
	v.validators = append(v.validators, validators...)
	return v
}

// Build returns the immutable Verifier of this policy.
func (v *Verification) Build() (*Verifier, error) {
	if v.err != nil {
		return nil, v.err
	}

	if v.alg == nil {
		return nil, fmt.Errorf("%w: nil algorithm", ErrInvalidKey)
	}

	logger := v.logger
	if logger == nil {
		logger = discardLogger
	}

	leeways := make(map[string]time.Duration, 3)
	for _, name := range []string{ClaimExpiresAt, ClaimNotBefore, ClaimIssuedAt} {
		leeways[name] = v.leeway
		if d, ok := v.leeways[name]; ok {
			leeways[name] = d
		}
	}

	required := make([]string, len(v.required))
	copy(required, v.required)

	validators := make([]TokenValidator, len(v.validators))
	copy(validators, v.validators)

	return &Verifier{
		alg:        v.alg,
		expected:   v.expected.clone(),
		required:   required,
		leeways:    leeways,
		allowNone:  v.allowNone,
		logger:     logger,
		observer:   v.observer,
		validators: validators,
	}, nil
}

var discardLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
