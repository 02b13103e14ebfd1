package jwt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// Creator accumulates the header and the claims of a new token and signs it.
//
// Every With method validates its input eagerly. The first invalid call is
// recorded, the following calls are ignored and Sign returns the recorded error.
// A Creator is meant to be used by a single goroutine, build one per token.
//
// Example Code:
//
//	alg, _ := jwt.HMAC256([]byte("secret"))
//	token, err := jwt.NewCreator().
//	    WithIssuer("auth0").
//	    WithExpiresAt(time.Now().Add(15 * time.Minute)).
//	    WithClaim("userId", "u1").
//	    Sign(alg)
type Creator struct {
	header    *document // extra header fields.
	payload   *document
	required  []string
	allowNone bool
	observer  Observer
	err       error
}

// NewCreator returns an empty Creator.
func NewCreator() *Creator {
	return &Creator{
		header:  newDocument(),
		payload: newDocument(),
	}
}

// Err returns the first error recorded by a With method, if any.
func (c *Creator) Err() error {
	return c.err
}

func (c *Creator) fail(err error) *Creator {
	if c.err == nil {
		c.err = err
	}

	return c
}

// set validates and stores a claim.
func (c *Creator) set(name string, value any) *Creator {
	if c.err != nil {
		return c
	}

	if name == "" {
		return c.fail(fmt.Errorf("%w: empty claim name", ErrInvalidClaim))
	}

	v, err := normalizeValue(value)
	if err != nil {
		return c.fail(&ClaimError{Name: name, Err: fmt.Errorf("%w: %v", ErrInvalidClaim, err)})
	}

	if !validRegisteredValue(name, v) {
		return c.fail(invalidClaim(name))
	}

	c.payload.put(name, v)
	return c
}

// validRegisteredValue checks the JSON kind of the registered claims.
func validRegisteredValue(name string, v any) bool {
	switch name {
	case ClaimIssuer, ClaimSubject, ClaimJWTID:
		_, ok := v.(string)
		return ok
	case ClaimExpiresAt, ClaimNotBefore, ClaimIssuedAt:
		// integral seconds within the dates AsTime accepts.
		n, ok := v.(json.Number)
		if !ok {
			return false
		}
		sec, err := strconv.ParseInt(n.String(), 10, 64)
		return err == nil && sec >= minDateSeconds && sec <= maxDateSeconds
	case ClaimAudience:
		if _, ok := v.(string); ok {
			return true
		}
		arr, ok := v.([]any)
		if !ok || len(arr) == 0 {
			return false
		}
		for _, item := range arr {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// WithIssuer sets the "iss" claim.
func (c *Creator) WithIssuer(issuer string) *Creator {
	return c.set(ClaimIssuer, issuer)
}

// WithSubject sets the "sub" claim.
func (c *Creator) WithSubject(subject string) *Creator {
	return c.set(ClaimSubject, subject)
}

// WithAudience sets the "aud" claim. A single audience is written
// as a JSON string, more as an array.
func (c *Creator) WithAudience(audience ...string) *Creator {
	switch len(audience) {
	case 0:
		if c.err != nil {
			return c
		}
		return c.fail(invalidClaim(ClaimAudience))
	case 1:
		return c.set(ClaimAudience, audience[0])
	default:
		return c.set(ClaimAudience, audience)
	}
}

// WithExpiresAt sets the "exp" claim, in seconds since the epoch.
func (c *Creator) WithExpiresAt(t time.Time) *Creator {
	return c.set(ClaimExpiresAt, t)
}

// WithNotBefore sets the "nbf" claim, in seconds since the epoch.
func (c *Creator) WithNotBefore(t time.Time) *Creator {
	return c.set(ClaimNotBefore, t)
}

// WithIssuedAt sets the "iat" claim, in seconds since the epoch.
func (c *Creator) WithIssuedAt(t time.Time) *Creator {
	return c.set(ClaimIssuedAt, t)
}

// WithMaxAge sets "iat" to "now" and "exp" to "now" plus "maxAge".
// A maxAge under a second is ignored.
func (c *Creator) WithMaxAge(now time.Time, maxAge time.Duration) *Creator {
	if maxAge <= time.Second {
		return c
	}

	return c.WithIssuedAt(now).WithExpiresAt(now.Add(maxAge))
}

// WithJWTID sets the "jti" claim.
func (c *Creator) WithJWTID(id string) *Creator {
	return c.set(ClaimJWTID, id)
}

// WithRandomJWTID sets the "jti" claim to a new random (version 4) UUID.
func (c *Creator) WithRandomJWTID() *Creator {
	if c.err != nil {
		return c
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return c.fail(err)
	}

	return c.set(ClaimJWTID, id.String())
}

// WithClaim sets a claim of any supported kind: string, bool, any integer
// or float type, json.Number, time.Time (as epoch seconds), []string,
// []any, map[string]any or nil. NaN and infinite numbers are rejected.
func (c *Creator) WithClaim(name string, value any) *Creator {
	return c.set(name, value)
}

// WithArrayClaim sets a claim holding an array of strings.
func (c *Creator) WithArrayClaim(name string, values ...string) *Creator {
	if values == nil {
		values = []string{}
	}

	return c.set(name, values)
}

// WithNonStandardClaim is like WithClaim but refuses the registered claim names.
func (c *Creator) WithNonStandardClaim(name string, value any) *Creator {
	if c.err != nil {
		return c
	}

	if IsRegisteredClaim(name) {
		return c.fail(&ClaimError{Name: name, Err: fmt.Errorf("%w: registered claim name", ErrInvalidClaim)})
	}

	return c.set(name, value)
}

// WithHeader adds a header field. "alg" is reserved, "typ" overrides the default "JWT".
func (c *Creator) WithHeader(name string, value any) *Creator {
	if c.err != nil {
		return c
	}

	if name == "" || name == HeaderAlgorithm {
		return c.fail(&ClaimError{Name: name, Err: fmt.Errorf("%w: reserved header name", ErrInvalidClaim)})
	}

	v, err := normalizeValue(value)
	if err != nil {
		return c.fail(&ClaimError{Name: name, Err: fmt.Errorf("%w: %v", ErrInvalidClaim, err)})
	}

	c.header.put(name, v)
	return c
}

// WithKeyID sets the "kid" header field.
func (c *Creator) WithKeyID(kid string) *Creator {
	return c.WithHeader(HeaderKeyID, kid)
}

// Require marks claims that must be set before Sign.
func (c *Creator) Require(names ...string) *Creator {
	c.required = append(c.required, names...)
	return c
}

// AllowNone permits signing with the unsecured "none" algorithm. Defaults to false.
func (c *Creator) AllowNone(allow bool) *Creator {
	c.allowNone = allow
	return c
}

// WithObserver reports every Sign call to "o".
func (c *Creator) WithObserver(o Observer) *Creator {
	c.observer = o
	return c
}

// Sign serializes the header {"alg":alg.Name(),"typ":"JWT",...} and the claims,
// signs "header.payload" and returns "header.payload.signature".
// The "none" algorithm produces an empty last segment.
//
// Missing required claims fail with every absent name, each one
// a *ClaimError wrapping ErrMissingRequiredClaim.
func (c *Creator) Sign(alg Algorithm) (string, error) {
	token, err := c.sign(alg)
	if c.observer != nil {
		c.observer.ObserveSign(algName(alg), err)
	}

	return token, err
}

// SignBase16 is Sign followed by EncodeBase16.
func (c *Creator) SignBase16(alg Algorithm) (string, error) {
	token, err := c.Sign(alg)
	if err != nil {
		return "", err
	}

	return EncodeBase16(token), nil
}

// SignBase32 is Sign followed by EncodeBase32.
func (c *Creator) SignBase32(alg Algorithm) (string, error) {
	token, err := c.Sign(alg)
	if err != nil {
		return "", err
	}

	return EncodeBase32(token), nil
}

func (c *Creator) sign(alg Algorithm) (string, error) {
	if c.err != nil {
		return "", c.err
	}

	if alg == nil {
		return "", fmt.Errorf("%w: nil algorithm", ErrInvalidKey)
	}

	if isNone(alg) && !c.allowNone {
		return "", fmt.Errorf("%w: none algorithm isn't allowed", ErrAlgorithmNotAllowed)
	}

	if err := c.checkRequired(); err != nil {
		return "", err
	}

	header := newDocument()
	header.put(HeaderAlgorithm, alg.Name())
	header.put(HeaderType, DefaultType)
	for _, name := range c.header.keys {
		header.put(name, c.header.values[name])
	}

	headerJSON, err := encodeDocument(header)
	if err != nil {
		return "", fmt.Errorf("header: %w", err)
	}

	payloadJSON, err := encodeDocument(c.payload)
	if err != nil {
		return "", fmt.Errorf("payload: %w", err)
	}

	// header.payload
	signingInput := Base64Encode(headerJSON) + sep + Base64Encode(payloadJSON)

	signature, err := alg.Sign([]byte(signingInput))
	if err != nil {
		return "", err
	}

	// header.payload.signature
	return signingInput + sep + Base64Encode(signature), nil
}

func (c *Creator) checkRequired() error {
	var result *multierror.Error
	seen := make(map[string]struct{}, len(c.required))
	for _, name := range c.required {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		if v, ok := c.payload.get(name); !ok || v == nil {
			result = multierror.Append(result, missingClaim(name))
		}
	}

	if result != nil && len(result.Errors) == 1 {
		return result.Errors[0]
	}

	return result.ErrorOrNil()
}

func algName(alg Algorithm) string {
	if alg == nil {
		return ""
	}

	return alg.Name()
}
