package jwt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Claim is a read-only view over a single decoded claim value.
//
// A Claim is either absent (the key is not in the document), null
// (the key holds a JSON null) or holds a value. The As* accessors never panic:
// they report false when the claim is absent or its JSON kind does not
// match the requested type exactly, e.g. a number is never a bool.
//
// Example:
//
//	tok, err := verifier.Verify(token, time.Now())
//	if err != nil { ... }
//	if userID, ok := tok.Claim("userId").AsString(); ok {
//	    ...
//	}
type Claim struct {
	value   any
	present bool
}

func newClaim(value any) Claim {
	return Claim{value: value, present: true}
}

// IsAbsent reports whether the claim is not part of the document.
func (c Claim) IsAbsent() bool {
	return !c.present
}

// IsNull reports whether the claim is present and holds a JSON null.
func (c Claim) IsNull() bool {
	return c.present && c.value == nil
}

// AsBool returns the value of a JSON boolean claim.
func (c Claim) AsBool() (bool, bool) {
	v, ok := c.value.(bool)
	return v, ok
}

// AsString returns the value of a JSON string claim.
func (c Claim) AsString() (string, bool) {
	v, ok := c.value.(string)
	return v, ok
}

// AsInt64 returns the value of an integral JSON number.
// Fractional numbers or numbers out of the int64 range report false.
func (c Claim) AsInt64() (int64, bool) {
	n, ok := c.value.(json.Number)
	if !ok {
		return 0, false
	}

	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// AsInt is like AsInt64 but for the platform int.
func (c Claim) AsInt() (int, bool) {
	v, ok := c.AsInt64()
	if !ok || v < math.MinInt || v > math.MaxInt {
		return 0, false
	}

	return int(v), true
}

// AsFloat64 returns the value of any JSON number.
func (c Claim) AsFloat64() (float64, bool) {
	n, ok := c.value.(json.Number)
	if !ok {
		return 0, false
	}

	v, err := n.Float64()
	if err != nil {
		return 0, false
	}

	return v, true
}

// Range of the numeric dates AsTime accepts:
// 0001-01-01T00:00:00Z to 9999-12-31T23:59:59Z.
const (
	minDateSeconds = -62135596800
	maxDateSeconds = 253402300799
)

// AsTime interprets a JSON number as seconds since the epoch
// (not milliseconds). Fractions of a second are dropped.
// Dates before year 1 or after year 9999 report false.
func (c Claim) AsTime() (time.Time, bool) {
	if sec, ok := c.AsInt64(); ok {
		if sec < minDateSeconds || sec > maxDateSeconds {
			return time.Time{}, false
		}
		return time.Unix(sec, 0), true
	}

	f, ok := c.AsFloat64()
	if !ok || math.IsNaN(f) || f >= maxDateSeconds+1 || f < minDateSeconds {
		return time.Time{}, false
	}

	return time.Unix(int64(f), 0), true
}

// AsArray returns the elements of a JSON array claim.
func (c Claim) AsArray() ([]Claim, bool) {
	values, ok := c.value.([]any)
	if !ok {
		return nil, false
	}

	claims := make([]Claim, len(values))
	for i, v := range values {
		claims[i] = newClaim(v)
	}

	return claims, true
}

// AsStrings returns the elements of a JSON array whose items are all strings.
func (c Claim) AsStrings() ([]string, bool) {
	values, ok := c.value.([]any)
	if !ok {
		return nil, false
	}

	out := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}

	return out, true
}

// AsMap returns a JSON object claim. Nested numbers are converted
// to int64 when integral and to float64 otherwise.
func (c Claim) AsMap() (map[string]any, bool) {
	m, ok := c.value.(map[string]any)
	if !ok {
		return nil, false
	}

	return plainValue(m).(map[string]any), true
}

// As projects the claim into "dest" (a pointer) through JSON,
// e.g. a struct for an object claim. Absent claims and incompatible
// shapes fail with ErrMalformedPayload.
func (c Claim) As(dest any) error {
	if !c.present {
		return fmt.Errorf("%w: claim is absent", ErrMalformedPayload)
	}

	b, err := json.Marshal(c.value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if err = json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return nil
}

// ClaimAs is the generic form of Claim.As.
func ClaimAs[T any](c Claim) (T, error) {
	var v T
	err := c.As(&v)
	return v, err
}

// Value returns the decoded value with numbers converted as in AsMap.
// Absent and null claims return nil.
func (c Claim) Value() any {
	return plainValue(c.value)
}

// String returns the JSON form of the value, or "<absent>".
func (c Claim) String() string {
	if !c.present {
		return "<absent>"
	}

	b, err := json.Marshal(c.value)
	if err != nil {
		return fmt.Sprintf("%v", c.value)
	}

	return BytesToString(b)
}

func plainValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plainValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
