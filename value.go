package jwt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// normalizeValue converts a caller supplied claim value into the form
// decodeDocument produces, so that created and decoded documents compare
// and encode the same way: numbers become json.Number, times become
// epoch seconds and slices become []any.
func normalizeValue(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string, bool:
		return t, nil
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int8:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case float32:
		return floatNumber(float64(t), t)
	case float64:
		return floatNumber(t, t)
	case json.Number:
		if _, err := strconv.ParseFloat(t.String(), 64); err != nil {
			return nil, fmt.Errorf("invalid number %q", t)
		}
		return t, nil
	case time.Time:
		if t.IsZero() {
			return nil, fmt.Errorf("zero time")
		}
		return json.Number(strconv.FormatInt(t.Unix(), 10)), nil
	case Claim:
		if t.IsAbsent() {
			return nil, fmt.Errorf("absent claim")
		}
		return t.value, nil
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			n, err := normalizeValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			n, err := normalizeValue(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// floatNumber formats "f" the way encoding/json does, "orig" keeps the float32 precision.
func floatNumber(f float64, orig any) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("unsupported number %v", f)
	}

	b, err := json.Marshal(orig)
	if err != nil {
		return nil, err
	}

	return json.Number(b), nil
}

// valuesEqual compares two normalized values: numbers by numeric value,
// arrays as multisets and objects key by key.
func valuesEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case json.Number:
		y, ok := b.(json.Number)
		return ok && numbersEqual(x, y)
	case []any:
		y, ok := b.([]any)
		return ok && multisetEqual(x, y)
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, exists := y[k]
			if !exists || !valuesEqual(v, w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}

	x, errX := strconv.ParseInt(a.String(), 10, 64)
	y, errY := strconv.ParseInt(b.String(), 10, 64)
	if errX == nil && errY == nil {
		return x == y
	}

	fx, errX := a.Float64()
	fy, errY := b.Float64()
	return errX == nil && errY == nil && fx == fy
}

func multisetEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}

	used := make([]bool, len(b))
next:
	for _, x := range a {
		for i, y := range b {
			if !used[i] && valuesEqual(x, y) {
				used[i] = true
				continue next
			}
		}
		return false
	}

	return true
}

// asArray wraps a single value into a one element array,
// "aud" may be a string or an array of strings.
func asArray(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}

	return []any{v}
}
