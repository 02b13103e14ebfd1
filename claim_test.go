package jwt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodedClaims(t *testing.T, payload string) *Token {
	t.Helper()

	token := Base64Encode([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." + Base64Encode([]byte(payload)) + "."
	tok, err := Decode(token)
	require.NoError(t, err)
	return tok
}

func TestClaimAccessors(t *testing.T) {
	tok := decodedClaims(t, `{
		"str": "value",
		"yes": true,
		"int": 42,
		"big": 9223372036854775807,
		"huge": 92233720368547758070,
		"float": 1.5,
		"time": 1700000000,
		"strs": ["a", "b"],
		"mixed": ["a", 1],
		"obj": {"n": 1, "f": 0.5, "nested": [2]},
		"null": null
	}`)

	s, ok := tok.Claim("str").AsString()
	assert.True(t, ok)
	assert.Equal(t, "value", s)
	_, ok = tok.Claim("str").AsInt()
	assert.False(t, ok)

	b, ok := tok.Claim("yes").AsBool()
	assert.True(t, ok)
	assert.True(t, b)
	_, ok = tok.Claim("int").AsBool()
	assert.False(t, ok)

	i, ok := tok.Claim("int").AsInt()
	assert.True(t, ok)
	assert.Equal(t, 42, i)

	i64, ok := tok.Claim("big").AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(9223372036854775807), i64)

	_, ok = tok.Claim("huge").AsInt64()
	assert.False(t, ok)
	_, ok = tok.Claim("float").AsInt64()
	assert.False(t, ok)

	f, ok := tok.Claim("float").AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	f, ok = tok.Claim("int").AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 42.0, f)

	tm, ok := tok.Claim("time").AsTime()
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1700000000, 0), tm)
	_, ok = tok.Claim("str").AsTime()
	assert.False(t, ok)
	_, ok = tok.Claim("big").AsTime()
	assert.False(t, ok)
	_, ok = tok.Claim("huge").AsTime()
	assert.False(t, ok)

	strs, ok := tok.Claim("strs").AsStrings()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, strs)
	_, ok = tok.Claim("mixed").AsStrings()
	assert.False(t, ok)

	arr, ok := tok.Claim("mixed").AsArray()
	require.True(t, ok)
	require.Len(t, arr, 2)
	n, ok := arr[1].AsInt()
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	m, ok := tok.Claim("obj").AsMap()
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"n": int64(1), "f": 0.5, "nested": []any{int64(2)}}, m)

	null := tok.Claim("null")
	assert.True(t, null.IsNull())
	assert.False(t, null.IsAbsent())
	_, ok = null.AsString()
	assert.False(t, ok)

	absent := tok.Claim("missing")
	assert.True(t, absent.IsAbsent())
	assert.False(t, absent.IsNull())
	_, ok = absent.AsBool()
	assert.False(t, ok)
	assert.Equal(t, "<absent>", absent.String())
	assert.Nil(t, absent.Value())
}

func TestClaimAs(t *testing.T) {
	tok := decodedClaims(t, `{"profile":{"name":"kataras","age":27},"tags":["a"]}`)

	type profile struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	var p profile
	require.NoError(t, tok.Claim("profile").As(&p))
	assert.Equal(t, profile{Name: "kataras", Age: 27}, p)

	p, err := ClaimAs[profile](tok.Claim("profile"))
	require.NoError(t, err)
	assert.Equal(t, "kataras", p.Name)

	_, err = ClaimAs[profile](tok.Claim("tags"))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = ClaimAs[string](tok.Claim("missing"))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestClaimString(t *testing.T) {
	tok := decodedClaims(t, `{"s":"x","n":42,"a":[1,"b"]}`)

	assert.Equal(t, `"x"`, tok.Claim("s").String())
	assert.Equal(t, `42`, tok.Claim("n").String())
	assert.Equal(t, `[1,"b"]`, tok.Claim("a").String())
	assert.Equal(t, json.Number("42"), tok.Claim("n").value)
}
