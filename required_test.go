package jwt

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalWithRequired(t *testing.T) {
	type Nested struct {
		Name string `json:"name,required"`
	}

	tok, err := Decode(mustSign(t, NewCreator().
		WithClaim("username", "kataras").
		WithClaim("age", 27).
		WithClaim("nested", map[string]any{"name": ""}), mustHMAC(t)))
	require.NoError(t, err)

	var claims = struct {
		Username string `json:"username,required"`
		Age      int    `json:"age"`
	}{}
	require.NoError(t, tok.Unmarshal(&claims))
	assert.Equal(t, "kataras", claims.Username)

	var claimsShouldFail = struct {
		Username string `json:"username,required"`
		Age      int    `json:"age,required"`
		Nested   Nested `json:"nested"`
	}{}
	err = tok.Unmarshal(&claimsShouldFail)
	require.True(t, errors.Is(err, ErrMissingRequiredClaim), "expected error: ErrMissingRequiredClaim but got: %v", err)

	var claimErr *ClaimError
	require.True(t, errors.As(err, &claimErr))
	assert.Equal(t, "name", claimErr.Name)
}

func TestHasRequiredJSONTag(t *testing.T) {
	type claims struct {
		Username string `json:"username,required"`
		Email    string `json:"email"`
		secret   string `json:"secret,required"`
	}

	typ := reflect.TypeOf(claims{})
	for name, expected := range map[string]bool{"Username": true, "Email": false, "secret": false} {
		field, ok := typ.FieldByName(name)
		require.True(t, ok)
		assert.Equal(t, expected, HasRequiredJSONTag(field), name)
	}
}
