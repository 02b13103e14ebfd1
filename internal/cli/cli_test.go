package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-lab/go/testingx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtsgo/jwt"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(&out, &errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestSignVerifyHMAC(t *testing.T) {
	token, err := run(t, "", "sign", "--alg", "HS256", "--key", "secret",
		"--sub", "user1", "--expires-in", "1h", "--claim", "userId=u1", "--claim", "admin=true")
	require.NoError(t, err)

	tok, err := jwt.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "HS256", tok.Algorithm())
	admin, ok := tok.Claim("admin").AsBool()
	assert.True(t, ok)
	assert.True(t, admin)

	out, err := run(t, "", "verify", "--alg", "HS256", "--key", "secret",
		"--sub", "user1", "--claim", "userId=u1", "--require", "exp", token)
	require.NoError(t, err)
	assert.Contains(t, out, `userId: "u1"`)
	assert.Contains(t, out, `sub: "user1"`)

	_, err = run(t, "", "verify", "--alg", "HS256", "--key", "secret", "--claim", "userId=u2", token)
	require.ErrorIs(t, err, jwt.ErrInvalidClaim)

	_, err = run(t, "", "verify", "--alg", "HS256", "--key", "other", token)
	require.ErrorIs(t, err, jwt.ErrInvalidSignature)

	_, err = run(t, "", "verify", "--alg", "HS384", "--key", "secret", token)
	require.ErrorIs(t, err, jwt.ErrAlgorithmNotAllowed)
}

func TestVerifyReadsStdin(t *testing.T) {
	token, err := run(t, "", "sign", "--alg", "HS512", "--key", "secret", "--iss", "auth0")
	require.NoError(t, err)

	out, err := run(t, token+"\n", "verify", "--alg", "HS512", "--key", "secret", "--iss", "auth0", "-o", "json")
	require.NoError(t, err)

	var result struct {
		Verified bool           `json:"verified"`
		Claims   map[string]any `json:"claims"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Verified)
	assert.Equal(t, "auth0", result.Claims["iss"])
}

func TestSignVerifyAlternateEncodings(t *testing.T) {
	for _, encoding := range []string{"base16", "base32"} {
		t.Run(encoding, func(t *testing.T) {
			token, err := run(t, "", "sign", "--alg", "HS256", "--key", "secret",
				"--encoding", encoding, "--claim", "appId=app")
			require.NoError(t, err)

			_, err = jwt.Decode(token)
			assert.Error(t, err)

			out, err := run(t, "", "verify", "--alg", "HS256", "--key", "secret",
				"--encoding", encoding, "--claim", "appId=app", token)
			require.NoError(t, err)
			assert.Contains(t, out, `appId: "app"`)
		})
	}
}

func TestSignVerifyRSAKeyFiles(t *testing.T) {
	token, err := run(t, "", "sign", "--alg", "RS256",
		"--key", "../../testdata/rsa_private_key.pem", "--kid", "key-1", "--jti")
	require.NoError(t, err)

	tok, err := jwt.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "key-1", tok.KeyID())
	assert.NotEmpty(t, tok.ID())

	_, err = run(t, "", "verify", "--alg", "RS256", "--key", "../../testdata/rsa_public_key.pem", token)
	require.NoError(t, err)

	_, err = run(t, "", "verify", "--alg", "PS256", "--key", "../../testdata/rsa_public_key.pem", token)
	require.ErrorIs(t, err, jwt.ErrAlgorithmNotAllowed)
}

func TestSignEncryptedKey(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "jwts.yaml")
	testingx.Must(t, os.WriteFile(cfg, []byte(`
algorithm: ES256
private_key: ../../testdata/ec256_private_key_encrypted.pem
key_password: password
`), 0o600), "failed to write config")

	token, err := run(t, "", "--config", cfg, "sign", "--sub", "s")
	require.NoError(t, err)

	_, err = run(t, "", "verify", "--alg", "ES256", "--key", "../../testdata/ec256_public_key.pem", token)
	require.NoError(t, err)
}

func TestVerifyConfigClaimsOrder(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "jwts.yaml")
	testingx.Must(t, os.WriteFile(cfg, []byte(`
algorithm: HS256
private_key: secret
policy:
  claims:
    role: admin
    appId: app
    userId: u1
    zone: eu
`), 0o600), "failed to write config")

	token, err := run(t, "", "sign", "--alg", "HS256", "--key", "secret", "--sub", "s")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err = run(t, "", "--config", cfg, "verify", token)
		require.ErrorIs(t, err, jwt.ErrInvalidClaim)

		var claimErr *jwt.ClaimError
		require.True(t, errors.As(err, &claimErr))
		assert.Equal(t, "appId", claimErr.Name)
	}
}

func TestNoneRequiresOptIn(t *testing.T) {
	_, err := run(t, "", "sign", "--alg", "none")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allow_none")

	token, err := run(t, "", "sign", "--alg", "none", "--allow-none", "--sub", "s")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(token, "."))

	_, err = run(t, "", "verify", "--alg", "none", "--allow-none", token)
	require.NoError(t, err)

	_, err = run(t, "", "verify", "--alg", "HS256", "--key", "secret", token)
	require.ErrorIs(t, err, jwt.ErrAlgorithmNotAllowed)
}

func TestVerifyAt(t *testing.T) {
	alg, err := jwt.HMAC256([]byte("secret"))
	require.NoError(t, err)

	exp, err := time.Parse(time.RFC3339, "2030-01-01T00:00:00Z")
	require.NoError(t, err)

	token, err := jwt.NewCreator().WithExpiresAt(exp).Sign(alg)
	require.NoError(t, err)

	_, err = run(t, "", "verify", "--alg", "HS256", "--key", "secret", "--at", "2030-01-01T00:00:00Z", token)
	require.NoError(t, err)

	_, err = run(t, "", "verify", "--alg", "HS256", "--key", "secret", "--at", "2030-01-01T00:00:01Z", token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = run(t, "", "verify", "--alg", "HS256", "--key", "secret", "--leeway", "1s",
		"--at", "2030-01-01T00:00:01Z", token)
	require.NoError(t, err)
}

func TestDecode(t *testing.T) {
	token, err := run(t, "", "sign", "--alg", "HS256", "--key", "secret", "--claim", "n=42")
	require.NoError(t, err)

	out, err := run(t, "", "decode", "-o", "json", token)
	require.NoError(t, err)

	var result struct {
		Verified bool           `json:"verified"`
		Header   map[string]any `json:"header"`
		Claims   map[string]any `json:"claims"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Verified)
	assert.Equal(t, "HS256", result.Header["alg"])
	assert.Equal(t, 42.0, result.Claims["n"])

	out, err = run(t, "", "decode", token)
	require.NoError(t, err)
	assert.Contains(t, out, "WARNING: not verified")
	assert.Contains(t, out, "n: 42")

	_, err = run(t, "", "decode", "a.b.c.d")
	require.ErrorIs(t, err, jwt.ErrMalformedToken)
}

func TestMetricsTextfile(t *testing.T) {
	token, err := run(t, "", "sign", "--alg", "HS256", "--key", "secret")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "jwts.prom")
	_, err = run(t, "", "--metrics-textfile", path, "verify", "--alg", "HS256", "--key", "other", token)
	require.ErrorIs(t, err, jwt.ErrInvalidSignature)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `jwts_verify_total{alg="HS256",result="invalid_signature"} 1`)
}

func TestInvalidFlags(t *testing.T) {
	_, err := run(t, "", "sign", "--alg", "HS256", "--key", "secret", "--claim", "novalue")
	assert.Error(t, err)

	_, err = run(t, "", "sign", "--alg", "XX256", "--key", "secret")
	assert.Error(t, err)

	_, err = run(t, "", "-o", "yaml", "sign", "--key", "secret")
	assert.Error(t, err)

	_, err = run(t, "", "verify", "--alg", "HS256", "--key", "secret", "--at", "yesterday", "a.b.c")
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, "u1", parseValue("u1"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, json.Number("42"), parseValue("42"))
	assert.Equal(t, []any{"a", "b"}, parseValue(`["a","b"]`))
	assert.Equal(t, "1 2", parseValue("1 2"))
	assert.Nil(t, parseValue("null"))
}
