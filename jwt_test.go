package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("sercrethatmaycontainch@r$32chars")

// testNow is the fixed clock of the verification tests.
var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func mustHMAC(t testing.TB) Algorithm {
	t.Helper()

	alg, err := HMAC256(testSecret)
	require.NoError(t, err)
	return alg
}

func mustVerifier(t testing.TB, v *Verification) *Verifier {
	t.Helper()

	verifier, err := v.Build()
	require.NoError(t, err)
	return verifier
}

func mustSign(t testing.TB, c *Creator, alg Algorithm) string {
	t.Helper()

	token, err := c.Sign(alg)
	require.NoError(t, err)
	return token
}

// testAlgorithms returns a signing instance of every family, keys read from testdata.
func testAlgorithms(t testing.TB) []Algorithm {
	t.Helper()

	rsaPriv, _ := MustLoadRSA("testdata/rsa_private_key.pem", "testdata/rsa_public_key.pem")
	ec256Priv, _ := MustLoadECDSA("testdata/ec256_private_key.pem", "testdata/ec256_public_key.pem")
	ec384Priv, _ := MustLoadECDSA("testdata/ec384_private_key.pem", "testdata/ec384_public_key.pem")
	edPriv, _ := MustLoadEdDSA("testdata/ed25519_private_key.pem", "testdata/ed25519_public_key.pem")
	ec521Priv := mustGenerateP521(t)

	var algs []Algorithm
	add := func(alg Algorithm, err error) {
		require.NoError(t, err)
		algs = append(algs, alg)
	}

	add(HMAC256(testSecret))
	add(HMAC384(testSecret))
	add(HMAC512(testSecret))
	add(RSA256(nil, rsaPriv))
	add(RSA384(nil, rsaPriv))
	add(RSA512(nil, rsaPriv))
	add(RSAPSS256(nil, rsaPriv))
	add(RSAPSS384(nil, rsaPriv))
	add(RSAPSS512(nil, rsaPriv))
	add(ECDSA256(nil, ec256Priv))
	add(ECDSA384(nil, ec384Priv))
	add(ECDSA512(nil, ec521Priv))
	add(Ed25519(nil, edPriv))

	return algs
}
