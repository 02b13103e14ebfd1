package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = "userId"
	testAppID  = "appId"
)

var (
	testExp = testNow.Add(time.Hour)
	testIat = testNow.Add(-time.Minute)
)

func newTestFbCreator() *FbCreator {
	return NewFbCreator().
		WithExpiresAt(testExp).
		WithIssuedAt(testIat).
		WithUserID(testUserID).
		WithAppID(testAppID)
}

func TestFbCreator(t *testing.T) {
	alg := mustHMAC(t)
	token, err := newTestFbCreator().Sign(alg)
	require.NoError(t, err)

	tok, err := mustVerifier(t, Require(alg).ForFb(testUserID, testAppID)).Verify(token, testNow)
	require.NoError(t, err)
	assert.Equal(t, testUserID, tok.Claim(ClaimUserID).Value())
	assert.Equal(t, testAppID, tok.Claim(ClaimAppID).Value())
}

func TestFbCreatorEncodings(t *testing.T) {
	alg := mustHMAC(t)
	verifier := mustVerifier(t, Require(alg).ForFb(testUserID, testAppID))

	b16, err := newTestFbCreator().SignBase16(alg)
	require.NoError(t, err)
	_, err = verifier.VerifyBase16(b16, testNow)
	assert.NoError(t, err)

	b32, err := newTestFbCreator().SignBase32(alg)
	require.NoError(t, err)
	_, err = verifier.VerifyBase32(b32, testNow)
	assert.NoError(t, err)
}

func TestFbCreatorInvalidClaims(t *testing.T) {
	alg := mustHMAC(t)
	token, err := newTestFbCreator().Sign(alg)
	require.NoError(t, err)

	_, err = mustVerifier(t, Require(alg).ForFb("invalid", testAppID)).Verify(token, testNow)
	assert.EqualError(t, err, "jwt: the Claim 'userId' value doesn't match the required one.")

	_, err = mustVerifier(t, Require(alg).ForFb(testUserID, "invalid")).Verify(token, testNow)
	assert.EqualError(t, err, "jwt: the Claim 'appId' value doesn't match the required one.")
}

func TestFbCreatorUserIDNotProvided(t *testing.T) {
	_, err := NewFbCreator().
		WithExpiresAt(testExp).
		WithIssuedAt(testIat).
		WithAppID(testAppID).
		Sign(mustHMAC(t))
	require.ErrorIs(t, err, ErrMissingRequiredClaim)

	var claimErr *ClaimError
	require.True(t, errors.As(err, &claimErr))
	assert.Equal(t, ClaimUserID, claimErr.Name)
}

func TestFbCreatorNone(t *testing.T) {
	_, err := newTestFbCreator().Sign(None())
	assert.ErrorIs(t, err, ErrAlgorithmNotAllowed)

	_, err = newTestFbCreator().AllowNone(false).Sign(None())
	assert.ErrorIs(t, err, ErrAlgorithmNotAllowed)

	token, err := newTestFbCreator().AllowNone(true).Sign(None())
	require.NoError(t, err)

	_, err = mustVerifier(t, Require(None()).AllowNone(true).ForFb(testUserID, testAppID)).Verify(token, testNow)
	assert.NoError(t, err)
}

func TestFbCreatorExpired(t *testing.T) {
	alg := mustHMAC(t)
	token, err := NewFbCreator().
		WithExpiresAt(testNow.Add(-time.Second)).
		WithIssuedAt(testIat).
		WithUserID(testUserID).
		WithAppID(testAppID).
		Sign(alg)
	require.NoError(t, err)

	_, err = mustVerifier(t, Require(alg).ForFb(testUserID, testAppID)).Verify(token, testNow)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestFbCreatorNonStandardAndArrayClaims(t *testing.T) {
	alg := mustHMAC(t)
	token, err := newTestFbCreator().
		WithNonStandardClaim("nonStandardClaim", "nonStandardClaimValue").
		WithArrayClaim("arrayKey", "arrayValue1", "arrayValue2").
		Sign(alg)
	require.NoError(t, err)

	tok, err := mustVerifier(t, Require(alg).
		ForFb(testUserID, testAppID).
		WithClaim("nonStandardClaim", "nonStandardClaimValue").
		WithArrayClaim("arrayKey", "arrayValue2", "arrayValue1")).Verify(token, testNow)
	require.NoError(t, err)

	values, ok := tok.Claim("arrayKey").AsStrings()
	assert.True(t, ok)
	assert.Equal(t, []string{"arrayValue1", "arrayValue2"}, values)

	_, err = newTestFbCreator().WithNonStandardClaim(ClaimIssuer, "x").Sign(alg)
	assert.ErrorIs(t, err, ErrInvalidClaim)
}

func TestGoogleCreator(t *testing.T) {
	alg := mustHMAC(t)
	newCreator := func() *GoogleCreator {
		return NewGoogleCreator().
			WithPicture("pic").
			WithEmail("mail@example.com").
			WithName("name").
			WithIssuer("accounts.fake.com").
			WithSubject("subject").
			WithAudience("audience").
			WithExpiresAt(testExp).
			WithIssuedAt(testIat)
	}

	token, err := newCreator().Sign(alg)
	require.NoError(t, err)

	verification := Require(alg).ForGoogle("name", "mail@example.com", "pic", "accounts.fake.com", "audience")
	tok, err := mustVerifier(t, verification).Verify(token, testNow)
	require.NoError(t, err)
	assert.Equal(t, "subject", tok.Subject())

	_, err = mustVerifier(t, Require(alg).ForGoogle("other", "mail@example.com", "pic", "accounts.fake.com", "audience")).
		Verify(token, testNow)
	assert.EqualError(t, err, "jwt: the Claim 'name' value doesn't match the required one.")

	_, err = NewGoogleCreator().WithName("name").Sign(alg)
	assert.ErrorIs(t, err, ErrMissingRequiredClaim)
	assert.NotNil(t, newCreator().Creator())
}

func TestScopedCreator(t *testing.T) {
	alg := mustHMAC(t)
	token, err := NewScopedCreator().
		WithScope("read").
		WithIssuer("auth0").
		WithSubject("subject").
		WithAudience("a", "b").
		WithIssuedAt(testIat).
		Sign(alg)
	require.NoError(t, err)

	_, err = mustVerifier(t, Require(alg).ForScoped("read", "auth0", "b", "a")).Verify(token, testNow)
	assert.NoError(t, err)

	_, err = mustVerifier(t, Require(alg).ForScoped("write", "auth0", "a", "b")).Verify(token, testNow)
	assert.ErrorIs(t, err, ErrInvalidClaim)

	_, err = NewScopedCreator().WithIssuer("auth0").WithSubject("s").WithAudience("a").WithIssuedAt(testIat).Sign(alg)
	assert.ErrorIs(t, err, ErrMissingRequiredClaim)
}

func TestImplicitCreator(t *testing.T) {
	alg := mustHMAC(t)
	token, err := NewImplicitCreator().
		WithIssuer("auth0").
		WithSubject("subject").
		WithAudience("audience").
		WithIssuedAt(testIat).
		Sign(alg)
	require.NoError(t, err)

	_, err = mustVerifier(t, Require(alg).ForImplicit("auth0", "audience")).Verify(token, testNow)
	assert.NoError(t, err)

	_, err = mustVerifier(t, Require(alg).ForImplicit("other", "audience")).Verify(token, testNow)
	assert.EqualError(t, err, "jwt: the Claim 'iss' value doesn't match the required one.")
}

func TestAccessCreator(t *testing.T) {
	alg := mustHMAC(t)
	token, err := NewAccessCreator().
		WithIssuer("auth0").
		WithSubject("subject").
		WithAudience("audience").
		WithExpiresAt(testExp).
		WithIssuedAt(testIat).
		Sign(alg)
	require.NoError(t, err)

	_, err = mustVerifier(t, Require(alg).ForAccess("auth0", "audience")).Verify(token, testNow)
	assert.NoError(t, err)

	_, err = mustVerifier(t, Require(alg).ForAccess("auth0", "audience")).Verify(token, testExp.Add(time.Second))
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = NewAccessCreator().WithIssuer("auth0").WithSubject("s").WithAudience("a").WithIssuedAt(testIat).Sign(alg)
	assert.ErrorIs(t, err, ErrMissingRequiredClaim)
}
