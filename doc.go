/*
Package jwt implements JSON Web Tokens (JWT) as defined in RFC 7519,
signed with the JSON Web Algorithms of RFC 7518.

# Overview

A token travels as three base64url segments joined by dots:
header.payload.signature. The package is built around a few concepts:

  - Algorithm: a signing scheme bound to its keys at construction time
  - Creator: a fluent builder that collects claims and signs them
  - Token: a decoded token with typed Claim accessors
  - Verification: a fluent policy that builds an immutable Verifier

# Algorithms

	HMAC:    HS256, HS384, HS512 (shared secret)
	RSA:     RS256, RS384, RS512 (PKCS#1 v1.5, at least 2048 bits)
	RSA-PSS: PS256, PS384, PS512 (salt length equals the hash size)
	ECDSA:   ES256, ES384, ES512 (P-256, P-384, P-521, r||s signatures)
	EdDSA:   Ed25519
	none:    unsecured tokens, rejected unless explicitly allowed

Algorithms are created with their keys. A nil private key produces a
verify-only Algorithm and a nil public key one that verifies with the
public half of its private key:

	alg, err := jwt.HMAC256([]byte("secret"))
	rs256, err := jwt.RSA256(publicKey, privateKey)
	verifyOnly, err := jwt.ECDSA256(publicKey, nil)

NewAlgorithm resolves an algorithm by its name, which is how
configuration driven callers (see cmd/jwts) pick one:

	alg, err := jwt.NewAlgorithm("ES256", privateKey, publicKey)

# Creating tokens

	token, err := jwt.NewCreator().
	    WithIssuer("auth0").
	    WithAudience("api").
	    WithExpiresAt(time.Now().Add(15 * time.Minute)).
	    WithClaim("userId", 42).
	    Sign(alg)

The header always carries "alg" and "typ":"JWT" first, then any header
claims added with WithHeader or WithKeyID. Claims keep their insertion
order so signing the same Creator twice yields the same token.

A builder method that receives an invalid value (a non-numeric "exp", a
registered claim passed to WithNonStandardClaim, ...) records the first
error; Sign returns it without producing a token.

Presets wrap a Creator for common token shapes and require their claims:

	token, err := jwt.NewFbCreator().
	    WithUserID("u1").
	    WithAppID("app").
	    WithIssuedAt(now).
	    WithExpiresAt(now.Add(time.Hour)).
	    Sign(alg)

# Verifying tokens

	verifier, err := jwt.Require(alg).
	    WithIssuer("auth0").
	    WithAudience("api").
	    RequireClaim("userId").
	    AcceptLeeway(30 * time.Second).
	    Build()

	tok, err := verifier.Verify(token, time.Now())
	if err != nil {
	    // errors.Is(err, jwt.ErrTokenExpired) ...
	}

	userID, ok := tok.Claim("userId").AsInt64()

A Verifier is pinned to exactly one Algorithm: a token whose header
declares any other "alg" is rejected with ErrAlgorithmNotAllowed before
its signature is looked at. Verification stops at the first failure in
this order: algorithm, signature, required claims, expected claims,
"exp", "iat", "nbf" and finally the custom TokenValidators.

Expected claims compare by value: numbers numerically and arrays as sets,
so an expected "aud" of ["a","b"] matches a token carrying ["b","a"]. A
single string audience matches its one element array.

Decode parses a token without verifying it, for inspection only:

	tok, err := jwt.Decode(token)
	fmt.Println(tok.Algorithm(), tok.Subject())

# Errors

Every failure wraps one of the package sentinel errors, test them with
errors.Is. Claim failures are reported as *ClaimError (the claim name)
and time failures as *TimeError (the instant the token became invalid).

	var timeErr *jwt.TimeError
	if errors.As(err, &timeErr) {
	    log.Printf("expired at %s", timeErr.At)
	}

# Keys

Keys are read from PEM files: PKCS#1, PKCS#8 (optionally encrypted),
SEC1 and PKIX are recognised.

	private, err := jwt.LoadPrivateKey("key.pem", password)
	public, err := jwt.LoadPublicKey("key.pub.pem")

# Observability

Verification.WithLogger reports rejected tokens to a logrus logger at
debug level and WithObserver (Creator too) reports every outcome to an
Observer; the metrics sub-package provides a Prometheus one.

# Standards

  - RFC 7519: JSON Web Token (JWT)
  - RFC 7518: JSON Web Algorithms (JWA)
  - RFC 7515: JSON Web Signature (JWS) compact serialization
  - RFC 8037: EdDSA in JOSE
*/
package jwt
