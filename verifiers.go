package jwt

// Claim names used by the domain presets.
const (
	ClaimUserID  = "userId"
	ClaimAppID   = "appId"
	ClaimName    = "name"
	ClaimEmail   = "email"
	ClaimPicture = "picture"
	ClaimScope   = "scope"
)

// ForFb requires the claims of a Facebook style token (see NewFbCreator)
// and matches "userId" and "appId".
func (v *Verification) ForFb(userID, appID string) *Verification {
	return v.RequireClaim(ClaimExpiresAt, ClaimIssuedAt).
		WithClaim(ClaimUserID, userID).
		WithClaim(ClaimAppID, appID)
}

// ForGoogle requires the claims of a Google style ID token (see NewGoogleCreator)
// and matches the profile claims, the issuer and the audience.
func (v *Verification) ForGoogle(name, email, picture, issuer string, audience ...string) *Verification {
	return v.RequireClaim(ClaimSubject, ClaimExpiresAt, ClaimIssuedAt).
		WithIssuer(issuer).
		WithAudience(audience...).
		WithClaim(ClaimName, name).
		WithClaim(ClaimEmail, email).
		WithClaim(ClaimPicture, picture)
}

// ForScoped requires the claims of a scoped token (see NewScopedCreator)
// and matches the scope, the issuer and the audience.
func (v *Verification) ForScoped(scope, issuer string, audience ...string) *Verification {
	return v.RequireClaim(ClaimSubject, ClaimIssuedAt).
		WithIssuer(issuer).
		WithAudience(audience...).
		WithClaim(ClaimScope, scope)
}

// ForImplicit requires the claims of an implicit grant token (see NewImplicitCreator)
// and matches the issuer and the audience.
func (v *Verification) ForImplicit(issuer string, audience ...string) *Verification {
	return v.RequireClaim(ClaimSubject, ClaimIssuedAt).
		WithIssuer(issuer).
		WithAudience(audience...)
}

// ForAccess requires the claims of an access token (see NewAccessCreator)
// and matches the issuer and the audience.
func (v *Verification) ForAccess(issuer string, audience ...string) *Verification {
	return v.RequireClaim(ClaimSubject, ClaimExpiresAt, ClaimIssuedAt).
		WithIssuer(issuer).
		WithAudience(audience...)
}
