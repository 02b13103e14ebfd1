package jwt

import "time"

// preset holds the Creator of a domain specific builder
// and the terminal operations they all share.
type preset struct {
	c *Creator
}

func newPreset(required ...string) preset {
	return preset{c: NewCreator().Require(required...)}
}

// Creator returns the underlying generic Creator.
func (p preset) Creator() *Creator { return p.c }

// Sign fails with ErrMissingRequiredClaim when a claim of the preset is not set.
func (p preset) Sign(alg Algorithm) (string, error) { return p.c.Sign(alg) }

// SignBase16 is Sign followed by EncodeBase16.
func (p preset) SignBase16(alg Algorithm) (string, error) { return p.c.SignBase16(alg) }

// SignBase32 is Sign followed by EncodeBase32.
func (p preset) SignBase32(alg Algorithm) (string, error) { return p.c.SignBase32(alg) }

// FbCreator builds Facebook style tokens: "exp", "iat", "userId" and "appId" are required.
//
// Example Code:
//
//	token, err := jwt.NewFbCreator().
//	    WithExpiresAt(exp).
//	    WithIssuedAt(iat).
//	    WithUserID("userId").
//	    WithAppID("appId").
//	    Sign(alg)
type FbCreator struct{ preset }

// NewFbCreator returns a new FbCreator.
func NewFbCreator() *FbCreator {
	return &FbCreator{newPreset(ClaimExpiresAt, ClaimIssuedAt, ClaimUserID, ClaimAppID)}
}

func (b *FbCreator) WithExpiresAt(t time.Time) *FbCreator { b.c.WithExpiresAt(t); return b }
func (b *FbCreator) WithIssuedAt(t time.Time) *FbCreator  { b.c.WithIssuedAt(t); return b }
func (b *FbCreator) WithUserID(id string) *FbCreator      { b.c.WithClaim(ClaimUserID, id); return b }
func (b *FbCreator) WithAppID(id string) *FbCreator       { b.c.WithClaim(ClaimAppID, id); return b }
func (b *FbCreator) AllowNone(allow bool) *FbCreator      { b.c.AllowNone(allow); return b }

func (b *FbCreator) WithNonStandardClaim(name string, value any) *FbCreator {
	b.c.WithNonStandardClaim(name, value)
	return b
}

func (b *FbCreator) WithArrayClaim(name string, values ...string) *FbCreator {
	b.c.WithArrayClaim(name, values...)
	return b
}

// GoogleCreator builds Google style ID tokens: "iss", "sub", "aud", "exp", "iat",
// "name", "email" and "picture" are required.
type GoogleCreator struct{ preset }

// NewGoogleCreator returns a new GoogleCreator.
func NewGoogleCreator() *GoogleCreator {
	return &GoogleCreator{newPreset(
		ClaimIssuer, ClaimSubject, ClaimAudience, ClaimExpiresAt, ClaimIssuedAt,
		ClaimName, ClaimEmail, ClaimPicture,
	)}
}

func (b *GoogleCreator) WithName(name string) *GoogleCreator { b.c.WithClaim(ClaimName, name); return b }
func (b *GoogleCreator) WithEmail(email string) *GoogleCreator {
	b.c.WithClaim(ClaimEmail, email)
	return b
}
func (b *GoogleCreator) WithPicture(picture string) *GoogleCreator {
	b.c.WithClaim(ClaimPicture, picture)
	return b
}
func (b *GoogleCreator) WithIssuer(issuer string) *GoogleCreator   { b.c.WithIssuer(issuer); return b }
func (b *GoogleCreator) WithSubject(subject string) *GoogleCreator { b.c.WithSubject(subject); return b }
func (b *GoogleCreator) WithAudience(audience ...string) *GoogleCreator {
	b.c.WithAudience(audience...)
	return b
}
func (b *GoogleCreator) WithExpiresAt(t time.Time) *GoogleCreator { b.c.WithExpiresAt(t); return b }
func (b *GoogleCreator) WithIssuedAt(t time.Time) *GoogleCreator  { b.c.WithIssuedAt(t); return b }
func (b *GoogleCreator) AllowNone(allow bool) *GoogleCreator      { b.c.AllowNone(allow); return b }

func (b *GoogleCreator) WithNonStandardClaim(name string, value any) *GoogleCreator {
	b.c.WithNonStandardClaim(name, value)
	return b
}

func (b *GoogleCreator) WithArrayClaim(name string, values ...string) *GoogleCreator {
	b.c.WithArrayClaim(name, values...)
	return b
}

// ScopedCreator builds scoped tokens: "iss", "sub", "aud", "iat" and "scope" are required.
type ScopedCreator struct{ preset }

// NewScopedCreator returns a new ScopedCreator.
func NewScopedCreator() *ScopedCreator {
	return &ScopedCreator{newPreset(ClaimIssuer, ClaimSubject, ClaimAudience, ClaimIssuedAt, ClaimScope)}
}

func (b *ScopedCreator) WithScope(scope string) *ScopedCreator {
	b.c.WithClaim(ClaimScope, scope)
	return b
}
func (b *ScopedCreator) WithIssuer(issuer string) *ScopedCreator   { b.c.WithIssuer(issuer); return b }
func (b *ScopedCreator) WithSubject(subject string) *ScopedCreator { b.c.WithSubject(subject); return b }
func (b *ScopedCreator) WithAudience(audience ...string) *ScopedCreator {
	b.c.WithAudience(audience...)
	return b
}
func (b *ScopedCreator) WithExpiresAt(t time.Time) *ScopedCreator { b.c.WithExpiresAt(t); return b }
func (b *ScopedCreator) WithIssuedAt(t time.Time) *ScopedCreator  { b.c.WithIssuedAt(t); return b }
func (b *ScopedCreator) AllowNone(allow bool) *ScopedCreator      { b.c.AllowNone(allow); return b }

func (b *ScopedCreator) WithNonStandardClaim(name string, value any) *ScopedCreator {
	b.c.WithNonStandardClaim(name, value)
	return b
}

func (b *ScopedCreator) WithArrayClaim(name string, values ...string) *ScopedCreator {
	b.c.WithArrayClaim(name, values...)
	return b
}

// ImplicitCreator builds implicit grant tokens: "iss", "sub", "aud" and "iat" are required.
type ImplicitCreator struct{ preset }

// NewImplicitCreator returns a new ImplicitCreator.
func NewImplicitCreator() *ImplicitCreator {
	return &ImplicitCreator{newPreset(ClaimIssuer, ClaimSubject, ClaimAudience, ClaimIssuedAt)}
}

func (b *ImplicitCreator) WithIssuer(issuer string) *ImplicitCreator { b.c.WithIssuer(issuer); return b }
func (b *ImplicitCreator) WithSubject(subject string) *ImplicitCreator {
	b.c.WithSubject(subject)
	return b
}
func (b *ImplicitCreator) WithAudience(audience ...string) *ImplicitCreator {
	b.c.WithAudience(audience...)
	return b
}
func (b *ImplicitCreator) WithIssuedAt(t time.Time) *ImplicitCreator { b.c.WithIssuedAt(t); return b }
func (b *ImplicitCreator) AllowNone(allow bool) *ImplicitCreator     { b.c.AllowNone(allow); return b }

func (b *ImplicitCreator) WithNonStandardClaim(name string, value any) *ImplicitCreator {
	b.c.WithNonStandardClaim(name, value)
	return b
}

func (b *ImplicitCreator) WithArrayClaim(name string, values ...string) *ImplicitCreator {
	b.c.WithArrayClaim(name, values...)
	return b
}

// AccessCreator builds access tokens: "iss", "sub", "aud", "exp" and "iat" are required.
type AccessCreator struct{ preset }

// NewAccessCreator returns a new AccessCreator.
func NewAccessCreator() *AccessCreator {
	return &AccessCreator{newPreset(ClaimIssuer, ClaimSubject, ClaimAudience, ClaimExpiresAt, ClaimIssuedAt)}
}

func (b *AccessCreator) WithIssuer(issuer string) *AccessCreator   { b.c.WithIssuer(issuer); return b }
func (b *AccessCreator) WithSubject(subject string) *AccessCreator { b.c.WithSubject(subject); return b }
func (b *AccessCreator) WithAudience(audience ...string) *AccessCreator {
	b.c.WithAudience(audience...)
	return b
}
func (b *AccessCreator) WithExpiresAt(t time.Time) *AccessCreator { b.c.WithExpiresAt(t); return b }
func (b *AccessCreator) WithIssuedAt(t time.Time) *AccessCreator  { b.c.WithIssuedAt(t); return b }
func (b *AccessCreator) AllowNone(allow bool) *AccessCreator      { b.c.AllowNone(allow); return b }

func (b *AccessCreator) WithNonStandardClaim(name string, value any) *AccessCreator {
	b.c.WithNonStandardClaim(name, value)
	return b
}

func (b *AccessCreator) WithArrayClaim(name string, values ...string) *AccessCreator {
	b.c.WithArrayClaim(name, values...)
	return b
}
