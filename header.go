package jwt

// Header field names.
const (
	HeaderAlgorithm   = "alg"
	HeaderType        = "typ"
	HeaderKeyID       = "kid"
	HeaderContentType = "cty"
)

// DefaultType is the "typ" header value written by the Creator.
const DefaultType = "JWT"

// Header is a read-only view over the decoded JOSE header.
// Fields other than "alg" and "typ" are kept verbatim and in source order.
type Header struct {
	doc *document
}

// Algorithm returns the self-declared "alg" field. It is informational only:
// verification always uses the Algorithm the Verifier was pinned to.
func (h Header) Algorithm() string {
	s, _ := h.Get(HeaderAlgorithm).AsString()
	return s
}

// Type returns the "typ" field.
func (h Header) Type() string {
	s, _ := h.Get(HeaderType).AsString()
	return s
}

// KeyID returns the "kid" field.
func (h Header) KeyID() string {
	s, _ := h.Get(HeaderKeyID).AsString()
	return s
}

// ContentType returns the "cty" field.
func (h Header) ContentType() string {
	s, _ := h.Get(HeaderContentType).AsString()
	return s
}

// Get returns the header field as a Claim, absent if not present.
func (h Header) Get(name string) Claim {
	if h.doc == nil {
		return Claim{}
	}

	v, ok := h.doc.get(name)
	if !ok {
		return Claim{}
	}

	return newClaim(v)
}

// Names returns the header field names in source order.
func (h Header) Names() []string {
	if h.doc == nil {
		return nil
	}

	return h.doc.names()
}
