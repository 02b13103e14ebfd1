package jwt

// algNONE implements the Algorithm interface for unsecured JWTs.
//
// WARNING: Tokens signed with "none" algorithm can be forged by anyone.
// Creators and Verifiers refuse it unless AllowNone is called explicitly.
type algNONE struct{}

// None returns the unsecured "none" algorithm. It has no key material.
func None() Algorithm {
	return algNONE{}
}

func (algNONE) Name() string {
	return NameNone
}

// Sign returns an empty signature.
func (algNONE) Sign([]byte) ([]byte, error) {
	return []byte{}, nil
}

// Verify accepts only an empty signature, as required by RFC 7515.
func (algNONE) Verify(_ []byte, signature []byte) error {
	if len(signature) != 0 {
		return ErrInvalidSignature
	}

	return nil
}
