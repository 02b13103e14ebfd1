package jwt

import "time"

// Observer receives the outcome of every Creator.Sign and Verifier call.
// Implementations must be safe for concurrent use and must not block,
// see the metrics package for a Prometheus implementation.
//
// "alg" is always the name of the Algorithm the caller supplied,
// never the one a token declares.
type Observer interface {
	ObserveSign(alg string, err error)
	ObserveVerify(alg string, elapsed time.Duration, err error)
}
