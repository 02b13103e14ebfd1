// Package metrics exposes token signing and verification outcomes as Prometheus metrics.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwtsgo/jwt"
)

// Collector implements jwt.Observer.
//
// Example usage:
//
//	c := metrics.New(prometheus.DefaultRegisterer)
//	verifier, err := jwt.Require(alg).WithObserver(c).Build()
type Collector struct {
	// SignTotal counts Creator.Sign calls by algorithm and result.
	SignTotal *prometheus.CounterVec
	// VerifyTotal counts verifications by pinned algorithm and result.
	VerifyTotal *prometheus.CounterVec
	// VerifyDuration is a histogram of the verification latency.
	VerifyDuration *prometheus.HistogramVec
}

var _ jwt.Observer = (*Collector)(nil)

// New creates the collectors and registers them to "reg", when not nil.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		SignTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jwts_sign_total",
				Help: "Number of tokens signed, by algorithm and result.",
			},
			[]string{"alg", "result"},
		),
		VerifyTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jwts_verify_total",
				Help: "Number of tokens verified, by pinned algorithm and result.",
			},
			[]string{"alg", "result"},
		),
		VerifyDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jwts_verify_duration_seconds",
				Help:    "A histogram of token verification latency.",
				Buckets: []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01},
			},
			[]string{"alg"},
		),
	}

	if reg != nil {
		reg.MustRegister(c.SignTotal, c.VerifyTotal, c.VerifyDuration)
	}

	return c
}

// ObserveSign implements jwt.Observer.
func (c *Collector) ObserveSign(alg string, err error) {
	c.SignTotal.WithLabelValues(alg, Result(err)).Inc()
}

// ObserveVerify implements jwt.Observer.
func (c *Collector) ObserveVerify(alg string, elapsed time.Duration, err error) {
	c.VerifyTotal.WithLabelValues(alg, Result(err)).Inc()
	c.VerifyDuration.WithLabelValues(alg).Observe(elapsed.Seconds())
}

// Result maps an error to a low cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, jwt.ErrMalformedEncoding),
		errors.Is(err, jwt.ErrMalformedToken),
		errors.Is(err, jwt.ErrMalformedPayload):
		return "malformed"
	case errors.Is(err, jwt.ErrAlgorithmNotAllowed):
		return "algorithm_not_allowed"
	case errors.Is(err, jwt.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, jwt.ErrMissingRequiredClaim):
		return "missing_claim"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "invalid_claim"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, jwt.ErrInvalidKey):
		return "invalid_key"
	default:
		return "error"
	}
}
