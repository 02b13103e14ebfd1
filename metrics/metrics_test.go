package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/m-lab/go/prometheusx/promtest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtsgo/jwt"
)

func TestLintMetrics(t *testing.T) {
	c := New(prometheus.DefaultRegisterer)
	c.SignTotal.WithLabelValues("HS256", "ok")
	c.VerifyTotal.WithLabelValues("HS256", "ok")
	c.VerifyDuration.WithLabelValues("HS256")
	promtest.LintMetrics(t)
}

func TestResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{jwt.ErrMalformedToken, "malformed"},
		{fmt.Errorf("payload: %w", jwt.ErrMalformedPayload), "malformed"},
		{jwt.ErrAlgorithmNotAllowed, "algorithm_not_allowed"},
		{jwt.ErrInvalidSignature, "invalid_signature"},
		{&jwt.ClaimError{Name: "appId", Err: jwt.ErrMissingRequiredClaim}, "missing_claim"},
		{&jwt.ClaimError{Name: "userId", Err: jwt.ErrInvalidClaim}, "invalid_claim"},
		{&jwt.TimeError{At: time.Unix(0, 0), Err: jwt.ErrTokenExpired}, "expired"},
		{&jwt.TimeError{At: time.Unix(0, 0), Err: jwt.ErrTokenNotYetValid}, "not_yet_valid"},
		{jwt.ErrInvalidKey, "invalid_key"},
		{fmt.Errorf("other"), "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Result(tt.err), "%v", tt.err)
	}
}

func TestCollectorObservesSignAndVerify(t *testing.T) {
	c := New(prometheus.NewRegistry())

	alg, err := jwt.HMAC256([]byte("secret"))
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	token, err := jwt.NewCreator().
		WithObserver(c).
		WithExpiresAt(now.Add(time.Minute)).
		Sign(alg)
	require.NoError(t, err)

	_, err = jwt.NewCreator().WithObserver(c).Sign(jwt.None())
	require.ErrorIs(t, err, jwt.ErrAlgorithmNotAllowed)

	verifier, err := jwt.Require(alg).WithObserver(c).Build()
	require.NoError(t, err)

	_, err = verifier.Verify(token, now)
	require.NoError(t, err)

	_, err = verifier.Verify(token, now.Add(time.Hour))
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = verifier.Verify("not-a-token", now)
	require.ErrorIs(t, err, jwt.ErrMalformedToken)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.SignTotal.WithLabelValues("HS256", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SignTotal.WithLabelValues("none", "algorithm_not_allowed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.VerifyTotal.WithLabelValues("HS256", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.VerifyTotal.WithLabelValues("HS256", "expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.VerifyTotal.WithLabelValues("HS256", "malformed")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.VerifyDuration))
}
