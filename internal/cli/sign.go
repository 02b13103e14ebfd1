package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jwtsgo/jwt"
	"github.com/jwtsgo/jwt/internal/config"
)

type signOptions struct {
	algorithm string
	key       string
	encoding  string
	issuer    string
	subject   string
	audience  []string
	claims    []string
	require   []string
	expiresIn time.Duration
	notBefore time.Duration
	keyID     string
	randomID  bool
	allowNone bool
}

func newSignCommand(a *app) *cobra.Command {
	o := &signOptions{}

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a new token",
		Example: `  jwts sign --alg HS256 --key secret --sub user1 --expires-in 15m --claim admin=true
  jwts sign --config jwts.yaml --claim userId=u1 --claim appId=app --encoding base32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(a.sign(cmd, o))
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.algorithm, "alg", "", "algorithm name, overrides the configuration")
	f.StringVar(&o.key, "key", "", "private key PEM file, or HMAC secret (file or raw)")
	f.StringVar(&o.encoding, "encoding", "", "output encoding (base64, base16, base32)")
	f.StringVar(&o.issuer, "iss", "", `"iss" claim`)
	f.StringVar(&o.subject, "sub", "", `"sub" claim`)
	f.StringSliceVar(&o.audience, "aud", nil, `"aud" claim, repeat or comma separate for more`)
	f.StringArrayVar(&o.claims, "claim", nil, "custom claim name=value, JSON values are kept typed")
	f.StringSliceVar(&o.require, "require", nil, "claims that must be set")
	f.DurationVar(&o.expiresIn, "expires-in", 0, `sets "iat" to now and "exp" to now plus the duration`)
	f.DurationVar(&o.notBefore, "not-before", 0, `sets "nbf" to now plus the duration`)
	f.StringVar(&o.keyID, "kid", "", `"kid" header`)
	f.BoolVar(&o.randomID, "jti", false, `sets "jti" to a random UUID`)
	f.BoolVar(&o.allowNone, "allow-none", false, `permit the unsecured "none" algorithm`)

	return cmd
}

func (o *signOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("alg") {
		cfg.Algorithm = o.algorithm
	}
	if flags.Changed("key") {
		cfg.PrivateKey = o.key
	}
	if flags.Changed("encoding") {
		cfg.Encoding = o.encoding
	}
	if flags.Changed("allow-none") {
		cfg.AllowNone = o.allowNone
	}
	if flags.Changed("iss") {
		cfg.Policy.Issuer = o.issuer
	}
	if flags.Changed("sub") {
		cfg.Policy.Subject = o.subject
	}
	if flags.Changed("aud") {
		cfg.Policy.Audience = o.audience
	}
	cfg.Policy.Required = append(cfg.Policy.Required, o.require...)
}

func (a *app) sign(cmd *cobra.Command, o *signOptions) error {
	o.apply(cmd, a.cfg)
	if err := a.validate(); err != nil {
		return err
	}

	alg, err := loadAlgorithm(a.cfg, true)
	if err != nil {
		return err
	}

	creator, err := a.newCreator(o)
	if err != nil {
		return err
	}

	var token string
	switch a.cfg.Encoding {
	case config.EncodingBase16:
		token, err = creator.SignBase16(alg)
	case config.EncodingBase32:
		token, err = creator.SignBase32(alg)
	default:
		token, err = creator.Sign(alg)
	}
	if err != nil {
		a.logger.WithFields(logrus.Fields{"alg": alg.Name()}).WithError(err).Debug("sign failed")
		return err
	}

	a.logger.WithFields(logrus.Fields{
		"alg":      alg.Name(),
		"encoding": a.cfg.Encoding,
	}).Debug("token signed")

	return newPrinter(a.output, a.out).printSigned(token, alg.Name(), a.cfg.Encoding)
}

func (a *app) newCreator(o *signOptions) (*jwt.Creator, error) {
	policy := a.cfg.Policy
	now := a.now()

	c := jwt.NewCreator().
		WithObserver(a.metrics).
		AllowNone(a.cfg.AllowNone).
		Require(policy.Required...)

	if o.keyID != "" {
		c.WithKeyID(o.keyID)
	}
	if policy.Issuer != "" {
		c.WithIssuer(policy.Issuer)
	}
	if policy.Subject != "" {
		c.WithSubject(policy.Subject)
	}
	if len(policy.Audience) > 0 {
		c.WithAudience(policy.Audience...)
	}
	if o.expiresIn > 0 {
		c.WithMaxAge(now, o.expiresIn)
	}
	if o.notBefore > 0 {
		c.WithNotBefore(now.Add(o.notBefore))
	}
	if o.randomID {
		c.WithRandomJWTID()
	}

	// configuration claims first, sorted, then the flags in the given order.
	for _, name := range sortedNames(policy.Claims) {
		c.WithClaim(name, parseValue(policy.Claims[name]))
	}

	claims, order, err := parseClaims(o.claims)
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		c.WithClaim(name, claims[name])
	}

	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("invalid claims: %w", err)
	}

	return c, nil
}
