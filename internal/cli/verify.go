package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwtsgo/jwt"
	"github.com/jwtsgo/jwt/internal/config"
)

type verifyOptions struct {
	algorithm string
	key       string
	encoding  string
	issuer    string
	subject   string
	audience  []string
	claims    []string
	require   []string
	leeway    time.Duration
	at        string
	allowNone bool
}

func newVerifyCommand(a *app) *cobra.Command {
	o := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify [token|-]",
		Short: "Verify a token and print its claims",
		Long: `Verify checks the token against the configured algorithm and key,
the required and the exact-match claims and the "exp", "iat" and "nbf" claims.
The token is read from the standard input when omitted or "-".`,
		Example: `  jwts verify --alg HS256 --key secret --claim userId=u1 eyJhbGciOi...
  jwts verify --config jwts.yaml --leeway 30s < token.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(a.verify(cmd, o, args))
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.algorithm, "alg", "", "pinned algorithm name, overrides the configuration")
	f.StringVar(&o.key, "key", "", "public key PEM file, or HMAC secret (file or raw)")
	f.StringVar(&o.encoding, "encoding", "", "token encoding (base64, base16, base32)")
	f.StringVar(&o.issuer, "iss", "", `expected "iss" claim`)
	f.StringVar(&o.subject, "sub", "", `expected "sub" claim`)
	f.StringSliceVar(&o.audience, "aud", nil, `expected "aud" claim`)
	f.StringArrayVar(&o.claims, "claim", nil, "expected claim name=value")
	f.StringSliceVar(&o.require, "require", nil, "claims that must be present")
	f.DurationVar(&o.leeway, "leeway", 0, `clock skew tolerance of "exp", "iat" and "nbf"`)
	f.StringVar(&o.at, "at", "", "verify at this RFC 3339 time instead of now")
	f.BoolVar(&o.allowNone, "allow-none", false, `permit the unsecured "none" algorithm`)

	return cmd
}

func (o *verifyOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("alg") {
		cfg.Algorithm = o.algorithm
	}
	if flags.Changed("key") {
		cfg.PrivateKey = ""
		cfg.PublicKey = o.key
		if strings.HasPrefix(cfg.Algorithm, "HS") {
			cfg.PrivateKey = o.key
		}
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
	if flags.Changed("leeway") {
		cfg.Policy.Leeway = o.leeway
	}
	cfg.Policy.Required = append(cfg.Policy.Required, o.require...)
}

func (a *app) verify(cmd *cobra.Command, o *verifyOptions, args []string) error {
	o.apply(cmd, a.cfg)
	if err := a.validate(); err != nil {
		return err
	}

	now := a.now()
	if o.at != "" {
		t, err := time.Parse(time.RFC3339, o.at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		now = t
	}

	token, err := readToken(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	alg, err := loadAlgorithm(a.cfg, false)
	if err != nil {
		return err
	}

	verifier, err := a.newVerifier(alg, o)
	if err != nil {
		return err
	}

	var tok *jwt.Token
	switch a.cfg.Encoding {
	case config.EncodingBase16:
		tok, err = verifier.VerifyBase16(token, now)
	case config.EncodingBase32:
		tok, err = verifier.VerifyBase32(token, now)
	default:
		tok, err = verifier.Verify(token, now)
	}
	if err != nil {
		return err
	}

	a.logger.WithField("alg", alg.Name()).Debug("token verified")
	return newPrinter(a.output, a.out).printToken(tok, true)
}

func (a *app) newVerifier(alg jwt.Algorithm, o *verifyOptions) (*jwt.Verifier, error) {
	policy := a.cfg.Policy

	v := jwt.Require(alg).
		AllowNone(a.cfg.AllowNone).
		AcceptLeeway(policy.Leeway).
		RequireClaim(policy.Required...).
		WithLogger(a.logger).
		WithObserver(a.metrics)

	if policy.Issuer != "" {
		v.WithIssuer(policy.Issuer)
	}
	if policy.Subject != "" {
		v.WithSubject(policy.Subject)
	}
	if len(policy.Audience) > 0 {
		v.WithAudience(policy.Audience...)
	}
	for _, name := range sortedNames(policy.Claims) {
		v.WithClaim(name, parseValue(policy.Claims[name]))
	}

	claims, order, err := parseClaims(o.claims)
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		v.WithClaim(name, claims[name])
	}

	return v.Build()
}

// readToken returns the single argument or the first line of "r".
func readToken(r io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	token, _, _ := strings.Cut(strings.TrimSpace(string(b)), "\n")
	if token == "" {
		return "", fmt.Errorf("%w: empty input", jwt.ErrMalformedToken)
	}

	return strings.TrimSpace(token), nil
}
