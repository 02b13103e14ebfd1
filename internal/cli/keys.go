package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jwtsgo/jwt"
	"github.com/jwtsgo/jwt/internal/config"
)

// loadAlgorithm builds the configured algorithm. Signing needs the private key,
// verification uses the public key and falls back to the private one.
func loadAlgorithm(cfg *config.Config, signing bool) (jwt.Algorithm, error) {
	name := cfg.Algorithm

	switch {
	case name == jwt.NameNone:
		return jwt.None(), nil
	case strings.HasPrefix(name, "HS"):
		source := cfg.PrivateKey
		if source == "" {
			source = cfg.PublicKey
		}

		secret, err := jwt.LoadHMAC(source)
		if err != nil {
			return nil, err
		}

		// a secret file usually ends with a new line.
		return jwt.NewAlgorithm(name, bytes.TrimRight(secret, "\r\n"), nil)
	}

	var (
		private any
		public  any
		err     error
	)

	if cfg.PrivateKey != "" {
		if private, err = jwt.LoadPrivateKey(cfg.PrivateKey, []byte(cfg.KeyPassword)); err != nil {
			return nil, err
		}
	} else if signing {
		return nil, fmt.Errorf("%w: %s: private_key is required to sign", jwt.ErrInvalidKey, name)
	}

	if cfg.PublicKey != "" {
		if public, err = jwt.LoadPublicKey(cfg.PublicKey); err != nil {
			return nil, err
		}
	}

	return jwt.NewAlgorithm(name, private, public)
}

// parseClaims parses "name=value" pairs, see parseValue.
func parseClaims(pairs []string) (map[string]any, []string, error) {
	claims := make(map[string]any, len(pairs))
	order := make([]string, 0, len(pairs))

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("invalid claim %q, expected name=value", pair)
		}

		if _, exists := claims[name]; !exists {
			order = append(order, name)
		}
		claims[name] = parseValue(value)
	}

	return claims, order, nil
}

// sortedNames returns the keys of the configured claims in sorted order.
func sortedNames(claims map[string]string) []string {
	names := make([]string, 0, len(claims))
	for name := range claims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseValue returns the JSON value of "s" (number, bool, array, object, null)
// or "s" itself when it is not valid JSON.
func parseValue(s string) any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return s
	}

	if _, err := dec.Token(); err != io.EOF {
		return s
	}

	return v
}
