// Package config loads the jwts command configuration from a YAML file,
// a .env file and JWTS_ prefixed environment variables, in this order of precedence
// (the environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jwtsgo/jwt"
)

// EnvPrefix prefixes every environment variable, e.g. JWTS_ALGORITHM.
const EnvPrefix = "JWTS_"

// Output encodings of signed tokens.
const (
	EncodingBase64 = "base64"
	EncodingBase16 = "base16"
	EncodingBase32 = "base32"
)

// Config is the jwts command configuration.
type Config struct {
	// Algorithm is the pinned algorithm name, e.g. HS256.
	Algorithm string `yaml:"algorithm" env:"ALGORITHM"`
	// PrivateKey is a PEM file path, or for HMAC a file holding the secret or the raw secret itself.
	PrivateKey string `yaml:"private_key" env:"PRIVATE_KEY"`
	// PublicKey is a PEM file path, unused for HMAC.
	PublicKey string `yaml:"public_key" env:"PUBLIC_KEY"`
	// KeyPassword decrypts an "ENCRYPTED PRIVATE KEY" PEM block.
	KeyPassword string `yaml:"key_password" env:"KEY_PASSWORD"`
	AllowNone   bool   `yaml:"allow_none" env:"ALLOW_NONE"`
	// Encoding of the signed token: base64 (plain token), base16 or base32.
	Encoding string  `yaml:"encoding" env:"ENCODING"`
	Policy   Policy  `yaml:"policy" envPrefix:"POLICY_"`
	Logging  Logging `yaml:"logging" envPrefix:"LOG_"`
}

// Policy holds the claims checked by "jwts verify" and set by "jwts sign".
type Policy struct {
	Issuer   string   `yaml:"issuer" env:"ISSUER"`
	Subject  string   `yaml:"subject" env:"SUBJECT"`
	Audience []string `yaml:"audience" env:"AUDIENCE" envSeparator:","`
	Required []string `yaml:"required" env:"REQUIRED" envSeparator:","`
	// Claims values are parsed as JSON when possible, strings otherwise.
	Claims map[string]string `yaml:"claims" env:"CLAIMS"`
	Leeway time.Duration     `yaml:"leeway" env:"LEEWAY"`
}

// Logging configures the logrus logger.
type Logging struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Algorithm: jwt.NameHS256,
		Encoding:  EncodingBase64,
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the optional YAML file at "path" on top of Default,
// then the .env files (missing files are skipped) and the environment.
func Load(path string, dotenvFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 - Config file path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := loadDotenv(dotenvFiles...); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}

		// existing variables are not overridden.
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if !knownAlgorithm(c.Algorithm) {
		result = multierror.Append(result, fmt.Errorf("algorithm: unknown %q", c.Algorithm))
	}

	if c.Algorithm == jwt.NameNone {
		if !c.AllowNone {
			result = multierror.Append(result, fmt.Errorf("algorithm: none requires allow_none"))
		}
	} else if c.PrivateKey == "" && c.PublicKey == "" {
		result = multierror.Append(result, fmt.Errorf("private_key or public_key is required"))
	}

	switch c.Encoding {
	case "", EncodingBase64, EncodingBase16, EncodingBase32:
	default:
		result = multierror.Append(result, fmt.Errorf("encoding: unknown %q", c.Encoding))
	}

	if c.Policy.Leeway < 0 {
		result = multierror.Append(result, fmt.Errorf("policy.leeway: must not be negative"))
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("logging.level: %w", err))
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("logging.format: unknown %q", c.Logging.Format))
	}

	return result.ErrorOrNil()
}

func knownAlgorithm(name string) bool {
	for _, n := range jwt.Algorithms() {
		if n == name {
			return true
		}
	}

	return false
}
