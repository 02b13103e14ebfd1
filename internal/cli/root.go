// Package cli implements the jwts command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jwtsgo/jwt/internal/config"
	"github.com/jwtsgo/jwt/metrics"
)

// app holds the state shared by the sub commands of one invocation.
type app struct {
	configFile      string
	logLevel        string
	logFormat       string
	output          string
	metricsTextfile string

	cfg      *config.Config
	logger   *logrus.Logger
	registry *prometheus.Registry
	metrics  *metrics.Collector

	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).Execute()
}

// NewRootCommand returns the jwts command writing results to "out"
// and logs to "errOut".
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, now: time.Now}

	root := &cobra.Command{
		Use:   "jwts",
		Short: "jwts - sign, verify and decode JSON Web Tokens",
		Long: `jwts signs, verifies and decodes compact JSON Web Tokens.

The verification algorithm is always the configured one, the token's own
"alg" header is compared against it but never used to choose it.

Configuration is read from the --config YAML file, a .env file and
JWTS_ prefixed environment variables; flags override all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (panic, fatal, error, warn, info, debug, trace)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (text, json)")
	flags.StringVarP(&a.output, "output", "o", "text", "output format (text, json)")
	flags.StringVar(&a.metricsTextfile, "metrics-textfile", "",
		"write the Prometheus metrics of this run to the given node-exporter textfile")

	root.AddCommand(newSignCommand(a), newVerifyCommand(a), newDecodeCommand(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}

	switch a.output {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("unknown output format: %s", a.output)
	}

	a.cfg = cfg
	a.logger = newLogger(cfg.Logging, a.errOut)
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)
	return nil
}

// validate is called by the sub commands once their flags are applied.
func (a *app) validate() error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.logger = newLogger(a.cfg.Logging, a.errOut)
	return nil
}

// finish writes the metrics textfile, also when the command failed.
func (a *app) finish(err error) error {
	if a.metricsTextfile == "" || a.registry == nil {
		return err
	}

	if werr := prometheus.WriteToTextfile(a.metricsTextfile, a.registry); werr != nil {
		a.logger.WithError(werr).Error("failed to write metrics")
		if err == nil {
			return fmt.Errorf("failed to write metrics: %w", werr)
		}
	}

	return err
}

// newLogger assumes a validated configuration, unknown values fall back to the defaults.
func newLogger(cfg config.Logging, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	}

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
