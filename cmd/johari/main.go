// Package main provides the johari command line.
//
// It is the interactive edge of the assessment: it enforces the minimum
// selection of a kind, turns domain errors into user-facing messages and
// renders the four quadrants.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/johari"
	"github.com/hupe1980/johari/codec"
	"github.com/hupe1980/johari/config"
	johariprom "github.com/hupe1980/johari/metrics/prometheus"
	"github.com/hupe1980/johari/persistence"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const (
	Version = "0.1.0"
	appName = "johari"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfg      *config.Config
	logger   *johari.Logger
	registry *johari.Registry
	// metrics is set when the run exports metrics to cfg.MetricsTextfile.
	metrics *prometheus.Registry
}

func (a *app) assessment() (*johari.Assessment, error) {
	return a.registry.Get(a.cfg.Kind)
}

func rootCmd() *cobra.Command {
	var (
		configPath      string
		kind            string
		logLevel        string
		metricsTextfile string
		a               app
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Johari and Nohari window assessments",
		Long: `johari records how people see themselves and how their peers see them,
and sorts the traits of a vocabulary into the four quadrants of a Johari
window: arena, blind spot, facade and unknown.

Stores are kept per assessment kind in the configured storage backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "version", "help", "completion":
				return nil
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if kind != "" {
				cfg.Kind = kind
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if metricsTextfile != "" {
				cfg.MetricsTextfile = metricsTextfile
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cmd, cfg.LogFormat, level)

			vocabs, err := cfg.BuildVocabularies()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			blobs, err := openBlobStore(ctx, cfg.Storage)
			if err != nil {
				return err
			}

			opts := assessmentOptions(cfg, a.logger)
			if cfg.MetricsTextfile != "" {
				a.metrics = prometheus.NewRegistry()
				collector, err := johariprom.NewCollector(a.metrics)
				if err != nil {
					return err
				}
				opts = append(opts, johari.WithMetricsCollector(collector))
			}

			a.registry, err = johari.OpenRegistry(ctx, blobs, vocabs, opts...)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.metrics == nil {
				return nil
			}
			if err := prometheus.WriteToTextfile(a.cfg.MetricsTextfile, a.metrics); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVarP(&kind, "kind", "k", "", "Assessment kind (johari, nohari or a configured kind)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics of the run to this file")

	cmd.AddCommand(
		vocabCmd(&a),
		selfCmd(&a),
		peerCmd(&a),
		queryCmd(&a),
		subjectsCmd(&a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

func newLogger(cmd *cobra.Command, format string, level slog.Level) *johari.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return johari.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), opts))
	}
	return johari.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
}

func assessmentOptions(cfg *config.Config, logger *johari.Logger) []johari.Option {
	// Validate has already checked codec and compression.
	compression, _ := persistence.ParseCompression(cfg.Compression)

	opts := []johari.Option{
		johari.WithLogger(logger),
		johari.WithCodec(codec.MustByName(cfg.Codec)),
		johari.WithCompression(compression),
		johari.WithStrictLoad(cfg.StrictLoad),
		johari.WithStrictTraitNames(cfg.StrictTraitNames),
	}
	if cfg.SubmissionRate > 0 {
		opts = append(opts, johari.WithSubmissionRate(rate.Limit(cfg.SubmissionRate), cfg.SubmissionBurst))
	}
	return opts
}
