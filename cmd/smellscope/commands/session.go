// Package commands implements CLI command handlers for smellscope.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/smellscope/pkg/config"
	"github.com/Sumatoshi-tech/smellscope/pkg/observability"
	"github.com/Sumatoshi-tech/smellscope/pkg/version"
)

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath  string
	MetricsFile string
	Verbose     bool
	Quiet       bool
	NoColor     bool
}

// Register binds the options to persistent flags of root.
func (g *GlobalOptions) Register(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVarP(&g.ConfigPath, "config", "c", "", "Config file (default: .smellscope.yaml in ., ./config, /etc/smellscope)")
	flags.StringVar(&g.MetricsFile, "metrics-file", "", "Write run metrics to this file in Prometheus text format")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Verbose logging")
	flags.BoolVarP(&g.Quiet, "quiet", "q", false, "Only log errors")
	flags.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
}

// session is the per-run state: configuration, logger, telemetry providers
// and analysis instruments.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	providers observability.Providers
	textfile  *observability.Textfile
	metrics   *observability.AnalysisMetrics
}

func openSession(g *GlobalOptions, stderr io.Writer, mode observability.AppMode) (*session, error) {
	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	if g.MetricsFile != "" {
		cfg.Telemetry.MetricsFile = g.MetricsFile
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.LogLevel = observability.ParseLevel(cfg.Logging.Level)
	obsCfg.LogJSON = cfg.LogJSON()

	switch {
	case g.Quiet:
		obsCfg.LogLevel = slog.LevelError
	case g.Verbose:
		obsCfg.LogLevel = slog.LevelDebug
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	s := &session{
		cfg:       cfg,
		logger:    observability.NewLogger(stderr, obsCfg),
		providers: providers,
	}

	meter := providers.Meter

	if cfg.Telemetry.MetricsFile != "" {
		s.textfile, err = observability.NewTextfile()
		if err != nil {
			return nil, errors.Join(err, providers.Shutdown(context.Background()))
		}

		meter = s.textfile.Meter()
	}

	s.metrics, err = observability.NewAnalysisMetrics(meter)
	if err != nil {
		return nil, errors.Join(err, s.Close(context.Background()))
	}

	return s, nil
}

func (s *session) pipeline(opts ...analyze.Option) *analyze.Pipeline {
	return analyze.New(append([]analyze.Option{
		analyze.WithWorkers(s.cfg.Analysis.Workers),
		analyze.WithLogger(s.logger),
		analyze.WithTracer(s.providers.Tracer),
		analyze.WithMetrics(s.metrics),
	}, opts...)...)
}

// Close writes the metrics textfile, when configured, and flushes telemetry.
func (s *session) Close(ctx context.Context) error {
	var errs []error

	if s.textfile != nil {
		errs = append(errs, s.textfile.Write(s.cfg.Telemetry.MetricsFile), s.textfile.Close(ctx))
	}

	if s.providers.Shutdown != nil {
		errs = append(errs, s.providers.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
