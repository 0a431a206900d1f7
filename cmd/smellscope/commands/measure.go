package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/smellscope/pkg/builder"
	"github.com/Sumatoshi-tech/smellscope/pkg/config"
	"github.com/Sumatoshi-tech/smellscope/pkg/export"
	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/persist"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast"
)

// measureFlags are the input, pipeline and filter flags shared by the
// analyze and detect commands. Set flags override the configuration.
type measureFlags struct {
	include       []string
	exclude       []string
	workers       int
	validate      bool
	schema        string
	progress      bool
	excludeStatic bool
	excludeInner  bool
	format        string
	out           string
}

func (f *measureFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.include, "include", nil, "Glob patterns of documents to read from directories (default **/*.json)")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "Glob patterns of documents to skip")
	flags.IntVar(&f.workers, "workers", 0, "Number of parallel workers (0 = use CPU count)")
	flags.BoolVar(&f.validate, "validate", false, "Check every document against the UAST schema")
	flags.StringVar(&f.schema, "schema", "", "Validate against this schema file instead of the embedded one")
	flags.BoolVar(&f.progress, "progress", false, "Show a progress bar on stderr")
	flags.BoolVar(&f.excludeStatic, "exclude-static", false, "Leave static classes out of the output")
	flags.BoolVar(&f.excludeInner, "exclude-inner", false, "Leave inner classes out of the output")
	flags.StringVarP(&f.format, "format", "f", config.DefaultFormat,
		"Output format: "+strings.Join(export.Formats(), ", "))
	flags.StringVarP(&f.out, "out", "o", "", "Write output to this file instead of stdout")
}

// apply overlays the flags the user set onto cfg.
func (f *measureFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("include") {
		cfg.Analysis.Include = f.include
	}

	if flags.Changed("exclude") {
		cfg.Analysis.Exclude = f.exclude
	}

	if flags.Changed("workers") {
		cfg.Analysis.Workers = f.workers
	}

	if flags.Changed("validate") || f.schema != "" {
		cfg.Analysis.Validate = f.validate || f.schema != ""
	}

	if flags.Changed("exclude-static") {
		cfg.Output.ExcludeStatic = f.excludeStatic
	}

	if flags.Changed("exclude-inner") {
		cfg.Output.ExcludeInner = f.excludeInner
	}

	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
}

func (f *measureFlags) filter(cfg *config.Config) analyze.Filter {
	return analyze.Filter{ExcludeStatic: cfg.Output.ExcludeStatic, ExcludeInner: cfg.Output.ExcludeInner}
}

// buildOptions returns the builder options for one input set and a function
// to call once the build is done.
func (f *measureFlags) buildOptions(cmd *cobra.Command, s *session, set *inputSet) ([]builder.Option, func(), error) {
	var opts []builder.Option

	if s.cfg.Analysis.Validate {
		validator, err := f.validator()
		if err != nil {
			return nil, nil, err
		}

		opts = append(opts, builder.WithValidator(validator))
	}

	if !f.progress {
		return opts, func() {}, nil
	}

	bar := newFileProgress(cmd.ErrOrStderr(), set.label, len(set.sources))

	return append(opts, bar.hook()), bar.finish, nil
}

func (f *measureFlags) validator() (*uast.Validator, error) {
	if f.schema != "" {
		return uast.NewValidatorFromFile(f.schema)
	}

	return uast.NewValidator()
}

// measure builds and measures one input set.
func (f *measureFlags) measure(
	ctx context.Context, cmd *cobra.Command, s *session, set *inputSet,
) (*analyze.Snapshot, error) {
	opts, done, err := f.buildOptions(cmd, s, set)
	if err != nil {
		return nil, err
	}

	snap, err := s.pipeline(analyze.WithBuildOptions(opts...)).AnalyzeSources(ctx, set.label, set.sources)

	done()

	return snap, err
}

// measureHistory builds every --snapshot input into one history and
// measures each project independently.
func (f *measureFlags) measureHistory(
	ctx context.Context, cmd *cobra.Command, s *session, specs []snapshotSpec,
) ([]*analyze.Snapshot, int, uint64, error) {
	history := model.NewHistory()

	var (
		files int
		size  uint64
	)

	for _, spec := range specs {
		set, err := loadInputs([]string{spec.path}, cmd.InOrStdin(), discoverOptions(s.cfg.Analysis))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("snapshot %s: %w", spec.id, err)
		}

		set.label = spec.id

		opts, done, err := f.buildOptions(cmd, s, set)
		if err != nil {
			return nil, 0, 0, err
		}

		project, err := builder.New(append([]builder.Option{
			builder.WithWorkers(s.cfg.Analysis.Workers),
			builder.WithLogger(s.logger),
		}, opts...)...).BuildSources(ctx, spec.id, set.sources)

		done()

		if err != nil {
			return nil, 0, 0, fmt.Errorf("snapshot %s: %w", spec.id, err)
		}

		history.Add(spec.id, project)

		files += len(set.sources)
		size += set.bytes()
	}

	snaps, err := s.pipeline().AnalyzeHistory(ctx, history)
	if err != nil {
		return nil, 0, 0, err
	}

	return snaps, files, size, nil
}

// parseKinds resolves metric names given on the command line.
func parseKinds(names []string) ([]metrics.Kind, error) {
	out := make([]metrics.Kind, 0, len(names))

	for _, name := range names {
		kind, err := metrics.ParseKind(name)
		if err != nil {
			return nil, err
		}

		out = append(out, kind)
	}

	return out, nil
}

// writeOutput runs fn against stdout, or the named file when path is set.
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}

	file, err := os.Create(path) //nolint:gosec // user-selected output path.
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	defer func() { err = errors.Join(err, file.Close()) }()

	return fn(file)
}

// snapshotStore opens a directory of lz4-compressed gob snapshots.
func snapshotStore(dir string) (*persist.Store[analyze.Snapshot], error) {
	return persist.NewStore[analyze.Snapshot](dir, persist.NewLZ4Codec(persist.NewGobCodec()))
}

func applyColor(g *GlobalOptions) {
	if g.NoColor {
		color.NoColor = true
	}
}
