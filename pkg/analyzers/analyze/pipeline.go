// Package analyze runs the measurement pipeline: build a project model,
// compute member metrics, compute class metrics, then snapshot the result.
// Member and class metrics are computed in parallel once linking has
// completed; class metrics start only after every member is measured.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/class"
	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/member"
	"github.com/Sumatoshi-tech/smellscope/pkg/builder"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/observability"
	"github.com/Sumatoshi-tech/smellscope/pkg/rules"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast"
)

// Phase names used for spans and duration metrics.
const (
	PhaseBuild   = "build"
	PhaseMembers = "members"
	PhaseClasses = "classes"
	PhaseRules   = "rules"
)

// ErrNilProject is returned when measuring a nil project.
var ErrNilProject = errors.New("nil project")

// Pipeline measures projects.
type Pipeline struct {
	workers   int
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *observability.AnalysisMetrics
	buildOpts []builder.Option
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers bounds metric-phase and declaration-pass parallelism.
// Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the pipeline and builder logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTracer sets the tracer used for phase spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// WithMetrics records run statistics on the given instruments.
func WithMetrics(am *observability.AnalysisMetrics) Option {
	return func(p *Pipeline) { p.metrics = am }
}

// WithBuildOptions passes extra options to the model builder.
func WithBuildOptions(opts ...builder.Option) Option {
	return func(p *Pipeline) { p.buildOpts = append(p.buildOpts, opts...) }
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:  otel.Tracer(observability.TracerName),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Pipeline) newBuilder() *builder.Builder {
	opts := append([]builder.Option{
		builder.WithWorkers(p.workers),
		builder.WithLogger(p.logger),
	}, p.buildOpts...)

	return builder.New(opts...)
}

// AnalyzeSources decodes, builds and measures one batch of UAST documents.
func (p *Pipeline) AnalyzeSources(ctx context.Context, source string, sources []uast.Source) (*Snapshot, error) {
	return p.analyze(ctx, source, len(sources), func(ctx context.Context) (*model.Project, error) {
		return p.newBuilder().BuildSources(ctx, source, sources)
	})
}

// AnalyzeFiles builds and measures one batch of decoded files.
func (p *Pipeline) AnalyzeFiles(ctx context.Context, source string, files []uast.File) (*Snapshot, error) {
	return p.analyze(ctx, source, len(files), func(ctx context.Context) (*model.Project, error) {
		return p.newBuilder().Build(ctx, source, files)
	})
}

// AnalyzeHistory measures each snapshot of a history independently, in
// history order. A failing snapshot stops the run.
func (p *Pipeline) AnalyzeHistory(ctx context.Context, history *model.History) ([]*Snapshot, error) {
	ids := history.IDs()
	out := make([]*Snapshot, 0, len(ids))

	for _, id := range ids {
		project, _ := history.Get(id)

		if err := p.Measure(ctx, project); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", id, err)
		}

		out = append(out, NewSnapshot(project))
	}

	return out, nil
}

func (p *Pipeline) analyze(
	ctx context.Context, source string, files int, build func(context.Context) (*model.Project, error),
) (*Snapshot, error) {
	ctx, span := p.tracer.Start(ctx, "smellscope.analyze",
		trace.WithAttributes(attribute.String("analysis.source", source), attribute.Int("analysis.files", files)))
	defer span.End()

	phases := make(map[string]time.Duration)

	start := time.Now()

	var project *model.Project

	err := p.phase(ctx, PhaseBuild, func(ctx context.Context) error {
		var buildErr error

		project, buildErr = build(ctx)

		return buildErr
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build failed")

		return nil, err
	}

	phases[PhaseBuild] = time.Since(start)

	if err := p.measure(ctx, project, phases); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "measure failed")

		return nil, err
	}

	snap := NewSnapshot(project)

	span.SetAttributes(
		attribute.Int("analysis.classes", len(snap.Classes)),
		attribute.Int("analysis.members", snap.MemberCount()),
	)

	p.metrics.RecordRun(ctx, observability.AnalysisStats{
		Files:   files,
		Classes: len(snap.Classes),
		Members: snap.MemberCount(),
		Phases:  phases,
	})

	p.logger.InfoContext(ctx, "project measured",
		"source", source, "files", files, "classes", len(snap.Classes), "members", snap.MemberCount(),
		"duration", time.Since(start))

	return snap, nil
}

func (p *Pipeline) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, "smellscope."+name)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" failed")
	}

	return err
}

// Measure computes member metrics and then class metrics for a built
// project, attaching them to the model.
func (p *Pipeline) Measure(ctx context.Context, project *model.Project) error {
	return p.measure(ctx, project, make(map[string]time.Duration))
}

func (p *Pipeline) measure(ctx context.Context, project *model.Project, phases map[string]time.Duration) error {
	if project == nil {
		return ErrNilProject
	}

	members := project.Members()

	start := time.Now()

	err := p.phase(ctx, PhaseMembers, func(ctx context.Context) error {
		return p.each(ctx, len(members), func(idx int) {
			members[idx].Metrics = member.Calculate(members[idx])
		})
	})
	if err != nil {
		return fmt.Errorf("member metrics: %w", err)
	}

	phases[PhaseMembers] = time.Since(start)
	start = time.Now()

	err = p.phase(ctx, PhaseClasses, func(ctx context.Context) error {
		return p.each(ctx, len(project.Classes), func(idx int) {
			project.Classes[idx].Metrics = class.Calculate(project.Classes[idx])
		})
	})
	if err != nil {
		return fmt.Errorf("class metrics: %w", err)
	}

	phases[PhaseClasses] = time.Since(start)

	return nil
}

// each runs fn for every index on a bounded worker group. Each index writes
// only its own element.
func (p *Pipeline) each(ctx context.Context, count int, fn func(idx int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for idx := range count {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fn(idx)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("worker group: %w", err)
	}

	return nil
}

// Detect applies the engine to the classes of a snapshot.
func (p *Pipeline) Detect(
	ctx context.Context, snap *Snapshot, engine *rules.Engine, opts ...rules.FindOption,
) (*rules.Report, error) {
	ctx, span := p.tracer.Start(ctx, "smellscope."+PhaseRules,
		trace.WithAttributes(attribute.Int("rules.count", len(engine.Rules()))))
	defer span.End()

	start := time.Now()

	report, err := engine.FindIssues(snap.Corpus(), opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "detect failed")

		return nil, fmt.Errorf("detect smells in %s: %w", snap.Source, err)
	}

	issues := make(map[string]int)

	for _, entry := range report.Entries() {
		for _, issue := range entry.Issues {
			issues[string(issue.SmellType)]++
		}
	}

	span.SetAttributes(attribute.Int("rules.issues", report.Count()))

	p.metrics.RecordRun(ctx, observability.AnalysisStats{
		Issues: issues,
		Phases: map[string]time.Duration{PhaseRules: time.Since(start)},
	})

	p.logger.InfoContext(ctx, "smells detected",
		"source", snap.Source, "classes", report.Len(), "issues", report.Count())

	return report, nil
}
