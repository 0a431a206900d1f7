package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesTotal    = "smellscope.analysis.files.total"
	metricClassesTotal  = "smellscope.analysis.classes.total"
	metricMembersTotal  = "smellscope.analysis.members.total"
	metricIssuesTotal   = "smellscope.analysis.issues.total"
	metricPhaseDuration = "smellscope.analysis.phase.duration.seconds"

	attrPhase = "phase"
	attrSmell = "smell"
)

// durationBucketBoundaries covers 1ms to 300s for analysis phases.
//
//nolint:gochecknoglobals // read-only bucket layout.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300}

// AnalysisMetrics holds OTel instruments for analysis-specific metrics.
type AnalysisMetrics struct {
	filesTotal    metric.Int64Counter
	classesTotal  metric.Int64Counter
	membersTotal  metric.Int64Counter
	issuesTotal   metric.Int64Counter
	phaseDuration metric.Float64Histogram
}

// AnalysisStats holds the statistics for a single analysis run,
// decoupled from pipeline types.
type AnalysisStats struct {
	Files   int
	Classes int
	Members int
	// Issues counts detected issues by smell type.
	Issues map[string]int
	// Phases maps a phase name (build, members, classes, rules) to its duration.
	Phases map[string]time.Duration
}

// NewAnalysisMetrics creates analysis metric instruments from the given meter.
func NewAnalysisMetrics(mt metric.Meter) (*AnalysisMetrics, error) {
	files, err := mt.Int64Counter(metricFilesTotal,
		metric.WithDescription("Total source files analyzed"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesTotal, err)
	}

	classes, err := mt.Int64Counter(metricClassesTotal,
		metric.WithDescription("Total classes measured"),
		metric.WithUnit("{class}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricClassesTotal, err)
	}

	members, err := mt.Int64Counter(metricMembersTotal,
		metric.WithDescription("Total members measured"),
		metric.WithUnit("{member}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricMembersTotal, err)
	}

	issues, err := mt.Int64Counter(metricIssuesTotal,
		metric.WithDescription("Design smell issues by smell type"),
		metric.WithUnit("{issue}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricIssuesTotal, err)
	}

	phaseDur, err := mt.Float64Histogram(metricPhaseDuration,
		metric.WithDescription("Per-phase analysis duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricPhaseDuration, err)
	}

	return &AnalysisMetrics{
		filesTotal:    files,
		classesTotal:  classes,
		membersTotal:  members,
		issuesTotal:   issues,
		phaseDuration: phaseDur,
	}, nil
}

// RecordRun records statistics for a completed analysis run.
// Safe to call on a nil receiver (no-op).
func (am *AnalysisMetrics) RecordRun(ctx context.Context, stats AnalysisStats) {
	if am == nil {
		return
	}

	am.filesTotal.Add(ctx, int64(stats.Files))
	am.classesTotal.Add(ctx, int64(stats.Classes))
	am.membersTotal.Add(ctx, int64(stats.Members))

	for smell, n := range stats.Issues {
		am.issuesTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String(attrSmell, smell)))
	}

	for phase, d := range stats.Phases {
		am.phaseDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String(attrPhase, phase)))
	}
}
