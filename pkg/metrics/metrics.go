// Package metrics defines the metric-kind enumeration shared by calculators,
// rules and exporters, and the interfaces for self-contained metrics.
//
// Each metric is a computation unit that:
//   - Declares its input (a member or a class)
//   - Computes a numeric value
//   - Provides metadata for documentation and serialization
package metrics

import (
	"errors"
	"fmt"
)

// Metric categories.
const (
	TypeSize        = "size"
	TypeComplexity  = "complexity"
	TypeCohesion    = "cohesion"
	TypeCoupling    = "coupling"
	TypeInheritance = "inheritance"
)

// Sentinel errors.
var (
	ErrUnknownKind     = errors.New("unknown metric kind")
	ErrDuplicateMetric = errors.New("metric already registered")
)

// Metric is the core interface that all metrics must implement.
type Metric[In, Out any] interface {
	// Name returns the stable metric abbreviation (a [Kind] value).
	Name() string

	// DisplayName returns a human-readable name for reports.
	DisplayName() string

	// Description returns what the metric measures and its edge-case values.
	Description() string

	// Type returns the metric category (e.g., "cohesion", "coupling").
	Type() string

	// Compute calculates the metric value from input data.
	Compute(input In) Out
}

// MetricMeta holds the common metadata for a metric.
// Embed this in metric implementations to satisfy metadata methods.
type MetricMeta struct {
	MetricName        string
	MetricDisplayName string
	MetricDescription string
	MetricType        string
}

// Name returns the machine-readable identifier.
func (m MetricMeta) Name() string { return m.MetricName }

// DisplayName returns a human-readable name for UI/reports.
func (m MetricMeta) DisplayName() string { return m.MetricDisplayName }

// Description returns detailed documentation.
func (m MetricMeta) Description() string { return m.MetricDescription }

// Type returns the metric category.
func (m MetricMeta) Type() string { return m.MetricType }

// Func adapts a plain function to [Metric].
type Func[In any] struct {
	MetricMeta

	Fn func(In) float64
}

// NewFunc builds a metric of the given kind backed by fn.
func NewFunc[In any](kind Kind, displayName, category, description string, fn func(In) float64) *Func[In] {
	return &Func[In]{
		MetricMeta: MetricMeta{
			MetricName:        string(kind),
			MetricDisplayName: displayName,
			MetricDescription: description,
			MetricType:        category,
		},
		Fn: fn,
	}
}

// Compute calls the wrapped function.
func (f *Func[In]) Compute(input In) float64 { return f.Fn(input) }

// Registry holds an ordered collection of metrics over one input type that
// are computed together.
type Registry[In any] struct {
	order   []Kind
	metrics map[Kind]Metric[In, float64]
}

// NewRegistry creates an empty metric registry.
func NewRegistry[In any]() *Registry[In] {
	return &Registry[In]{metrics: make(map[Kind]Metric[In, float64])}
}

// Register adds a metric to the registry. The metric name must be a known kind.
func (r *Registry[In]) Register(m Metric[In, float64]) error {
	kind, err := ParseKind(m.Name())
	if err != nil {
		return err
	}

	if _, exists := r.metrics[kind]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMetric, kind)
	}

	r.order = append(r.order, kind)
	r.metrics[kind] = m

	return nil
}

// MustRegister is like Register but panics on error. Intended for package-level catalogs.
func (r *Registry[In]) MustRegister(ms ...Metric[In, float64]) *Registry[In] {
	for _, m := range ms {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}

	return r
}

// Get retrieves a metric by kind.
func (r *Registry[In]) Get(kind Kind) (Metric[In, float64], bool) {
	m, ok := r.metrics[kind]

	return m, ok
}

// Kinds returns the registered kinds in registration order.
func (r *Registry[In]) Kinds() []Kind {
	return append([]Kind(nil), r.order...)
}

// Compute evaluates every registered metric against input.
func (r *Registry[In]) Compute(input In) Values {
	out := make(Values, len(r.order))

	for _, kind := range r.order {
		out[kind] = r.metrics[kind].Compute(input)
	}

	return out
}

// Describe returns metadata for every registered metric, in registration order.
func (r *Registry[In]) Describe() []MetricMeta {
	out := make([]MetricMeta, 0, len(r.order))

	for _, kind := range r.order {
		m := r.metrics[kind]
		out = append(out, MetricMeta{
			MetricName:        m.Name(),
			MetricDisplayName: m.DisplayName(),
			MetricDescription: m.Description(),
			MetricType:        m.Type(),
		})
	}

	return out
}
