package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
)

// Operator compares a metric value against a threshold.
type Operator string

// Comparison operators.
const (
	GreaterThan    Operator = ">"
	GreaterOrEqual Operator = ">="
	LessThan       Operator = "<"
	LessOrEqual    Operator = "<="
	Equal          Operator = "="
)

// ParseOperator resolves an operator symbol.
func ParseOperator(symbol string) (Operator, error) {
	op := Operator(strings.TrimSpace(symbol))

	switch op {
	case GreaterThan, GreaterOrEqual, LessThan, LessOrEqual, Equal:
		return op, nil
	case "==":
		return Equal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
	}
}

// Holds reports whether value op threshold is true.
func (op Operator) Holds(value, threshold float64) bool {
	switch op {
	case GreaterThan:
		return value > threshold
	case GreaterOrEqual:
		return value >= threshold
	case LessThan:
		return value < threshold
	case LessOrEqual:
		return value <= threshold
	case Equal:
		return value == threshold
	default:
		return false
	}
}

// Condition compares one metric against a threshold. A condition with a
// Percentile takes its threshold from a corpus and must be bound before
// evaluation.
type Condition struct {
	Metric     metrics.Kind
	Operator   Operator
	Threshold  float64
	Percentile *float64
}

// Criterion is a boolean expression over a metric map: exactly one of
// Condition, All or Any is set.
type Criterion struct {
	Condition *Condition
	// All holds when every operand holds.
	All []Criterion
	// Any holds when at least one operand holds.
	Any []Criterion
}

// Metric builds a fixed-threshold leaf.
func Metric(kind metrics.Kind, op Operator, threshold float64) Criterion {
	return Criterion{Condition: &Condition{Metric: kind, Operator: op, Threshold: threshold}}
}

// Percentile builds a leaf whose threshold is the p-th percentile of the
// metric over a corpus.
func Percentile(kind metrics.Kind, op Operator, p float64) Criterion {
	return Criterion{Condition: &Condition{Metric: kind, Operator: op, Percentile: &p}}
}

// And holds when every operand holds.
func And(operands ...Criterion) Criterion { return Criterion{All: operands} }

// Or holds when any operand holds.
func Or(operands ...Criterion) Criterion { return Criterion{Any: operands} }

// Evaluate applies the criterion to values. Every operand is evaluated, so a
// metric missing anywhere in the tree fails the evaluation.
func (c Criterion) Evaluate(values metrics.Values) (bool, error) {
	switch {
	case c.Condition != nil:
		return c.Condition.evaluate(values)
	case len(c.All) > 0:
		return evaluateAll(c.All, values, true)
	case len(c.Any) > 0:
		return evaluateAll(c.Any, values, false)
	default:
		return false, ErrEmptyCriterion
	}
}

func evaluateAll(operands []Criterion, values metrics.Values, conjunction bool) (bool, error) {
	result := conjunction

	for _, operand := range operands {
		holds, err := operand.Evaluate(values)
		if err != nil {
			return false, err
		}

		if conjunction {
			result = result && holds
		} else {
			result = result || holds
		}
	}

	return result, nil
}

func (cond *Condition) evaluate(values metrics.Values) (bool, error) {
	if cond.Percentile != nil {
		return false, fmt.Errorf("%w: %s at P%s", ErrUnboundThreshold, cond.Metric, formatNumber(*cond.Percentile))
	}

	value, ok := values.Get(cond.Metric)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrMissingMetric, cond.Metric)
	}

	return cond.Operator.Holds(value, cond.Threshold), nil
}

// IsDynamic reports whether any leaf needs a corpus threshold.
func (c Criterion) IsDynamic() bool {
	if c.Condition != nil {
		return c.Condition.Percentile != nil
	}

	for _, operand := range append(append([]Criterion(nil), c.All...), c.Any...) {
		if operand.IsDynamic() {
			return true
		}
	}

	return false
}

// Metrics returns the metric kinds referenced by the criterion, in first-use order.
func (c Criterion) Metrics() []metrics.Kind {
	var out []metrics.Kind

	seen := make(map[metrics.Kind]bool)

	c.walk(func(cond *Condition) {
		if !seen[cond.Metric] {
			seen[cond.Metric] = true
			out = append(out, cond.Metric)
		}
	})

	return out
}

// Bind returns a copy of the criterion with every percentile leaf replaced by
// a fixed threshold computed from corpus.
func (c Criterion) Bind(corpus Corpus) (Criterion, error) {
	if c.Condition != nil {
		if c.Condition.Percentile == nil {
			return c, nil
		}

		threshold, err := corpus.Threshold(c.Condition.Metric, *c.Condition.Percentile)
		if err != nil {
			return Criterion{}, err
		}

		return Metric(c.Condition.Metric, c.Condition.Operator, threshold), nil
	}

	all, err := bindAll(c.All, corpus)
	if err != nil {
		return Criterion{}, err
	}

	anyOf, err := bindAll(c.Any, corpus)
	if err != nil {
		return Criterion{}, err
	}

	return Criterion{All: all, Any: anyOf}, nil
}

func bindAll(operands []Criterion, corpus Corpus) ([]Criterion, error) {
	if operands == nil {
		return nil, nil
	}

	out := make([]Criterion, 0, len(operands))

	for _, operand := range operands {
		bound, err := operand.Bind(corpus)
		if err != nil {
			return nil, err
		}

		out = append(out, bound)
	}

	return out, nil
}

func (c Criterion) walk(fn func(*Condition)) {
	if c.Condition != nil {
		fn(c.Condition)

		return
	}

	for _, operand := range c.All {
		operand.walk(fn)
	}

	for _, operand := range c.Any {
		operand.walk(fn)
	}
}

// String renders the criterion as an infix expression, e.g.
// "(ATFD > 2 AND WMC > 47)".
func (c Criterion) String() string {
	switch {
	case c.Condition != nil:
		threshold := formatNumber(c.Condition.Threshold)
		if c.Condition.Percentile != nil {
			threshold = "P" + formatNumber(*c.Condition.Percentile)
		}

		return fmt.Sprintf("%s %s %s", c.Condition.Metric, c.Condition.Operator, threshold)
	case len(c.All) > 0:
		return join(c.All, " AND ")
	case len(c.Any) > 0:
		return join(c.Any, " OR ")
	default:
		return "<empty>"
	}
}

func join(operands []Criterion, sep string) string {
	parts := make([]string, 0, len(operands))
	for _, operand := range operands {
		parts = append(parts, operand.String())
	}

	return "(" + strings.Join(parts, sep) + ")"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
