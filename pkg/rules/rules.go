// Package rules detects design smells by evaluating metric-threshold
// criteria against class metric maps.
//
// A rule pairs a criterion with a citation and a smell type. Fixed rules use
// literal thresholds; dynamic rules take some thresholds from a corpus
// percentile and are bound to a corpus before evaluation.
package rules

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
)

// Sentinel errors.
var (
	ErrMissingMetric     = errors.New("metric missing from map")
	ErrEmptyCorpus       = errors.New("empty corpus")
	ErrEmptyCriterion    = errors.New("criterion has no operands")
	ErrUnboundThreshold  = errors.New("percentile threshold not bound to a corpus")
	ErrUnknownOperator   = errors.New("unknown comparison operator")
	ErrInvalidPercentile = errors.New("percentile outside [0, 100]")
	ErrInvalidRule       = errors.New("invalid rule")
)

// SmellType tags the design smell a rule detects.
type SmellType string

// Smell types.
const (
	GodClass SmellType = "GOD_CLASS"
)

// Issue is one rule match on one code snippet.
type Issue struct {
	CodeSnippetID string    `json:"code_snippet_id" yaml:"code_snippet_id"`
	SmellType     SmellType `json:"smell_type"      yaml:"smell_type"`
	Citation      string    `json:"citation"        yaml:"citation"`
}

// Rule is a cited criterion for one smell type.
type Rule struct {
	Citation  string
	SmellType SmellType
	Criterion Criterion
}

// Validate returns an Issue when the criterion holds for values, or nil when
// it does not. A metric absent from values is an error.
func (r Rule) Validate(id string, values metrics.Values) (*Issue, error) {
	holds, err := r.Criterion.Evaluate(values)
	if err != nil {
		return nil, fmt.Errorf("rule %s on %s: %w", r.Citation, id, err)
	}

	if !holds {
		return nil, nil //nolint:nilnil // no match is not an error.
	}

	return &Issue{CodeSnippetID: id, SmellType: r.SmellType, Citation: r.Citation}, nil
}

// IsDynamic reports whether the rule needs a corpus.
func (r Rule) IsDynamic() bool { return r.Criterion.IsDynamic() }

// Bind returns the rule with every percentile threshold computed from corpus.
func (r Rule) Bind(corpus Corpus) (Rule, error) {
	criterion, err := r.Criterion.Bind(corpus)
	if err != nil {
		return Rule{}, fmt.Errorf("bind rule %s: %w", r.Citation, err)
	}

	r.Criterion = criterion

	return r, nil
}

func (r Rule) String() string {
	return fmt.Sprintf("%s [%s] %s", r.Citation, r.SmellType, r.Criterion)
}
