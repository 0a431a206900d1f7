package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
)

// RuleSetFile is the YAML layout of a rule set:
//
//	rules:
//	  - citation: 10.1109/MSR.2007.21
//	    smell: GOD_CLASS
//	    criterion:
//	      or:
//	        - {metric: NMD, op: ">", threshold: 15}
//	        - {metric: NAD, op: ">", threshold: 15}
//
// A leaf with a percentile instead of a threshold makes the rule dynamic.
type RuleSetFile struct {
	Rules []RuleDefinition `yaml:"rules"`
}

// RuleDefinition is one rule in a rule set file.
type RuleDefinition struct {
	Citation  string              `yaml:"citation"`
	Smell     string              `yaml:"smell"`
	Criterion CriterionDefinition `yaml:"criterion"`
}

// CriterionDefinition is a criterion node: a leaf (metric, op and a
// threshold or percentile) or a list of and/or operands.
type CriterionDefinition struct {
	Metric     string                `yaml:"metric,omitempty"`
	Op         string                `yaml:"op,omitempty"`
	Threshold  *float64              `yaml:"threshold,omitempty"`
	Percentile *float64              `yaml:"percentile,omitempty"`
	And        []CriterionDefinition `yaml:"and,omitempty"`
	Or         []CriterionDefinition `yaml:"or,omitempty"`
}

// LoadRuleFile reads a YAML rule set from path.
func LoadRuleFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()

	rules, err := DecodeRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rules, nil
}

// DecodeRules parses a YAML rule set. Unknown keys are rejected.
func DecodeRules(r io.Reader) ([]Rule, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file RuleSetFile

	err := dec.Decode(&file)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rule set: %w", err)
	}

	out := make([]Rule, 0, len(file.Rules))

	for idx, def := range file.Rules {
		rule, ruleErr := def.Rule()
		if ruleErr != nil {
			return nil, fmt.Errorf("rule %d: %w", idx, ruleErr)
		}

		out = append(out, rule)
	}

	return out, nil
}

// EncodeRules writes rules as a YAML rule set.
func EncodeRules(w io.Writer, rules []Rule) error {
	file := RuleSetFile{Rules: make([]RuleDefinition, 0, len(rules))}

	for _, r := range rules {
		file.Rules = append(file.Rules, RuleDefinition{
			Citation:  r.Citation,
			Smell:     string(r.SmellType),
			Criterion: defineCriterion(r.Criterion),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode rule set: %w", err)
	}

	return enc.Close()
}

// Rule converts the definition, validating metric names and operators.
func (d RuleDefinition) Rule() (Rule, error) {
	if d.Citation == "" {
		return Rule{}, fmt.Errorf("%w: missing citation", ErrInvalidRule)
	}

	smell := SmellType(d.Smell)
	if smell == "" {
		smell = GodClass
	}

	criterion, err := d.Criterion.Criterion()
	if err != nil {
		return Rule{}, fmt.Errorf("%s: %w", d.Citation, err)
	}

	return Rule{Citation: d.Citation, SmellType: smell, Criterion: criterion}, nil
}

// Criterion converts the definition tree.
func (d CriterionDefinition) Criterion() (Criterion, error) {
	isLeaf := d.Metric != ""
	shapes := 0

	for _, set := range []bool{isLeaf, len(d.And) > 0, len(d.Or) > 0} {
		if set {
			shapes++
		}
	}

	if shapes != 1 {
		return Criterion{}, fmt.Errorf("%w: a criterion needs exactly one of metric, and, or", ErrInvalidRule)
	}

	switch {
	case isLeaf:
		return d.leaf()
	case len(d.And) > 0:
		operands, err := convertAll(d.And)

		return And(operands...), err
	default:
		operands, err := convertAll(d.Or)

		return Or(operands...), err
	}
}

func (d CriterionDefinition) leaf() (Criterion, error) {
	kind, err := metrics.ParseKind(d.Metric)
	if err != nil {
		return Criterion{}, err
	}

	op, err := ParseOperator(d.Op)
	if err != nil {
		return Criterion{}, err
	}

	switch {
	case d.Threshold != nil && d.Percentile == nil:
		return Metric(kind, op, *d.Threshold), nil
	case d.Percentile != nil && d.Threshold == nil:
		if *d.Percentile < 0 || *d.Percentile > 100 {
			return Criterion{}, fmt.Errorf("%w: %s", ErrInvalidPercentile, formatNumber(*d.Percentile))
		}

		return Percentile(kind, op, *d.Percentile), nil
	default:
		return Criterion{}, fmt.Errorf("%w: %s needs exactly one of threshold, percentile", ErrInvalidRule, kind)
	}
}

func convertAll(defs []CriterionDefinition) ([]Criterion, error) {
	out := make([]Criterion, 0, len(defs))

	for _, def := range defs {
		c, err := def.Criterion()
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, nil
}

func defineCriterion(c Criterion) CriterionDefinition {
	switch {
	case c.Condition != nil:
		def := CriterionDefinition{Metric: string(c.Condition.Metric), Op: string(c.Condition.Operator)}

		if c.Condition.Percentile != nil {
			p := *c.Condition.Percentile
			def.Percentile = &p
		} else {
			threshold := c.Condition.Threshold
			def.Threshold = &threshold
		}

		return def
	case len(c.All) > 0:
		return CriterionDefinition{And: defineAll(c.All)}
	default:
		return CriterionDefinition{Or: defineAll(c.Any)}
	}
}

func defineAll(operands []Criterion) []CriterionDefinition {
	out := make([]CriterionDefinition, 0, len(operands))
	for _, operand := range operands {
		out = append(out, defineCriterion(operand))
	}

	return out
}
