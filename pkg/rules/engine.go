package rules

// Engine applies a rule set to batches of classes.
type Engine struct {
	fixed   []Rule
	dynamic []Rule
}

// NewEngine creates an engine. Rules with percentile thresholds are kept
// apart and only applied when a corpus is supplied.
func NewEngine(rules ...Rule) *Engine {
	e := &Engine{}

	for _, r := range rules {
		if r.IsDynamic() {
			e.dynamic = append(e.dynamic, r)
		} else {
			e.fixed = append(e.fixed, r)
		}
	}

	return e
}

// DefaultEngine returns an engine with the fixed and dynamic God Class rules.
func DefaultEngine() *Engine {
	return NewEngine(append(GodClassRules(),
		DynamicGodClassRules(DefaultATFDPercentile, DefaultWMCPercentile)...)...)
}

// Rules returns the fixed rules followed by the dynamic rules.
func (e *Engine) Rules() []Rule {
	return append(append([]Rule(nil), e.fixed...), e.dynamic...)
}

// HasDynamicRules reports whether any rule needs a corpus.
func (e *Engine) HasDynamicRules() bool { return len(e.dynamic) > 0 }

type findOptions struct {
	corpus    Corpus
	hasCorpus bool
}

// FindOption configures a FindIssues call.
type FindOption func(*findOptions)

// WithCorpus enables the dynamic rules with thresholds computed from corpus.
// The thresholds are recomputed on every call.
func WithCorpus(corpus Corpus) FindOption {
	return func(o *findOptions) {
		o.corpus = corpus
		o.hasCorpus = true
	}
}

// FindIssues applies every rule to every class of batch. For each class the
// fixed rules run first, then the bound dynamic rules, each in rule order.
func (e *Engine) FindIssues(batch Corpus, opts ...FindOption) (*Report, error) {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}

	active := append([]Rule(nil), e.fixed...)

	if o.hasCorpus {
		for _, r := range e.dynamic {
			bound, err := r.Bind(o.corpus)
			if err != nil {
				return nil, err
			}

			active = append(active, bound)
		}
	}

	report := NewReport()

	for _, sample := range batch {
		for _, r := range active {
			issue, err := r.Validate(sample.ID, sample.Metrics)
			if err != nil {
				return nil, err
			}

			if issue != nil {
				report.Add(*issue)
			}
		}
	}

	return report, nil
}
