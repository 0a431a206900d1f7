package analyze

import (
	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/rules"
)

// Snapshot is the metric snapshot of one project: every class and member
// with its complete metric map.
type Snapshot struct {
	Source   string        `json:"source"             yaml:"source"`
	Language string        `json:"language,omitempty" yaml:"language,omitempty"`
	Classes  []ClassResult `json:"classes"            yaml:"classes"`
}

// ClassResult is the measured state of one class.
type ClassResult struct {
	ID      string         `json:"id"                yaml:"id"`
	Path    string         `json:"path,omitempty"    yaml:"path,omitempty"`
	Static  bool           `json:"static,omitempty"  yaml:"static,omitempty"`
	Inner   bool           `json:"inner,omitempty"   yaml:"inner,omitempty"`
	Metrics metrics.Values `json:"metrics"           yaml:"metrics"`
	Members []MemberResult `json:"members,omitempty" yaml:"members,omitempty"`
}

// MemberResult is the measured state of one member.
type MemberResult struct {
	ID      string         `json:"id"      yaml:"id"`
	Kind    string         `json:"kind"    yaml:"kind"`
	Metrics metrics.Values `json:"metrics" yaml:"metrics"`
}

// NewSnapshot copies the metrics attached to a measured project.
func NewSnapshot(project *model.Project) *Snapshot {
	snap := &Snapshot{
		Source:   project.Source,
		Language: project.Language,
		Classes:  make([]ClassResult, 0, len(project.Classes)),
	}

	for _, c := range project.Classes {
		result := ClassResult{
			ID:      c.FullName,
			Path:    c.Path,
			Static:  c.Modifiers.Has(model.Static),
			Inner:   c.IsInner(),
			Metrics: c.Metrics.Clone(),
			Members: make([]MemberResult, 0, len(c.Members)),
		}

		for _, m := range c.Members {
			result.Members = append(result.Members, MemberResult{
				ID:      m.ID(),
				Kind:    string(m.Kind),
				Metrics: m.Metrics.Clone(),
			})
		}

		snap.Classes = append(snap.Classes, result)
	}

	return snap
}

// Class returns the class result with the given id.
func (s *Snapshot) Class(id string) (ClassResult, bool) {
	for _, c := range s.Classes {
		if c.ID == id {
			return c, true
		}
	}

	return ClassResult{}, false
}

// MemberCount returns the number of members across all classes.
func (s *Snapshot) MemberCount() int {
	total := 0
	for _, c := range s.Classes {
		total += len(c.Members)
	}

	return total
}

// Corpus returns the class metric maps as a rule-engine batch.
func (s *Snapshot) Corpus() rules.Corpus {
	out := make(rules.Corpus, 0, len(s.Classes))
	for _, c := range s.Classes {
		out = append(out, rules.Sample{ID: c.ID, Metrics: c.Metrics})
	}

	return out
}

// Filter selects which classes an export includes.
type Filter struct {
	ExcludeStatic bool
	ExcludeInner  bool
}

// Apply returns a snapshot without the classes the filter excludes.
func (f Filter) Apply(s *Snapshot) *Snapshot {
	if !f.ExcludeStatic && !f.ExcludeInner {
		return s
	}

	out := &Snapshot{Source: s.Source, Language: s.Language}

	for _, c := range s.Classes {
		if (f.ExcludeStatic && c.Static) || (f.ExcludeInner && c.Inner) {
			continue
		}

		out.Classes = append(out.Classes, c)
	}

	return out
}
