package rules

// Report collects issues keyed by code snippet id. Ids keep the order in
// which their first issue was added; issues are never deduplicated.
type Report struct {
	ids    []string
	issues map[string][]Issue
}

// ReportEntry is one code snippet and its issues.
type ReportEntry struct {
	CodeSnippetID string  `json:"code_snippet_id" yaml:"code_snippet_id"`
	Issues        []Issue `json:"issues"          yaml:"issues"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{issues: make(map[string][]Issue)}
}

// Add appends an issue under its code snippet id.
func (r *Report) Add(issue Issue) {
	if _, ok := r.issues[issue.CodeSnippetID]; !ok {
		r.ids = append(r.ids, issue.CodeSnippetID)
	}

	r.issues[issue.CodeSnippetID] = append(r.issues[issue.CodeSnippetID], issue)
}

// Merge appends every issue of other.
func (r *Report) Merge(other *Report) {
	for _, id := range other.ids {
		for _, issue := range other.issues[id] {
			r.Add(issue)
		}
	}
}

// IDs returns the flagged code snippet ids in insertion order.
func (r *Report) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Issues returns the issues of one code snippet.
func (r *Report) Issues(id string) []Issue {
	return r.issues[id]
}

// Len returns the number of flagged code snippets.
func (r *Report) Len() int { return len(r.ids) }

// Count returns the total number of issues.
func (r *Report) Count() int {
	total := 0
	for _, issues := range r.issues {
		total += len(issues)
	}

	return total
}

// Entries returns the report as an ordered list.
func (r *Report) Entries() []ReportEntry {
	out := make([]ReportEntry, 0, len(r.ids))

	for _, id := range r.ids {
		out = append(out, ReportEntry{CodeSnippetID: id, Issues: append([]Issue(nil), r.issues[id]...)})
	}

	return out
}
