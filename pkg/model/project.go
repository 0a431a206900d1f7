// Package model holds the language-neutral structural model: projects,
// classes, members, fields and modifiers.
package model

// Index maps class full names to classes of one project.
type Index struct {
	classes map[string]*Class
}

// Lookup returns the class with the given full name, or nil.
func (idx *Index) Lookup(fullName string) *Class {
	if idx == nil {
		return nil
	}

	return idx.classes[fullName]
}

// Project is the ordered set of classes found in one parse batch.
type Project struct {
	// Source identifies the batch (a path, a commit id).
	Source   string
	Language string
	Classes  []*Class

	index *Index
}

// NewProject indexes classes by full name and attaches the index to each
// class for parent lookups. Full names must be unique.
func NewProject(source string, classes []*Class) *Project {
	idx := &Index{classes: make(map[string]*Class, len(classes))}

	for _, c := range classes {
		idx.classes[c.FullName] = c
		c.index = idx
	}

	return &Project{Source: source, Classes: classes, index: idx}
}

// Index returns the project's class index.
func (p *Project) Index() *Index { return p.index }

// FindClass returns the class with the given full name, or nil.
func (p *Project) FindClass(fullName string) *Class { return p.index.Lookup(fullName) }

// Members returns all members of all classes, in class order.
func (p *Project) Members() []*Member {
	var out []*Member

	for _, c := range p.Classes {
		out = append(out, c.Members...)
	}

	return out
}

// History is a set of project snapshots keyed by snapshot id (e.g. a commit).
type History struct {
	order    []string
	projects map[string]*Project
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{projects: make(map[string]*Project)}
}

// Add stores a snapshot, replacing any previous snapshot with the same id.
func (h *History) Add(id string, p *Project) {
	if _, ok := h.projects[id]; !ok {
		h.order = append(h.order, id)
	}

	h.projects[id] = p
}

// Get returns the snapshot with the given id.
func (h *History) Get(id string) (*Project, bool) {
	p, ok := h.projects[id]

	return p, ok
}

// IDs returns snapshot ids in insertion order.
func (h *History) IDs() []string { return append([]string(nil), h.order...) }
