package model

import "github.com/Sumatoshi-tech/smellscope/pkg/metrics"

// Class is one declared type. Its parent is held by name and looked up in
// the project index rather than owned.
type Class struct {
	Name       string
	FullName   string
	Namespace  string
	Path       string
	SourceCode string
	Modifiers  Modifiers
	Fields     []*Field
	Members    []*Member

	// BaseName is the declared base type as written in source.
	BaseName string
	// Imports are the namespaces visible at the declaration site.
	Imports []string

	InnerClasses []*Class
	// Outer is the enclosing class of an inner class.
	Outer *Class

	Metrics metrics.Values

	parentName string
	index      *Index
}

// IsInner reports whether the class is nested in another class.
func (c *Class) IsInner() bool { return c.Outer != nil }

// Parent returns the resolved base class, or nil when the base is absent or
// external to the project.
func (c *Class) Parent() *Class {
	if c.parentName == "" || c.index == nil {
		return nil
	}

	return c.index.Lookup(c.parentName)
}

// SetParent records the full name of the resolved base class.
func (c *Class) SetParent(fullName string) { c.parentName = fullName }

// ParentName returns the full name of the resolved base class, or "".
func (c *Class) ParentName() string { return c.parentName }

// Methods returns the members of kind Method, in declaration order.
func (c *Class) Methods() []*Member {
	var out []*Member

	for _, m := range c.Members {
		if m.IsMethod() {
			out = append(out, m)
		}
	}

	return out
}

// FindMember returns the first member with the given simple name.
func (c *Class) FindMember(name string) *Member {
	for _, m := range c.Members {
		if m.Name == name {
			return m
		}
	}

	return nil
}

// FindField returns the field with the given name.
func (c *Class) FindField(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// Ancestors returns the resolved parent chain, nearest first. A chain that
// revisits a class stops before the repeat.
func (c *Class) Ancestors() []*Class {
	var chain []*Class

	seen := map[*Class]bool{c: true}

	for p := c.Parent(); p != nil && !seen[p]; p = p.Parent() {
		seen[p] = true
		chain = append(chain, p)
	}

	return chain
}

// AttributeCount returns the number of fields plus field-defining accessors.
func (c *Class) AttributeCount() int {
	count := len(c.Fields)

	for _, m := range c.Members {
		if m.IsFieldDefiningAccessor() {
			count++
		}
	}

	return count
}
