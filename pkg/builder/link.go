package builder

import (
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/Sumatoshi-tech/smellscope/pkg/model"
)

// linker runs the linking pass: it resolves base types, type references and
// body reference sites by name against the project index.
type linker struct {
	project    *model.Project
	logger     *slog.Logger
	unresolved int
}

func (l *linker) link() {
	for _, c := range l.project.Classes {
		l.resolveParent(c)
	}

	// Member lookups walk parent chains, so every parent is set first.
	for _, c := range l.project.Classes {
		for _, f := range c.Fields {
			f.LinkedTypes = l.resolveType(f.Type, c)
		}

		for _, m := range c.Members {
			l.resolveMember(m)
		}
	}
}

func (l *linker) resolveParent(c *model.Class) {
	if c.BaseName == "" {
		return
	}

	base := c.BaseName
	if idx := strings.IndexAny(base, "<[("); idx >= 0 {
		base = base[:idx]
	}

	parent := l.lookupType(strings.TrimSpace(base), c)
	if parent == nil || parent == c {
		return
	}

	c.SetParent(parent.FullName)
}

// resolveType maps a declared type expression to project classes. Generic
// arguments and array forms contribute every component they name.
func (l *linker) resolveType(typeName string, from *model.Class) []*model.Class {
	var out []*model.Class

	seen := make(map[*model.Class]bool)

	for _, part := range typeNameParts(typeName) {
		if c := l.lookupType(part, from); c != nil && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	return out
}

func typeNameParts(typeName string) []string {
	return strings.FieldsFunc(typeName, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.'
	})
}

// lookupType resolves a simple or qualified type name seen from a class:
// nested types of enclosing classes, then the namespace chain, then imports,
// then the name as a full name.
func (l *linker) lookupType(name string, from *model.Class) *model.Class {
	name = strings.Trim(name, ".")
	if name == "" {
		return nil
	}

	for outer := from; outer != nil; outer = outer.Outer {
		if c := l.project.FindClass(outer.FullName + "." + name); c != nil {
			return c
		}
	}

	for ns := from.Namespace; ns != ""; ns = parentNamespace(ns) {
		if c := l.project.FindClass(ns + "." + name); c != nil {
			return c
		}
	}

	for _, imp := range from.Imports {
		if c := l.project.FindClass(imp + "." + name); c != nil {
			return c
		}
	}

	return l.project.FindClass(name)
}

func parentNamespace(ns string) string {
	idx := strings.LastIndexByte(ns, '.')
	if idx < 0 {
		return ""
	}

	return ns[:idx]
}

// refSets accumulates one member's resolved references without duplicates.
type refSets struct {
	fields    map[*model.Field]bool
	accessors map[*model.Member]bool
	methods   map[*model.Member]bool
}

func (l *linker) resolveMember(m *model.Member) {
	owner := m.Parent
	sets := refSets{
		fields:    make(map[*model.Field]bool),
		accessors: make(map[*model.Member]bool),
		methods:   make(map[*model.Member]bool),
	}

	shadowed := make(map[string]bool, len(m.Params)+len(m.Variables))
	for _, p := range m.Params {
		shadowed[p.Name] = true
	}

	for _, v := range m.Variables {
		shadowed[v.Name] = true
	}

	for _, site := range m.Sites {
		if site.Kind == model.RefAccess && site.Target == "" && shadowed[site.Name] {
			continue
		}

		if !l.resolveSite(m, site, &sets) {
			l.unresolved++
			l.logger.Debug("unresolved reference",
				"member", m.ID(), "name", site.Name, "target", site.Target)
		}
	}

	m.LinkedReturnTypes = l.resolveType(m.ReturnType, owner)

	for _, p := range m.Params {
		m.LinkedParameterTypes = appendUnique(m.LinkedParameterTypes, l.resolveType(p.Type, owner)...)
	}

	for _, v := range m.Variables {
		m.LinkedVariableTypes = appendUnique(m.LinkedVariableTypes, l.resolveType(v.Type, owner)...)
	}
}

func (l *linker) resolveSite(m *model.Member, site model.Reference, sets *refSets) bool {
	chain := l.targetChain(m, site.Target)

	switch site.Kind {
	case model.RefAccess:
		if f := findField(chain, site.Name); f != nil {
			if !sets.fields[f] {
				sets.fields[f] = true
				m.AccessedFields = append(m.AccessedFields, f)
			}

			return true
		}

		if p := findProperty(chain, site.Name); p != nil {
			if !sets.accessors[p] {
				sets.accessors[p] = true
				m.AccessedAccessors = append(m.AccessedAccessors, p)
			}

			return true
		}
	case model.RefCall:
		if callee := findMethod(chain, site.Name, site.Arity); callee != nil {
			if !sets.methods[callee] {
				sets.methods[callee] = true
				m.InvokedMethods = append(m.InvokedMethods, callee)
			}

			return true
		}
	}

	return false
}

// targetChain returns the classes searched for a site, nearest first.
func (l *linker) targetChain(m *model.Member, target string) []*model.Class {
	owner := m.Parent

	switch strings.ToLower(target) {
	case "", "this", "self", "me":
		chain := classChain(owner)
		for outer := owner.Outer; outer != nil; outer = outer.Outer {
			chain = append(chain, classChain(outer)...)
		}

		return chain
	case "base", "super", "mybase":
		return owner.Ancestors()
	}

	typeName := target
	if declared, ok := variableType(m, target); ok {
		typeName = declared
	}

	resolved := l.resolveType(typeName, owner)
	if len(resolved) == 0 {
		return nil
	}

	return classChain(resolved[0])
}

// variableType returns the declared type of a parameter, local, field or
// property named name that is visible in m.
func variableType(m *model.Member, name string) (string, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p.Type, true
		}
	}

	for _, v := range m.Variables {
		if v.Name == name {
			return v.Type, true
		}
	}

	chain := classChain(m.Parent)

	if f := findField(chain, name); f != nil {
		return f.Type, true
	}

	if p := findProperty(chain, name); p != nil {
		return p.ReturnType, true
	}

	return "", false
}

func classChain(c *model.Class) []*model.Class {
	return append([]*model.Class{c}, c.Ancestors()...)
}

func findField(chain []*model.Class, name string) *model.Field {
	for _, c := range chain {
		if f := c.FindField(name); f != nil {
			return f
		}
	}

	return nil
}

func findProperty(chain []*model.Class, name string) *model.Member {
	for _, c := range chain {
		for _, member := range c.Members {
			if member.IsProperty() && member.Name == name {
				return member
			}
		}
	}

	return nil
}

// findMethod picks the nearest non-property member named name, preferring
// an overload whose parameter count equals arity when arity is known.
func findMethod(chain []*model.Class, name string, arity int) *model.Member {
	for _, c := range chain {
		var first *model.Member

		for _, member := range c.Members {
			if member.IsProperty() || member.Name != name {
				continue
			}

			if arity < 0 || len(member.Params) == arity {
				return member
			}

			if first == nil {
				first = member
			}
		}

		if first != nil {
			return first
		}
	}

	return nil
}

func appendUnique(dst []*model.Class, items ...*model.Class) []*model.Class {
	for _, item := range items {
		if !slices.Contains(dst, item) {
			dst = append(dst, item)
		}
	}

	return dst
}
