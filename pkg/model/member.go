package model

import (
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
)

// MemberKind distinguishes methods, properties and constructors.
type MemberKind string

// Member kinds.
const (
	MemberMethod      MemberKind = "Method"
	MemberProperty    MemberKind = "Property"
	MemberConstructor MemberKind = "Constructor"
)

// RefKind classifies an unresolved reference site found in a member body.
type RefKind int

// Reference site kinds.
const (
	// RefAccess is a read or write of a named field or property.
	RefAccess RefKind = iota
	// RefCall is a method invocation.
	RefCall
)

// Reference is a name found in a member body before linking. Target is the
// type qualifier written at the site (empty for unqualified names).
type Reference struct {
	Kind   RefKind
	Name   string
	Target string
	Arity  int
}

// Parameter is one declared parameter.
type Parameter struct {
	Name string
	Type string
}

// LocalVariable is one local-variable declaration in a member body.
type LocalVariable struct {
	Name string
	Type string
}

// Member is a method, constructor or property of a class.
type Member struct {
	Name       string
	Kind       MemberKind
	Modifiers  Modifiers
	SourceCode string
	Params     []Parameter
	ReturnType string

	// Parent is the owning class.
	Parent *Class
	// Syntax is the member's own subtree, used by the member metric calculator.
	Syntax *node.Node
	// FieldDefining marks an auto-implemented accessor wrapping a field one-to-one.
	FieldDefining bool

	// Sites and Variables are recorded by the declaration pass.
	Sites     []Reference
	Variables []LocalVariable

	// Resolved by the linking pass.
	AccessedFields       []*Field
	AccessedAccessors    []*Member
	InvokedMethods       []*Member
	LinkedReturnTypes    []*Class
	LinkedParameterTypes []*Class
	LinkedVariableTypes  []*Class

	Metrics metrics.Values
}

// Signature renders the member as Name(T1, T2).
func (m *Member) Signature() string {
	types := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		types = append(types, p.Type)
	}

	return m.Name + "(" + strings.Join(types, ", ") + ")"
}

// ID returns the member identifier qualified by its class full name.
func (m *Member) ID() string {
	if m.Parent == nil {
		return m.Signature()
	}

	return m.Parent.FullName + "." + m.Signature()
}

// IsMethod reports whether the member is a plain method.
func (m *Member) IsMethod() bool { return m.Kind == MemberMethod }

// IsProperty reports whether the member is a property accessor.
func (m *Member) IsProperty() bool { return m.Kind == MemberProperty }

// IsFieldDefiningAccessor reports whether the member is an auto-implemented property.
func (m *Member) IsFieldDefiningAccessor() bool {
	return m.Kind == MemberProperty && m.FieldDefining
}

// AccessesOwnData reports whether the member touches a field or accessor of its own class.
func (m *Member) AccessesOwnData() bool {
	return len(m.OwnFields()) > 0 || len(m.OwnAccessors()) > 0
}

// OwnFields returns the accessed fields declared by the member's class.
func (m *Member) OwnFields() []*Field {
	var out []*Field

	for _, f := range m.AccessedFields {
		if f.Parent == m.Parent {
			out = append(out, f)
		}
	}

	return out
}

// OwnAccessors returns the accessed properties declared by the member's class.
func (m *Member) OwnAccessors() []*Member {
	var out []*Member

	for _, a := range m.AccessedAccessors {
		if a.Parent == m.Parent {
			out = append(out, a)
		}
	}

	return out
}

// SharesDataWith reports whether both members access a common own field or accessor.
func (m *Member) SharesDataWith(other *Member) bool {
	for _, f := range m.OwnFields() {
		if slices.Contains(other.OwnFields(), f) {
			return true
		}
	}

	for _, a := range m.OwnAccessors() {
		if slices.Contains(other.OwnAccessors(), a) {
			return true
		}
	}

	return false
}
