// Package modeltest assembles linked code models by hand for calculator tests.
package modeltest

import (
	"strings"

	"github.com/Sumatoshi-tech/smellscope/pkg/model"
)

// Class returns an empty class named by its full name.
func Class(fullName string, modifiers ...string) *model.Class {
	name := fullName[strings.LastIndex(fullName, ".")+1:]

	return &model.Class{Name: name, FullName: fullName, Modifiers: mods(modifiers)}
}

// Field adds a field to c.
func Field(c *model.Class, name string, modifiers ...string) *model.Field {
	f := &model.Field{Name: name, Modifiers: mods(modifiers), Parent: c}
	c.Fields = append(c.Fields, f)

	return f
}

// Method adds a method to c.
func Method(c *model.Class, name string, modifiers ...string) *model.Member {
	return member(c, name, model.MemberMethod, modifiers)
}

// Constructor adds a constructor to c.
func Constructor(c *model.Class, modifiers ...string) *model.Member {
	return member(c, c.Name, model.MemberConstructor, modifiers)
}

// AutoProperty adds a field-defining accessor to c.
func AutoProperty(c *model.Class, name string, modifiers ...string) *model.Member {
	m := member(c, name, model.MemberProperty, modifiers)
	m.FieldDefining = true

	return m
}

// Property adds a property with a body to c.
func Property(c *model.Class, name string, modifiers ...string) *model.Member {
	return member(c, name, model.MemberProperty, modifiers)
}

// Inner nests inner inside outer.
func Inner(outer, inner *model.Class) {
	inner.Outer = outer
	outer.InnerClasses = append(outer.InnerClasses, inner)
}

// Inherit sets parent as the resolved base of child.
func Inherit(child, parent *model.Class) {
	child.BaseName = parent.Name
	child.SetParent(parent.FullName)
}

// Access records field accesses on m.
func Access(m *model.Member, fields ...*model.Field) *model.Member {
	m.AccessedFields = append(m.AccessedFields, fields...)

	return m
}

// Use records accessor accesses on m.
func Use(m *model.Member, accessors ...*model.Member) *model.Member {
	m.AccessedAccessors = append(m.AccessedAccessors, accessors...)

	return m
}

// Invoke records resolved invocations on m.
func Invoke(m *model.Member, targets ...*model.Member) *model.Member {
	m.InvokedMethods = append(m.InvokedMethods, targets...)

	return m
}

// Project indexes the classes so parent lookups resolve.
func Project(classes ...*model.Class) *model.Project {
	return model.NewProject("test", classes)
}

func member(c *model.Class, name string, kind model.MemberKind, modifiers []string) *model.Member {
	m := &model.Member{Name: name, Kind: kind, Modifiers: mods(modifiers), Parent: c}
	c.Members = append(c.Members, m)

	return m
}

func mods(values []string) model.Modifiers {
	out := make(model.Modifiers, 0, len(values))

	for _, v := range values {
		out = append(out, model.NewModifier(v))
	}

	return out
}
