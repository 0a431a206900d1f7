// Package coupling computes how strongly a class depends on other classes
// of the project. References to types outside the project are unresolved
// by the builder and never counted here.
package coupling

import (
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
)

// ATFD counts the distinct foreign fields and foreign accessors accessed by
// any member (DOI 10.1109/ESEM.2009.5314231). A field or accessor is foreign
// when its owning class differs from the accessing member's class.
func ATFD(c *model.Class) float64 {
	return float64(len(foreignFields(c)) + len(foreignAccessors(c)))
}

// ATFD10 counts only the distinct foreign fields (DOI 10.1145/1852786.1852797).
func ATFD10(c *model.Class) float64 {
	return float64(len(foreignFields(c)))
}

// RFC is the response for a class: the distinct methods invoked by any member.
func RFC(c *model.Class) float64 {
	invoked := make(map[*model.Member]struct{})

	for _, m := range c.Members {
		for _, target := range m.InvokedMethods {
			invoked[target] = struct{}{}
		}
	}

	return float64(len(invoked))
}

// CBO counts the distinct classes named by field types, member return types
// and local variable types. The class itself is counted when it refers to
// its own type.
func CBO(c *model.Class) float64 {
	deps := dependencies{}
	deps.addFieldTypes(c)

	for _, m := range c.Members {
		deps.add(m.LinkedReturnTypes...)
		deps.add(m.LinkedVariableTypes...)
	}

	return float64(len(deps))
}

// DCC counts the distinct classes named by field, return, local and
// parameter types plus the owners of invoked methods, excluding the class
// itself.
func DCC(c *model.Class) float64 {
	deps := dependencies{}
	deps.addFieldTypes(c)

	for _, m := range c.Members {
		deps.add(m.LinkedReturnTypes...)
		deps.add(m.LinkedVariableTypes...)
		deps.add(m.LinkedParameterTypes...)

		for _, target := range m.InvokedMethods {
			deps.add(target.Parent)
		}
	}

	delete(deps, c.FullName)

	return float64(len(deps))
}

// dependencies is a set of classes keyed by full name.
type dependencies map[string]struct{}

func (d dependencies) add(classes ...*model.Class) {
	for _, c := range classes {
		if c != nil {
			d[c.FullName] = struct{}{}
		}
	}
}

func (d dependencies) addFieldTypes(c *model.Class) {
	for _, f := range c.Fields {
		d.add(f.LinkedTypes...)
	}
}

func foreignFields(c *model.Class) map[*model.Field]struct{} {
	out := make(map[*model.Field]struct{})

	for _, m := range c.Members {
		for _, f := range m.AccessedFields {
			if f.Parent != m.Parent {
				out[f] = struct{}{}
			}
		}
	}

	return out
}

func foreignAccessors(c *model.Class) map[*model.Member]struct{} {
	out := make(map[*model.Member]struct{})

	for _, m := range c.Members {
		for _, a := range m.AccessedAccessors {
			if a.Parent != m.Parent {
				out[a] = struct{}{}
			}
		}
	}

	return out
}
