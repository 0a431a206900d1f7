// Package inheritance computes metrics over the resolved parent chain of a
// class. Only bases declared inside the project are resolved; a class whose
// base is external has no parent here.
package inheritance

import (
	"github.com/Sumatoshi-tech/smellscope/pkg/alg/stats"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
)

const ratioPlaces = 3

// DIT is the depth of the inheritance tree: the number of resolved
// ancestors. A cyclic chain stops at the first revisited class.
func DIT(c *model.Class) float64 {
	return float64(len(c.Ancestors()))
}

// BUR is the base-class usage ratio.
//
// Formula: BUR = used / protected
//   - protected = protected fields plus protected members of the parent
//   - used = protected parent fields whose names the class accesses, plus
//     protected parent members whose names it invokes or accesses
//
// Returns 0 without a parent or when the parent has nothing protected.
// Rounded to 3 places.
func BUR(c *model.Class) float64 {
	parent := c.Parent()
	if parent == nil {
		return 0
	}

	protectedFields := protectedFieldNames(parent)
	protectedMembers := protectedMemberNames(parent)

	total := len(protectedFields) + len(protectedMembers)
	if total == 0 {
		return 0
	}

	accessedFields := make(map[string]struct{})
	usedMembers := make(map[string]struct{})

	for _, m := range c.Members {
		for _, f := range m.AccessedFields {
			accessedFields[f.Name] = struct{}{}
		}

		for _, target := range m.InvokedMethods {
			usedMembers[target.Name] = struct{}{}
		}

		for _, a := range m.AccessedAccessors {
			usedMembers[a.Name] = struct{}{}
		}
	}

	used := intersect(protectedFields, accessedFields) + intersect(protectedMembers, usedMembers)

	return stats.Round(float64(used)/float64(total), ratioPlaces)
}

// BOvR is the base-class overriding ratio: methods carrying the override
// modifier over all methods. Returns 0 without a parent or without methods.
// Rounded to 3 places.
func BOvR(c *model.Class) float64 {
	if c.Parent() == nil {
		return 0
	}

	methods := c.Methods()
	if len(methods) == 0 {
		return 0
	}

	overrides := 0

	for _, m := range methods {
		if m.Modifiers.Has(model.Override) {
			overrides++
		}
	}

	return stats.Round(float64(overrides)/float64(len(methods)), ratioPlaces)
}

// protectedFieldNames returns the names of protected fields in declaration
// order. Duplicate names count once per declaration.
func protectedFieldNames(c *model.Class) []string {
	var out []string

	for _, f := range c.Fields {
		if f.Modifiers.Has(model.Protected) {
			out = append(out, f.Name)
		}
	}

	return out
}

func protectedMemberNames(c *model.Class) []string {
	var out []string

	for _, m := range c.Members {
		if m.Modifiers.Has(model.Protected) {
			out = append(out, m.Name)
		}
	}

	return out
}

// intersect counts the distinct names present in both collections.
func intersect(names []string, used map[string]struct{}) int {
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, ok := used[name]; !ok {
			continue
		}

		seen[name] = struct{}{}
	}

	return len(seen)
}
