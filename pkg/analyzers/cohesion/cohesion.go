// Package cohesion computes class cohesion metrics from the linked code
// model: how strongly the methods of a class share its own data.
//
// Only members of kind Method take part. Attributes are fields plus
// field-defining accessors; an access counts when the field or accessor is
// declared by the class itself, not by an ancestor.
package cohesion

import (
	"github.com/Sumatoshi-tech/smellscope/pkg/alg/stats"
	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
)

const (
	lcomPlaces = 3
	tccPlaces  = 2
)

// LCOM calculates the Lack of Cohesion of Methods in the Henderson-Sellers
// form.
//
// Formula: LCOM = 1 - sum(mA) / (m * a)
//   - m = number of methods
//   - a = number of attributes
//   - mA = for each method, distinct own fields and accessors it accesses
//
// Returns [metrics.Undefined] when m * a is 0. Rounded to 3 places.
func LCOM(c *model.Class) float64 {
	methods := c.Methods()

	maxCohesion := float64(c.AttributeCount() * len(methods))
	if maxCohesion == 0 {
		return metrics.Undefined
	}

	return stats.Round(1-float64(ownAccesses(methods))/maxCohesion, lcomPlaces)
}

// LCOM3 calculates the Chidamber and Kemerer variant.
//
// Formula: LCOM3 = (m - sum(mA) / a) / (m - 1)
//
// Returns 0 when m <= 1 or a is 0. Rounded to 3 places.
func LCOM3(c *model.Class) float64 {
	methods := c.Methods()
	attributes := c.AttributeCount()

	if len(methods) <= 1 || attributes == 0 {
		return 0
	}

	m := float64(len(methods))
	sumMA := float64(ownAccesses(methods))

	return stats.Round((m-sumMA/float64(attributes))/(m-1), lcomPlaces)
}

// LCOM4 counts methods that use any own data or invoke an own member, minus
// the methods that share an own field or accessor with at least one other
// method (DOI 10.1145/2723742.2723753).
func LCOM4(c *model.Class) float64 {
	methods := c.Methods()

	connected := 0

	for _, m := range methods {
		if len(m.OwnFields())+len(m.OwnAccessors())+ownInvocations(c, m) > 0 {
			connected++
		}
	}

	return float64(connected - len(sharingMethods(methods)))
}

// TCC calculates Tight Class Cohesion (DOI 10.1145/223427.211856).
//
// Formula: TCC = shared / (n * (n - 1) / 2)
//   - n = number of methods
//   - shared = method pairs accessing a common own field or accessor
//
// Returns [metrics.Undefined] with fewer than two methods. Rounded to 2 places.
func TCC(c *model.Class) float64 {
	methods := c.Methods()
	n := len(methods)

	pairs := n * (n - 1) / 2
	if pairs == 0 {
		return metrics.Undefined
	}

	shared := 0

	forEachPair(methods, func(a, b *model.Member) {
		if a.SharesDataWith(b) {
			shared++
		}
	})

	return stats.Round(float64(shared)/float64(pairs), tccPlaces)
}

func ownAccesses(methods []*model.Member) int {
	total := 0

	for _, m := range methods {
		total += len(m.OwnFields()) + len(m.OwnAccessors())
	}

	return total
}

func ownInvocations(c *model.Class, m *model.Member) int {
	count := 0

	for _, invoked := range m.InvokedMethods {
		if invoked.Parent == c {
			count++
		}
	}

	return count
}

// sharingMethods returns each method that shares data with another, once.
func sharingMethods(methods []*model.Member) map[*model.Member]struct{} {
	out := make(map[*model.Member]struct{})

	forEachPair(methods, func(a, b *model.Member) {
		if a.SharesDataWith(b) {
			out[a] = struct{}{}
			out[b] = struct{}{}
		}
	})

	return out
}

func forEachPair(methods []*model.Member, fn func(a, b *model.Member)) {
	for i := range methods {
		for j := i + 1; j < len(methods); j++ {
			fn(methods[i], methods[j])
		}
	}
}
