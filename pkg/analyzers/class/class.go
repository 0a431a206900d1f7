// Package class computes the complete metric map of a class. Size and
// aggregate metrics are defined here; cohesion, coupling and inheritance
// metrics come from their own packages.
//
// Aggregates read the metrics already attached to members, so member
// metrics must be computed before a class is calculated.
package class

import (
	"github.com/Sumatoshi-tech/smellscope/pkg/alg/stats"
	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/cohesion"
	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/coupling"
	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/inheritance"
	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/textutil"
)

const wocPlaces = 3

// Registry is the catalog of class metrics, in canonical order.
//
//nolint:gochecknoglobals // immutable catalog.
var Registry = metrics.NewRegistry[*model.Class]().MustRegister(
	metrics.NewFunc(metrics.CLOC, "Class Lines of Code", metrics.TypeSize,
		"Physical lines of the class source under any newline convention.",
		func(c *model.Class) float64 { return float64(textutil.CountLines(c.SourceCode)) }),
	metrics.NewFunc(metrics.CELOC, "Class Effective Lines of Code", metrics.TypeSize,
		"Sum of member MELOC.",
		sumOf(metrics.MELOC, allMembers)),
	metrics.NewFunc(metrics.NMD, "Number of Methods Declared", metrics.TypeSize,
		"Members of kind Method.",
		func(c *model.Class) float64 { return float64(len(c.Methods())) }),
	metrics.NewFunc(metrics.NAD, "Number of Attributes Defined", metrics.TypeSize,
		"Fields plus field-defining accessors.",
		func(c *model.Class) float64 { return float64(c.AttributeCount()) }),
	metrics.NewFunc(metrics.NMDNAD, "Methods and Attributes", metrics.TypeSize,
		"NMD + NAD.",
		func(c *model.Class) float64 { return float64(len(c.Methods()) + c.AttributeCount()) }),
	metrics.NewFunc(metrics.WMC, "Weighted Methods per Class", metrics.TypeComplexity,
		"Sum of member CYCLO (DOI 10.1109/32.295895).",
		sumOf(metrics.CYCLO, allMembers)),
	metrics.NewFunc(metrics.WMCNoCase, "Weighted Methods per Class without Cases", metrics.TypeComplexity,
		"Sum of member CYCLO_SWITCH.",
		sumOf(metrics.CYCLOSwitch, allMembers)),
	metrics.NewFunc(metrics.LCOM, "Lack of Cohesion of Methods", metrics.TypeCohesion,
		"1 - sum(own accesses) / (NAD * NMD); -1 when NAD * NMD is 0.",
		cohesion.LCOM),
	metrics.NewFunc(metrics.LCOM3, "Lack of Cohesion of Methods 3", metrics.TypeCohesion,
		"(NMD - sum(own accesses) / NAD) / (NMD - 1); 0 when NMD <= 1 or NAD is 0.",
		cohesion.LCOM3),
	metrics.NewFunc(metrics.LCOM4, "Lack of Cohesion of Methods 4", metrics.TypeCohesion,
		"Methods using own data or members minus methods sharing own data.",
		cohesion.LCOM4),
	metrics.NewFunc(metrics.TCC, "Tight Class Cohesion", metrics.TypeCohesion,
		"Share of method pairs accessing common own data; -1 with fewer than two methods.",
		cohesion.TCC),
	metrics.NewFunc(metrics.ATFD, "Access to Foreign Data", metrics.TypeCoupling,
		"Distinct foreign fields and accessors used by any member.",
		coupling.ATFD),
	metrics.NewFunc(metrics.ATFD10, "Access to Foreign Data Directly", metrics.TypeCoupling,
		"Distinct foreign fields used by any member.",
		coupling.ATFD10),
	metrics.NewFunc(metrics.CNOR, "Class Number of Returns", metrics.TypeComplexity,
		"Sum of member MNOR.",
		sumOf(metrics.MNOR, allMembers)),
	metrics.NewFunc(metrics.CNOL, "Class Number of Loops", metrics.TypeComplexity,
		"Sum of member MNOL.",
		sumOf(metrics.MNOL, allMembers)),
	metrics.NewFunc(metrics.CNOC, "Class Number of Comparisons", metrics.TypeComplexity,
		"Sum of member MNOC.",
		sumOf(metrics.MNOC, allMembers)),
	metrics.NewFunc(metrics.CNOA, "Class Number of Assignments", metrics.TypeComplexity,
		"Sum of member MNOA.",
		sumOf(metrics.MNOA, allMembers)),
	metrics.NewFunc(metrics.NOPM, "Number of Private Methods", metrics.TypeSize,
		"Methods carrying the private modifier.",
		NOPM),
	metrics.NewFunc(metrics.NOPF, "Number of Protected Fields", metrics.TypeSize,
		"Fields carrying the protected modifier.",
		NOPF),
	metrics.NewFunc(metrics.CMNB, "Class Maximum Nested Blocks", metrics.TypeComplexity,
		"Maximum member MMNB; 0 without members.",
		CMNB),
	metrics.NewFunc(metrics.RFC, "Response for a Class", metrics.TypeCoupling,
		"Distinct methods invoked by any member.",
		coupling.RFC),
	metrics.NewFunc(metrics.CBO, "Coupling Between Objects", metrics.TypeCoupling,
		"Distinct classes named by field, return and local types, the class itself included.",
		coupling.CBO),
	metrics.NewFunc(metrics.DIT, "Depth of Inheritance Tree", metrics.TypeInheritance,
		"Resolved ancestors of the class.",
		inheritance.DIT),
	metrics.NewFunc(metrics.DCC, "Direct Class Coupling", metrics.TypeCoupling,
		"Distinct other classes named by field, return, local and parameter types or invoked.",
		coupling.DCC),
	metrics.NewFunc(metrics.NIC, "Number of Inner Classes", metrics.TypeSize,
		"Classes declared directly inside the class.",
		func(c *model.Class) float64 { return float64(len(c.InnerClasses)) }),
	metrics.NewFunc(metrics.WOC, "Weight of Class", metrics.TypeSize,
		"Public non-abstract methods over public properties and public non-const non-static fields.",
		WOC),
	metrics.NewFunc(metrics.NOPA, "Number of Public Attributes", metrics.TypeSize,
		"Public fields that are neither static nor const.",
		NOPA),
	metrics.NewFunc(metrics.NOPP, "Number of Public Properties", metrics.TypeSize,
		"Properties carrying the public modifier.",
		NOPP),
	metrics.NewFunc(metrics.NOPANOPP, "Public Attributes and Properties", metrics.TypeSize,
		"NOPA + NOPP.",
		func(c *model.Class) float64 { return NOPA(c) + NOPP(c) }),
	metrics.NewFunc(metrics.WMCNAMM, "WMC of Non-Accessor Methods", metrics.TypeComplexity,
		"Sum of CYCLO over members that are not properties.",
		sumOf(metrics.CYCLO, func(m *model.Member) bool { return !m.IsProperty() })),
	metrics.NewFunc(metrics.BUR, "Base-class Usage Ratio", metrics.TypeInheritance,
		"Protected parent fields and members used by name over all protected parent declarations.",
		inheritance.BUR),
	metrics.NewFunc(metrics.BOvR, "Base-class Overriding Ratio", metrics.TypeInheritance,
		"Override methods over NMD; 0 without a parent.",
		inheritance.BOvR),
)

// Calculate computes every class metric for c.
func Calculate(c *model.Class) metrics.Values {
	return Registry.Compute(c)
}

func allMembers(*model.Member) bool { return true }

// sumOf sums a member metric over the members accepted by keep.
func sumOf(kind metrics.Kind, keep func(*model.Member) bool) func(*model.Class) float64 {
	return func(c *model.Class) float64 {
		total := 0.0

		for _, m := range c.Members {
			if keep(m) {
				total += m.Metrics[kind]
			}
		}

		return total
	}
}

// NOPM counts methods carrying the private modifier.
func NOPM(c *model.Class) float64 {
	return float64(countMembers(c.Methods(), model.Private))
}

// NOPF counts fields carrying the protected modifier.
func NOPF(c *model.Class) float64 {
	count := 0

	for _, f := range c.Fields {
		if f.Modifiers.Has(model.Protected) {
			count++
		}
	}

	return float64(count)
}

// CMNB is the maximum member MMNB, or 0 without members.
func CMNB(c *model.Class) float64 {
	values := make([]float64, 0, len(c.Members))

	for _, m := range c.Members {
		values = append(values, m.Metrics[metrics.MMNB])
	}

	return stats.Max(values)
}

// NOPA counts public fields that are neither static nor const.
func NOPA(c *model.Class) float64 {
	count := 0

	for _, f := range c.Fields {
		if isPublicAttribute(f) {
			count++
		}
	}

	return float64(count)
}

// NOPP counts public properties.
func NOPP(c *model.Class) float64 {
	var properties []*model.Member

	for _, m := range c.Members {
		if m.IsProperty() {
			properties = append(properties, m)
		}
	}

	return float64(countMembers(properties, model.Public))
}

// WOC is the weight of a class: functional public methods over public data.
// Functional methods are public methods that are not abstract. Returns 0
// when the class exposes no public data. Rounded to 3 places.
func WOC(c *model.Class) float64 {
	publicData := NOPP(c) + NOPA(c)
	if publicData == 0 {
		return 0
	}

	functional := 0

	for _, m := range c.Methods() {
		if m.Modifiers.Has(model.Public) && !m.Modifiers.Has(model.Abstract) {
			functional++
		}
	}

	return stats.Round(float64(functional)/publicData, wocPlaces)
}

func isPublicAttribute(f *model.Field) bool {
	return f.Modifiers.Has(model.Public) && !f.Modifiers.Has(model.Static) && !f.Modifiers.Has(model.Const)
}

func countMembers(members []*model.Member, modifier string) int {
	count := 0

	for _, m := range members {
		if m.Modifiers.Has(modifier) {
			count++
		}
	}

	return count
}
