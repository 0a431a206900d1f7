package rules

import "github.com/Sumatoshi-tech/smellscope/pkg/metrics"

// Default dynamic percentiles.
const (
	DefaultATFDPercentile = 20
	DefaultWMCPercentile  = 10
)

// GodClassRules returns the fixed God Class rules.
func GodClassRules() []Rule {
	return []Rule{
		{
			Citation:  "10.1109/WCRE.2005.15",
			SmellType: GodClass,
			Criterion: And(
				And(
					Metric(metrics.ATFD, GreaterThan, 2),
					Metric(metrics.WMC, GreaterThan, 47)),
				Metric(metrics.TCC, LessThan, 0.33)),
		},
		{
			Citation:  "10.1109/SCAM.2013.6648192",
			SmellType: GodClass,
			Criterion: Or(
				Metric(metrics.CLOC, GreaterThan, 750),
				Metric(metrics.NMDNAD, GreaterThan, 20)),
		},
		{
			Citation:  "10.1109/MSR.2007.21",
			SmellType: GodClass,
			Criterion: Or(
				Metric(metrics.NMD, GreaterThan, 15),
				Metric(metrics.NAD, GreaterThan, 15)),
		},
	}
}

// DynamicGodClassRules returns the corpus-relative God Class rules using the
// given ATFD and WMC percentiles.
func DynamicGodClassRules(atfdPercentile, wmcPercentile float64) []Rule {
	return []Rule{
		{
			Citation:  "10.1016/j.jss.2006.10.018",
			SmellType: GodClass,
			Criterion: And(
				And(
					Percentile(metrics.ATFD, GreaterOrEqual, atfdPercentile),
					Metric(metrics.ATFD, GreaterThan, 4)),
				And(
					Metric(metrics.WMC, GreaterThan, 20),
					Metric(metrics.TCC, LessThan, 0.33))),
		},
		{
			Citation:  "10.1109/TOOLS.2001.941671",
			SmellType: GodClass,
			Criterion: Or(
				Or(
					Metric(metrics.ATFD, GreaterThan, 3),
					Percentile(metrics.WMC, GreaterThan, wmcPercentile)),
				Metric(metrics.TCC, LessThan, 0.33)),
		},
	}
}
