package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/class"
	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/member"
	"github.com/Sumatoshi-tech/smellscope/pkg/config"
	"github.com/Sumatoshi-tech/smellscope/pkg/export"
	"github.com/Sumatoshi-tech/smellscope/pkg/rules"
)

// ErrUnknownScope is returned for a --scope other than class, member or all.
var ErrUnknownScope = fmt.Errorf("scope must be %s, %s or all", export.ScopeClass, export.ScopeMember)

const scopeAll = "all"

// NewMetricsCommand creates the command listing every computed metric.
func NewMetricsCommand() *cobra.Command {
	var format, scope string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List the class and member metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entries []export.CatalogEntry

			switch strings.ToLower(scope) {
			case scopeAll:
				entries = append(export.NewCatalog(export.ScopeClass, class.Registry.Describe()),
					export.NewCatalog(export.ScopeMember, member.Registry.Describe())...)
			case export.ScopeClass:
				entries = export.NewCatalog(export.ScopeClass, class.Registry.Describe())
			case export.ScopeMember:
				entries = export.NewCatalog(export.ScopeMember, member.Registry.Describe())
			default:
				return fmt.Errorf("%w: %q", ErrUnknownScope, scope)
			}

			return export.WriteCatalog(cmd.OutOrStdout(), format, entries)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormat,
		"Output format: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVar(&scope, "scope", scopeAll, "Metrics to list: class, member or all")

	return cmd
}

// NewRulesCommand creates the command printing the default rule set as a YAML
// rule file.
func NewRulesCommand() *cobra.Command {
	var atfdPercentile, wmcPercentile float64

	var fixedOnly bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the default God Class rules as a rule file",
		Long: `Print the default God Class rules in the YAML rule file format read by
detect --rules. Edit the output to build a custom rule set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := rules.GodClassRules()
			if !fixedOnly {
				set = append(set, rules.DynamicGodClassRules(atfdPercentile, wmcPercentile)...)
			}

			return rules.EncodeRules(cmd.OutOrStdout(), set)
		},
	}

	cmd.Flags().Float64Var(&atfdPercentile, "atfd-percentile", rules.DefaultATFDPercentile, "ATFD percentile of the dynamic rules")
	cmd.Flags().Float64Var(&wmcPercentile, "wmc-percentile", rules.DefaultWMCPercentile, "WMC percentile of the dynamic rules")
	cmd.Flags().BoolVar(&fixedOnly, "fixed-only", false, "Leave out the percentile-threshold rules")

	return cmd
}
