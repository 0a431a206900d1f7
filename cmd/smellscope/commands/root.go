package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/smellscope/pkg/version"
)

// NewRootCommand assembles the smellscope command tree.
func NewRootCommand() *cobra.Command {
	global := &GlobalOptions{}

	root := &cobra.Command{
		Use:   "smellscope",
		Short: "Smellscope - object-oriented metrics and God Class detection",
		Long: `Smellscope builds an object-oriented code model from UAST documents, computes
class and member metrics, and detects God Class design smells.

Commands:
  analyze   Compute class and member metrics
  detect    Detect God Class design smells
  validate  Validate UAST documents against the schema
  metrics   List the computed metrics
  rules     Print the default rule set`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	global.Register(root)

	root.AddCommand(NewAnalyzeCommand(global))
	root.AddCommand(NewDetectCommand(global))
	root.AddCommand(NewValidateCommand(global))
	root.AddCommand(NewMetricsCommand())
	root.AddCommand(NewRulesCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
