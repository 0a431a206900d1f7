package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/smellscope/pkg/config"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast"
)

// exitValidationFailure is the process exit code when a document is invalid.
const exitValidationFailure = 2

// ValidateCommand holds configuration for the validate command.
type ValidateCommand struct {
	global  *GlobalOptions
	schema  string
	include []string
	exclude []string
	quiet   bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(global *GlobalOptions) *cobra.Command {
	vc := &ValidateCommand{global: global}

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate UAST documents against the UAST schema",
		Long: `Validate UAST JSON documents against the embedded UAST schema and report
the schema compliance of each one.

Examples:
  smellscope validate Order.cs.json
  smellscope validate ./uast
  smellscope validate - < Order.cs.json
  smellscope validate --schema custom-schema.json ./uast`,
		RunE: vc.run,
	}

	cmd.Flags().StringVar(&vc.schema, "schema", "", "Path to a UAST JSON schema (default: embedded)")
	cmd.Flags().StringSliceVar(&vc.include, "include", []string{config.DefaultInclude}, "Glob patterns of documents to read from directories")
	cmd.Flags().StringSliceVar(&vc.exclude, "exclude", nil, "Glob patterns of documents to skip")
	cmd.Flags().BoolVar(&vc.quiet, "only-invalid", false, "Only report invalid documents")

	return cmd
}

func (vc *ValidateCommand) run(cmd *cobra.Command, args []string) error {
	applyColor(vc.global)

	validator, err := vc.validator()
	if err != nil {
		return err
	}

	set, err := loadInputs(args, cmd.InOrStdin(), uast.DiscoverOptions{Include: vc.include, Exclude: vc.exclude})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	recommendations := make(map[string]string)

	for _, src := range set.sources {
		result, err := validateSource(validator, src)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "Invalid JSON in %s: %v\n", src.Path, err)

			invalid++

			continue
		}

		if result.Valid {
			if !vc.quiet {
				color.New(color.FgGreen).Fprintf(out, "UAST is valid (%s)\n", src.Path)
			}

			continue
		}

		invalid++

		printInvalid(out, src.Path, result)

		for _, issue := range result.Issues {
			classifyRecommendation(recommendations, issue.Field, issue.Description)
		}
	}

	printRecommendations(out, recommendations)

	if invalid > 0 {
		return &ExitError{
			Code:    exitValidationFailure,
			Message: fmt.Sprintf("%d of %d documents failed validation", invalid, len(set.sources)),
		}
	}

	return nil
}

func (vc *ValidateCommand) validator() (*uast.Validator, error) {
	if vc.schema != "" {
		return uast.NewValidatorFromFile(vc.schema)
	}

	return uast.NewValidator()
}

func validateSource(validator *uast.Validator, src uast.Source) (*uast.ValidationResult, error) {
	var document any

	dec := json.NewDecoder(bytes.NewReader(src.Data))
	dec.UseNumber()

	if err := dec.Decode(&document); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return validator.Validate(document)
}

func printInvalid(w io.Writer, path string, result *uast.ValidationResult) {
	color.New(color.FgRed).Fprintf(w, "UAST validation failed (%s)\n", path)
	color.New(color.FgYellow).Fprintf(w, "  Compliance: %d%% of %d nodes\n", result.Compliance, result.Nodes)

	for _, issue := range result.Issues {
		if issue.Actual != "" {
			color.New(color.FgRed).Fprintf(w, "  - %s: %s (got %q)\n", issue.Field, issue.Description, issue.Actual)
		} else {
			color.New(color.FgRed).Fprintf(w, "  - %s: %s\n", issue.Field, issue.Description)
		}
	}
}

func classifyRecommendation(recommendations map[string]string, field, description string) {
	switch {
	case strings.Contains(description, "is required") && strings.HasSuffix(field, "type"):
		recommendations["required_type"] = "Every UAST node must have a 'type' field"
	case strings.Contains(field, "roles"):
		recommendations["role"] = "Roles are a list of canonical names like 'Public', 'Static', 'Reference'"
	case strings.Contains(field, "props"):
		recommendations["props"] = "Props are string to string maps: quote numbers such as arity"
	case strings.Contains(field, "pos"):
		recommendations["position"] = "Position fields use snake_case: start_line, start_col, end_line, end_col"
	case strings.Contains(description, "Invalid type"):
		recommendations["type"] = "Check field value types against the schema"
	}
}

func printRecommendations(w io.Writer, recommendations map[string]string) {
	if len(recommendations) == 0 {
		return
	}

	keys := make([]string, 0, len(recommendations))
	for key := range recommendations {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	fmt.Fprintf(w, "\nRecommendations:\n")

	for _, key := range keys {
		color.New(color.FgCyan).Fprintf(w, "  - %s\n", recommendations[key])
	}
}
