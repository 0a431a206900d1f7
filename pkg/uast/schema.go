package uast

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/spec"
)

// complianceMax is the maximum compliance percentage.
const complianceMax = 100

// Validator checks decoded UAST documents against a JSON schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Field       string `json:"field"`
	Description string `json:"description"`
	Actual      string `json:"actual,omitempty"`
}

// ValidationResult summarises the validation of one document.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Nodes      int               `json:"nodes"`
	Compliance int               `json:"compliance"`
	Issues     []ValidationIssue `json:"issues,omitempty"`
}

// NewValidator compiles the embedded UAST schema.
func NewValidator() (*Validator, error) {
	schemaBytes, err := spec.Schema()
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	return compileSchema(schemaBytes)
}

// NewValidatorFromFile compiles the schema stored at path.
func NewValidatorFromFile(path string) (*Validator, error) {
	schemaBytes, err := os.ReadFile(path) //nolint:gosec // user-selected schema path.
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	return compileSchema(schemaBytes)
}

func compileSchema(schemaBytes []byte) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate checks a generic JSON document (as produced by encoding/json with UseNumber).
func (v *Validator) Validate(document any) (*ValidationResult, error) {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid(), Nodes: countNodes(document), Compliance: complianceMax}
	if out.Valid {
		return out, nil
	}

	out.Compliance = calculateCompliance(out.Nodes, len(result.Errors()))

	for _, verr := range result.Errors() {
		out.Issues = append(out.Issues, ValidationIssue{
			Field:       verr.Field(),
			Description: verr.Description(),
			Actual:      getActualValue(document, verr.Field()),
		})
	}

	return out, nil
}

// Summary renders the first violations as a single line.
func (r *ValidationResult) Summary(limit int) string {
	parts := make([]string, 0, min(limit, len(r.Issues)))

	for idx, issue := range r.Issues {
		if idx == limit {
			break
		}

		parts = append(parts, issue.Field+": "+issue.Description)
	}

	if extra := len(r.Issues) - len(parts); extra > 0 {
		parts = append(parts, fmt.Sprintf("and %d more", extra))
	}

	return strings.Join(parts, "; ")
}

func calculateCompliance(totalNodes, errorCount int) int {
	if totalNodes == 0 {
		return 0
	}

	validNodes := totalNodes - errorCount
	compliance := int(float64(validNodes) / float64(totalNodes) * complianceMax)

	return max(0, min(compliance, complianceMax))
}

func countNodes(data any) int {
	count := 1

	switch typedData := data.(type) {
	case map[string]any:
		if children, hasChildren := typedData["children"].([]any); hasChildren {
			for _, child := range children {
				count += countNodes(child)
			}
		}
	case []any:
		for _, item := range typedData {
			count += countNodes(item)
		}
	}

	return count
}

// getActualValue follows a gojsonschema field path (e.g. "children.0.roles.0").
func getActualValue(data any, fieldPath string) string {
	if fieldPath == "" || fieldPath == "(root)" {
		return ""
	}

	current := data

	for part := range strings.SplitSeq(fieldPath, ".") {
		switch typedVal := current.(type) {
		case map[string]any:
			val, found := typedVal[part]
			if !found {
				return ""
			}

			current = val
		case []any:
			idx, convErr := strconv.Atoi(part)
			if convErr != nil || idx < 0 || idx >= len(typedVal) {
				return ""
			}

			current = typedVal[idx]
		default:
			return ""
		}
	}

	switch typedVal := current.(type) {
	case string:
		return typedVal
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprintf("%v", typedVal)
	}
}
