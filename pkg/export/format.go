// Package export renders metric snapshots and smell reports as JSON, YAML,
// CSV or text tables.
package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
	FormatTable = "table"

	// formatTextAlias is accepted for FormatTable.
	formatTextAlias = "text"
	// formatYMLAlias is accepted for FormatYAML.
	formatYMLAlias = "yml"
)

// ErrUnsupportedFormat indicates the requested output format is not supported.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats returns the canonical output formats.
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatCSV, FormatTable}
}

// NormalizeFormat canonicalizes a user-provided output format string.
func NormalizeFormat(format string) string {
	normalized := strings.ToLower(strings.TrimSpace(format))

	switch normalized {
	case formatTextAlias:
		return FormatTable
	case formatYMLAlias:
		return FormatYAML
	default:
		return normalized
	}
}

// ParseFormat validates a format against [Formats].
func ParseFormat(format string) (string, error) {
	normalized := NormalizeFormat(format)
	if slices.Contains(Formats(), normalized) {
		return normalized, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
