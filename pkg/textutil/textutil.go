// Package textutil provides text utilities: binary detection and line
// splitting for any newline convention.
package textutil

import (
	"bytes"
	"strings"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// newlines matches CRLF before the single-character forms.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n") //nolint:gochecknoglobals // immutable replacer.

// SplitLines splits text on CRLF, CR and LF. A text of n separators yields
// n+1 lines, so an empty string is one empty line.
func SplitLines(text string) []string {
	return strings.Split(newlines.Replace(text), "\n")
}

// CountLines returns the number of physical lines in text, counting blank
// lines and a trailing empty line after a final separator.
func CountLines(text string) int {
	return len(SplitLines(text))
}
