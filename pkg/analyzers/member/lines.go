package member

import (
	"strings"

	"github.com/Sumatoshi-tech/smellscope/pkg/textutil"
)

// EffectiveLines counts the lines of source that carry code, excluding blank
// lines, comment-only lines, lines holding only a block delimiter and the
// signature line (the first code line after any leading attribute or
// annotation lines, which are not counted either).
func EffectiveLines(source string) int {
	if strings.TrimSpace(source) == "" {
		return 0
	}

	count := 0
	inBlockComment := false
	signatureSeen := false

	for _, raw := range textutil.SplitLines(source) {
		code, stillOpen := stripComments(raw, inBlockComment)
		inBlockComment = stillOpen

		code = strings.TrimSpace(code)
		if code == "" || isDelimiterLine(code) {
			continue
		}

		if !signatureSeen {
			signatureSeen = !isAttributeLine(code)

			continue
		}

		count++
	}

	return count
}

// stripComments removes // and /* */ comments from one line. inBlock reports
// whether the line starts inside a block comment; the second result reports
// whether the line ends inside one.
func stripComments(line string, inBlock bool) (string, bool) {
	var out strings.Builder

	for idx := 0; idx < len(line); {
		if inBlock {
			end := strings.Index(line[idx:], "*/")
			if end < 0 {
				return out.String(), true
			}

			idx += end + len("*/")
			inBlock = false

			continue
		}

		rest := line[idx:]

		switch {
		case strings.HasPrefix(rest, "//"):
			return out.String(), false
		case strings.HasPrefix(rest, "/*"):
			inBlock = true
			idx += len("/*")
		case rest[0] == '"' || rest[0] == '\'':
			n := quotedLength(rest)
			out.WriteString(rest[:n])
			idx += n
		default:
			out.WriteByte(rest[0])
			idx++
		}
	}

	return out.String(), inBlock
}

// quotedLength returns the length of the quoted literal at the start of s,
// or len(s) when it is unterminated.
func quotedLength(s string) int {
	quote := s[0]

	for idx := 1; idx < len(s); idx++ {
		switch s[idx] {
		case '\\':
			idx++
		case quote:
			return idx + 1
		}
	}

	return len(s)
}

// isAttributeLine reports whether code is a C# attribute list such as
// [HttpGet] or a Java annotation such as @Override.
func isAttributeLine(code string) bool {
	if strings.HasPrefix(code, "[") && strings.HasSuffix(code, "]") {
		return true
	}

	return strings.HasPrefix(code, "@") && !strings.ContainsAny(code, "{;=")
}

func isDelimiterLine(code string) bool {
	return strings.Trim(code, "{}();") == ""
}

// UniqueWords counts distinct whitespace-delimited tokens in source.
func UniqueWords(source string) int {
	words := make(map[string]struct{})

	for _, word := range strings.Fields(source) {
		words[word] = struct{}{}
	}

	return len(words)
}
