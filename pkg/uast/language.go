package uast

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
)

// uastSuffixes are stripped from document names to recover the source file name.
//
//nolint:gochecknoglobals // read-only list.
var uastSuffixes = []string{".uast.json", ".json"}

// SourceName returns the source file name a UAST document describes,
// e.g. "src/Foo.cs.json" -> "src/Foo.cs".
func SourceName(path string) string {
	lower := strings.ToLower(path)

	for _, suffix := range uastSuffixes {
		if strings.HasSuffix(lower, suffix) && len(path) > len(suffix) {
			return path[:len(path)-len(suffix)]
		}
	}

	return path
}

// DetectLanguage returns the source language of a document: the root's
// language property when present, otherwise a guess from the file extension.
func DetectLanguage(root *node.Node, path string) string {
	if lang := root.Prop(node.PropLanguage); lang != "" {
		return lang
	}

	lang, _ := enry.GetLanguageByExtension(filepath.Base(SourceName(path)))

	return lang
}

// DominantLanguage returns the most frequent language among files. Ties are
// broken alphabetically; files without a language are ignored.
func DominantLanguage(files []File) string {
	counts := make(map[string]int)

	for _, f := range files {
		if f.Language != "" {
			counts[f.Language]++
		}
	}

	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}

	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}

		return langs[i] < langs[j]
	})

	if len(langs) == 0 {
		return ""
	}

	return langs[0]
}
