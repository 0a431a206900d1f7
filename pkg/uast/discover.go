package uast

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/src-d/enry/v2"
)

// DefaultInclude matches UAST documents anywhere under the root.
const DefaultInclude = "**/*.json"

// DiscoverOptions controls input discovery.
type DiscoverOptions struct {
	// Include are doublestar patterns relative to the root; empty means [DefaultInclude].
	Include []string
	// Exclude are doublestar patterns relative to the root.
	Exclude []string
	// RespectGitignore skips paths matched by the root's .gitignore.
	RespectGitignore bool
	// SkipVendor skips vendored and third-party directories.
	SkipVendor bool
}

// ErrBadPattern is returned when an include or exclude glob does not compile.
var ErrBadPattern = errors.New("invalid glob pattern")

// Discover walks root and returns matching document paths in lexical order.
// Hidden files and directories are skipped.
func Discover(root string, opts DiscoverOptions) ([]string, error) {
	include := opts.Include
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}

	for _, pattern := range append(append([]string(nil), include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
	}

	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitignore(root)
	}

	var results []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		probe := rel
		if d.IsDir() {
			probe += "/"
		}

		if strings.HasPrefix(d.Name(), ".") || (gi != nil && gi.MatchesPath(probe)) ||
			(opts.SkipVendor && enry.IsVendor(probe)) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() || d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		if matchAny(opts.Exclude, rel) || !matchAny(include, rel) {
			return nil
		}

		results = append(results, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(results)

	return results, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}

	return false
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	return gi
}
