package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/smellscope/pkg/config"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast"
)

const stdinArg = "-"

var (
	// ErrNoInputs is returned when a command is given no input paths.
	ErrNoInputs = errors.New("no inputs: pass UAST files, directories or - for stdin")
	// ErrNoDocuments is returned when the inputs contain no UAST documents.
	ErrNoDocuments = errors.New("no UAST documents found")
	// ErrBadSnapshotSpec is returned for a --snapshot value that is not id=path.
	ErrBadSnapshotSpec = errors.New("snapshot must be given as id=path")
)

// inputSet is the raw documents of one project.
type inputSet struct {
	label   string
	sources []uast.Source
}

func (in *inputSet) bytes() uint64 {
	var total uint64
	for _, src := range in.sources {
		total += uint64(len(src.Data))
	}

	return total
}

func discoverOptions(cfg config.AnalysisConfig) uast.DiscoverOptions {
	return uast.DiscoverOptions{
		Include:          cfg.Include,
		Exclude:          cfg.Exclude,
		RespectGitignore: cfg.RespectGitignore,
		SkipVendor:       cfg.SkipVendor,
	}
}

// loadInputs reads every document named by paths. Directories are walked
// with the discovery options; "-" reads a stream of documents from stdin.
func loadInputs(paths []string, stdin io.Reader, opts uast.DiscoverOptions) (*inputSet, error) {
	if len(paths) == 0 {
		return nil, ErrNoInputs
	}

	set := &inputSet{label: inputLabel(paths)}

	for _, path := range paths {
		sources, err := readInput(path, stdin, opts)
		if err != nil {
			return nil, err
		}

		set.sources = append(set.sources, sources...)
	}

	if len(set.sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, strings.Join(paths, ", "))
	}

	return set, nil
}

func readInput(path string, stdin io.Reader, opts uast.DiscoverOptions) ([]uast.Source, error) {
	if path == stdinArg {
		return uast.ReadStream(stdin, "stdin")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", path, err)
	}

	if !info.IsDir() {
		return uast.ReadSources([]string{path})
	}

	found, err := uast.Discover(path, opts)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", path, err)
	}

	return uast.ReadSources(found)
}

func inputLabel(paths []string) string {
	if len(paths) != 1 {
		return strings.Join(paths, ",")
	}

	if paths[0] == stdinArg {
		return "stdin"
	}

	return filepath.Base(filepath.Clean(paths[0]))
}

// snapshotSpec is one --snapshot id=path value.
type snapshotSpec struct {
	id   string
	path string
}

func parseSnapshotSpecs(values []string) ([]snapshotSpec, error) {
	out := make([]snapshotSpec, 0, len(values))

	for _, value := range values {
		id, path, ok := strings.Cut(value, "=")
		if !ok || id == "" || path == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadSnapshotSpec, value)
		}

		out = append(out, snapshotSpec{id: id, path: path})
	}

	return out, nil
}
