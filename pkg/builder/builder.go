// Package builder turns per-file syntax trees into a resolved project model.
//
// Building runs in two passes. The declaration pass constructs classes,
// fields and members from each file independently and may run in parallel.
// The linking pass then resolves base types, type references and body
// reference sites across the whole project; it completes before Build
// returns, after which the model is read-only.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast"
)

// ModelBuildError identifies the input file that failed to build.
type ModelBuildError struct {
	Path string
	Err  error
}

func (e *ModelBuildError) Error() string {
	return fmt.Sprintf("build model from %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ModelBuildError) Unwrap() error { return e.Err }

// Builder builds projects from syntax trees.
type Builder struct {
	workers   int
	logger    *slog.Logger
	validator *uast.Validator
	onFile    func(path string)
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers bounds declaration-pass parallelism. Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithLogger sets the logger used for unresolved-reference diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithValidator checks raw sources against a schema before decoding.
func WithValidator(v *uast.Validator) Option {
	return func(b *Builder) { b.validator = v }
}

// WithFileHook registers a callback invoked after each file's declaration
// pass. It may be called concurrently.
func WithFileHook(fn func(path string)) Option {
	return func(b *Builder) { b.onFile = fn }
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// BuildSources decodes raw UAST documents and builds a project from them.
// Decoding happens inside the parallel declaration pass.
func (b *Builder) BuildSources(ctx context.Context, source string, sources []uast.Source) (*model.Project, error) {
	files := make([]uast.File, len(sources))

	return b.build(ctx, source, len(sources), func(idx int) (string, []*model.Class, error) {
		file, err := uast.Decode(sources[idx], b.validator)
		if err != nil {
			return sources[idx].Path, nil, err
		}

		files[idx] = file
		classes, err := declareFile(file)

		return file.Path, classes, err
	}, func() string { return uast.DominantLanguage(files) })
}

// Build builds a project from decoded files. On any failure no project is returned.
func (b *Builder) Build(ctx context.Context, source string, files []uast.File) (*model.Project, error) {
	return b.build(ctx, source, len(files), func(idx int) (string, []*model.Class, error) {
		classes, err := declareFile(files[idx])

		return files[idx].Path, classes, err
	}, func() string { return uast.DominantLanguage(files) })
}

type declareFunc func(idx int) (path string, classes []*model.Class, err error)

func (b *Builder) build(
	ctx context.Context, source string, count int, declare declareFunc, language func() string,
) (*model.Project, error) {
	perFile := make([][]*model.Class, count)
	failures := make([]error, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for idx := range count {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			path, classes, err := declare(idx)
			if err != nil {
				failures[idx] = &ModelBuildError{Path: path, Err: err}

				return nil
			}

			perFile[idx] = classes

			if b.onFile != nil {
				b.onFile(path)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("declaration pass: %w", err)
	}

	if err := errors.Join(failures...); err != nil {
		return nil, err
	}

	classes, err := mergeClasses(perFile)
	if err != nil {
		return nil, err
	}

	project := model.NewProject(source, classes)
	project.Language = language()

	l := &linker{project: project, logger: b.logger}
	l.link()

	b.logger.Debug("model built",
		"source", source, "files", count, "classes", len(classes), "unresolved", l.unresolved)

	return project, nil
}

// mergeClasses flattens per-file classes in file order. Partial declarations
// of one class are merged into the first; any other repeated full name fails.
func mergeClasses(perFile [][]*model.Class) ([]*model.Class, error) {
	var out []*model.Class

	byName := make(map[string]*model.Class)

	for _, classes := range perFile {
		for _, c := range classes {
			existing, dup := byName[c.FullName]
			if !dup {
				byName[c.FullName] = c
				out = append(out, c)

				continue
			}

			if !existing.Modifiers.Has(model.Partial) || !c.Modifiers.Has(model.Partial) {
				return nil, &ModelBuildError{Path: c.Path, Err: fmt.Errorf("%w: %s", ErrDuplicateClass, c.FullName)}
			}

			mergePartial(existing, c)
		}
	}

	return out, nil
}

func mergePartial(into, part *model.Class) {
	for _, f := range part.Fields {
		f.Parent = into
	}

	for _, m := range part.Members {
		m.Parent = into
	}

	for _, inner := range part.InnerClasses {
		inner.Outer = into
	}

	into.Fields = append(into.Fields, part.Fields...)
	into.Members = append(into.Members, part.Members...)
	into.InnerClasses = append(into.InnerClasses, part.InnerClasses...)
	into.SourceCode += "\n" + part.SourceCode

	if into.BaseName == "" {
		into.BaseName = part.BaseName
	}

	into.Imports = slices.Clone(into.Imports)

	for _, imp := range part.Imports {
		if !slices.Contains(into.Imports, imp) {
			into.Imports = append(into.Imports, imp)
		}
	}

	for _, mod := range part.Modifiers {
		if !into.Modifiers.Has(mod.Value) {
			into.Modifiers = append(into.Modifiers, mod)
		}
	}
}
