// Package uast loads language-neutral syntax trees produced by external
// front-ends: decoding, schema validation, input discovery and language
// detection.
package uast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Sumatoshi-tech/smellscope/pkg/textutil"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
)

// Sentinel errors for document decoding.
var (
	ErrBinaryInput      = errors.New("input is binary, expected UAST JSON")
	ErrEmptyDocument    = errors.New("document has no root node")
	ErrSchemaViolation  = errors.New("document violates the UAST schema")
	ErrUnexpectedRoot   = errors.New("root node is not a File")
	ErrStreamValueShape = errors.New("stream value is not a JSON object")
)

// Source is the raw bytes of one UAST document and where they came from.
type Source struct {
	Path string
	Data []byte
}

// File is one decoded UAST document.
type File struct {
	Path     string
	Language string
	Root     *node.Node
}

// SchemaError carries the violations that rejected a document.
type SchemaError struct {
	Result *ValidationResult
}

// summaryIssues is how many violations are rendered in an error message.
const summaryIssues = 3

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSchemaViolation, e.Result.Summary(summaryIssues))
}

// Unwrap lets callers test for [ErrSchemaViolation].
func (e *SchemaError) Unwrap() error { return ErrSchemaViolation }

// Decode parses src into a File. When validator is non-nil the document is
// checked against the schema first.
func Decode(src Source, validator *Validator) (File, error) {
	if textutil.IsBinary(src.Data) {
		return File{}, ErrBinaryInput
	}

	if validator != nil {
		var generic any

		dec := json.NewDecoder(bytes.NewReader(src.Data))
		dec.UseNumber()

		if err := dec.Decode(&generic); err != nil {
			return File{}, fmt.Errorf("invalid JSON: %w", err)
		}

		result, err := validator.Validate(generic)
		if err != nil {
			return File{}, err
		}

		if !result.Valid {
			return File{}, &SchemaError{Result: result}
		}
	}

	var root *node.Node

	if err := json.Unmarshal(src.Data, &root); err != nil {
		return File{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if root == nil || root.Type == "" {
		return File{}, ErrEmptyDocument
	}

	if root.Type != node.UASTFile {
		return File{}, fmt.Errorf("%w: got %q", ErrUnexpectedRoot, root.Type)
	}

	path := src.Path
	if declared := root.Prop(node.PropPath); declared != "" {
		path = declared
	}

	return File{Path: path, Language: DetectLanguage(root, path), Root: root}, nil
}

// ReadSources reads each path into a Source.
func ReadSources(paths []string) ([]Source, error) {
	out := make([]Source, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // paths come from discovery or the command line.
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		out = append(out, Source{Path: path, Data: data})
	}

	return out, nil
}

// ReadStream splits a stream of concatenated UAST JSON documents (one per
// source file) into Sources labelled label#N.
func ReadStream(r io.Reader, label string) ([]Source, error) {
	dec := json.NewDecoder(r)

	var out []Source

	for idx := 0; ; idx++ {
		var raw json.RawMessage

		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return out, nil
		}

		name := fmt.Sprintf("%s#%d", label, idx)

		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, fmt.Errorf("%s: %w", name, ErrStreamValueShape)
		}

		out = append(out, Source{Path: name, Data: raw})
	}
}
