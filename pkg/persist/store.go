package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidName is returned for store entry names that are not plain file names.
var ErrInvalidName = errors.New("invalid store entry name")

// Store keeps named states of one type in a directory, one file per name.
type Store[T any] struct {
	dir   string
	codec Codec
}

// NewStore creates a store over dir, creating the directory if needed.
func NewStore[T any](dir string, codec Codec) (*Store[T], error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	return &Store[T]{dir: dir, codec: codec}, nil
}

func (s *Store[T]) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return filepath.Join(s.dir, name+s.codec.Extension()), nil
}

// Save writes state under name.
func (s *Store[T]) Save(name string, state *T) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	return SaveFile(path, s.codec, state)
}

// Load reads the state stored under name.
func (s *Store[T]) Load(name string) (*T, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	var state T

	if err := LoadFile(path, s.codec, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

// Names lists stored entries in lexical order.
func (s *Store[T]) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list store: %w", err)
	}

	ext := s.codec.Extension()

	var names []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}

		names = append(names, strings.TrimSuffix(name, ext))
	}

	sort.Strings(names)

	return names, nil
}

// LoadAll reads every stored entry in name order.
func (s *Store[T]) LoadAll() ([]*T, error) {
	names, err := s.Names()
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(names))

	for _, name := range names {
		state, err := s.Load(name)
		if err != nil {
			return nil, err
		}

		out = append(out, state)
	}

	return out, nil
}
