package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SaveFile encodes state to path. The file is written under a temporary
// name and renamed into place, so readers never see a partial file.
func SaveFile(path string, codec Codec, state any) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create state file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = codec.Encode(tmp, state); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("encode state: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close state file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename state file: %w", err)
	}

	return nil
}

// LoadFile decodes the file at path into state, which must be a pointer.
func LoadFile(path string, codec Codec, state any) (err error) {
	file, err := os.Open(path) //nolint:gosec // path is caller supplied.
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}

	defer func() { err = errors.Join(err, file.Close()) }()

	if err = codec.Decode(file, state); err != nil {
		return fmt.Errorf("decode state %s: %w", path, err)
	}

	return nil
}

// Save encodes state to path with the codec chosen by [CodecFor].
func Save(path string, state any) error {
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}

	return SaveFile(path, codec, state)
}

// Load decodes path with the codec chosen by [CodecFor].
func Load(path string, state any) error {
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}

	return LoadFile(path, codec, state)
}
