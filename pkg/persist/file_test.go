package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
)

func TestSaveLoad_ByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	original := testState{Name: "corpus", Count: 3, Metrics: metrics.Values{metrics.ATFD: 4}}

	for _, name := range []string{"a.json", "a.gob", "a.json.lz4", "a.gob.lz4"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, &original), name)

		var loaded testState

		require.NoError(t, Load(path, &loaded), name)
		assert.Equal(t, original, loaded, name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "no temporary files are left behind")
}

func TestSaveFile_FailuresLeaveNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	err := SaveFile(path, NewJSONCodec(), make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode state")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = SaveFile("/nonexistent/path/that/does/not/exist/x.json", NewJSONCodec(), testState{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var state testState

	err := LoadFile(filepath.Join(dir, "missing.json"), NewJSONCodec(), &state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("not json{{{"), 0o600))

	err = LoadFile(corrupt, NewJSONCodec(), &state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")

	require.ErrorIs(t, Save(filepath.Join(dir, "x.txt"), state), ErrUnknownExtension)
	require.ErrorIs(t, Load(filepath.Join(dir, "x.txt"), &state), ErrUnknownExtension)
}
