package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoadNames(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "snapshots")

	store, err := NewStore[testState](dir, NewLZ4Codec(NewGobCodec()))
	require.NoError(t, err)

	require.NoError(t, store.Save("v2", &testState{Name: "second"}))
	require.NoError(t, store.Save("v1", &testState{Name: "first"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	names, err := store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, names)

	loaded, err := store.Load("v2")
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Name)

	all, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Name)
}

func TestStore_RejectsPathNames(t *testing.T) {
	t.Parallel()

	store, err := NewStore[testState](t.TempDir(), NewJSONCodec())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		require.ErrorIs(t, store.Save(name, &testState{}), ErrInvalidName, name)

		_, err := store.Load(name)
		require.ErrorIs(t, err, ErrInvalidName, name)
	}

	_, err = store.Load("missing")
	require.Error(t, err)
}
