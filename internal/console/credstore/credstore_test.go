package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	err := store.Save("fp_secret")
	require.NoError(t, err)

	token, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "fp_secret", token)
}

func TestFileStoreMissingFileReadsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope", "token"))

	token, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("fp_secret\n"), 0600))

	store := NewFileStore(path)
	token, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "fp_secret", token)
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".panelctl", "token")
	store := NewFileStore(path)

	require.NoError(t, store.Save("fp_secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, store.Save("fp_secret"))

	require.NoError(t, store.Clear())

	token, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing again is not an error
	require.NoError(t, store.Clear())
}

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()

	token, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("fp_secret"))
	token, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, "fp_secret", token)

	require.NoError(t, store.Clear())
	token, err = store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)
}
