package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root)
	require.NoError(t, err)

	path := filepath.Join("private", "documents", "loa.pdf")
	require.NoError(t, store.Save(path, strings.NewReader("%PDF-1.4 test")))

	rc, err := store.Open(path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4 test", string(data))

	require.NoError(t, store.Delete(path))
	_, err = store.Open(path)
	assert.Error(t, err)

	// deleting twice is not an error
	assert.NoError(t, store.Delete(path))
}

func TestLocalStorageStaysInRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root)
	require.NoError(t, err)

	full, err := store.resolve("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, root))
}
