package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWrite_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "card.md")

	require.NoError(t, SafeWrite(path, []byte("hello"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.md")

	written, err := WriteIfChanged(path, []byte("v1"), 0644)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteIfChanged(path, []byte("v1"), 0644)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = WriteIfChanged(path, []byte("v2"), 0644)
	require.NoError(t, err)
	assert.True(t, written)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := Exists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}
