package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceFile(t *testing.T) {
	file := NewSourceFile("a.zig", "one\ntwo\n")

	assert.Equal(t, []string{"one", "two", ""}, file.Lines)
	assert.Equal(t, "one\ntwo\n", file.Content())
	assert.False(t, file.Changed())

	file.Lines[1] = "three"
	assert.True(t, file.Changed())
	assert.Equal(t, "one\ntwo\n", file.Original())
}

func TestLoadSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.zig")
	require.NoError(t, os.WriteFile(path, []byte("const x = 1;\n"), 0o600))

	file, err := LoadSourceFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, file.Path)
	assert.Equal(t, os.FileMode(0o600), file.Mode)
	assert.Equal(t, "const x = 1;\n", file.Content())

	_, err = LoadSourceFile(filepath.Join(t.TempDir(), "missing.zig"))
	assert.True(t, os.IsNotExist(err))
}
