package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		fullPath := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
	return dir
}

func TestCollect(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.formula":        "x + 0",
		"b.fml":            "2 * 3",
		"notes.txt":        "not a formula file",
		"sub/c.formula":    "sin(0)",
		"sub/deep/d.fml":   "x^1",
		"sub/deep/e.gnomd": "skip",
	})

	files, err := New().Collect(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.formula"),
		filepath.Join(dir, "b.fml"),
		filepath.Join(dir, "sub/c.formula"),
		filepath.Join(dir, "sub/deep/d.fml"),
	}, files)
}

func TestCollectExplicitFiles(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"notes.txt": "x",
		"a.formula": "y",
	})
	notes := filepath.Join(dir, "notes.txt")

	// an explicit file is taken whatever its extension, and only once
	files, err := New().Collect(notes, dir, notes)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.formula"), notes}, files)
}

func TestCollectCustomExtensions(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.formula": "x",
		"b.txt":     "y",
	})

	files, err := New(".txt").Collect(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.txt")}, files)
}

func TestCollectMissingPath(t *testing.T) {
	t.Parallel()

	_, err := New().Collect(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
