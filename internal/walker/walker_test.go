package walker

import (
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploykit/osspush/errors"
)

func TestResolve_Directory(t *testing.T) {
	fsys := billy.NewInMemoryFS()
	require.NoError(t, fsys.MkdirAll("/work/dist/css", 0o755))
	require.NoError(t, fsys.MkdirAll("/work/dist/empty", 0o755))
	require.NoError(t, fsys.WriteFile("/work/dist/a.js", []byte("a"), 0o644))
	require.NoError(t, fsys.WriteFile("/work/dist/css/b.css", []byte("b"), 0o644))
	require.NoError(t, fsys.WriteFile("/work/dist/css/c.css", []byte("c"), 0o644))

	base, entries, err := Resolve(fsys, "/work", "dist")
	require.NoError(t, err)
	assert.Equal(t, "/work/dist", base)
	require.Len(t, entries, 3)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.False(t, seen[e.RelPath], "duplicate relative path %s", e.RelPath)
		seen[e.RelPath] = true
	}
	assert.True(t, seen["a.js"])
	assert.True(t, seen["css/b.css"])
	assert.True(t, seen["css/c.css"])
}

func TestResolve_EmptyDirectory(t *testing.T) {
	fsys := billy.NewInMemoryFS()
	require.NoError(t, fsys.MkdirAll("/work/empty", 0o755))

	base, entries, err := Resolve(fsys, "/work", "empty")
	require.NoError(t, err)
	assert.Equal(t, "/work/empty", base)
	assert.Empty(t, entries)
}

func TestResolve_SingleFile(t *testing.T) {
	fsys := billy.NewInMemoryFS()
	require.NoError(t, fsys.MkdirAll("/work/dist", 0o755))
	require.NoError(t, fsys.WriteFile("/work/dist/index.js", []byte("x"), 0o644))

	base, entries, err := Resolve(fsys, "/work", "dist/index.js")
	require.NoError(t, err)
	assert.Equal(t, "/work/dist", base)
	require.Len(t, entries, 1)
	assert.Equal(t, "/work/dist/index.js", entries[0].Path)
	assert.Equal(t, "index.js", entries[0].RelPath)
}

func TestResolve_AbsolutePathIgnoresWorkDir(t *testing.T) {
	fsys := billy.NewInMemoryFS()
	require.NoError(t, fsys.WriteFile("/data/file.txt", []byte("x"), 0o644))

	base, entries, err := Resolve(fsys, "/elsewhere", "/data/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "/data", base)
	require.Len(t, entries, 1)
	assert.Equal(t, "file.txt", entries[0].RelPath)
}

func TestResolve_PathNotFound(t *testing.T) {
	fsys := billy.NewInMemoryFS()

	_, _, err := Resolve(fsys, "/work", "missing")
	require.Error(t, err)
	assert.True(t, errors.IsPathNotFound(err))
}

func TestResolve_DeeplyNested(t *testing.T) {
	fsys := billy.NewInMemoryFS()
	require.NoError(t, fsys.MkdirAll("/root/a/b/c", 0o755))
	require.NoError(t, fsys.WriteFile("/root/a/b/c/deep.txt", []byte("d"), 0o644))
	require.NoError(t, fsys.WriteFile("/root/top.txt", []byte("t"), 0o644))

	_, entries, err := Resolve(fsys, "/", "/root")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	rels := []string{entries[0].RelPath, entries[1].RelPath}
	assert.Contains(t, rels, "a/b/c/deep.txt")
	assert.Contains(t, rels, "top.txt")
}
