//go:build unix

package walker

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploykit/osspush/errors"
)

func TestResolve_UnsupportedPathType(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "pipe"), 0o644))

	fsys := billy.NewOSFS("/")
	_, _, err := Resolve(fsys, dir, "pipe")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedPathType)
}

func TestResolve_SkipsNonRegularDirectoryEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("a"), 0o644))
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "pipe"), 0o644))

	fsys := billy.NewOSFS("/")
	base, entries, err := Resolve(fsys, "/", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, base)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.js", entries[0].RelPath)
}
