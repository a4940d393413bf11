// Package walker resolves a local path into the ordered set of regular
// files to upload. It operates on the fs.Filesystem abstraction so the
// traversal can be exercised against an in-memory filesystem in tests.
package walker

import (
	"os"
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/deploykit/osspush/errors"
)

// FileEntry is one regular file discovered under the resolved local path.
type FileEntry struct {
	// Path is the absolute local path of the file
	Path string

	// RelPath is the path relative to the traversal base, using OS-specific
	// separators
	RelPath string
}

// Resolve resolves localPath (against workDir when relative) and enumerates
// the regular files beneath it.
//
// For a directory it returns the directory as base and one FileEntry per
// regular file found by a depth-first walk; an empty directory yields zero
// entries. For a regular file it returns the parent directory as base and a
// single entry whose RelPath is the file name. Non-regular paths (devices,
// sockets, ...) fail with ErrUnsupportedPathType. Symlinks and other special
// entries inside a directory are skipped without failing the walk.
func Resolve(fsys fs.Filesystem, workDir, localPath string) (string, []FileEntry, error) {
	resolved, err := Locate(fsys, workDir, localPath)
	if err != nil {
		return "", nil, err
	}

	info, err := fsys.Stat(resolved)
	if err != nil {
		return "", nil, errors.NewError("walk", errors.ErrPathNotFound).
			WithMessage(resolved)
	}

	switch {
	case info.IsDir():
		entries, err := walkDir(fsys, resolved)
		if err != nil {
			return "", nil, errors.NewError("walk", err).WithMessage(resolved)
		}
		return resolved, entries, nil

	case info.Mode().IsRegular():
		base := filepath.Dir(resolved)
		entry := FileEntry{
			Path:    resolved,
			RelPath: filepath.Base(resolved),
		}
		return base, []FileEntry{entry}, nil

	default:
		return "", nil, errors.NewError("walk", errors.ErrUnsupportedPathType).
			WithMessage(resolved)
	}
}

// Locate resolves localPath against workDir when relative and confirms it
// exists. It returns the resolved absolute path, or ErrPathNotFound when the
// path is missing or inaccessible.
func Locate(fsys fs.Filesystem, workDir, localPath string) (string, error) {
	resolved := localPath
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(workDir, resolved)
	}

	if _, err := fsys.Stat(resolved); err != nil {
		return "", errors.NewError("walk", errors.ErrPathNotFound).
			WithMessage(resolved)
	}
	return resolved, nil
}

// walkDir collects every regular file under base, depth-first, with RelPath
// computed against base.
func walkDir(fsys fs.Filesystem, base string) ([]FileEntry, error) {
	var entries []FileEntry

	err := fsys.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// An unreadable entry must not crash the traversal.
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		entries = append(entries, FileEntry{Path: path, RelPath: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
