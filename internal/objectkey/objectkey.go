// Package objectkey maps local relative paths to remote object keys.
package objectkey

import (
	"path/filepath"
	"strings"
)

// Derive maps a local relative path to an object key. OS-specific path
// separators are replaced with "/". A non-empty prefix is stripped of any
// trailing slashes and joined with "/"; an empty prefix leaves the
// normalized relative path unchanged.
//
// The separator normalization is idempotent: re-deriving an already derived
// key (with an empty prefix) yields the same key.
func Derive(relPath, prefix string) string {
	key := filepath.ToSlash(relPath)
	if prefix == "" {
		return key
	}
	return strings.TrimRight(prefix, "/") + "/" + key
}
