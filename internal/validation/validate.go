// Package validation provides input validation for derived object keys.
//
// Keys are derived from local relative paths, so a malformed key here means
// a walker or derivation bug rather than bad user input; validating before
// the put keeps such bugs from reaching the storage endpoint.
package validation

import (
	"path"
	"strings"
	"unicode"

	"github.com/deploykit/osspush/errors"
)

// maxKeyLength is the S3 object key limit in bytes.
const maxKeyLength = 1024

// ValidateObjectKey validates a derived object key: non-empty, within the
// length limit, free of control characters and path traversal sequences.
func ValidateObjectKey(key string) error {
	if key == "" {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithMessage("object key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("object key cannot exceed 1024 bytes")
	}

	if hasPathTraversal(key) {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("object key cannot contain path traversal sequences")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
				WithKey(key).
				WithMessage("object key cannot contain control characters")
		}
	}

	return nil
}

// hasPathTraversal reports whether the key escapes its prefix when resolved.
func hasPathTraversal(key string) bool {
	if strings.Contains(key, "..") {
		return true
	}
	cleaned := path.Clean(key)
	return strings.HasPrefix(cleaned, "..") || strings.HasPrefix(cleaned, "/")
}
