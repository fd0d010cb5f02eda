package errors

import (
	"strings"
	"unicode"
)

// EmptyToken is the structural token for an empty grid cell. It can never be
// used as an id because it would make the text form ambiguous.
const EmptyToken = "·"

// maxIDLength bounds node and edge ids.
const maxIDLength = 64

// ValidateID validates a node or edge id.
//
// Ids appear as whitespace-separated tokens in the structural text form, so
// the rules are:
//   - No empty ids
//   - No whitespace or control characters
//   - Not the empty-cell token "·"
//   - Maximum length of 64 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "id too long (max %d characters): %q", maxIDLength, id)
	}
	if id == EmptyToken {
		return New(ErrCodeInvalidID, "id cannot be the empty-cell token %q", EmptyToken)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "id contains whitespace or control characters: %q", id)
		}
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
// It prevents path traversal when a path comes from an untrusted source
// such as an API request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateFormat checks that format is one of valid.
func ValidateFormat(format string, valid []string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(valid, ", "))
}
