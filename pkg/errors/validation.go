package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds baseline names so they fit file names and keys.
const maxNameLength = 200

// baselineNameRegex allows path-like names such as "designs/alu/setup".
var baselineNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(/[A-Za-z0-9][A-Za-z0-9._-]*)*$`)

// ValidateBaselineName validates a baseline name for safety and correctness.
// Names are used as file names, Redis keys, document ids, and URL path
// segments, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (..) or absolute paths
//   - Segments of letters, digits, '.', '_' and '-', separated by '/'
//   - Maximum length of 200 characters
func ValidateBaselineName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "baseline name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "baseline name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "baseline name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidName, "baseline name must be relative (cannot start with /)")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "baseline name cannot contain path traversal sequences (..)")
	}

	if !baselineNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid baseline name: %q", name)
	}

	return nil
}
