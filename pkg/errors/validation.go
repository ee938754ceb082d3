package errors

import (
	"strings"
	"unicode"
)

// ValidateArch validates an architecture token before it is substituted
// into the mirror URL template. It rejects tokens that could be used for
// path traversal or URL injection.
//
// The rules are intentionally conservative:
//   - No empty tokens
//   - No control characters or whitespace
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 64 characters
//
// Whether the architecture actually exists on the mirror is decided by the
// mirror itself (a 404 surfaces as a retrieval error).
func ValidateArch(arch string) error {
	if arch == "" {
		return New(ErrCodeUsage, "architecture cannot be empty")
	}

	if len(arch) > 64 {
		return New(ErrCodeUsage, "architecture too long (max 64 characters)")
	}

	for _, r := range arch {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeUsage, "architecture contains invalid characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "?", "#"} {
		if strings.Contains(arch, pattern) {
			return New(ErrCodeUsage, "architecture contains invalid sequence: %q", pattern)
		}
	}

	return nil
}
