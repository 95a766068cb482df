package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDrawingName validates a stored drawing name for safety and
// correctness. It rejects names that could be used for path traversal or
// injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDrawingName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "drawing name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "drawing name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "drawing name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "drawing name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// fontNameRegex matches font names safe to hand to the system font lookup.
var fontNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._-]*$`)

// ValidateFontName validates a font name before it is resolved against the
// system font directories.
func ValidateFontName(name string) error {
	if name == "" {
		return nil // empty means the default font
	}

	if !fontNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid font name: %q", name)
	}

	return nil
}
