package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// URLValidationError represents a URL validation failure
type URLValidationError struct {
	Field   string
	Message string
	URL     string
}

func (e URLValidationError) Error() string {
	return fmt.Sprintf("%s: %s (url: %s)", e.Field, e.Message, e.URL)
}

// scriptSchemes are rejected wherever a stored URL ends up in an href or src.
var scriptSchemes = []string{"javascript:", "vbscript:"}

// ValidateImageURL accepts any image reference the site can render: absolute
// URLs, root-relative and relative paths, and data:image/ URIs. Script
// schemes are rejected. Browsers ignore whitespace and control characters
// inside a scheme, so they are dropped before comparing.
func ValidateImageURL(urlString, fieldName string) error {
	scheme := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, urlString))

	for _, prefix := range scriptSchemes {
		if strings.HasPrefix(scheme, prefix) {
			return URLValidationError{Field: fieldName, Message: "script URLs are not allowed", URL: urlString}
		}
	}
	if strings.HasPrefix(scheme, "data:") && !strings.HasPrefix(scheme, "data:image/") {
		return URLValidationError{Field: fieldName, Message: "data URLs must be images", URL: urlString}
	}
	return nil
}
