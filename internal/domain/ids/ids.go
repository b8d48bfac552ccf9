package ids

import (
	"errors"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"
)

var (
	ulidRegex = regexp.MustCompile(`(?i)^[0-9A-HJKMNP-TV-Z]{26}$`)

	ErrInvalidULID = errors.New("invalid ULID")
)

// New returns a fresh ULID string. IDs minted by one process sort in creation
// order, which the stores rely on for "first record" lookups.
func New() string {
	return ulid.Make().String()
}

// IsULID returns true when value is a valid ULID (case-insensitive Crockford Base32).
func IsULID(value string) bool {
	return ulidRegex.MatchString(strings.TrimSpace(value))
}

// ValidateULID validates a ULID string.
func ValidateULID(value string) error {
	if !IsULID(value) {
		return ErrInvalidULID
	}
	return nil
}

// Normalize trims and upper-cases an identifier taken from a URL path.
func Normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
