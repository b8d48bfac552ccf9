package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// StrictPolicy removes all HTML tags and attributes.
var StrictPolicy = bluemonday.StrictPolicy()

// Text strips all markup from public input and returns plain text.
// bluemonday escapes entities on the way out; the API speaks JSON, not
// HTML, so they are decoded again and output escaping is left to whatever
// renders the value.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(StrictPolicy.Sanitize(input)))
}
