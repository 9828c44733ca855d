package dialogue

import "strings"

// Sanitize trims the text and collapses every whitespace run to a single
// space. Delimiter quoting happens when the record is written.
func Sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
