package onpage

import "strings"

// Normalize collapses every whitespace run to a single space and trims both
// ends. Every text field in a Document is normalized with this function.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SignatureKey returns the normalized, case-folded form of text used to
// detect duplicate blocks.
func SignatureKey(s string) string {
	return strings.ToLower(Normalize(s))
}
