package analysis

import "strings"

// Contains reports whether query occurs in text, ignoring case. An empty text
// or query never matches.
func Contains(text, query string) bool {
	if text == "" || query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}
