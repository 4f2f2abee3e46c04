// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Label trims surrounding whitespace from a user-supplied label or acronym.
// Case is preserved; case-insensitive matching goes through name_ci.
func Label(s string) string {
	return strings.TrimSpace(s)
}
