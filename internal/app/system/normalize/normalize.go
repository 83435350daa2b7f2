// Package normalize provides small input-normalization helpers used by
// handlers before validation and storage.
package normalize

import "strings"

// Username lowercases and trims a username so lookups are case-insensitive.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Title trims surrounding whitespace but preserves case.
func Title(s string) string {
	return strings.TrimSpace(s)
}

// Text trims surrounding whitespace from free-form text fields.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a query or form parameter.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
