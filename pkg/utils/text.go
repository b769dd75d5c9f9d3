package utils

import "strings"

// NormalizeName trims a display name and collapses inner runs of
// whitespace to a single space.
func NormalizeName(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
