package storefront

import "strings"

// Slugify lowercases name and replaces every space with a hyphen.
// Nothing else is touched, so "A  B" becomes "a--b".
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
