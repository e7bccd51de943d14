package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lower-cases s with language-neutral Unicode rules.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Resolve returns the display name of the first entry whose case-folded name
// contains the case-folded fragment verbatim, surrounding whitespace
// included. Ties resolve to catalog order; an empty fragment never matches.
func Resolve[T Named](fragment string, entries []T) (string, bool) {
	needle := Fold(fragment)
	if needle == "" {
		return "", false
	}
	for _, entry := range entries {
		name := entry.DisplayName()
		if strings.Contains(Fold(name), needle) {
			return name, true
		}
	}
	return "", false
}
