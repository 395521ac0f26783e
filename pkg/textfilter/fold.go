// Package textfilter normalizes player-typed text for lookups and display.
package textfilter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold trims s and applies Unicode case folding so that names typed by the
// player can be compared with authored names regardless of case.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Equal reports whether a and b match after folding.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Title capitalizes each word of s, e.g. "sir galahad" -> "Sir Galahad".
func Title(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
