package game

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// Normalize folds case, strips diacritics and punctuation, and trims the result.
// It is idempotent.
func Normalize(s string) string {
	folded := cases.Fold().String(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, folded)
	if err != nil {
		stripped = folded
	}
	// Recompose only after punctuation is gone, so a second pass has nothing left to join.
	return strings.TrimSpace(norm.NFC.String(nonWord.ReplaceAllString(stripped, "")))
}

// matches reports whether a normalized guess is contained in a normalized answer.
// Matching is lenient on purpose: "gat" matches "gato".
func matches(normalizedAnswer, normalizedGuess string) bool {
	return normalizedGuess != "" && strings.Contains(normalizedAnswer, normalizedGuess)
}
