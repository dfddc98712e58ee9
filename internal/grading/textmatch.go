package grading

import (
	"strings"
	"unicode"
)

// Normalize prepares an answer string for comparison: trims whitespace,
// lowercases, and strips punctuation from both ends. "True.", " TRUE! "
// and "true??" all normalize to "true".
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// Equal reports whether two answers match after normalization. This is the
// only equality rule used for scoring anywhere in the service.
func Equal(submitted, correct string) bool {
	return Normalize(submitted) == Normalize(correct)
}
