package textnorm

import (
	"regexp"
	"strings"
)

var nonAlphanumericSpaceRx = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
var whitespaceRunRx = regexp.MustCompile(`\s+`)

// ReplaceSpecialChars replaces anything that is not a letter, digit, or
// space with a single space.
func ReplaceSpecialChars(text string) string {
	return nonAlphanumericSpaceRx.ReplaceAllString(text, " ")
}

// NormalizeSpaces collapses runs of whitespace to a single space.
func NormalizeSpaces(text string) string {
	return whitespaceRunRx.ReplaceAllString(text, " ")
}

// CreateSearchableReference is the C1 normalizer used as a cache key:
// null/blank-preserving; otherwise applies, in order, roman-numeral
// replacement, special-character scrubbing, whitespace collapse, and trim.
// It is idempotent: CreateSearchableReference(CreateSearchableReference(s))
// == CreateSearchableReference(s).
func CreateSearchableReference(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	normalized := ReplaceRomanNumerals(text)
	normalized = ReplaceSpecialChars(normalized)
	normalized = NormalizeSpaces(normalized)
	return strings.TrimSpace(normalized)
}
