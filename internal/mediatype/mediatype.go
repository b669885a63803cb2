// Package mediatype normalizes user- or model-supplied media type tokens
// to the closed {movie, tv} vocabulary.
package mediatype

import "strings"

const (
	Movie = "movie"
	TV    = "tv"
)

// validTypes is the set of tokens normalize already accepts verbatim
// (case-insensitively).
var validTypes = map[string]bool{
	Movie: true,
	TV:    true,
}

// aliases maps a space-normalized alias to its canonical type. "-" and "_"
// in the input are folded to spaces before lookup, and a squeezed
// (space-removed) form is tried as a fallback, so "tv-show", "tv_show" and
// "tvshow" all resolve the same way.
var aliases = map[string]string{
	"tv show":  TV,
	"tv shows": TV,
	"tv":       TV,
	"series":   TV,
	"episode":  TV,
	"scripted": TV,
	"film":     Movie,
	"movie":    Movie,
	"movies":   Movie,
}

// Normalize maps value to "movie" or "tv", or returns ("", false) when the
// token is not recognized.
func Normalize(value string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "", false
	}
	if validTypes[normalized] {
		return normalized, true
	}

	replaced := strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(normalized))
	if canonical, ok := aliases[replaced]; ok {
		return canonical, true
	}

	squeezed := strings.ReplaceAll(replaced, " ", "")
	for alias, canonical := range aliases {
		if strings.ReplaceAll(alias, " ", "") == squeezed {
			return canonical, true
		}
	}

	return "", false
}

// IsValid reports whether value normalizes to a recognized media type.
func IsValid(value string) bool {
	_, ok := Normalize(value)
	return ok
}
