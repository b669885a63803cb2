package filenameparser

import (
	"regexp"
	"strconv"
	"strings"
)

// segmentGuess is the deterministic parse of a single candidate string,
// analogous to one guessit() call in the original implementation.
type segmentGuess struct {
	title     string
	year      *int
	mediaType string // "movie", "tv", or "" if undetermined
	season    *int
	episode   *int
}

var (
	seasonEpisodeRx   = regexp.MustCompile(`(?i)\bs(\d{1,2})e(\d{1,3})\b`)
	xSeparatedRx      = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{1,3})\b`)
	wordedSeasonEpRx  = regexp.MustCompile(`(?i)season\s*0*(\d{1,2})\D{0,10}episode\s*0*(\d{1,3})`)
	numericCompactRx  = regexp.MustCompile(`\b(\d)(\d{2})\b`)
	yearRx            = regexp.MustCompile(`\b((?:18|19|20)\d{2})\b`)
	bracketedGroupRx  = regexp.MustCompile(`[\[({][^\])}]*[\])}]`)
	trailingDashGroup = regexp.MustCompile(`-[A-Za-z0-9]+$`)
)

// parseSegment extracts {title, year, type, season, episode} from a single
// candidate string. It never returns an error; a candidate that yields no
// usable title returns a zero-value segmentGuess (caller scores it out via
// metadataQuality).
func parseSegment(candidate string) segmentGuess {
	base, _ := splitBasenameAndExtension(candidate)
	working := strings.NewReplacer("_", " ", ".", " ").Replace(base)
	working = bracketedGroupRx.ReplaceAllString(working, " ")

	var guess segmentGuess
	markerStart := len(working)

	if m := seasonEpisodeRx.FindStringSubmatchIndex(working); m != nil {
		season, _ := strconv.Atoi(working[m[2]:m[3]])
		episode, _ := strconv.Atoi(working[m[4]:m[5]])
		guess.season = &season
		guess.episode = &episode
		guess.mediaType = "tv"
		markerStart = minInt(markerStart, m[0])
	} else if m := xSeparatedRx.FindStringSubmatchIndex(working); m != nil {
		season, _ := strconv.Atoi(working[m[2]:m[3]])
		episode, _ := strconv.Atoi(working[m[4]:m[5]])
		guess.season = &season
		guess.episode = &episode
		guess.mediaType = "tv"
		markerStart = minInt(markerStart, m[0])
	} else if m := wordedSeasonEpRx.FindStringSubmatchIndex(working); m != nil {
		season, _ := strconv.Atoi(working[m[2]:m[3]])
		episode, _ := strconv.Atoi(working[m[4]:m[5]])
		guess.season = &season
		guess.episode = &episode
		guess.mediaType = "tv"
		markerStart = minInt(markerStart, m[0])
	} else if m := numericCompactRx.FindStringSubmatchIndex(working); m != nil {
		season, _ := strconv.Atoi(working[m[2]:m[3]])
		episode, _ := strconv.Atoi(working[m[4]:m[5]])
		if season >= 1 && episode >= 1 {
			guess.season = &season
			guess.episode = &episode
			guess.mediaType = "tv"
			markerStart = minInt(markerStart, m[0])
		}
	}

	if m := yearRx.FindStringSubmatchIndex(working); m != nil {
		year, _ := strconv.Atoi(working[m[2]:m[3]])
		guess.year = &year
		markerStart = minInt(markerStart, m[0])
	}

	titleSpan := working
	if markerStart < len(working) {
		titleSpan = working[:markerStart]
	}
	guess.title = cleanTitleSpan(titleSpan)

	if guess.mediaType == "" && guess.title != "" {
		guess.mediaType = "movie"
	}

	return guess
}

func cleanTitleSpan(span string) string {
	span = trailingDashGroup.ReplaceAllString(span, "")
	span = strings.Join(tokenize(span), " ")
	return strings.TrimSpace(span)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func splitBasenameAndExtension(segment string) (base string, extension string) {
	idx := strings.LastIndex(segment, ".")
	if idx < 0 {
		return segment, ""
	}
	base, ext := segment[:idx], strings.ToLower(segment[idx+1:])
	if extensionTokens[ext] {
		return base, ext
	}
	return segment, ""
}
