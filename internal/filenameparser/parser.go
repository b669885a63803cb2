// Package filenameparser implements C3: deterministic extraction of
// {title, year, media_type, season, episode} candidates from a filesystem
// path, scoring multiple segment interpretations and picking the best.
package filenameparser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/textnorm"
)

var negativeInfinity = math.Inf(-1)

// trailingYearRx matches a title ending in a delimited 4-digit year, used
// to move a year the deterministic parser missed out of the title text.
var trailingYearRx = regexp.MustCompile(`(?i)^(.*?)(?:[\s\[\(\-]+((?:18|19|20)\d{2}))[\]\)\s]*$`)

// Parse transforms filePath into the best-scoring MediaInfo candidate, or
// returns (nil, false) if no segment yields any meaningful tokens ("no
// candidate" is a normal outcome, not an error — spec §4.3).
func Parse(filePath string) (*mediainfo.MediaInfo, bool) {
	candidates := generateCandidates(filePath)
	if len(candidates) == 0 {
		return nil, false
	}

	var best segmentGuess
	bestScore := negativeInfinity
	found := false

	for index, candidate := range candidates {
		guess := parseSegment(candidate)
		quality := metadataQuality(guess)
		if quality == negativeInfinity {
			continue
		}

		deepestBonus := 3 - index
		if deepestBonus < 0 {
			deepestBonus = 0
		}
		score := quality - candidateNoisePenalty(candidate) + float64(deepestBonus)

		if score > bestScore {
			bestScore = score
			best = guess
			found = true
		}
	}

	if !found {
		return nil, false
	}

	applyTrailingYearFix(&best)
	if best.year != nil && !mediainfo.IsPlausibleYear(*best.year, time.Now()) {
		best.year = nil
	}

	return buildMediaInfo(best), true
}

func metadataQuality(guess segmentGuess) float64 {
	if guess.title == "" {
		return negativeInfinity
	}

	tokens := tokenize(guess.title)
	meaningfulCount := 0
	for _, tok := range tokens {
		if tokenIsMeaningfulTitleToken(tok) {
			meaningfulCount++
		}
	}
	if meaningfulCount == 0 {
		return negativeInfinity
	}

	score := float64(meaningfulCount) * 10

	extensionHits := 0
	for _, tok := range tokens {
		if extensionTokens[strings.ToLower(tok)] {
			extensionHits++
		}
	}
	score -= float64(extensionHits) * 10

	if guess.mediaType == "movie" || guess.mediaType == "tv" {
		score += 3
	}
	if guess.season != nil {
		score++
	}
	if guess.episode != nil {
		score++
	}
	if guess.year != nil {
		if mediainfo.IsPlausibleYear(*guess.year, time.Now()) {
			score += 2
		} else {
			score -= 4
		}
	}

	return score
}

func candidateNoisePenalty(candidate string) float64 {
	penalty := 0.0
	for _, tok := range tokenize(candidate) {
		lower := strings.ToLower(tok)
		switch {
		case sourceNoiseTokens[lower]:
			penalty += 1.0
		case isDigitsOnly(tok):
			penalty += 0.5
		}
	}
	return penalty
}

// applyTrailingYearFix strips a trailing year from the title and, if the
// parser had no year of its own, promotes it.
func applyTrailingYearFix(guess *segmentGuess) {
	match := trailingYearRx.FindStringSubmatch(guess.title)
	if match == nil {
		return
	}

	cleanedTitle := strings.Trim(match[1], " -_.([")
	cleanedTitle = strings.Join(strings.Fields(cleanedTitle), " ")
	if cleanedTitle == "" {
		return
	}
	guess.title = cleanedTitle

	if guess.year == nil {
		if year, err := strconv.Atoi(match[2]); err == nil {
			guess.year = &year
		}
	}
}

func buildMediaInfo(guess segmentGuess) *mediainfo.MediaInfo {
	info := &mediainfo.MediaInfo{
		UsedGuessit: true,
	}
	if guess.title != "" {
		info.Title = &guess.title
		originalTitle := guess.title
		info.OriginalTitle = &originalTitle
		ref := textnorm.CreateSearchableReference(guess.title)
		info.SearchableReference = &ref
	}
	if guess.mediaType != "" {
		mt := mediainfo.MediaType(guess.mediaType)
		info.MediaType = &mt
	}
	info.Year = guess.year
	info.Season = guess.season
	info.Episode = guess.episode
	return info
}
