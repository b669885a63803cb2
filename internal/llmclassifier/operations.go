package llmclassifier

import (
	"strconv"
	"strings"
)

// ClassifyType implements classify_type(path) -> {movie, tv, unknown}.
func (c *Client) ClassifyType(filePath string) string {
	out, ok := c.ask(buildPrompt(classifyTypeSpec, filePath))
	if !ok {
		return "unknown"
	}
	switch strings.ToLower(strings.TrimSpace(out)) {
	case "movie":
		return "movie"
	case "tv":
		return "tv"
	default:
		return "unknown"
	}
}

// ExtractMovieTitle implements extract_movie_title(path) -> string | unknown.
func (c *Client) ExtractMovieTitle(filePath string) (string, bool) {
	return extractedTitle(c.ask(buildPrompt(extractMovieTitleSpec, filePath)))
}

// ExtractSeriesTitle implements extract_series_title(path) -> string | unknown.
func (c *Client) ExtractSeriesTitle(filePath string) (string, bool) {
	return extractedTitle(c.ask(buildPrompt(extractSeriesTitleSpec, filePath)))
}

func extractedTitle(out string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	title := strings.TrimSpace(out)
	if title == "" || strings.EqualFold(title, "unknown") {
		return "", false
	}
	return title, true
}

// ExtractSeasonEpisode implements extract_season_episode(path) ->
// "season:N, episode:M" | unknown, returning the raw provider string. Use
// ParseSeasonEpisodeString to turn it into (season, episode) ints.
func (c *Client) ExtractSeasonEpisode(filePath string) (string, bool) {
	out, ok := c.ask(buildPrompt(extractSeasonEpisodeSpec, filePath))
	if !ok {
		return "", false
	}
	out = strings.TrimSpace(out)
	if out == "" || strings.EqualFold(out, "unknown") {
		return "", false
	}
	return out, true
}

// ParseSeasonEpisodeString parses the exact "season:N, episode:M" form
// produced by ExtractSeasonEpisode. Any deviation in format - extra or
// missing parts, a non-numeric episode token, a different separator -
// returns (nil, nil) rather than an error, matching
// original_source/src/media_identifiers/helpers.py's
// parse_season_episode_string.
func ParseSeasonEpisodeString(value string) (*int, *int) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return nil, nil
	}

	season, ok := extractNumber(parts[0])
	if !ok {
		return nil, nil
	}
	episode, ok := extractNumber(parts[1])
	if !ok {
		return nil, nil
	}
	return &season, &episode
}

func extractNumber(segment string) (int, bool) {
	tokens := strings.SplitN(strings.TrimSpace(segment), ":", 2)
	if len(tokens) != 2 {
		return 0, false
	}
	digits := strings.TrimSpace(tokens[1])
	if digits == "" || !isAllDigits(digits) {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
