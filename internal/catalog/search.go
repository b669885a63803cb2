package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/spf13/cast"

	"github.com/mediavault/identifier/internal/mediainfo"
)

// rawSearchResultItem mirrors the catalog's JSON shape before coercion.
// id and genre_ids are decoded as interface{} because the catalog
// occasionally serializes numeric fields as strings depending on the
// proxy/CDN in front of it; cast.ToInt, applied to the id and to each
// genre_ids element, normalizes either shape instead of failing
// json.Unmarshal outright.
type rawSearchResultItem struct {
	ID            interface{}   `json:"id"`
	Title         string        `json:"title"`
	Name          string        `json:"name"`
	OriginalTitle string        `json:"original_title"`
	OriginalName  string        `json:"original_name"`
	Overview      string        `json:"overview"`
	ReleaseDate   string        `json:"release_date"`
	FirstAirDate  string        `json:"first_air_date"`
	GenreIDs      []interface{} `json:"genre_ids"`
	Popularity    float64       `json:"popularity"`
}

type searchResultItem struct {
	ID            int
	Title         string
	Name          string
	OriginalTitle string
	OriginalName  string
	Overview      string
	ReleaseDate   string
	FirstAirDate  string
	GenreIDs      []int
	Popularity    float64
}

func (raw rawSearchResultItem) coerce() searchResultItem {
	genreIDs := make([]int, 0, len(raw.GenreIDs))
	for _, g := range raw.GenreIDs {
		genreIDs = append(genreIDs, cast.ToInt(g))
	}
	return searchResultItem{
		ID:            cast.ToInt(raw.ID),
		Title:         raw.Title,
		Name:          raw.Name,
		OriginalTitle: raw.OriginalTitle,
		OriginalName:  raw.OriginalName,
		Overview:      raw.Overview,
		ReleaseDate:   raw.ReleaseDate,
		FirstAirDate:  raw.FirstAirDate,
		GenreIDs:      genreIDs,
		Popularity:    raw.Popularity,
	}
}

type searchResponse struct {
	Results []rawSearchResultItem `json:"results"`
}

// SearchMovie implements C5's search_movie: returns the best-matching
// movie for title (optionally filtered by year), or nil if nothing is
// found or the call fails.
func (c *Client) SearchMovie(title string, year *int) *mediainfo.MediaInfo {
	item, ok := c.search("/search/movie", title, year)
	if !ok {
		return nil
	}

	info := &mediainfo.MediaInfo{UsedTMDB: true}
	id := item.ID
	info.TMDBID = &id
	if t := firstNonEmpty(item.Title, item.OriginalTitle); t != "" {
		info.Title = &t
	}
	if t := item.OriginalTitle; t != "" {
		info.OriginalTitle = &t
	}
	info.Overview = nonEmptyPtr(item.Overview)
	info.Year = yearFromDates(item.ReleaseDate, "", "")
	info.Genres = mediainfo.GenresFromIDs(item.GenreIDs)
	mt := mediainfo.Movie
	info.MediaType = &mt
	return info
}

// SearchSeries implements C5's search_series: on success, sets
// tmdb_series_id to the series's catalog id (tmdb_id is left unset so a
// later episode-details call can claim it — see SPEC_FULL.md §3's
// resolution of the open tmdb_id disambiguation question).
func (c *Client) SearchSeries(title string, year *int) *mediainfo.MediaInfo {
	item, ok := c.search("/search/tv", title, year)
	if !ok {
		return nil
	}

	info := &mediainfo.MediaInfo{UsedTMDB: true}
	id := item.ID
	info.TMDBSeriesID = &id
	if t := firstNonEmpty(item.Name, item.OriginalName); t != "" {
		info.Title = &t
	}
	if t := item.OriginalName; t != "" {
		info.OriginalTitle = &t
	}
	info.Overview = nonEmptyPtr(item.Overview)
	info.Year = yearFromDates("", item.FirstAirDate, "")
	info.Genres = mediainfo.GenresFromIDs(item.GenreIDs)
	mt := mediainfo.TV
	info.MediaType = &mt
	return info
}

func (c *Client) search(path, title string, year *int) (searchResultItem, bool) {
	params := baseParams()
	params.Set("query", title)
	params.Set("include_adult", "true")
	params.Set("page", "1")

	paramName := "year"
	if path == "/search/tv" {
		paramName = "first_air_date_year"
	}

	if year != nil {
		withYear := cloneValues(params)
		withYear.Set(paramName, strconv.Itoa(*year))
		if item, ok := c.runSearch(path, withYear, title); ok {
			return item, true
		}
	}
	return c.runSearch(path, params, title)
}

// runSearch picks the result whose title/name is most similar to the
// query among a multi-result page, rather than unconditionally taking
// TMDB's first hit: TMDB's own relevance ranking sometimes surfaces a
// same-franchise title ahead of an exact match. The winning candidate
// must still clear minSimilarity (the settings-table "automatch_min_pct"
// overlay) to be accepted; at the default of 0 every non-empty result
// page accepts its best candidate.
func (c *Client) runSearch(path string, params url.Values, queryTitle string) (searchResultItem, bool) {
	body, ok := c.get(path, params)
	if !ok {
		return searchResultItem{}, false
	}
	var parsed searchResponse
	if !jsonUnmarshal(body, &parsed) || len(parsed.Results) == 0 {
		return searchResultItem{}, false
	}
	results := make([]searchResultItem, len(parsed.Results))
	for i, raw := range parsed.Results {
		results[i] = raw.coerce()
	}

	best := results[0]
	bestScore := titleSimilarity(queryTitle, candidateTitle(best))
	for _, item := range results[1:] {
		if score := titleSimilarity(queryTitle, candidateTitle(item)); score > bestScore {
			best, bestScore = item, score
		}
	}

	if bestScore < c.minSimilarity {
		c.logf("catalog: best candidate %q scored %.2f, below automatch_min_pct %.2f", candidateTitle(best), bestScore, c.minSimilarity)
		return searchResultItem{}, false
	}
	return best, true
}

func candidateTitle(item searchResultItem) string {
	return firstNonEmpty(item.Title, item.Name, item.OriginalTitle, item.OriginalName)
}

// titleSimilarity scores two titles in [0,1] via Jaro-Winkler distance
// over case-folded strings, tolerant of minor punctuation/casing drift
// between a parsed filename title and the catalog's canonical one.
func titleSimilarity(a, b string) float64 {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return float64(score)
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
