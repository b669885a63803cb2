package catalog

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/mediavault/identifier/internal/mediainfo"
)

// namedGenre.ID is decoded as interface{} for the same reason
// rawSearchResultItem.ID is in search.go: the catalog doesn't always
// serialize numeric ids consistently, and cast.ToInt tolerates either
// shape rather than rejecting the payload.
type namedGenre struct {
	ID   interface{} `json:"id"`
	Name string      `json:"name"`
}

type movieDetailsResponse struct {
	ID            interface{} `json:"id"`
	Title         string      `json:"title"`
	OriginalTitle string      `json:"original_title"`
	Overview      string      `json:"overview"`
	Tagline       string      `json:"tagline"`
	ReleaseDate   string      `json:"release_date"`
	OriginalLang  string      `json:"original_language"`
	Genres        []namedGenre `json:"genres"`
}

type seriesDetailsResponse struct {
	ID            interface{} `json:"id"`
	Name          string      `json:"name"`
	OriginalName  string      `json:"original_name"`
	Overview      string      `json:"overview"`
	Tagline       string      `json:"tagline"`
	FirstAirDate  string      `json:"first_air_date"`
	OriginalLang  string      `json:"original_language"`
	Genres        []namedGenre `json:"genres"`
}

type episodeDetailsResponse struct {
	ID       interface{} `json:"id"`
	Name     string      `json:"name"`
	Overview string      `json:"overview"`
	AirDate  string      `json:"air_date"`
}

func genreNamesFrom(genres []namedGenre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return mediainfo.GenresFromNames(names)
}

// GetMovieDetails implements C5's get_movie_details.
func (c *Client) GetMovieDetails(tmdbID int) *mediainfo.MediaInfo {
	body, ok := c.get(fmt.Sprintf("/movie/%d", tmdbID), baseParams())
	if !ok {
		return nil
	}
	var parsed movieDetailsResponse
	if !jsonUnmarshal(body, &parsed) {
		return nil
	}

	info := &mediainfo.MediaInfo{UsedTMDB: true}
	id := cast.ToInt(parsed.ID)
	info.TMDBID = &id
	info.Title = nonEmptyPtr(parsed.Title)
	info.OriginalTitle = nonEmptyPtr(parsed.OriginalTitle)
	info.Overview = nonEmptyPtr(parsed.Overview)
	info.Tagline = nonEmptyPtr(parsed.Tagline)
	info.OriginalLanguage = nonEmptyPtr(parsed.OriginalLang)
	info.Year = yearFromDates(parsed.ReleaseDate, "", "")
	info.Genres = genreNamesFrom(parsed.Genres)
	mt := mediainfo.Movie
	info.MediaType = &mt
	return info
}

// GetSeriesDetails implements C5's get_series_details: sets
// tmdb_series_id, never tmdb_id.
func (c *Client) GetSeriesDetails(tmdbID int) *mediainfo.MediaInfo {
	body, ok := c.get(fmt.Sprintf("/tv/%d", tmdbID), baseParams())
	if !ok {
		return nil
	}
	var parsed seriesDetailsResponse
	if !jsonUnmarshal(body, &parsed) {
		return nil
	}

	info := &mediainfo.MediaInfo{UsedTMDB: true}
	id := cast.ToInt(parsed.ID)
	info.TMDBSeriesID = &id
	info.Title = nonEmptyPtr(parsed.Name)
	info.OriginalTitle = nonEmptyPtr(parsed.OriginalName)
	info.Overview = nonEmptyPtr(parsed.Overview)
	info.Tagline = nonEmptyPtr(parsed.Tagline)
	info.OriginalLanguage = nonEmptyPtr(parsed.OriginalLang)
	info.Year = yearFromDates("", parsed.FirstAirDate, "")
	info.Genres = genreNamesFrom(parsed.Genres)
	mt := mediainfo.TV
	info.MediaType = &mt
	return info
}

// GetEpisodeDetails implements C5's get_episode_details: sets tmdb_id to
// the episode's own catalog id.
func (c *Client) GetEpisodeDetails(seriesID, season, episode int) *mediainfo.MediaInfo {
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", seriesID, season, episode)
	body, ok := c.get(path, baseParams())
	if !ok {
		return nil
	}
	var parsed episodeDetailsResponse
	if !jsonUnmarshal(body, &parsed) {
		return nil
	}

	info := &mediainfo.MediaInfo{UsedTMDB: true}
	id := cast.ToInt(parsed.ID)
	info.TMDBID = &id
	info.EpisodeTitle = nonEmptyPtr(parsed.Name)
	info.Overview = nonEmptyPtr(parsed.Overview)
	return info
}
