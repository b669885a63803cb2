package cacherepo

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/textnorm"
)

// GetCached implements get_cached(term, media_type?, prop_name): a point
// lookup on a named column, optionally further constrained by media_type.
func (r *Repository) GetCached(term, mediaType, propName string) (*mediainfo.MediaInfo, error) {
	if propName == "" {
		propName = "searchable_reference"
	}

	var query string
	var args []any
	if mediaType == "" {
		query = selectQuery(fmt.Sprintf("%s = $1", propName))
		args = []any{term}
	} else {
		query = selectQuery(fmt.Sprintf("%s = $1 AND media_type = $2", propName))
		args = []any{term, mediaType}
	}

	info, err := scanCachedRow(r.db.QueryRow(query, args...))
	if err != nil {
		return nil, notFoundToNil(err)
	}
	return info, nil
}

// GetCachedByTMDBID implements get_cached_by_tmdb_id(id), the fast path
// used at persistence time to avoid duplicate inserts.
func (r *Repository) GetCachedByTMDBID(tmdbID int) (*mediainfo.MediaInfo, error) {
	info, err := scanCachedRow(r.db.QueryRow(selectQuery("tmdb_id = $1"), tmdbID))
	if err != nil {
		return nil, notFoundToNil(err)
	}
	return info, nil
}

// GetCachedTVEpisode implements get_cached_tv_episode(series_id, season,
// episode), the other persistence-time fast path.
func (r *Repository) GetCachedTVEpisode(seriesID, season, episode int) (*mediainfo.MediaInfo, error) {
	query := selectQuery("tmdb_series_id = $1 AND season = $2 AND episode = $3")
	info, err := scanCachedRow(r.db.QueryRow(query, seriesID, season, episode))
	if err != nil {
		return nil, notFoundToNil(err)
	}
	return info, nil
}

// GetCachedByObj implements get_cached_by_obj(obj), the compound,
// mid-pipeline lookup. Requires title and media_type; for TV it
// additionally requires season and episode. When year is plausible it is
// an additional equality constraint.
func (r *Repository) GetCachedByObj(obj *mediainfo.MediaInfo) (*mediainfo.MediaInfo, bool, error) {
	if obj == nil || obj.Title == nil || !obj.HasMediaType() {
		return nil, false, nil
	}
	mediaType := obj.MediaTypeValue()
	if mediaType == mediainfo.TV && (obj.Season == nil || obj.Episode == nil) {
		return nil, false, nil
	}

	key := memoKey(obj)
	if cached, ok := r.memo.get(key); ok {
		return cached.info, cached.found, nil
	}

	r1 := textnorm.CreateSearchableReference(*obj.Title)
	r2 := ""
	if obj.SearchableReference != nil {
		r2 = *obj.SearchableReference
	}

	conditions := []string{
		"(title ILIKE $1 OR searchable_reference ILIKE $2 OR searchable_reference ILIKE $3)",
		"media_type ILIKE $4",
	}
	args := []any{*obj.Title, r1, r2, string(mediaType)}

	if mediaType == mediainfo.TV {
		conditions = append(conditions, fmt.Sprintf("season = $%d AND episode = $%d", len(args)+1, len(args)+2))
		args = append(args, *obj.Season, *obj.Episode)
	}
	if obj.Year != nil && mediainfo.IsPlausibleYear(*obj.Year, nowFunc()) {
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, *obj.Year)
	}

	query := selectQuery(strings.Join(conditions, " AND ")) + " LIMIT 1"
	info, err := scanCachedRow(r.db.QueryRow(query, args...))
	if err != nil {
		if isNoRows(err) {
			r.memo.set(key, memoEntry{found: false})
			return nil, false, nil
		}
		return nil, false, err
	}
	r.memo.set(key, memoEntry{info: info, found: true})
	return info, true, nil
}

// CacheData implements cache_data(record): an insert with required-column
// enforcement, returning the record with its assigned surrogate ID.
func (r *Repository) CacheData(record *mediainfo.MediaInfo) (*mediainfo.MediaInfo, error) {
	if missing := missingRequiredColumns(record); len(missing) > 0 {
		return nil, fmt.Errorf("cacherepo: missing required fields: %s", strings.Join(missing, ", "))
	}

	cols := []string{
		"searchable_reference", "tmdb_id", "tmdb_series_id", "imdb_id",
		"tvdb_id", "tvrage_id", "wikidata_id", "facebook_id", "instagram_id",
		"twitter_id", "genres", "title", "original_title", "overview",
		"episode_title", "season", "episode", "original_language",
		"media_type", "year", "tagline", "used_guessit", "used_tmdb",
		"used_openai",
	}
	args := []any{
		nullableString(record.SearchableReference), nullableInt(record.TMDBID), nullableInt(record.TMDBSeriesID),
		nullableString(record.IMDBID), nullableInt(record.TVDBID), nullableInt(record.TVRageID),
		nullableString(record.WikidataID), nullableString(record.FacebookID), nullableString(record.InstagramID),
		nullableString(record.TwitterID), pq.Array(record.Genres), nullableString(record.Title),
		nullableString(record.OriginalTitle), nullableString(record.Overview), nullableString(record.EpisodeTitle),
		nullableInt(record.Season), nullableInt(record.Episode), nullableString(record.OriginalLanguage),
		string(record.MediaTypeValue()), *record.Year, nullableString(record.Tagline),
		record.UsedGuessit, record.UsedTMDB, record.UsedOpenAI,
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO cached_media (%s) VALUES (%s) RETURNING id",
		strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	var id string
	if err := r.db.QueryRow(query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("cacherepo: insert: %w", err)
	}

	r.memo.invalidate()

	inserted := record.Clone()
	inserted.ID = &id
	return inserted, nil
}

// UpdateCache implements update_cache(record): an update by id that
// always refreshes modified_at.
func (r *Repository) UpdateCache(record *mediainfo.MediaInfo) error {
	if record.ID == nil {
		return fmt.Errorf("cacherepo: record must have an id to update")
	}

	cols := []string{
		"searchable_reference", "tmdb_id", "tmdb_series_id", "imdb_id",
		"tvdb_id", "tvrage_id", "wikidata_id", "facebook_id", "instagram_id",
		"twitter_id", "genres", "title", "original_title", "overview",
		"episode_title", "season", "episode", "original_language",
		"media_type", "year", "tagline", "used_guessit", "used_tmdb",
		"used_openai",
	}
	args := []any{
		nullableString(record.SearchableReference), nullableInt(record.TMDBID), nullableInt(record.TMDBSeriesID),
		nullableString(record.IMDBID), nullableInt(record.TVDBID), nullableInt(record.TVRageID),
		nullableString(record.WikidataID), nullableString(record.FacebookID), nullableString(record.InstagramID),
		nullableString(record.TwitterID), pq.Array(record.Genres), nullableString(record.Title),
		nullableString(record.OriginalTitle), nullableString(record.Overview), nullableString(record.EpisodeTitle),
		nullableInt(record.Season), nullableInt(record.Episode), nullableString(record.OriginalLanguage),
		string(record.MediaTypeValue()), nullableInt(record.Year), nullableString(record.Tagline),
		record.UsedGuessit, record.UsedTMDB, record.UsedOpenAI,
	}

	setClauses := make([]string, len(cols))
	for i, c := range cols {
		setClauses[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	query := fmt.Sprintf(
		"UPDATE cached_media SET %s, modified_at = CURRENT_TIMESTAMP WHERE id = $%d",
		strings.Join(setClauses, ", "), len(cols)+1,
	)
	args = append(args, *record.ID)

	_, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("cacherepo: update: %w", err)
	}
	r.memo.invalidate()
	return nil
}
