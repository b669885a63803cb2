package mediainfo

// fieldMerger applies one field's merge rule, writing into dst.
type fieldMerger func(dst, existing, incoming *MediaInfo)

// mergeTable holds one merge function per field, keyed by field name. Most
// fields are right-biased overwrite-if-present; used_guessit/used_tmdb/
// used_openai are OR-monotonic and never regress from true to false.
var mergeTable = map[string]fieldMerger{
	"id": func(dst, e, n *MediaInfo) {
		dst.ID = overwriteString(e.ID, n.ID)
	},
	"searchable_reference": func(dst, e, n *MediaInfo) {
		dst.SearchableReference = overwriteString(e.SearchableReference, n.SearchableReference)
	},
	"title": func(dst, e, n *MediaInfo) {
		dst.Title = overwriteString(e.Title, n.Title)
	},
	"original_title": func(dst, e, n *MediaInfo) {
		dst.OriginalTitle = overwriteString(e.OriginalTitle, n.OriginalTitle)
	},
	"media_type": func(dst, e, n *MediaInfo) {
		dst.MediaType = e.MediaType
		if n.MediaType != nil {
			dst.MediaType = n.MediaType
		}
	},
	"year": func(dst, e, n *MediaInfo) {
		dst.Year = overwriteInt(e.Year, n.Year)
	},
	"season": func(dst, e, n *MediaInfo) {
		dst.Season = overwriteInt(e.Season, n.Season)
	},
	"episode": func(dst, e, n *MediaInfo) {
		dst.Episode = overwriteInt(e.Episode, n.Episode)
	},
	"episode_title": func(dst, e, n *MediaInfo) {
		dst.EpisodeTitle = overwriteString(e.EpisodeTitle, n.EpisodeTitle)
	},
	"overview": func(dst, e, n *MediaInfo) {
		dst.Overview = overwriteString(e.Overview, n.Overview)
	},
	"tagline": func(dst, e, n *MediaInfo) {
		dst.Tagline = overwriteString(e.Tagline, n.Tagline)
	},
	"original_language": func(dst, e, n *MediaInfo) {
		dst.OriginalLanguage = overwriteString(e.OriginalLanguage, n.OriginalLanguage)
	},
	"genres": func(dst, e, n *MediaInfo) {
		dst.Genres = e.Genres
		if n.Genres != nil {
			dst.Genres = n.Genres
		}
	},
	"tmdb_id": func(dst, e, n *MediaInfo) {
		dst.TMDBID = overwriteInt(e.TMDBID, n.TMDBID)
	},
	"tmdb_series_id": func(dst, e, n *MediaInfo) {
		dst.TMDBSeriesID = overwriteInt(e.TMDBSeriesID, n.TMDBSeriesID)
	},
	"imdb_id": func(dst, e, n *MediaInfo) {
		dst.IMDBID = overwriteString(e.IMDBID, n.IMDBID)
	},
	"tvdb_id": func(dst, e, n *MediaInfo) {
		dst.TVDBID = overwriteInt(e.TVDBID, n.TVDBID)
	},
	"tvrage_id": func(dst, e, n *MediaInfo) {
		dst.TVRageID = overwriteInt(e.TVRageID, n.TVRageID)
	},
	"wikidata_id": func(dst, e, n *MediaInfo) {
		dst.WikidataID = overwriteString(e.WikidataID, n.WikidataID)
	},
	"facebook_id": func(dst, e, n *MediaInfo) {
		dst.FacebookID = overwriteString(e.FacebookID, n.FacebookID)
	},
	"instagram_id": func(dst, e, n *MediaInfo) {
		dst.InstagramID = overwriteString(e.InstagramID, n.InstagramID)
	},
	"twitter_id": func(dst, e, n *MediaInfo) {
		dst.TwitterID = overwriteString(e.TwitterID, n.TwitterID)
	},
	"used_guessit": func(dst, e, n *MediaInfo) {
		dst.UsedGuessit = e.UsedGuessit || n.UsedGuessit
	},
	"used_tmdb": func(dst, e, n *MediaInfo) {
		dst.UsedTMDB = e.UsedTMDB || n.UsedTMDB
	},
	"used_openai": func(dst, e, n *MediaInfo) {
		dst.UsedOpenAI = e.UsedOpenAI || n.UsedOpenAI
	},
	"created_at": func(dst, e, n *MediaInfo) {
		dst.CreatedAt = e.CreatedAt
		if n.CreatedAt != nil {
			dst.CreatedAt = n.CreatedAt
		}
	},
	"modified_at": func(dst, e, n *MediaInfo) {
		dst.ModifiedAt = e.ModifiedAt
		if n.ModifiedAt != nil {
			dst.ModifiedAt = n.ModifiedAt
		}
	},
}

func overwriteString(existing, incoming *string) *string {
	if incoming != nil {
		return incoming
	}
	return existing
}

func overwriteInt(existing, incoming *int) *int {
	if incoming != nil {
		return incoming
	}
	return existing
}

// Merge combines existing and incoming per spec: nil/nil -> nil, one nil ->
// copy of the other, otherwise field-by-field with incoming taking
// precedence except for the provenance flags, which are append-only true.
func Merge(existing, incoming *MediaInfo) *MediaInfo {
	if existing == nil && incoming == nil {
		return nil
	}
	if existing == nil {
		return incoming.Clone()
	}
	if incoming == nil {
		return existing.Clone()
	}

	merged := &MediaInfo{}
	for _, fn := range mergeTable {
		fn(merged, existing, incoming)
	}
	return merged
}
