package stages

import (
	"github.com/mediavault/identifier/internal/catalog"
	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/pipeline"
)

// TMDBIdentifyMovie runs C5's search_movie + get_movie_details. A failed
// lookup is fatal, matching tmdb_identify_movie_by_id's
// "retry is allowed" semantics surfaced through a FATAL step: the
// pipeline as a whole can be retried by the caller, but this run cannot
// proceed without a catalog match.
type TMDBIdentifyMovie struct {
	Catalog *catalog.Client
}

func (s *TMDBIdentifyMovie) Name() string { return "tmdb_identify_movie" }

func (s *TMDBIdentifyMovie) Handles(ctx *pipeline.Context) bool {
	if !isMovie(ctx.MediaType()) || ctx.Media == nil {
		return false
	}
	return ctx.Media.TMDBID == nil
}

func (s *TMDBIdentifyMovie) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	if s.Catalog == nil {
		return pipeline.Fatal("no catalog client configured", nil)
	}

	found := s.Catalog.SearchMovie(valueOrEmpty(ctx.Media.Title), ctx.Media.Year)
	if found == nil || found.TMDBID == nil {
		return pipeline.Fatal("failed to identify movie via catalog search", nil)
	}

	details := s.Catalog.GetMovieDetails(*found.TMDBID)
	if details == nil {
		return pipeline.Fatal("failed to fetch movie details from catalog", nil)
	}

	ctx.UpdateMedia(found)
	ctx.UpdateMedia(details)
	ctx.Logf("[%s] catalog movie data merged", s.Name())
	return pipeline.Success("")
}

// TMDBIdentifySeries runs C5's search_series + get_series_details.
type TMDBIdentifySeries struct {
	Catalog *catalog.Client
}

func (s *TMDBIdentifySeries) Name() string { return "tmdb_identify_series" }

func (s *TMDBIdentifySeries) Handles(ctx *pipeline.Context) bool {
	if !isTV(ctx.MediaType()) || ctx.Media == nil {
		return false
	}
	return ctx.Media.TMDBSeriesID == nil
}

func (s *TMDBIdentifySeries) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	if s.Catalog == nil {
		return pipeline.Fatal("no catalog client configured", nil)
	}

	found := s.Catalog.SearchSeries(valueOrEmpty(ctx.Media.Title), ctx.Media.Year)
	if found == nil || found.TMDBSeriesID == nil {
		return pipeline.Fatal("failed to identify series via catalog search", nil)
	}

	details := s.Catalog.GetSeriesDetails(*found.TMDBSeriesID)
	if details == nil {
		return pipeline.Fatal("failed to fetch series details from catalog", nil)
	}

	ctx.UpdateMedia(found)
	ctx.UpdateMedia(details)
	ctx.Logf("[%s] catalog series data merged", s.Name())
	return pipeline.Success("")
}

// TMDBMovieExternalIDs runs C5's get_external_ids for a movie. Unlike the
// identify stages, a miss here is a Skip, not Fatal: external IDs are
// enrichment, not identification.
type TMDBMovieExternalIDs struct {
	Catalog *catalog.Client
}

func (s *TMDBMovieExternalIDs) Name() string { return "tmdb_movie_external_ids" }

func (s *TMDBMovieExternalIDs) Handles(ctx *pipeline.Context) bool {
	if !isMovie(ctx.MediaType()) || ctx.Media == nil {
		return false
	}
	return ctx.Media.TMDBID != nil
}

func (s *TMDBMovieExternalIDs) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	if s.Catalog == nil {
		return pipeline.Skip("no catalog client configured")
	}
	ids := s.Catalog.GetMovieExternalIDs(*ctx.Media.TMDBID)
	if ids == nil {
		return pipeline.Skip("movie external ids not available")
	}
	ctx.UpdateMedia(externalIDsToMediaInfo(ids))
	ctx.Logf("[%s] external ids merged for movie", s.Name())
	return pipeline.Success("")
}

// TMDBSeriesExternalIDs runs C5's get_external_ids for a series.
type TMDBSeriesExternalIDs struct {
	Catalog *catalog.Client
}

func (s *TMDBSeriesExternalIDs) Name() string { return "tmdb_series_external_ids" }

func (s *TMDBSeriesExternalIDs) Handles(ctx *pipeline.Context) bool {
	if !isTV(ctx.MediaType()) || ctx.Media == nil {
		return false
	}
	return ctx.Media.TMDBSeriesID != nil
}

func (s *TMDBSeriesExternalIDs) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	if s.Catalog == nil {
		return pipeline.Skip("no catalog client configured")
	}
	ids := s.Catalog.GetSeriesExternalIDs(*ctx.Media.TMDBSeriesID)
	if ids == nil {
		return pipeline.Skip("series external ids not available")
	}
	ctx.UpdateMedia(externalIDsToMediaInfo(ids))
	ctx.Logf("[%s] external ids merged for series", s.Name())
	return pipeline.Success("")
}

// TMDBEpisodeDetails runs C5's get_episode_details once a series,
// season, and episode are all known.
type TMDBEpisodeDetails struct {
	Catalog *catalog.Client
}

func (s *TMDBEpisodeDetails) Name() string { return "tmdb_episode_details" }

func (s *TMDBEpisodeDetails) Handles(ctx *pipeline.Context) bool {
	if !isTV(ctx.MediaType()) || ctx.Media == nil {
		return false
	}
	if ctx.Media.TMDBID != nil {
		return false
	}
	return ctx.Media.TMDBSeriesID != nil && ctx.Media.Season != nil && ctx.Media.Episode != nil
}

func (s *TMDBEpisodeDetails) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	if s.Catalog == nil {
		return pipeline.Skip("no catalog client configured")
	}
	details := s.Catalog.GetEpisodeDetails(*ctx.Media.TMDBSeriesID, *ctx.Media.Season, *ctx.Media.Episode)
	if details == nil {
		return pipeline.Skip("episode details not available")
	}
	ctx.UpdateMedia(details)
	ctx.Logf("[%s] episode details merged", s.Name())
	return pipeline.Success("")
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// externalIDsToMediaInfo never sets TMDBID or TMDBSeriesID, matching
// spec §4.5's "never overwrites tmdb_id" discipline for this operation.
func externalIDsToMediaInfo(ids *catalog.ExternalIDs) *mediainfo.MediaInfo {
	return &mediainfo.MediaInfo{
		IMDBID:      ids.IMDBID,
		TVDBID:      ids.TVDBID,
		TVRageID:    ids.TVRageID,
		WikidataID:  ids.WikidataID,
		FacebookID:  ids.FacebookID,
		InstagramID: ids.InstagramID,
		TwitterID:   ids.TwitterID,
		UsedTMDB:    true,
	}
}
