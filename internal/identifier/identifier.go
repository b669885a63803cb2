package identifier

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mediavault/identifier/internal/catalog"
	"github.com/mediavault/identifier/internal/llmclassifier"
	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/mediatype"
	"github.com/mediavault/identifier/internal/pipeline"
	"github.com/mediavault/identifier/internal/pipeline/stages"
)

// Cache is the subset of cacherepo.Repository the identifier needs,
// beyond what stages.Cache already covers: the persistence fast-path
// lookups and the insert itself.
type Cache interface {
	stages.Cache
	GetCachedByTMDBID(tmdbID int) (*mediainfo.MediaInfo, error)
	GetCachedTVEpisode(seriesID, season, episode int) (*mediainfo.MediaInfo, error)
	CacheData(record *mediainfo.MediaInfo) (*mediainfo.MediaInfo, error)
}

// Identifier is the C10 façade: it wires a Cache, a catalog.Client, and an
// llmclassifier.Client into the C8/C9 pipeline and persists the result.
// Grounded on media_identifier.py's MediaIdentifier class.
type Identifier struct {
	Cache      Cache
	Catalog    *catalog.Client
	Classifier *llmclassifier.Client
	Logf       func(format string, args ...any)
}

// IdentifyByFilename mirrors get_media_info_by_filename.
func (idf *Identifier) IdentifyByFilename(filePath string) (*mediainfo.MediaInfo, error) {
	req, err := FromFilename(filePath)
	if err != nil {
		return nil, err
	}
	return idf.Identify(req)
}

// IdentifyByMetadata mirrors get_media_info.
func (idf *Identifier) IdentifyByMetadata(mediaType, title string, year int, season, episode *int) (*mediainfo.MediaInfo, error) {
	req, err := FromMetadata(mediaType, title, year, season, episode)
	if err != nil {
		return nil, err
	}
	return idf.Identify(req)
}

// Identify runs the full pipeline for req and persists the outcome,
// grounded on MediaIdentifier.identify. A fatal failure in filename mode
// is retried once against the bare basename of the path, mirroring the
// façade's filename retry policy; a second fatal surfaces to the caller.
func (idf *Identifier) Identify(req Request) (*mediainfo.MediaInfo, error) {
	result, err := idf.runPipeline(req)
	if err != nil {
		var execErr *pipeline.ExecutionError
		if req.Mode == pipeline.FilenameMode && errors.As(err, &execErr) {
			base := filepath.Base(req.FilePath)
			if base != req.FilePath {
				retryReq := req
				retryReq.FilePath = base
				result, err = idf.runPipeline(retryReq)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	logf := idf.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if result.Cached != nil {
		logf("identifier: returning cached result from pipeline")
		return result.Cached, nil
	}

	media := result.Media
	if media == nil {
		logf("identifier: pipeline produced no media data")
		return nil, nil
	}

	if !mediatype.IsValid(string(media.MediaTypeValue())) {
		logf("identifier: media type %q is not valid; skipping persistence", media.MediaTypeValue())
		return nil, nil
	}

	return idf.persistMedia(media)
}

// runPipeline builds a fresh pipeline.Context and runs the C8 stage
// sequence once for req, with no retry logic of its own.
func (idf *Identifier) runPipeline(req Request) (pipeline.Result, error) {
	logf := idf.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	ctx := pipeline.NewContext(req.Mode, req.FilePath, req.seedMediaInfo(), logf)
	seq := stages.Build(req.Mode, stages.Deps{Cache: idf.Cache, Catalog: idf.Catalog, Classifier: idf.Classifier})
	controller := pipeline.NewController(seq)

	result, err := controller.Run(ctx)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("identifier: %w", err)
	}
	return result, nil
}

// persistMedia mirrors _persist_media: movies check get_cached_by_tmdb_id
// before inserting; TV checks get_cached_by_tmdb_id then
// get_cached_tv_episode before inserting; either path returns the
// in-memory record uncached if the relevant TMDb id is still missing.
func (idf *Identifier) persistMedia(media *mediainfo.MediaInfo) (*mediainfo.MediaInfo, error) {
	if idf.Cache == nil {
		return media, nil
	}
	logf := idf.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	switch media.MediaTypeValue() {
	case mediainfo.Movie:
		if media.TMDBID == nil {
			logf("identifier: movie media lacks a tmdb_id; returning without caching")
			return media, nil
		}
		existing, err := idf.Cache.GetCachedByTMDBID(*media.TMDBID)
		if err != nil {
			return nil, persistenceError("checking existing movie cache entry", err)
		}
		if existing != nil {
			return existing, nil
		}
		result, err := idf.Cache.CacheData(media)
		if err != nil {
			return nil, persistenceError("inserting movie cache entry", err)
		}
		return result, nil

	case mediainfo.TV:
		if media.TMDBID != nil {
			existing, err := idf.Cache.GetCachedByTMDBID(*media.TMDBID)
			if err != nil {
				return nil, persistenceError("checking existing episode cache entry", err)
			}
			if existing != nil {
				return existing, nil
			}
		}
		if media.TMDBSeriesID != nil && media.Season != nil && media.Episode != nil {
			existing, err := idf.Cache.GetCachedTVEpisode(*media.TMDBSeriesID, *media.Season, *media.Episode)
			if err != nil {
				return nil, persistenceError("checking existing episode cache entry by series/season/episode", err)
			}
			if existing != nil {
				return existing, nil
			}
		}
		if media.TMDBID == nil {
			logf("identifier: episode media lacks a tmdb episode id; returning without caching")
			return media, nil
		}
		result, err := idf.Cache.CacheData(media)
		if err != nil {
			return nil, persistenceError("inserting episode cache entry", err)
		}
		return result, nil

	default:
		logf("identifier: unknown media type; returning without caching")
		return media, nil
	}
}
