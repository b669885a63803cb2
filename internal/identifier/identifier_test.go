package identifier

import (
	"errors"
	"testing"

	"github.com/mediavault/identifier/internal/mediainfo"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

type fakeCache struct {
	byObjHit      *mediainfo.MediaInfo
	byTMDBIDHit   *mediainfo.MediaInfo
	byEpisodeHit  *mediainfo.MediaInfo
	cacheDataArg  *mediainfo.MediaInfo
	cacheDataResp *mediainfo.MediaInfo
	cacheDataErr  error
	byTMDBIDCalls int
	byEpisodeCalls int
}

func (f *fakeCache) GetCachedByObj(obj *mediainfo.MediaInfo) (*mediainfo.MediaInfo, bool, error) {
	if f.byObjHit != nil {
		return f.byObjHit, true, nil
	}
	return nil, false, nil
}

func (f *fakeCache) GetCachedByTMDBID(tmdbID int) (*mediainfo.MediaInfo, error) {
	f.byTMDBIDCalls++
	return f.byTMDBIDHit, nil
}

func (f *fakeCache) GetCachedTVEpisode(seriesID, season, episode int) (*mediainfo.MediaInfo, error) {
	f.byEpisodeCalls++
	return f.byEpisodeHit, nil
}

func (f *fakeCache) CacheData(record *mediainfo.MediaInfo) (*mediainfo.MediaInfo, error) {
	f.cacheDataArg = record
	if f.cacheDataErr != nil {
		return nil, f.cacheDataErr
	}
	if f.cacheDataResp != nil {
		return f.cacheDataResp, nil
	}
	return record.Clone(), nil
}

func TestPersistMediaMovieReturnsUncachedWithoutTMDBID(t *testing.T) {
	cache := &fakeCache{}
	idf := &Identifier{Cache: cache}
	movie := mediainfo.Movie
	media := &mediainfo.MediaInfo{MediaType: &movie, Title: strp("Alpha")}

	result, err := idf.persistMedia(media)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != media {
		t.Fatalf("expected the in-memory record returned as-is")
	}
	if cache.cacheDataArg != nil {
		t.Fatalf("expected no insert attempted")
	}
}

func TestPersistMediaMovieReturnsExistingWhenAlreadyCached(t *testing.T) {
	existing := &mediainfo.MediaInfo{ID: strp("existing-id")}
	cache := &fakeCache{byTMDBIDHit: existing}
	idf := &Identifier{Cache: cache}
	movie := mediainfo.Movie
	media := &mediainfo.MediaInfo{MediaType: &movie, TMDBID: intp(603)}

	result, err := idf.persistMedia(media)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != existing {
		t.Fatalf("expected existing cached record returned, got %+v", result)
	}
	if cache.cacheDataArg != nil {
		t.Fatalf("expected no insert attempted when already cached")
	}
}

func TestPersistMediaMovieInsertsWhenNotCached(t *testing.T) {
	cache := &fakeCache{}
	idf := &Identifier{Cache: cache}
	movie := mediainfo.Movie
	media := &mediainfo.MediaInfo{MediaType: &movie, TMDBID: intp(603)}

	result, err := idf.persistMedia(media)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.cacheDataArg != media {
		t.Fatalf("expected CacheData invoked with the media record")
	}
	if result == nil {
		t.Fatalf("expected a non-nil persisted result")
	}
}

func TestPersistMediaTVChecksEpisodeIDThenSeriesSeasonEpisode(t *testing.T) {
	existing := &mediainfo.MediaInfo{ID: strp("existing-episode")}
	cache := &fakeCache{byEpisodeHit: existing}
	idf := &Identifier{Cache: cache}
	tv := mediainfo.TV
	media := &mediainfo.MediaInfo{MediaType: &tv, TMDBSeriesID: intp(1), Season: intp(1), Episode: intp(2)}

	result, err := idf.persistMedia(media)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != existing {
		t.Fatalf("expected existing episode returned, got %+v", result)
	}
	if cache.byTMDBIDCalls != 0 {
		t.Fatalf("expected get_cached_by_tmdb_id skipped when tmdb_id is unset")
	}
	if cache.byEpisodeCalls != 1 {
		t.Fatalf("expected get_cached_tv_episode called once, got %d", cache.byEpisodeCalls)
	}
}

func TestPersistMediaTVReturnsUncachedWithoutEpisodeID(t *testing.T) {
	cache := &fakeCache{}
	idf := &Identifier{Cache: cache}
	tv := mediainfo.TV
	media := &mediainfo.MediaInfo{MediaType: &tv, TMDBSeriesID: intp(1), Season: intp(1), Episode: intp(2)}

	result, err := idf.persistMedia(media)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != media {
		t.Fatalf("expected the in-memory record returned as-is without an episode tmdb_id")
	}
	if cache.cacheDataArg != nil {
		t.Fatalf("expected no insert attempted")
	}
}

func TestPersistMediaTVInsertsWhenEpisodeIDKnownAndNotCached(t *testing.T) {
	cache := &fakeCache{}
	idf := &Identifier{Cache: cache}
	tv := mediainfo.TV
	media := &mediainfo.MediaInfo{MediaType: &tv, TMDBID: intp(555), TMDBSeriesID: intp(1), Season: intp(1), Episode: intp(2)}

	result, err := idf.persistMedia(media)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.cacheDataArg != media {
		t.Fatalf("expected CacheData invoked with the media record")
	}
	if result == nil {
		t.Fatalf("expected a non-nil persisted result")
	}
}

func TestPersistMediaPropagatesCacheErrors(t *testing.T) {
	boom := errors.New("db down")
	cache := &fakeCache{}
	cache.cacheDataErr = boom
	idf := &Identifier{Cache: cache}
	movie := mediainfo.Movie
	media := &mediainfo.MediaInfo{MediaType: &movie, TMDBID: intp(603)}

	if _, err := idf.persistMedia(media); err == nil {
		t.Fatalf("expected error propagated from CacheData")
	}
}

func TestPersistMediaWithoutCacheReturnsMediaAsIs(t *testing.T) {
	idf := &Identifier{}
	movie := mediainfo.Movie
	media := &mediainfo.MediaInfo{MediaType: &movie, TMDBID: intp(603)}

	result, err := idf.persistMedia(media)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != media {
		t.Fatalf("expected the in-memory record returned unmodified with no cache configured")
	}
}

func TestIdentifyRetriesFatalWithBasenameInFilenameMode(t *testing.T) {
	cache := &fakeCache{}
	idf := &Identifier{Cache: cache}

	req, err := FromFilename("/movies/Alpha.Movie.2020.1080p.BluRay.mkv")
	if err != nil {
		t.Fatalf("unexpected error building request: %v", err)
	}

	// No catalog configured, so a parsed movie title reaches
	// TMDBIdentifyMovie and fails fatally on both the full path and the
	// basename attempt; the important thing is that a retry happens and
	// the final error is still surfaced rather than silently swallowed.
	if _, err := idf.Identify(req); err == nil {
		t.Fatalf("expected a surfaced error after the retry also fails")
	}
}

func TestIdentifyReturnsNilForUnknownMediaType(t *testing.T) {
	cache := &fakeCache{}
	idf := &Identifier{Cache: cache}

	// Only release tags, no title token: the filename parser yields no
	// candidate, so no stage ever sets a media type.
	req, err := FromFilename("1080p.x264.mkv")
	if err != nil {
		t.Fatalf("unexpected error building request: %v", err)
	}

	result, err := idf.Identify(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result when the pipeline never identifies a media type, got %+v", result)
	}
}
