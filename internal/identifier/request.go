// Package identifier implements C10: the public entry point that seeds a
// pipeline.Context from a caller-supplied request, runs the C8 stage
// sequence, and persists the result. Grounded on
// original_source/src/media_identifiers/media_identifier.py and
// src/models/media_identification_request.py.
package identifier

import (
	"strings"
	"time"

	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/mediatype"
	"github.com/mediavault/identifier/internal/pipeline"
	"github.com/mediavault/identifier/internal/textnorm"
)

// Request is the caller-facing identification request. Exactly one of the
// two shapes is valid at a time: FromFilename requires FilePath; the
// metadata shape requires MediaType, Title, and Year (plus Season/Episode
// for TV), mirroring MediaIdentificationRequest's two constructors.
type Request struct {
	Mode     pipeline.Mode
	FilePath string

	MediaType string
	Title     string
	Year      *int
	Season    *int
	Episode   *int

	TMDBID       *int
	TMDBSeriesID *int
	IMDBID       *string
}

// FromFilename builds a filename-mode request, grounded on
// MediaIdentificationRequest.from_filename.
func FromFilename(filePath string) (Request, error) {
	trimmed := strings.TrimSpace(filePath)
	if trimmed == "" {
		return Request{}, inputError("file_path must be provided for filename requests")
	}
	return Request{Mode: pipeline.FilenameMode, FilePath: trimmed}, nil
}

// FromMetadata builds a metadata-mode request, grounded on
// MediaIdentificationRequest.from_metadata plus its _validate rules.
func FromMetadata(mediaType string, title string, year int, season, episode *int) (Request, error) {
	req := Request{
		Mode:      pipeline.MetadataMode,
		MediaType: mediaType,
		Title:     title,
		Year:      &year,
		Season:    season,
		Episode:   episode,
	}
	if err := req.validateMetadata(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (r Request) validateMetadata() error {
	canonical, ok := mediatype.Normalize(r.MediaType)
	if !ok {
		return inputError("media_type must be provided for metadata requests")
	}
	r.MediaType = canonical

	if strings.TrimSpace(r.Title) == "" {
		return inputError("title must be provided for metadata requests")
	}
	if r.Year == nil {
		return inputError("year must be provided for metadata requests")
	}
	if !mediainfo.IsPlausibleYear(*r.Year, time.Now()) {
		return inputError("year must fall in a plausible range")
	}
	if canonical == mediatype.TV {
		if r.Season == nil || r.Episode == nil {
			return inputError("season and episode must be provided for TV metadata requests")
		}
	}
	return nil
}

// seedMediaInfo builds the pipeline's starting MediaInfo from a
// metadata-mode request, grounded on seed_media_info. Filename-mode
// requests seed nil: the pipeline's GuessItIdentification stage produces
// the first media data instead.
func (r Request) seedMediaInfo() *mediainfo.MediaInfo {
	if r.Mode != pipeline.MetadataMode {
		return nil
	}

	info := &mediainfo.MediaInfo{}
	if strings.TrimSpace(r.Title) != "" {
		title := strings.TrimSpace(r.Title)
		ref := textnorm.CreateSearchableReference(r.Title)
		info.Title = &title
		info.OriginalTitle = &title
		info.SearchableReference = &ref
	}
	if canonical, ok := mediatype.Normalize(r.MediaType); ok {
		mt := mediainfo.MediaType(canonical)
		info.MediaType = &mt
	}
	info.Year = r.Year
	info.Season = r.Season
	info.Episode = r.Episode
	info.TMDBID = r.TMDBID
	info.TMDBSeriesID = r.TMDBSeriesID
	info.IMDBID = r.IMDBID
	return info
}
