// Package mediainfo defines the canonical identification record and its
// merge semantics.
package mediainfo

import "time"

// MediaType is the normalized media kind a MediaInfo record describes.
type MediaType string

const (
	Movie   MediaType = "movie"
	TV      MediaType = "tv"
	Unknown MediaType = "unknown"
)

// MediaInfo is the canonical, accumulating identification record. Every
// field is optional at intermediate pipeline stages; pointer/slice fields
// are nil when unset so the merger can distinguish "not yet known" from
// "known to be zero/empty".
type MediaInfo struct {
	ID                  *string
	SearchableReference *string
	Title               *string
	OriginalTitle       *string
	MediaType           *MediaType
	Year                *int
	Season              *int
	Episode             *int
	EpisodeTitle        *string
	Overview            *string
	Tagline             *string
	OriginalLanguage    *string
	Genres              []string

	TMDBID       *int
	TMDBSeriesID *int
	IMDBID       *string
	TVDBID       *int
	TVRageID     *int
	WikidataID   *string
	FacebookID   *string
	InstagramID  *string
	TwitterID    *string

	// UsedGuessit, UsedTMDB and UsedOpenAI are provenance flags. They are
	// OR-monotonic: once true, Merge never resets them to false.
	UsedGuessit bool
	UsedTMDB    bool
	UsedOpenAI  bool

	CreatedAt  *time.Time
	ModifiedAt *time.Time
}

// MinPlausibleYear is the lower bound of a year field for it to be kept;
// the upper bound is the current year plus one (spec §3: 1888..current
// year+1), applied by IsPlausibleYear.
const MinPlausibleYear = 1888

// IsPlausibleYear reports whether year falls in the accepted range relative
// to now.
func IsPlausibleYear(year int, now time.Time) bool {
	return year >= MinPlausibleYear && year <= now.Year()+1
}

func strPtr(s string) *string { return &s }

// HasMediaType reports whether a media type has been set on the record.
func (m *MediaInfo) HasMediaType() bool {
	return m != nil && m.MediaType != nil
}

// MediaTypeValue returns the media type, or "" if unset.
func (m *MediaInfo) MediaTypeValue() MediaType {
	if m == nil || m.MediaType == nil {
		return ""
	}
	return *m.MediaType
}

// IsValidMediaType reports whether the record's media type is one of the
// two identifiable kinds (movie, tv), as opposed to unset or Unknown.
func (m *MediaInfo) IsValidMediaType() bool {
	mt := m.MediaTypeValue()
	return mt == Movie || mt == TV
}

// Clone returns a shallow copy of m (nil-safe). Pointer fields are shared
// with the original; callers that mutate a cloned record's pointee must
// not also hold the original.
func (m *MediaInfo) Clone() *MediaInfo {
	if m == nil {
		return nil
	}
	clone := *m
	if m.Genres != nil {
		clone.Genres = append([]string(nil), m.Genres...)
	}
	return &clone
}
