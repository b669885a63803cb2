// Package pipeline implements C9: the stage controller that drives a
// sequence of C8 stages over a shared context, and the request Mode that
// stages.Build uses to choose the stage ordering. Grounded on
// original_source/src/media_identifiers/pipeline/base.py.
package pipeline

import "github.com/mediavault/identifier/internal/mediainfo"

// Mode selects which stage sequence Build produces.
type Mode int

const (
	FilenameMode Mode = iota
	MetadataMode
)

// Context is the mutable state threaded through a pipeline run: the
// current best-known media record, whether a cache hit has already
// closed the request out, and any errors recorded along the way.
type Context struct {
	Mode     Mode
	FilePath string
	Media    *mediainfo.MediaInfo

	CachedResult *mediainfo.MediaInfo
	Completed    bool
	Errors       []error

	Logf func(format string, args ...any)
}

// NewContext seeds a pipeline run. seed may be nil for filename-mode
// requests that have not yet produced any media data.
func NewContext(mode Mode, filePath string, seed *mediainfo.MediaInfo, logf func(format string, args ...any)) *Context {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Context{Mode: mode, FilePath: filePath, Media: seed, Logf: logf}
}

// HasMediaType reports whether the context's media currently has any media
// type set; the value is not checked against the {movie, tv} vocabulary.
func (c *Context) HasMediaType() bool {
	return c.Media != nil && c.Media.HasMediaType()
}

// MediaType returns the context's current media type, or "" if unset.
func (c *Context) MediaType() mediainfo.MediaType {
	if c.Media == nil || c.Media.MediaType == nil {
		return ""
	}
	return *c.Media.MediaType
}

// UpdateMedia merges incoming into the context's current media via the
// OR-monotonic merge rule (C6). A nil incoming is a no-op.
func (c *Context) UpdateMedia(incoming *mediainfo.MediaInfo) {
	if incoming == nil {
		return
	}
	c.Media = mediainfo.Merge(c.Media, incoming)
}

// MarkCachedResult records a cache hit and short-circuits the pipeline.
func (c *Context) MarkCachedResult(cached *mediainfo.MediaInfo) {
	c.CachedResult = cached
	c.Completed = true
}

// RecordError appends a non-fatal diagnostic to the run's error log.
func (c *Context) RecordError(err error) {
	if err != nil {
		c.Errors = append(c.Errors, err)
	}
}

// Result is the terminal outcome of a pipeline run.
type Result struct {
	Media     *mediainfo.MediaInfo
	Cached    *mediainfo.MediaInfo
	Completed bool
}

// Finalize snapshots the context into a Result.
func (c *Context) Finalize() Result {
	return Result{Media: c.Media, Cached: c.CachedResult, Completed: c.Completed}
}
