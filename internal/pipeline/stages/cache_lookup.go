package stages

import (
	"fmt"

	"github.com/mediavault/identifier/internal/pipeline"
)

// CacheLookup re-checks the cache every time the pipeline has gathered a
// new piece of evidence, short-circuiting on a hit. Grounded on
// handlers.py's CacheLookupHandler: it runs multiple times under
// different labels ("post-guessit", "post-openai", ...), the only
// handler that appears more than once in the canonical sequence.
type CacheLookup struct {
	label string
	cache Cache
}

func NewCacheLookup(label string, cache Cache) *CacheLookup {
	return &CacheLookup{label: label, cache: cache}
}

func (s *CacheLookup) Name() string { return fmt.Sprintf("cache_lookup[%s]", s.label) }

func (s *CacheLookup) Handles(ctx *pipeline.Context) bool {
	if ctx.Completed || ctx.Media == nil || ctx.Media.Title == nil {
		return false
	}
	return ctx.Media.IsValidMediaType()
}

func (s *CacheLookup) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	if s.cache == nil {
		return pipeline.Skip("no cache repository configured")
	}

	cached, ok, err := s.cache.GetCachedByObj(ctx.Media)
	if err != nil {
		return pipeline.Fatal(fmt.Sprintf("cache lookup during %s failed", s.label), err)
	}
	if ok {
		ctx.Logf("[%s] cache hit; stopping pipeline", s.Name())
		ctx.MarkCachedResult(cached)
		return pipeline.Done(fmt.Sprintf("cache hit during %s", s.label))
	}

	ctx.Logf("[%s] no cached entry found", s.Name())
	return pipeline.Success(fmt.Sprintf("no cache entry during %s", s.label))
}
