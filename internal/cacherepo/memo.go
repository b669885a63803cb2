package cacherepo

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/mediavault/identifier/internal/mediainfo"
)

// memo short-circuits GetCachedByObj for repeated lookups within the same
// process: the pipeline re-checks the cache after guessit, after OpenAI,
// and again post-TMDB-identify for the same file, and those repeats
// usually key on the exact same (title, media_type, year, season,
// episode) tuple. A miss is memoized too, so a genuinely-uncached title
// doesn't re-hit Postgres on every stage.
type memo struct {
	mu      sync.RWMutex
	entries map[uint64]memoEntry
}

type memoEntry struct {
	info  *mediainfo.MediaInfo
	found bool
}

func newMemo() *memo {
	return &memo{entries: make(map[uint64]memoEntry)}
}

func memoKey(obj *mediainfo.MediaInfo) uint64 {
	var title, searchableRef, mediaType string
	var year, season, episode int

	if obj.Title != nil {
		title = *obj.Title
	}
	if obj.SearchableReference != nil {
		searchableRef = *obj.SearchableReference
	}
	mediaType = string(obj.MediaTypeValue())
	if obj.Year != nil {
		year = *obj.Year
	}
	if obj.Season != nil {
		season = *obj.Season
	}
	if obj.Episode != nil {
		episode = *obj.Episode
	}

	raw := fmt.Sprintf("%s|%s|%s|%d|%d|%d", title, searchableRef, mediaType, year, season, episode)
	return xxhash.Sum64String(raw)
}

func (m *memo) get(key uint64) (memoEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok
}

func (m *memo) set(key uint64, e memoEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
}

func (m *memo) invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[uint64]memoEntry)
}
