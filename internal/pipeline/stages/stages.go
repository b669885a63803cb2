// Package stages implements C8: the concrete pipeline stages, and the
// mode-dependent stage ordering from
// original_source/src/media_identifiers/pipeline/{handlers,builder}.py.
package stages

import (
	"github.com/mediavault/identifier/internal/catalog"
	"github.com/mediavault/identifier/internal/llmclassifier"
	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/pipeline"
)

// Cache is the subset of cacherepo.Repository the stages need.
type Cache interface {
	GetCachedByObj(obj *mediainfo.MediaInfo) (*mediainfo.MediaInfo, bool, error)
}

// Deps bundles every collaborator the canonical stage sequence needs.
// Any may be nil; stages degrade to skip/fatal per their documented
// contract when a collaborator they need is absent.
type Deps struct {
	Cache      Cache
	Catalog    *catalog.Client
	Classifier *llmclassifier.Client
}

// Build assembles the canonical stage sequence for mode, matching
// build_pipeline's FILENAME-vs-METADATA branching plus shared tail.
func Build(mode pipeline.Mode, deps Deps) []pipeline.Stage {
	var seq []pipeline.Stage

	if mode == pipeline.FilenameMode {
		seq = append(seq,
			&GuessItIdentification{},
			NewCacheLookup("post-guessit", deps.Cache),
			&OpenAIBasicIdentification{Classifier: deps.Classifier},
			NewCacheLookup("post-openai", deps.Cache),
		)
	} else {
		seq = append(seq, NewCacheLookup("metadata-seed", deps.Cache))
	}

	seq = append(seq,
		&TMDBIdentifyMovie{Catalog: deps.Catalog},
		&TMDBIdentifySeries{Catalog: deps.Catalog},
		NewCacheLookup("post-tmdb-identify", deps.Cache),
		&OpenAISeriesSeasonEpisode{Classifier: deps.Classifier},
		&TMDBMovieExternalIDs{Catalog: deps.Catalog},
		&TMDBSeriesExternalIDs{Catalog: deps.Catalog},
		&TMDBEpisodeDetails{Catalog: deps.Catalog},
		NewCacheLookup("post-tmdb-enrichment", deps.Cache),
	)

	return seq
}

func isMovie(mt mediainfo.MediaType) bool { return mt == mediainfo.Movie }
func isTV(mt mediainfo.MediaType) bool    { return mt == mediainfo.TV }
