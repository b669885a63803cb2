package stages

import (
	"github.com/mediavault/identifier/internal/llmclassifier"
	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/pipeline"
	"github.com/mediavault/identifier/internal/textnorm"
)

// OpenAIBasicIdentification runs C4's classify_type + extract_*_title
// fallback when the filename parser didn't produce a usable
// (title, media_type) pair. Grounded on handlers.py's
// OpenAIBasicIdentificationHandler / openai_tasks.py's
// openai_run_basic_identification_by_filename.
type OpenAIBasicIdentification struct {
	Classifier *llmclassifier.Client
}

func (s *OpenAIBasicIdentification) Name() string { return "openai_basic_identification" }

func (s *OpenAIBasicIdentification) Handles(ctx *pipeline.Context) bool {
	if ctx.Mode != pipeline.FilenameMode || ctx.FilePath == "" {
		return false
	}
	if ctx.Media == nil {
		return true
	}
	return !(ctx.Media.Title != nil && ctx.HasMediaType())
}

func (s *OpenAIBasicIdentification) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	if s.Classifier == nil {
		return pipeline.Skip("no classifier configured")
	}

	mediaType := s.Classifier.ClassifyType(ctx.FilePath)
	if !mediatypeValid(mediaType) {
		ctx.Logf("[%s] classifier did not resolve a media type", s.Name())
		return pipeline.Skip("classifier did not resolve a media type")
	}

	var title string
	var ok bool
	if mediaType == "movie" {
		title, ok = s.Classifier.ExtractMovieTitle(ctx.FilePath)
	} else {
		title, ok = s.Classifier.ExtractSeriesTitle(ctx.FilePath)
	}
	if !ok {
		ctx.Logf("[%s] classifier could not extract a title", s.Name())
		return pipeline.Skip("classifier could not extract a title")
	}

	mt := mediainfo.MediaType(mediaType)
	ref := textnorm.CreateSearchableReference(title)
	ctx.UpdateMedia(&mediainfo.MediaInfo{
		Title:               &title,
		OriginalTitle:       &title,
		SearchableReference: &ref,
		MediaType:           &mt,
		UsedOpenAI:          true,
	})
	ctx.Logf("[%s] classifier data merged into context", s.Name())
	return pipeline.Success("")
}

// OpenAISeriesSeasonEpisode runs C4's extract_season_episode when a
// series has been identified but lacks season/episode numbers. Grounded
// on OpenAISeriesSeasonEpisodeHandler /
// openai_identify_series_season_and_episode_by_title.
type OpenAISeriesSeasonEpisode struct {
	Classifier *llmclassifier.Client
}

func (s *OpenAISeriesSeasonEpisode) Name() string { return "openai_series_season_episode" }

func (s *OpenAISeriesSeasonEpisode) Handles(ctx *pipeline.Context) bool {
	if !isTV(ctx.MediaType()) || ctx.Media == nil {
		return false
	}
	if ctx.Media.Season != nil && ctx.Media.Episode != nil {
		return false
	}
	return ctx.FilePath != ""
}

func (s *OpenAISeriesSeasonEpisode) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	if s.Classifier == nil {
		return pipeline.Skip("no classifier configured")
	}

	raw, ok := s.Classifier.ExtractSeasonEpisode(ctx.FilePath)
	if !ok {
		return pipeline.Skip("classifier could not identify season/episode")
	}
	season, episode := llmclassifier.ParseSeasonEpisodeString(raw)
	if season == nil || episode == nil {
		ctx.Logf("[%s] classifier output was not in the expected format", s.Name())
		return pipeline.Skip("classifier output was not in the expected format")
	}

	ctx.UpdateMedia(&mediainfo.MediaInfo{Season: season, Episode: episode, UsedOpenAI: true})
	ctx.Logf("[%s] season/episode merged", s.Name())
	return pipeline.Success("")
}

func mediatypeValid(value string) bool {
	return value == "movie" || value == "tv"
}
