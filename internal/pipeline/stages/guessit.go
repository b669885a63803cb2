package stages

import (
	"github.com/mediavault/identifier/internal/filenameparser"
	"github.com/mediavault/identifier/internal/pipeline"
)

// GuessItIdentification runs C3 against the request's file path.
// Grounded on handlers.py's GuessItIdentificationHandler.
type GuessItIdentification struct{}

func (s *GuessItIdentification) Name() string { return "guessit_identification" }

func (s *GuessItIdentification) Handles(ctx *pipeline.Context) bool {
	if ctx.Mode != pipeline.FilenameMode || ctx.FilePath == "" {
		return false
	}
	return ctx.Media == nil || !ctx.Media.UsedGuessit
}

func (s *GuessItIdentification) Invoke(ctx *pipeline.Context) pipeline.StepResult {
	guess, ok := filenameparser.Parse(ctx.FilePath)
	if !ok {
		ctx.Logf("[%s] parser did not return data", s.Name())
		return pipeline.Skip("filename parser returned no data")
	}

	ctx.UpdateMedia(guess)
	ctx.Logf("[%s] parsed data merged into context", s.Name())
	return pipeline.Success("")
}
