package pipeline

import (
	"testing"

	"github.com/mediavault/identifier/internal/mediainfo"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestHasMediaTypeAndMediaType(t *testing.T) {
	ctx := NewContext(FilenameMode, "x.mkv", nil, nil)
	if ctx.HasMediaType() {
		t.Fatalf("expected no media type on a nil-seeded context")
	}
	if ctx.MediaType() != "" {
		t.Fatalf("expected empty media type, got %q", ctx.MediaType())
	}

	movie := mediainfo.Movie
	ctx.Media = &mediainfo.MediaInfo{MediaType: &movie}
	if !ctx.HasMediaType() {
		t.Fatalf("expected HasMediaType true once MediaType is set")
	}
	if ctx.MediaType() != mediainfo.Movie {
		t.Fatalf("expected movie media type, got %q", ctx.MediaType())
	}
}

func TestUpdateMediaMergesAndIgnoresNil(t *testing.T) {
	ctx := NewContext(FilenameMode, "x.mkv", nil, nil)
	ctx.UpdateMedia(nil)
	if ctx.Media != nil {
		t.Fatalf("expected nil incoming to be a no-op")
	}

	ctx.UpdateMedia(&mediainfo.MediaInfo{Title: strp("Alpha"), UsedGuessit: true})
	if ctx.Media == nil || ctx.Media.Title == nil || *ctx.Media.Title != "Alpha" {
		t.Fatalf("expected title merged in, got %+v", ctx.Media)
	}
	if !ctx.Media.UsedGuessit {
		t.Fatalf("expected UsedGuessit true after merge")
	}

	ctx.UpdateMedia(&mediainfo.MediaInfo{Year: intp(1999)})
	if ctx.Media.Title == nil || *ctx.Media.Title != "Alpha" {
		t.Fatalf("expected title preserved across a second merge, got %+v", ctx.Media.Title)
	}
	if ctx.Media.Year == nil || *ctx.Media.Year != 1999 {
		t.Fatalf("expected year merged in, got %+v", ctx.Media.Year)
	}
	if !ctx.Media.UsedGuessit {
		t.Fatalf("expected UsedGuessit to remain true (OR-monotonic) across merge, got false")
	}
}

func TestMarkCachedResultCompletesTheRun(t *testing.T) {
	ctx := NewContext(FilenameMode, "x.mkv", nil, nil)
	cached := &mediainfo.MediaInfo{Title: strp("Cached Title")}
	ctx.MarkCachedResult(cached)

	if !ctx.Completed {
		t.Fatalf("expected Completed true after a cache hit")
	}
	if ctx.CachedResult != cached {
		t.Fatalf("expected CachedResult to hold the cached record")
	}

	res := ctx.Finalize()
	if !res.Completed || res.Cached != cached {
		t.Fatalf("expected Finalize to reflect the cache hit, got %+v", res)
	}
}

func TestRecordErrorAppendsNonNilOnly(t *testing.T) {
	ctx := NewContext(FilenameMode, "x.mkv", nil, nil)
	ctx.RecordError(nil)
	if len(ctx.Errors) != 0 {
		t.Fatalf("expected nil error to be ignored, got %d entries", len(ctx.Errors))
	}
}
