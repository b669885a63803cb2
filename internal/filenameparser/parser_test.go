package filenameparser

import "testing"

func TestParseMovieFilename(t *testing.T) {
	info, ok := Parse("The.Matrix.1999.1080p.BluRay.x264.mkv")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if info.Title == nil || *info.Title != "The Matrix" {
		t.Fatalf("unexpected title: %+v", info.Title)
	}
	if info.Year == nil || *info.Year != 1999 {
		t.Fatalf("unexpected year: %+v", info.Year)
	}
	if info.MediaType == nil || *info.MediaType != "movie" {
		t.Fatalf("unexpected media type: %+v", info.MediaType)
	}
	if !info.UsedGuessit {
		t.Fatal("expected used_guessit to be true")
	}
}

func TestParseTVEpisodeFilename(t *testing.T) {
	info, ok := Parse("/data/tv/Friends/Friends.S02E11.mkv")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if info.MediaType == nil || *info.MediaType != "tv" {
		t.Fatalf("unexpected media type: %+v", info.MediaType)
	}
	if info.Season == nil || *info.Season != 2 {
		t.Fatalf("unexpected season: %+v", info.Season)
	}
	if info.Episode == nil || *info.Episode != 11 {
		t.Fatalf("unexpected episode: %+v", info.Episode)
	}
}

func TestParseXSeparatedEpisodeCode(t *testing.T) {
	info, ok := Parse("Friends.2x11.mkv")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if info.Season == nil || *info.Season != 2 || info.Episode == nil || *info.Episode != 11 {
		t.Fatalf("unexpected season/episode: %+v/%+v", info.Season, info.Episode)
	}
}

func TestParseSkipsImageSidecarFallsBackToParent(t *testing.T) {
	info, ok := Parse("/data/tv/Breaking.Bad.S01/poster.jpg")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if info.Title == nil {
		t.Fatal("expected a title derived from the parent directory")
	}
}

func TestParseNoMeaningfulSegmentsReturnsFalse(t *testing.T) {
	if _, ok := Parse(""); ok {
		t.Fatal("expected no candidate for an empty path")
	}
}

func TestParseDropsImplausibleYear(t *testing.T) {
	info, ok := Parse("Some.Show.3016.mkv")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if info.Year != nil {
		t.Fatalf("expected implausible year dropped, got %+v", *info.Year)
	}
}
