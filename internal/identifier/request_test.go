package identifier

import "testing"

func TestFromFilenameRequiresNonBlankPath(t *testing.T) {
	if _, err := FromFilename("   "); err == nil {
		t.Fatalf("expected error for blank file path")
	}
	req, err := FromFilename("  /movies/x.mkv  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.FilePath != "/movies/x.mkv" {
		t.Fatalf("expected trimmed path, got %q", req.FilePath)
	}
}

func TestFromMetadataRequiresMediaType(t *testing.T) {
	if _, err := FromMetadata("", "Alpha", 1999, nil, nil); err == nil {
		t.Fatalf("expected error for missing media type")
	}
}

func TestFromMetadataRequiresTitle(t *testing.T) {
	if _, err := FromMetadata("movie", "  ", 1999, nil, nil); err == nil {
		t.Fatalf("expected error for blank title")
	}
}

func TestFromMetadataTVRequiresSeasonAndEpisode(t *testing.T) {
	if _, err := FromMetadata("tv", "Alpha", 2001, nil, nil); err == nil {
		t.Fatalf("expected error for TV request missing season/episode")
	}
	season, episode := 1, 2
	req, err := FromMetadata("tv", "Alpha", 2001, &season, &episode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Season == nil || *req.Season != 1 || req.Episode == nil || *req.Episode != 2 {
		t.Fatalf("expected season/episode carried through, got %+v/%+v", req.Season, req.Episode)
	}
}

func TestFromMetadataMovieDoesNotRequireSeasonEpisode(t *testing.T) {
	if _, err := FromMetadata("movie", "Alpha", 1999, nil, nil); err != nil {
		t.Fatalf("unexpected error for movie metadata request: %v", err)
	}
}

func TestSeedMediaInfoOnlyForMetadataMode(t *testing.T) {
	filenameReq, _ := FromFilename("x.mkv")
	if seed := filenameReq.seedMediaInfo(); seed != nil {
		t.Fatalf("expected nil seed for a filename-mode request, got %+v", seed)
	}

	metaReq, err := FromMetadata("movie", "The Matrix", 1999, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seed := metaReq.seedMediaInfo()
	if seed == nil || seed.Title == nil || *seed.Title != "The Matrix" {
		t.Fatalf("expected seeded title, got %+v", seed)
	}
	if seed.MediaType == nil || *seed.MediaType != "movie" {
		t.Fatalf("expected seeded media type movie, got %+v", seed.MediaType)
	}
	if seed.Year == nil || *seed.Year != 1999 {
		t.Fatalf("expected seeded year 1999, got %+v", seed.Year)
	}
}
