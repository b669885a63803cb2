package cacherepo

import (
	"testing"

	"github.com/mediavault/identifier/internal/mediainfo"
)

func TestGetCachedByObjUsesMemoOnSecondLookup(t *testing.T) {
	repo, mock := newMockRepo(t)

	title := "The Matrix"
	mt := mediainfo.Movie
	year := 1999
	obj := &mediainfo.MediaInfo{Title: &title, MediaType: &mt, Year: &year}

	mock.ExpectQuery("SELECT").WillReturnRows(sampleRow())

	info1, ok1, err := repo.GetCachedByObj(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok1 || info1 == nil {
		t.Fatalf("expected a cache hit on the first lookup")
	}

	info2, ok2, err := repo.GetCachedByObj(obj)
	if err != nil {
		t.Fatalf("unexpected error on memoized lookup: %v", err)
	}
	if !ok2 || info2 == nil {
		t.Fatalf("expected the memoized lookup to also report a hit")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected only one query to reach the database: %v", err)
	}
}

func TestMemoKeyDiffersByYear(t *testing.T) {
	title := "The Matrix"
	mt := mediainfo.Movie
	year1999, year2021 := 1999, 2021

	k1 := memoKey(&mediainfo.MediaInfo{Title: &title, MediaType: &mt, Year: &year1999})
	k2 := memoKey(&mediainfo.MediaInfo{Title: &title, MediaType: &mt, Year: &year2021})

	if k1 == k2 {
		t.Fatalf("expected distinct memo keys for different years")
	}
}
