package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key",
		WithBaseURL(server.URL),
		WithSleeper(func(time.Duration) {}),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestSearchMovieReturnsBestMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing bearer auth header: %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Results: []rawSearchResultItem{
			{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", GenreIDs: []interface{}{28, 878}},
		}})
	})

	year := 1999
	info := client.SearchMovie("The Matrix", &year)
	if info == nil {
		t.Fatal("expected a result")
	}
	if info.TMDBID == nil || *info.TMDBID != 603 {
		t.Fatalf("unexpected tmdb id: %+v", info.TMDBID)
	}
	if info.Year == nil || *info.Year != 1999 {
		t.Fatalf("unexpected year: %+v", info.Year)
	}
}

func TestSearchSeriesSetsSeriesIDNotTMDBID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{Results: []rawSearchResultItem{
			{ID: 1396, Name: "Breaking Bad", FirstAirDate: "2008-01-20"},
		}})
	})

	info := client.SearchSeries("Breaking Bad", nil)
	if info == nil {
		t.Fatal("expected a result")
	}
	if info.TMDBSeriesID == nil || *info.TMDBSeriesID != 1396 {
		t.Fatalf("unexpected tmdb series id: %+v", info.TMDBSeriesID)
	}
	if info.TMDBID != nil {
		t.Fatalf("expected tmdb_id to stay unset, got %+v", *info.TMDBID)
	}
}

func TestSearchNoResultsReturnsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{Results: nil})
	})

	if info := client.SearchMovie("Nonexistent Movie", nil); info != nil {
		t.Fatalf("expected nil, got %+v", info)
	}
}

func TestGetRetriesOnceAfterRateLimit(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Results: []rawSearchResultItem{{ID: 1, Title: "Retry Movie"}}})
	})

	info := client.SearchMovie("Retry Movie", nil)
	if info == nil {
		t.Fatal("expected result after retry")
	}
	if attempts != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", attempts)
	}
}

func TestGetFailsAfterSecondRateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if info := client.SearchMovie("Anything", nil); info != nil {
		t.Fatalf("expected nil, got %+v", info)
	}
}

func TestGetMovieDetailsPopulatesFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(movieDetailsResponse{
			ID: 603, Title: "The Matrix", OriginalTitle: "The Matrix",
			Overview: "A hacker learns the truth.", ReleaseDate: "1999-03-30",
			Genres: []namedGenre{{ID: 28, Name: "Action"}},
		})
	})

	info := client.GetMovieDetails(603)
	if info == nil {
		t.Fatal("expected details")
	}
	if info.TMDBID == nil || *info.TMDBID != 603 {
		t.Fatalf("unexpected tmdb id: %+v", info.TMDBID)
	}
	if len(info.Genres) != 1 || info.Genres[0] != "Action" {
		t.Fatalf("unexpected genres: %+v", info.Genres)
	}
}

func TestGetEpisodeDetailsSetsTMDBIDToEpisodeID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(episodeDetailsResponse{ID: 999, Name: "Pilot"})
	})

	info := client.GetEpisodeDetails(1396, 1, 1)
	if info == nil {
		t.Fatal("expected details")
	}
	if info.TMDBID == nil || *info.TMDBID != 999 {
		t.Fatalf("expected tmdb_id to be the episode id, got %+v", info.TMDBID)
	}
}

func TestGetSeriesExternalIDsNeverReportsTMDBID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(externalIDsResponse{IMDBID: "tt0903747", TVDBID: 81189})
	})

	ids := client.GetSeriesExternalIDs(1396)
	if ids == nil {
		t.Fatal("expected external ids")
	}
	if ids.IMDBID == nil || *ids.IMDBID != "tt0903747" {
		t.Fatalf("unexpected imdb id: %+v", ids.IMDBID)
	}
	if ids.TVDBID == nil || *ids.TVDBID != 81189 {
		t.Fatalf("unexpected tvdb id: %+v", ids.TVDBID)
	}
}
