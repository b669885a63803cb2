package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClientWithThreshold(t *testing.T, handler http.HandlerFunc, minSimilarity float64) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key",
		WithBaseURL(server.URL),
		WithSleeper(func(time.Duration) {}),
		WithMinSimilarity(minSimilarity),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestSearchMoviePicksHighestSimilarityAmongResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{Results: []rawSearchResultItem{
			{ID: 1, Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15"},
			{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"},
			{ID: 2, Title: "The Matrix Revolutions", ReleaseDate: "2003-11-05"},
		}})
	})

	info := client.SearchMovie("The Matrix", nil)
	if info == nil {
		t.Fatal("expected a result")
	}
	if info.TMDBID == nil || *info.TMDBID != 603 {
		t.Fatalf("expected the exact title match (603), got %+v", info.TMDBID)
	}
}

func TestSearchMovieRejectsBestCandidateBelowThreshold(t *testing.T) {
	client := newTestClientWithThreshold(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{Results: []rawSearchResultItem{
			{ID: 1, Title: "Completely Unrelated Film", ReleaseDate: "2010-01-01"},
		}})
	}, 0.9)

	if info := client.SearchMovie("The Matrix", nil); info != nil {
		t.Fatalf("expected nil when the best candidate misses the similarity threshold, got %+v", info)
	}
}

func TestTitleSimilarityIsCaseInsensitive(t *testing.T) {
	score := titleSimilarity("The Matrix", "the matrix")
	if score < 0.99 {
		t.Fatalf("expected near-1.0 similarity for a case-only difference, got %f", score)
	}
}
