package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mediavault/identifier/internal/auth"
	"github.com/mediavault/identifier/internal/config"
	"github.com/mediavault/identifier/internal/identifier"
	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/wshub"
)

type fakeCache struct{}

func (fakeCache) GetCachedByObj(obj *mediainfo.MediaInfo) (*mediainfo.MediaInfo, bool, error) {
	return nil, false, nil
}
func (fakeCache) GetCachedByTMDBID(tmdbID int) (*mediainfo.MediaInfo, error) { return nil, nil }
func (fakeCache) GetCachedTVEpisode(seriesID, season, episode int) (*mediainfo.MediaInfo, error) {
	return nil, nil
}
func (fakeCache) CacheData(record *mediainfo.MediaInfo) (*mediainfo.MediaInfo, error) {
	return record.Clone(), nil
}

func newTestServer() *Server {
	cfg := &config.Config{ServiceTokenSecret: "test-secret"}
	idf := &identifier.Identifier{Cache: fakeCache{}}
	return NewServer(cfg, idf, nil, wshub.NewHub())
}

func authedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	token, err := auth.IssueToken("test-secret", "test-client", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHealthIsUnauthenticated(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdentifyByFilenameRequiresAuth(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify/filename", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIdentifyByFilenameReturnsInputErrorForEmptyPath(t *testing.T) {
	s := newTestServer()
	req := authedRequest(t, http.MethodPost, "/api/v1/identify/filename", identifyByFilenameRequest{FilePath: ""})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIdentifyByFilenameReturnsNoContentWhenUnidentified(t *testing.T) {
	s := newTestServer()
	req := authedRequest(t, http.MethodPost, "/api/v1/identify/filename", identifyByFilenameRequest{FilePath: "1080p.x264.mkv"})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIdentifyByMetadataReturnsInputErrorForMissingSeasonEpisode(t *testing.T) {
	s := newTestServer()
	req := authedRequest(t, http.MethodPost, "/api/v1/identify/metadata", identifyByMetadataRequest{
		MediaType: "tv",
		Title:     "Example",
		Year:      2024,
	})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
