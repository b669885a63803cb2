// Package catalog implements C5: a typed wrapper over the external
// metadata catalog HTTP API (TMDB-shaped), grounded on the teacher's
// internal/metadata/scraper_tmdb.go.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// defaultMinSimilarity matches config.Config.AutomatchMinSimilarity's
// default: always take the catalog's best candidate.
const defaultMinSimilarity = 0.0

const (
	requestTimeout    = 10 * time.Second
	rateLimitWaitBase = 8 * time.Second
	rateLimitJitterLo = 1.0
	rateLimitJitterHi = 3.0
)

// Client is a minimal TMDB-shaped catalog client. Its lookups have no
// error return: on an upstream failure or a miss they log and return nil,
// matching spec §4.5's "return null" discipline. The only error in this
// package comes from NewClient when the API key is missing.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    *http.Client
	limiter       *rate.Limiter
	sleep         func(time.Duration)
	jitter        func() float64
	logf          func(format string, args ...any)
	minSimilarity float64
}

// Option customizes a Client, primarily for tests.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

func WithSleeper(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

func WithLogger(fn func(format string, args ...any)) Option {
	return func(c *Client) { c.logf = fn }
}

// WithMinSimilarity sets the minimum title-similarity score (0..1) a
// multi-result search's best candidate must clear to be accepted,
// backing the settings-table "automatch_min_pct" overlay from
// SPEC_FULL.md §3. 0, the default, always takes the catalog's best
// candidate regardless of score.
func WithMinSimilarity(min float64) Option {
	return func(c *Client) { c.minSimilarity = min }
}

// NewClient builds a catalog client. apiKey is required: the spec treats a
// missing token as a construction-time failure.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("catalog: api key is required")
	}
	c := &Client{
		apiKey:        apiKey,
		baseURL:       "https://api.themoviedb.org/3",
		httpClient:    &http.Client{Timeout: requestTimeout},
		limiter:       rate.NewLimiter(rate.Every(300*time.Millisecond), 1),
		sleep:         time.Sleep,
		jitter:        rand.Float64,
		logf:          func(string, ...any) {},
		minSimilarity: defaultMinSimilarity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) debounce() time.Duration {
	span := rateLimitJitterHi - rateLimitJitterLo
	return rateLimitWaitBase + time.Duration((rateLimitJitterLo+c.jitter()*span)*float64(time.Second))
}

// get performs a single GET against the catalog, honoring the fixed
// rate-limit retry policy: on HTTP 429, wait 8+uniform(1,3)s and retry
// once; any further failure returns (nil, false). All other 4xx/5xx return
// (nil, false) with a logged error. Parse failures behave the same way.
func (c *Client) get(path string, params url.Values) ([]byte, bool) {
	_ = c.limiter.Wait(context.Background())

	body, status, err := c.doRequest(path, params)
	if err == nil && status == http.StatusTooManyRequests {
		c.logf("catalog: rate limited on %s, backing off", path)
		c.sleep(c.debounce())
		body, status, err = c.doRequest(path, params)
	}

	if err != nil {
		c.logf("catalog: request to %s failed: %v", path, err)
		return nil, false
	}
	if status < 200 || status >= 300 {
		c.logf("catalog: request to %s returned status %d", path, status)
		return nil, false
	}
	return body, true
}

func (c *Client) doRequest(path string, params url.Values) ([]byte, int, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func baseParams() url.Values {
	v := url.Values{}
	v.Set("language", "en-US")
	return v
}

// yearFromDates returns the year from the first non-empty of
// releaseDate/firstAirDate/airDate, per spec §4.5.
func yearFromDates(releaseDate, firstAirDate, airDate string) *int {
	for _, d := range []string{releaseDate, firstAirDate, airDate} {
		if len(d) >= 4 {
			if year, err := strconv.Atoi(d[:4]); err == nil {
				return &year
			}
		}
	}
	return nil
}

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func jsonUnmarshal(body []byte, v any) bool {
	return json.Unmarshal(body, v) == nil
}
