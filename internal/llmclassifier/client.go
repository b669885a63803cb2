// Package llmclassifier implements C4: four narrow, prompt-specified
// extraction operations backed by a provider chat-completion call.
// Grounded on five82-spindle's internal/services/llm/client.go for the
// plain net/http + functional-options client shape; no example repo
// vendors a provider SDK, so this talks to the API directly.
package llmclassifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Usage captures per-call token accounting as reported by the provider
// (spec §4.4). It is exposed through LastUsage only; nothing in this
// module passes it on to the audit writer.
type Usage struct {
	InputTokens     int
	CachedTokens    int
	OutputTokens    int
	ReasoningTokens int
	TotalTokens     int
}

// Config holds provider connection settings.
type Config struct {
	APIKey         string
	Organization   string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client is a narrow wrapper over a single chat-completion endpoint. A
// Client without an API key sends no request: every operation returns its
// failure value ("unknown" or a false ok), matching the "degrade
// gracefully" posture the rest of the pipeline expects from an optional
// enrichment stage. Operations on a nil *Client are not supported.
type Client struct {
	cfg        Config
	httpClient *http.Client
	lastUsage  Usage
	logf       func(format string, args ...any)
}

// Option customizes a Client, primarily for tests.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithLogger(fn func(format string, args ...any)) Option {
	return func(c *Client) { c.logf = fn }
}

// NewClient builds an llmclassifier client. An empty APIKey is permitted:
// every operation degrades to "unknown" rather than failing construction,
// since the classifier is an optional fallback stage, not a hard
// dependency (spec §4.4 / §9).
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1/responses"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logf:       func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LastUsage returns the token accounting of the most recent call whose
// response decoded successfully; a failed call leaves it unchanged.
func (c *Client) LastUsage() Usage {
	return c.lastUsage
}

type responsesRequest struct {
	Model        string  `json:"model"`
	Instructions string  `json:"instructions"`
	Input        string  `json:"input"`
	Temperature  float64 `json:"temperature"`
}

type responsesUsage struct {
	InputTokens        int `json:"input_tokens"`
	InputTokensDetails struct {
		CachedTokens int `json:"cached_tokens"`
	} `json:"input_tokens_details"`
	OutputTokens       int `json:"output_tokens"`
	OutputTokenDetails struct {
		ReasoningTokens int `json:"reasoning_tokens"`
	} `json:"output_token_details"`
	TotalTokens int `json:"total_tokens"`
}

type responsesPayload struct {
	OutputText string         `json:"output_text"`
	Usage      responsesUsage `json:"usage"`
}

// rateLimitError marks an HTTP 429 response, the one transport failure
// that must never be retried (spec §4.4).
type rateLimitError struct{ status int }

func (e *rateLimitError) Error() string {
	return fmt.Sprintf("llmclassifier: rate limited (status %d)", e.status)
}

// ask sends prompt to the provider and returns the trimmed text output, or
// ("", false) on any failure. On a rate-limit error it logs and returns
// immediately without retrying; any other transport or decode error is
// logged the same way. Token usage is recorded only when a 2xx response
// decodes successfully; failure paths leave the previous usage in place.
func (c *Client) ask(prompt string) (string, bool) {
	if c.cfg.APIKey == "" {
		return "", false
	}

	payload := responsesRequest{
		Model:        c.cfg.Model,
		Instructions: systemInstructions,
		Input:        prompt,
		Temperature:  0.1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.logf("llmclassifier: encode request: %v", err)
		return "", false
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		c.logf("llmclassifier: build request: %v", err)
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if c.cfg.Organization != "" {
		req.Header.Set("OpenAI-Organization", c.cfg.Organization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("llmclassifier: request failed: %v", err)
		return "", false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logf("llmclassifier: read response: %v", err)
		return "", false
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logf("llmclassifier: %v", &rateLimitError{status: resp.StatusCode})
		return "", false
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logf("llmclassifier: request returned status %d", resp.StatusCode)
		return "", false
	}

	var parsed responsesPayload
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.logf("llmclassifier: decode response: %v", err)
		return "", false
	}

	c.lastUsage = Usage{
		InputTokens:     parsed.Usage.InputTokens,
		CachedTokens:    parsed.Usage.InputTokensDetails.CachedTokens,
		OutputTokens:    parsed.Usage.OutputTokens,
		ReasoningTokens: parsed.Usage.OutputTokenDetails.ReasoningTokens,
		TotalTokens:     parsed.Usage.TotalTokens,
	}

	return strings.TrimSpace(parsed.OutputText), true
}
