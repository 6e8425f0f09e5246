// Package firecrawl is the driven adapter for the external scraping
// service. It turns a Reference into the rendered markdown of its
// GitHub page through the service's scrape endpoint, treating the
// service as an opaque black box.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/octotext/octotext/internal/core/domain"
	"github.com/octotext/octotext/internal/core/ports/driven"
	"github.com/octotext/octotext/internal/logger"
)

const (
	// DefaultBaseURL is the hosted scraping API endpoint.
	DefaultBaseURL = "https://api.firecrawl.dev"

	// DefaultTimeout is the HTTP request timeout. Rendering a large PR
	// page server-side can take a while.
	DefaultTimeout = 60 * time.Second

	// RequestsPerSecond throttles proactively so a deep traversal
	// doesn't trip the service's rate limit.
	RequestsPerSecond = 1.0

	// CacheSize bounds the in-process page cache. One traversal never
	// fetches a reference twice, but separate calls in one process
	// (CLI with depth, MCP sessions) revisit the same items.
	CacheSize = 256
)

// Ensure Client implements the port.
var _ driven.Fetcher = (*Client)(nil)

// Client calls the scraping service's scrape endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	cache   *lru.Cache[string, string]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for a self-hosted
// instance or a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a scraping client. The API key may be empty here;
// Fetch fails with domain.ErrMissingCredential before any request if
// no key is configured.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(RequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	// Construction only fails on a non-positive size.
	c.cache, _ = lru.New[string, string](CacheSize)
	return c
}

// scrapeRequest is the body of a scrape call. "markdown" asks the
// service to render the page as text.
type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Fetch returns the rendered markdown for the referenced item.
func (c *Client) Fetch(ctx context.Context, ref domain.Reference) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: set FIRECRAWL_API_KEY or run `octotext config set api_key <key>`", domain.ErrMissingCredential)
	}

	if content, ok := c.cache.Get(ref.Key()); ok {
		logger.Debug("cache hit for %s", ref)
		return content, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	pageURL := ref.URL()
	logger.Debug("scraping %s", pageURL)

	body, err := json.Marshal(scrapeRequest{
		URL:             pageURL,
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrape %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &RateLimitError{RetryAfter: retryAfter(resp)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    responseMessage(resp.Body),
			URL:        pageURL,
		}
	}

	var parsed scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response for %s: %w", pageURL, err)
	}
	if !parsed.Success {
		return "", &APIError{StatusCode: resp.StatusCode, Message: parsed.Error, URL: pageURL}
	}
	if parsed.Data.Markdown == "" {
		return "", fmt.Errorf("%w for %s", domain.ErrNoContent, pageURL)
	}

	c.cache.Add(ref.Key(), parsed.Data.Markdown)
	return parsed.Data.Markdown, nil
}

func retryAfter(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// responseMessage pulls an error message out of a failure body,
// falling back to the raw text.
func responseMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no response body"
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &parsed) == nil && parsed.Error != "" {
		return parsed.Error
	}
	return string(data)
}
