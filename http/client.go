// Package http provides an HTTP-based implementation of c2cgpx.DocumentService
// backed by the camptocamp JSON API.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/c2cgpx"
)

// Client defaults.
const (
	DefaultBaseURL      = "https://api.camptocamp.org"
	DefaultTimeout      = 10 * time.Second
	DefaultDelay        = 500 * time.Millisecond
	DefaultUserAgent    = "C2C-GPX-Exporter-User"
	DefaultMaxDocuments = 10000
)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Ensure Client implements c2cgpx.DocumentService at compile time.
var _ c2cgpx.DocumentService = (*Client)(nil)

// Client retrieves documents from the camptocamp API.
type Client struct {
	client    *http.Client
	timeout   time.Duration
	baseURL   string
	host      string
	userAgent string

	delay        time.Duration
	maxDocuments int
	sleep        SleepFunc

	cache   c2cgpx.ResponseCache
	limiter c2cgpx.DomainLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root. Defaults to DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the underlying HTTP client. WithTimeout is ignored
// when a client is given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithDelay sets the pause after each document request that missed the cache.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

// WithCache enables response caching for document requests.
func WithCache(cache c2cgpx.ResponseCache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLimiter rate limits every request by API host.
func WithLimiter(l c2cgpx.DomainLimiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithMaxDocuments caps the number of ids a search may enumerate.
// Zero disables the cap.
func WithMaxDocuments(n int) Option {
	return func(c *Client) {
		c.maxDocuments = n
	}
}

// WithSleep replaces the function used for the politeness delay.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) {
		c.sleep = fn
	}
}

// NewClient creates a new API Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:      DefaultTimeout,
		baseURL:      DefaultBaseURL,
		userAgent:    DefaultUserAgent,
		delay:        DefaultDelay,
		maxDocuments: DefaultMaxDocuments,
		sleep:        sleep,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}
	if u, err := url.Parse(c.baseURL); err == nil {
		c.host = u.Host
	}

	return c
}

// searchPage is the body of the search endpoint.
type searchPage struct {
	Documents []struct {
		ID int64 `json:"document_id"`
	} `json:"documents"`
	Total int `json:"total"`
}

// FindDocumentIDs pages through the search endpoint until it returns an
// empty page. Search responses are never cached.
func (c *Client) FindDocumentIDs(ctx context.Context, typ c2cgpx.DocumentType, filter c2cgpx.Filter) ([]int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ids := []int64{}
	seen := make(map[int64]bool)
	offset := 0
	for {
		u := fmt.Sprintf("%s/%s?%s", c.baseURL, typ, filter.Encode(offset))
		body, err := c.get(ctx, u)
		if err != nil {
			return nil, err
		}

		var page searchPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding search page %s: %w", u, err)
		}
		if len(page.Documents) == 0 {
			return ids, nil
		}

		added := 0
		for _, d := range page.Documents {
			if d.ID <= 0 || seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			ids = append(ids, d.ID)
			added++
		}
		if added == 0 {
			return nil, c2cgpx.Errorf(c2cgpx.EINTERNAL, "search for %s returned no new documents at offset %d", typ, offset)
		}
		if c.maxDocuments > 0 && len(ids) > c.maxDocuments {
			return nil, c2cgpx.Errorf(c2cgpx.EINVALID, "search for %s matches more than %d documents, narrow the filter", typ, c.maxDocuments)
		}

		offset += len(page.Documents)
	}
}

// FetchDocument retrieves one document, consulting the cache first.
// Requests that miss the cache are followed by the politeness delay.
func (c *Client) FetchDocument(ctx context.Context, typ c2cgpx.DocumentType, id int64) (*c2cgpx.Document, error) {
	u := fmt.Sprintf("%s/%s/%d", c.baseURL, typ, id)
	body, err := c.cachedGet(ctx, u)
	if err != nil {
		return nil, err
	}

	var doc c2cgpx.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", u, err)
	}
	if doc.ID == 0 {
		doc.ID = id
	}
	doc.Type = typ

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) cachedGet(ctx context.Context, u string) ([]byte, error) {
	key := CacheKey(http.MethodGet, u)
	if c.cache != nil {
		body, err := c.cache.Get(ctx, key)
		if err == nil {
			return body, nil
		}
		if c2cgpx.ErrorCode(err) != c2cgpx.ENOTFOUND {
			return nil, err
		}
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			return nil, err
		}
	}

	if err := c.sleep(ctx, c.delay); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.host); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c2cgpx.Errorf(c2cgpx.EREQUEST, "HTTP %d for %s", resp.StatusCode, u)
	}

	return io.ReadAll(resp.Body)
}

// CacheKey returns the canonical form of a request, with query parameters
// sorted so equivalent requests share a cache entry.
func CacheKey(method, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return method + " " + rawURL
	}
	u.RawQuery = u.Query().Encode()
	u.Fragment = ""
	return method + " " + u.String()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
