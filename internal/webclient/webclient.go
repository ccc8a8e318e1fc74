// Package webclient wraps HTTP GET requests with a small bounded result
// cache, so identical sequential metadata lookups skip the network.
package webclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// CacheLength is how many distinct URL+parameter results to keep. The
// oldest entry is evicted first.
const CacheLength = 5

type entry struct {
	key  string
	body []byte
}

// Client is a GET wrapper with a bounded FIFO result cache. It is safe for
// use from multiple goroutines.
type Client struct {
	httpClient *http.Client

	mu      sync.Mutex
	entries []entry
}

func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// Get returns the response body for the given URL and query parameters. A
// request identical to one of the last CacheLength distinct requests is
// served from cache.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	key := rawURL
	if len(params) > 0 {
		key += "?" + params.Encode()
	}

	if body, ok := c.cached(key); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(body))
	}

	c.store(key, body)
	return body, nil
}

func (c *Client) cached(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.key == key {
			return e.body, true
		}
	}
	return nil, false
}

func (c *Client) store(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry{key: key, body: body})
	if len(c.entries) > CacheLength {
		c.entries = c.entries[1:]
	}
}
