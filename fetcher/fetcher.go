// Package fetcher retrieves page HTML for analysis. Fetch problems are
// reported as data in the Result, never as Go errors: the analysis
// engine degrades to an informational report instead of failing.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much HTML is read from a response.
const maxBodyBytes = 10 << 20

// Result is the outcome of one fetch attempt.
type Result struct {
	Content    string
	Headers    http.Header
	StatusCode int
	Success    bool
	Error      string
}

// Client fetches pages over HTTP with pooled connections and a hard
// timeout per attempt.
type Client struct {
	client    *http.Client
	userAgent string
}

// NewClient builds a Client with connection pooling and keep-alives
// tuned for repeated fetches.
func NewClient() *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		userAgent: "SEOPageAnalyzer/1.0",
	}
}

// Fetch downloads rawURL. Invalid URLs, transport errors, and non-2xx
// responses all come back as Success=false with a human-readable reason.
func (c *Client) Fetch(ctx context.Context, rawURL string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{Error: fmt.Sprintf("invalid URL: %v", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Error:      fmt.Sprintf("server returned %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Error:      fmt.Sprintf("reading response: %v", err),
		}
	}

	return Result{
		Content:    string(body),
		Headers:    resp.Header,
		StatusCode: resp.StatusCode,
		Success:    true,
	}
}
