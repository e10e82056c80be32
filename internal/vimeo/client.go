package vimeo

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"vimeodl/internal/logger"
)

// Client handles all communication with the event page, the player config
// endpoint and the manifest host. A single instance is shared across the
// whole resolution pipeline so every stage goes through the same transport.
type Client struct {
	httpClient *http.Client
	logger     logger.Logger
	userAgent  string
}

// NewClient creates a new client with the default transport.
func NewClient(log logger.Logger, userAgent string) *Client {
	transport := &http.Transport{
		ResponseHeaderTimeout: 10 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		logger:     log,
		userAgent:  userAgent,
	}
}

// NewClientWith creates a client around an existing http.Client. Used by
// tests to substitute the transport.
func NewClientWith(httpClient *http.Client, log logger.Logger, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		userAgent:  userAgent,
	}
}

// HttpClient returns the underlying http.Client instance.
func (c *Client) HttpClient() *http.Client {
	return c.httpClient
}

// fetch issues a GET request and returns the response body together with
// the effective URL after redirects. A non-2xx status is a *StatusError.
func (c *Client) fetch(rawURL, referer string) ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request for %s: %w", rawURL, err)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, "", &StatusError{URL: finalURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body from %s: %w", finalURL, err)
	}

	return body, finalURL, nil
}
