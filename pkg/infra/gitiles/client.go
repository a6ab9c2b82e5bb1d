package gitiles

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
	"github.com/m-mizutani/vendorfetch/pkg/utils/textenc"
)

// DefaultTimeout bounds a single request including reading the body
const DefaultTimeout = 30 * time.Second

// formatDirective asks Gitiles to return the raw file as base64 text
const formatDirective = "?format=TEXT"

// config holds internal client configuration
type config struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = c
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(cfg *config) {
		cfg.userAgent = ua
	}
}

// Client fetches files from a Gitiles host such as android.googlesource.com
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a Gitiles client. baseURL is used as a plain string prefix,
// so it normally ends with a slash.
func NewClient(baseURL string, opts ...Option) *Client {
	cfg := &config{
		timeout:   DefaultTimeout,
		userAgent: "vendorfetch/" + types.Version,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  cfg.userAgent,
	}
}

// URL returns the request URL for a manifest path
func (c *Client) URL(path string) string {
	return c.baseURL + path + formatDirective
}

// FetchOnce performs one GET for path and decodes the base64 body
func (c *Client) FetchOnce(ctx context.Context, path string) ([]byte, error) {
	url := c.URL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "request failed",
			goerr.T(types.ErrTagNetwork), goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused by the next attempt
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, goerr.Wrap(&types.TransportError{Status: resp.StatusCode, URL: url},
			"non-success status",
			goerr.T(types.ErrTagTransport), goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body",
			goerr.T(types.ErrTagNetwork), goerr.V("url", url))
	}

	content, err := textenc.Decode(string(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode response body", goerr.V("url", url))
	}

	return content, nil
}
