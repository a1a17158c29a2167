package nse

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Browser header set sent on every upstream request. NSE rejects requests
// that don't carry these.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-US,en;q=0.9",
	"Accept-Encoding": "gzip",
	"Connection":      "keep-alive",
	"Referer":         "https://www.nseindia.com/",
}

// Client talks to NSE's internal JSON API through one shared HTTP client,
// so session cookies acquired by Warmup persist onto data requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	warmupDelay time.Duration

	// Injectable for tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates an NSE API client with a fresh cookie jar.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		logger:      slog.Default(),
		warmupDelay: time.Second,
		sleep:       time.Sleep,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client. The caller is responsible for
// attaching a cookie jar if session state should persist.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithWarmupDelay sets the pause inserted after a successful warm-up call.
func WithWarmupDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.warmupDelay = d
	}
}

// Warmup primes the upstream session by visiting the homepage, acquiring
// the cookies the data endpoints require. A short delay follows the call so
// the session doesn't look automated. Failure is reported, not returned as
// an error: callers proceed regardless, since previously acquired cookies
// may still be valid.
func (c *Client) Warmup(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		c.logger.Error("failed to build warm-up request", "err", err)
		return false
	}
	setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("session warm-up failed", "err", err)
		return false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("session warm-up rejected", "status", resp.StatusCode)
		return false
	}

	c.sleep(c.warmupDelay)
	return true
}

func setHeaders(req *http.Request) {
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
}
