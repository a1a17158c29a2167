package nse

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// APIError represents a non-200 response from an NSE endpoint.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nse api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// get performs a GET against an NSE data endpoint with the browser header
// set and returns the decoded body. Non-200 status and non-JSON bodies are
// both errors: the fetchers translate them into empty results.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	// Accept-Encoding is set by hand for browser mimicry, which disables
	// the transport's transparent decompression. Only gzip is advertised,
	// so only gzip needs handling here.
	reader := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("non-json response from %s", path)
	}

	return body, nil
}
