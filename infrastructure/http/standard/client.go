// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Retries transport errors and 5xx responses with exponential backoff

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"rssgen-api/core/interfaces"
)

// DefaultUserAgent mimics a desktop browser; some catalog hosts reject unknown agents
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// baseBackoff is the delay before the first retry; it doubles per attempt
var baseBackoff = 100 * time.Millisecond

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client     *http.Client
	maxRetries int
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// maxRetries is the number of extra attempts after a transport error or 5xx.
func NewStandardHTTPClient(timeout time.Duration, maxRetries int) *StandardHTTPClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
	}
}

// Get performs an HTTP GET request. Headers override the defaults.
func (c *StandardHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
				// Continue with retry
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", DefaultUserAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			resp = nil
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 || attempt == c.maxRetries {
			break
		}

		// Close body for retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
