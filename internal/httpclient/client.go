// Package httpclient provides the HTTP client used by remote datasets.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// DefaultTimeout is the default timeout for a single HTTP request
	DefaultTimeout = 10 * time.Second

	// MaxResponseSize is the maximum allowed response size (100MB)
	MaxResponseSize = 100 * 1024 * 1024

	// UserAgent is the user agent string for HTTP requests
	UserAgent = "datacat/1.0"

	// defaultMaxTries bounds retries of transient failures per call
	defaultMaxTries = 4
)

// Client is an interface for HTTP operations against remote datasets
type Client interface {
	// Get performs an HTTP GET request and returns the response body
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)

	// Head performs an HTTP HEAD request and reports whether the resource
	// exists (2xx response)
	Head(ctx context.Context, url string, headers map[string]string) (bool, error)
}

// DefaultClient is the default HTTP client implementation. Transient
// failures (transport errors, 5xx, 429) are retried with exponential
// backoff; other status codes fail immediately.
type DefaultClient struct {
	client   *http.Client
	maxTries uint
}

// NewDefaultClient creates a new default HTTP client with the specified
// per-request timeout. If timeout is 0, uses DefaultTimeout.
func NewDefaultClient(timeout time.Duration) Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &DefaultClient{
		client: &http.Client{
			Timeout: timeout,
		},
		maxTries: defaultMaxTries,
	}
}

// Get performs an HTTP GET request with retry on transient failures
func (c *DefaultClient) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	operation := func() ([]byte, error) {
		return c.getOnce(ctx, url, headers)
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *DefaultClient) getOnce(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	setHeaders(req, headers)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		httpErr := NewHTTPError(resp.StatusCode, url, resp.Status)
		if retryableStatus(resp.StatusCode) {
			return nil, httpErr
		}
		return nil, backoff.Permanent(httpErr)
	}

	if resp.ContentLength > MaxResponseSize {
		return nil, backoff.Permanent(fmt.Errorf("response size %d bytes exceeds maximum allowed size of %d bytes",
			resp.ContentLength, MaxResponseSize))
	}

	// +1 to detect if the limit was exceeded
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, backoff.Permanent(fmt.Errorf("response size exceeds maximum allowed size of %d bytes",
			MaxResponseSize))
	}

	return body, nil
}

// Head performs an HTTP HEAD request
func (c *DefaultClient) Head(ctx context.Context, url string, headers map[string]string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	setHeaders(req, headers)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

func setHeaders(req *http.Request, headers map[string]string) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}
