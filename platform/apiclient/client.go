// Package apiclient provides the HTTP plumbing shared by every call to the
// listing API: JSON encoding, bounded timeouts, client-side rate limiting,
// status handling and instrumentation.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homegate_search/platform/apperr"
	"homegate_search/platform/logger"
	"homegate_search/platform/metrics"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public listing API endpoint.
	DefaultBaseURL = "https://api.homegate.ch"
	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 4 << 10
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	// RateLimit caps outgoing requests per second; zero disables limiting.
	RateLimit float64
	Burst     int
	Metrics   *metrics.Metrics
}

// Client is the HTTP client for the listing API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// New creates a new listing API client.
func New(opts Options, log *logger.Logger) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
		metrics:    opts.Metrics,
		log:        log,
	}
}

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is returned when the listing API answers with a non-success status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// GetJSON issues a GET to path with the given query and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, operation, path string, query url.Values, out any) error {
	return c.do(ctx, operation, http.MethodGet, path, query, nil, out)
}

// PostJSON issues a POST with body encoded as JSON and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, operation, path string, body, out any) error {
	return c.do(ctx, operation, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	log := c.log.WithContext(ctx)

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(apperr.KindValidation, "encode request body", err).WithOp(operation)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, payload)
	if err != nil {
		return apperr.Transport("create request", err).WithOp(operation)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperr.Transport("rate limiter", err).WithOp(operation)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(operation, 0, time.Since(start))
		log.UpstreamError(method, path, 0, err)
		return apperr.Transport("http request", err).WithOp(operation)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	elapsed := time.Since(start)
	c.metrics.ObserveUpstream(operation, resp.StatusCode, elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
		log.UpstreamError(method, path, resp.StatusCode, statusErr)
		return apperr.Transport("upstream error", statusErr).
			WithOp(operation).
			WithDetails(map[string]int{"upstreamStatus": resp.StatusCode})
	}

	log.UpstreamCall(method, path, resp.StatusCode, float64(elapsed.Milliseconds()))

	if out == nil {
		return nil
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		log.UpstreamError(method, path, resp.StatusCode, err)
		return apperr.Transport("decode response", err).WithOp(operation)
	}

	return nil
}
