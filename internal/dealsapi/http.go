package dealsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// ErrInvalidURL is returned when the configured endpoint cannot be parsed as
// an absolute http(s) URL. The check runs before any network activity, so a
// bad endpoint fails immediately instead of timing out.
var ErrInvalidURL = errors.New("invalid API URL")

// ErrDecode is returned when the response body is not a valid result set.
var ErrDecode = errors.New("decoding results")

// StatusError reports a non-200 response from the pricing API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pricing API error (status %d): %s", e.StatusCode, e.Body)
}

// HTTPClient implements Client against the pricing API over HTTP.
type HTTPClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = hc
	}
}

// WithRateLimit installs a token bucket limiter applied before every fetch.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *HTTPClient) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// NewHTTPClient creates a pricing API client.
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchResults implements Client.FetchResults. The endpoint URL is taken as
// an argument rather than fixed at construction because it is user-tunable
// at runtime.
func (c *HTTPClient) FetchResults(
	ctx context.Context,
	rawURL string,
) ([]domain.ResultItem, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing fetch request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var items []domain.ResultItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	// A JSON "null" body unmarshals into a nil slice without error. That is
	// not a result array; treat it as a decode failure so the caller keeps
	// its previous snapshot.
	if items == nil {
		return nil, fmt.Errorf("%w: body is null, not a result array", ErrDecode)
	}

	return items, nil
}

func validateURL(rawURL string) error {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}
