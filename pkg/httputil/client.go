package httputil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/courseflow/courseflow/pkg/cache"
	"github.com/courseflow/courseflow/pkg/errors"
	"github.com/courseflow/courseflow/pkg/observability"
)

// Client performs cached, retried JSON GETs against upstream services.
// The zero value is not usable; construct with NewClient.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	attempts  int
	delay     time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithCache enables response caching under the given namespace and TTL.
func WithCache(store cache.Cache, keyer cache.Keyer, namespace string, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = store
		c.keyer = keyer
		c.namespace = namespace
		c.ttl = ttl
	}
}

// WithRetry overrides the retry policy.
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// NewClient builds a client with a 30s request timeout, 3 retry attempts,
// and no caching unless WithCache is given.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON fetches rawURL and unmarshals the response body into v. Cached
// responses are served without touching the network; fresh responses are
// cached on success. Transient failures (network errors, 5xx, 429) are
// retried with backoff, then surfaced as NETWORK_ERROR or RATE_LIMITED; a
// 404 maps to NOT_FOUND and is never retried.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	key := c.keyer.HTTPKey(c.namespace, rawURL)
	if data, found, err := c.cache.Get(ctx, key); err == nil && found {
		return json.Unmarshal(data, v)
	}

	var body []byte
	err := Retry(ctx, c.attempts, c.delay, func() error {
		var fetchErr error
		body, fetchErr = c.fetch(ctx, rawURL)
		return fetchErr
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding response from %s", hostOf(rawURL))
	}
	_ = c.cache.Set(ctx, key, body, c.ttl)
	return nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "building request")
	}
	req.Header.Set("Accept", "application/json")

	host, path := hostOf(rawURL), req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "requesting %s", host))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "reading response from %s", host))
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "%s returned 404 for %s", host, path)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, Retryable(errors.New(errors.ErrCodeRateLimited, "%s rate limited the request", host))
	case resp.StatusCode >= 500:
		return nil, Retryable(errors.New(errors.ErrCodeNetwork, "%s returned %d", host, resp.StatusCode))
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "%s returned unexpected status %d", host, resp.StatusCode)
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
