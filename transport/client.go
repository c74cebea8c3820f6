package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Response is the raw wire response. The body is read in full but never decoded.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Client is the TMDB HTTP transport. It is safe for concurrent use when the
// configured Doer and logger are.
type Client struct {
	baseURL        *url.URL
	doer           Doer
	logger         zerolog.Logger
	defaultHeaders map[string]string
	defaultQuery   map[string]string
	maxErrBody     int64
	metrics        *metrics

	mu     sync.RWMutex
	apiKey string
}

// New creates a new transport client from DefaultConfig plus opts.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return NewWithConfig(apiKey, cfg)
}

// NewWithConfig creates a new transport client from cfg.
func NewWithConfig(apiKey string, cfg Config) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("tmdb API key is required")
	}

	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	doer := cfg.Doer
	if doer == nil {
		doer = newHTTPClient(cfg)
	}

	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	maxErrBody := cfg.MaxErrorBodyBytes
	if maxErrBody <= 0 {
		maxErrBody = DefaultMaxErrorBodyBytes
	}

	return &Client{
		baseURL:        baseURL,
		doer:           doer,
		logger:         cfg.Logger,
		defaultHeaders: cloneStrings(cfg.DefaultHeaders),
		defaultQuery:   cloneStrings(cfg.DefaultQuery),
		maxErrBody:     maxErrBody,
		metrics:        m,
		apiKey:         apiKey,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute", raw)
	}
	// Treat the base path as a prefix so relative paths append to it.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// newHTTPClient builds the default Doer: Timeout bounds the whole exchange,
// the dialer bounds connection establishment.
func newHTTPClient(cfg Config) *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	if cfg.ConnectTimeout > 0 {
		t.TLSHandshakeTimeout = cfg.ConnectTimeout
	}

	maxRedirects := cfg.MaxRedirects
	return &http.Client{
		Transport: t,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}
}

// APIKey returns the current API key.
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// SetAPIKey rotates the API key. Requests already dispatched keep the key
// they were sent with.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.apiKey = apiKey
	c.mu.Unlock()
}

// BaseURL returns the API root every path resolves against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, opts)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, opts)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, opts)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, opts)
}

// Request performs an HTTP request against the API root. The API key is
// always set from the client, overriding any caller-provided value. Failures
// are logged once and returned as *Error; nothing is retried.
func (c *Client) Request(ctx context.Context, method, path string, opts *RequestOptions) (*Response, error) {
	apiKey := c.APIKey()
	opts = c.prepareOptions(opts, apiKey)
	method = strings.ToUpper(strings.TrimSpace(method))
	requestID := uuid.NewString()

	if !validMethod(method) {
		return nil, c.fail(requestID, method, path, transportError(fmt.Errorf("unsupported method %q", method)))
	}
	endpoint, err := c.resolve(path)
	if err != nil {
		return nil, c.fail(requestID, method, path, transportError(err))
	}

	c.logger.Info().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Str("base_url", c.baseURL.String()).
		Str("url", endpoint.String()).
		Interface("options", redactOptions(opts)).
		Msg("Making TMDB API request")

	req, err := c.newRequest(ctx, method, endpoint, opts)
	if err != nil {
		return nil, c.fail(requestID, method, path, transportError(redactError(err, apiKey)))
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.metrics.observe(method, 0, time.Since(start))
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, c.fail(requestID, method, path, transportError(redactError(err, apiKey)))
	}
	defer resp.Body.Close()
	c.metrics.observe(method, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		// A partial body is still reported; the read error goes into the log entry.
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxErrBody))
		return nil, c.failStatus(requestID, method, path, classifyStatus(resp.StatusCode, string(body)), readErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(requestID, method, path,
			transportError(fmt.Errorf("failed to read response body: %w", redactError(err, apiKey))))
	}

	c.logger.Info().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status_code", resp.StatusCode).
		Msg("TMDB API request successful")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// prepareOptions returns a copy of opts with the API key merged into the
// query. The caller's options are never mutated.
func (c *Client) prepareOptions(opts *RequestOptions, apiKey string) *RequestOptions {
	out := &RequestOptions{Query: make(map[string]any)}
	if opts != nil {
		for k, v := range opts.Query {
			out.Query[k] = v
		}
		out.Headers = cloneStrings(opts.Headers)
		out.Body = opts.Body
	}
	out.Query[APIKeyParam] = apiKey
	return out
}

// resolve joins path onto the base URL. "movie/1" and "/movie/1" resolve
// to the same endpoint.
func (c *Client) resolve(path string) (*url.URL, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty request path")
	}
	u, err := url.Parse(p)
	if err != nil {
		return nil, err
	}
	if u.IsAbs() || u.Host != "" {
		return nil, fmt.Errorf("request path %q must be relative", path)
	}
	u.Path = strings.TrimLeft(u.Path, "/")
	u.RawPath = ""
	if u.Path == "" {
		return nil, fmt.Errorf("request path %q has no resource", path)
	}
	return c.baseURL.ResolveReference(u), nil
}

func (c *Client) newRequest(ctx context.Context, method string, endpoint *url.URL, opts *RequestOptions) (*http.Request, error) {
	q := make(url.Values)
	for k, v := range c.defaultQuery {
		q.Set(k, v)
	}
	for k, vv := range endpoint.Query() {
		q[k] = vv
	}
	if err := encodeQuery(q, opts.Query); err != nil {
		return nil, err
	}

	u := *endpoint
	u.RawQuery = q.Encode()

	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// fail emits the single error-level entry for a failed request.
func (c *Client) fail(requestID, method, path string, e *Error) *Error {
	return c.failStatus(requestID, method, path, e, nil)
}

// failStatus is fail with the error, if any, hit while reading the body of
// a non-success response.
func (c *Client) failStatus(requestID, method, path string, e *Error, bodyErr error) *Error {
	ev := c.logger.Error().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path)
	if bodyErr != nil {
		ev.AnErr("body_error", bodyErr)
	}

	switch {
	case e.Kind == KindTransport && errors.Is(e.Err, ErrTooManyRedirects):
		ev.Msg(msgTooManyRedirects)
	case e.Kind == KindTransport:
		ev.Str("error", e.Message).Msg("TMDB API request failed")
	case e.StatusCode >= http.StatusInternalServerError:
		ev.Int("status_code", e.StatusCode).
			Str("response_body", e.Body).
			Msg("TMDB API server error")
	default:
		ev.Int("status_code", e.StatusCode).
			Str("response_body", e.Body).
			Msg("TMDB API client error")
	}
	return e
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
