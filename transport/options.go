package transport

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the versioned root every path is resolved against.
	DefaultBaseURL = "https://api.themoviedb.org/3/"

	defaultTimeout        = 30 * time.Second
	defaultConnectTimeout = 10 * time.Second
	defaultMaxRedirects   = 10

	// DefaultMaxErrorBodyBytes limits how much of a failed response body is kept.
	DefaultMaxErrorBodyBytes int64 = 64 << 10
)

// Doer is the underlying HTTP transport. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds transport settings. Use DefaultConfig as a baseline.
type Config struct {
	// BaseURL is fixed at construction; relative paths resolve against it.
	BaseURL string

	// Timeout bounds the whole request.
	Timeout time.Duration

	// ConnectTimeout bounds connection establishment.
	ConnectTimeout time.Duration

	// MaxRedirects is the redirect limit of the default Doer.
	MaxRedirects int

	// MaxErrorBodyBytes caps the body captured into Error.Body.
	MaxErrorBodyBytes int64

	// DefaultHeaders are sent with every request. Per-call headers may add
	// to them or change a value but never remove one.
	DefaultHeaders map[string]string

	// DefaultQuery holds parameters sent with every request unless the
	// caller supplies the same key.
	DefaultQuery map[string]string

	Logger zerolog.Logger

	// Doer overrides the default *http.Client built from the timeouts above.
	Doer Doer

	// Registerer enables request metrics when non-nil.
	Registerer prometheus.Registerer
}

// DefaultConfig returns the settings used when no option overrides them.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           defaultTimeout,
		ConnectTimeout:    defaultConnectTimeout,
		MaxRedirects:      defaultMaxRedirects,
		MaxErrorBodyBytes: DefaultMaxErrorBodyBytes,
		DefaultHeaders: map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		},
		DefaultQuery: map[string]string{},
		Logger:       zerolog.Nop(),
	}
}

// Option configures a Client.
type Option func(*Config)

// WithBaseURL points the client at a different API root, e.g. a proxy or a
// test server. The value cannot change after construction.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithTimeout sets the total request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithConnectTimeout sets the connection establishment timeout.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ConnectTimeout = timeout
	}
}

// WithMaxRedirects sets how many redirects the default Doer follows.
func WithMaxRedirects(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxRedirects = n
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.DefaultHeaders == nil {
			c.DefaultHeaders = make(map[string]string)
		}
		c.DefaultHeaders[key] = value
	}
}

// WithHeaders adds several headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Config) {
		for k, v := range headers {
			WithHeader(k, v)(c)
		}
	}
}

// WithDefaultQuery adds a query parameter sent with every request.
func WithDefaultQuery(key, value string) Option {
	return func(c *Config) {
		if c.DefaultQuery == nil {
			c.DefaultQuery = make(map[string]string)
		}
		c.DefaultQuery[key] = value
	}
}

// WithLanguage sets the default `language` query parameter.
func WithLanguage(language string) Option {
	return func(c *Config) {
		if language != "" {
			WithDefaultQuery("language", language)(c)
		}
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithDoer replaces the underlying HTTP transport.
func WithDoer(doer Doer) Option {
	return func(c *Config) {
		c.Doer = doer
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Config) {
		if httpClient != nil {
			c.Doer = httpClient
		}
	}
}

// WithMetrics registers request metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registerer = reg
	}
}

// WithMaxErrorBodyBytes caps the body captured for failed responses.
func WithMaxErrorBodyBytes(n int64) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxErrorBodyBytes = n
		}
	}
}
