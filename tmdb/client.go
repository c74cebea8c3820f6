package tmdb

import (
	"context"
	"fmt"

	"github.com/s0up4200/tmdbctl/transport"
)

// Requester is the part of the transport the resource clients depend on.
// *transport.Client implements it.
type Requester interface {
	Get(ctx context.Context, path string, opts *transport.RequestOptions) (*transport.Response, error)
}

// Params are free-form query parameters forwarded verbatim to the API.
type Params map[string]any

// Client is the entry point to the TMDB resource groups.
type Client struct {
	requester Requester
}

// New creates a Client backed by a new transport.Client.
func New(apiKey string, opts ...transport.Option) (*Client, error) {
	t, err := transport.New(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithRequester(t), nil
}

// NewWithRequester creates a Client that sends every request through r.
func NewWithRequester(r Requester) *Client {
	return &Client{requester: r}
}

// Requester returns the underlying transport.
func (c *Client) Requester() Requester {
	return c.requester
}

// Movies returns the movie endpoints.
func (c *Client) Movies() Movies {
	return Movies{r: c.requester}
}

// TV returns the TV series endpoints.
func (c *Client) TV() TV {
	return TV{r: c.requester}
}

// People returns the person endpoints.
func (c *Client) People() People {
	return People{r: c.requester}
}

// Search returns the search endpoints.
func (c *Client) Search() Search {
	return Search{r: c.requester}
}

// Genres returns the genre list endpoints.
func (c *Client) Genres() Genres {
	return Genres{r: c.requester}
}

// Configuration returns the API configuration endpoints.
func (c *Client) Configuration() Configuration {
	return Configuration{r: c.requester}
}

// get substitutes ids into the template and issues a GET with params as the
// query. Params are passed through without validation.
func get(ctx context.Context, r Requester, ep endpoint, params Params, ids ...int) (*transport.Response, error) {
	return r.Get(ctx, ep.path(ids...), &transport.RequestOptions{Query: params})
}

func (ep endpoint) path(ids ...int) string {
	if len(ids) == 0 {
		return string(ep)
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(string(ep), args...)
}

// withQuery returns a copy of params with the search text set under "query".
func withQuery(query string, params Params) Params {
	out := make(Params, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out["query"] = query
	return out
}
