package tmdb

import (
	"context"

	"github.com/s0up4200/tmdbctl/transport"
)

// Search groups the search endpoints. Each operation sets the "query"
// parameter to the search text, replacing any value already in params.
// The caller's params are not modified.
type Search struct {
	r Requester
}

func (s Search) Movies(ctx context.Context, query string, params Params) (*transport.Response, error) {
	return get(ctx, s.r, searchMovie, withQuery(query, params))
}

func (s Search) TV(ctx context.Context, query string, params Params) (*transport.Response, error) {
	return get(ctx, s.r, searchTV, withQuery(query, params))
}

func (s Search) People(ctx context.Context, query string, params Params) (*transport.Response, error) {
	return get(ctx, s.r, searchPerson, withQuery(query, params))
}

func (s Search) Companies(ctx context.Context, query string, params Params) (*transport.Response, error) {
	return get(ctx, s.r, searchCompany, withQuery(query, params))
}

func (s Search) Collections(ctx context.Context, query string, params Params) (*transport.Response, error) {
	return get(ctx, s.r, searchCollection, withQuery(query, params))
}

func (s Search) Keywords(ctx context.Context, query string, params Params) (*transport.Response, error) {
	return get(ctx, s.r, searchKeyword, withQuery(query, params))
}

// Multi searches movies, TV series and people in a single request.
func (s Search) Multi(ctx context.Context, query string, params Params) (*transport.Response, error) {
	return get(ctx, s.r, searchMulti, withQuery(query, params))
}
