package tmdb

import (
	"context"

	"github.com/s0up4200/tmdbctl/transport"
)

// Genres groups the genre list endpoints.
type Genres struct {
	r Requester
}

// MovieList gets the official movie genres.
func (g Genres) MovieList(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, g.r, genreMovieList, params)
}

// TVList gets the official TV genres.
func (g Genres) TVList(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, g.r, genreTVList, params)
}
