package tmdb

import (
	"context"

	"github.com/s0up4200/tmdbctl/transport"
)

// Movies groups the movie endpoints.
type Movies struct {
	r Requester
}

// Details gets the primary information about a movie.
func (m Movies) Details(ctx context.Context, movieID int, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieDetails, params, movieID)
}

// Popular gets the list of popular movies.
func (m Movies) Popular(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, m.r, moviePopular, params)
}

// NowPlaying gets the movies currently in theatres.
func (m Movies) NowPlaying(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieNowPlaying, params)
}

// Upcoming gets the upcoming theatrical releases.
func (m Movies) Upcoming(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieUpcoming, params)
}

// TopRated gets the top rated movies.
func (m Movies) TopRated(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieTopRated, params)
}

// Credits gets the cast and crew of a movie.
func (m Movies) Credits(ctx context.Context, movieID int, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieCredits, params, movieID)
}

// Reviews gets the user reviews of a movie.
func (m Movies) Reviews(ctx context.Context, movieID int, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieReviews, params, movieID)
}

// Videos gets the videos attached to a movie.
func (m Movies) Videos(ctx context.Context, movieID int, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieVideos, params, movieID)
}

// Images gets the images attached to a movie.
func (m Movies) Images(ctx context.Context, movieID int, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieImages, params, movieID)
}

// Similar gets movies similar to the given one.
func (m Movies) Similar(ctx context.Context, movieID int, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieSimilar, params, movieID)
}

// Recommendations gets recommended movies for the given one.
func (m Movies) Recommendations(ctx context.Context, movieID int, params Params) (*transport.Response, error) {
	return get(ctx, m.r, movieRecommendations, params, movieID)
}
