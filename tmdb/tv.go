package tmdb

import (
	"context"

	"github.com/s0up4200/tmdbctl/transport"
)

// TV groups the TV series endpoints.
type TV struct {
	r Requester
}

func (t TV) Details(ctx context.Context, seriesID int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvDetails, params, seriesID)
}

func (t TV) Popular(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvPopular, params)
}

// AiringToday gets the series with an episode airing today.
func (t TV) AiringToday(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvAiringToday, params)
}

// OnTheAir gets the series with an episode airing in the next seven days.
func (t TV) OnTheAir(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvOnTheAir, params)
}

func (t TV) TopRated(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvTopRated, params)
}

func (t TV) Credits(ctx context.Context, seriesID int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvCredits, params, seriesID)
}

func (t TV) Reviews(ctx context.Context, seriesID int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvReviews, params, seriesID)
}

func (t TV) Videos(ctx context.Context, seriesID int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvVideos, params, seriesID)
}

func (t TV) Images(ctx context.Context, seriesID int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvImages, params, seriesID)
}

func (t TV) Similar(ctx context.Context, seriesID int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvSimilar, params, seriesID)
}

func (t TV) Recommendations(ctx context.Context, seriesID int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvRecommendations, params, seriesID)
}

// Season gets a season of a series, including its episode list.
func (t TV) Season(ctx context.Context, seriesID, seasonNumber int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvSeason, params, seriesID, seasonNumber)
}

// Episode gets a single episode of a season.
func (t TV) Episode(ctx context.Context, seriesID, seasonNumber, episodeNumber int, params Params) (*transport.Response, error) {
	return get(ctx, t.r, tvEpisode, params, seriesID, seasonNumber, episodeNumber)
}
