package tmdb

import (
	"context"

	"github.com/s0up4200/tmdbctl/transport"
)

// Configuration groups the API configuration endpoints. None of them take
// parameters.
type Configuration struct {
	r Requester
}

// Details gets the system-wide configuration, including image base URLs and
// sizes.
func (c Configuration) Details(ctx context.Context) (*transport.Response, error) {
	return get(ctx, c.r, configurationDetails, nil)
}

func (c Configuration) Countries(ctx context.Context) (*transport.Response, error) {
	return get(ctx, c.r, configurationCountries, nil)
}

func (c Configuration) Jobs(ctx context.Context) (*transport.Response, error) {
	return get(ctx, c.r, configurationJobs, nil)
}

func (c Configuration) Languages(ctx context.Context) (*transport.Response, error) {
	return get(ctx, c.r, configurationLanguages, nil)
}

func (c Configuration) PrimaryTranslations(ctx context.Context) (*transport.Response, error) {
	return get(ctx, c.r, configurationPrimaryTranslations, nil)
}

func (c Configuration) Timezones(ctx context.Context) (*transport.Response, error) {
	return get(ctx, c.r, configurationTimezones, nil)
}
