package tmdb

import (
	"context"

	"github.com/s0up4200/tmdbctl/transport"
)

// People groups the person endpoints.
type People struct {
	r Requester
}

// Details gets the primary information about a person.
func (p People) Details(ctx context.Context, personID int, params Params) (*transport.Response, error) {
	return get(ctx, p.r, personDetails, params, personID)
}

// Popular gets the list of popular people.
func (p People) Popular(ctx context.Context, params Params) (*transport.Response, error) {
	return get(ctx, p.r, personPopular, params)
}

// MovieCredits gets the movie cast and crew credits of a person.
func (p People) MovieCredits(ctx context.Context, personID int, params Params) (*transport.Response, error) {
	return get(ctx, p.r, personMovieCredits, params, personID)
}

// TVCredits gets the TV cast and crew credits of a person.
func (p People) TVCredits(ctx context.Context, personID int, params Params) (*transport.Response, error) {
	return get(ctx, p.r, personTVCredits, params, personID)
}

// CombinedCredits gets movie and TV credits of a person in one list.
func (p People) CombinedCredits(ctx context.Context, personID int, params Params) (*transport.Response, error) {
	return get(ctx, p.r, personCombinedCredits, params, personID)
}

// Images gets the profile images of a person. The endpoint takes no parameters.
func (p People) Images(ctx context.Context, personID int) (*transport.Response, error) {
	return get(ctx, p.r, personImages, nil, personID)
}

// TaggedImages gets the images a person has been tagged in.
func (p People) TaggedImages(ctx context.Context, personID int, params Params) (*transport.Response, error) {
	return get(ctx, p.r, personTaggedImages, params, personID)
}

// ExternalIDs gets the IDs of a person on other services. The endpoint takes
// no parameters.
func (p People) ExternalIDs(ctx context.Context, personID int) (*transport.Response, error) {
	return get(ctx, p.r, personExternalIDs, nil, personID)
}
