// Package transport is the network boundary of the TMDB client.
//
// Every request to the API goes through Client.Request. The client resolves
// the resource path against the versioned API root, injects the API key into
// the query string, logs the request with the key masked, and classifies any
// failure exactly once into an *Error.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := transport.New(
//		"your-api-key",
//		transport.WithLogger(logger),
//		transport.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Get(ctx, "movie/278", nil)
//
// # Error Handling
//
// Failures are returned as *Error carrying a Kind. The sentinels
// ErrAuthentication, ErrNotFound, ErrRateLimited, ErrTransport and ErrGeneric
// match with errors.Is:
//
//	if errors.Is(err, transport.ErrNotFound) {
//		// Handle missing resource
//	}
//
// The client never retries or caches; rate limiting is surfaced to the caller
// as ErrRateLimited.
package transport
