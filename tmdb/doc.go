// Package tmdb provides typed access to the TMDB v3 resource groups.
//
// Each group (Movies, TV, People, Search, Genres, Configuration) maps a
// method call onto a fixed path template and forwards Params verbatim as the
// query string. All requests go through a single Requester, normally a
// *transport.Client, which injects the API key and classifies failures.
//
//	client, err := tmdb.New(os.Getenv("TMDB_API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Movies().Details(ctx, 278, tmdb.Params{"language": "en-US"})
//	if errors.Is(err, transport.ErrNotFound) {
//		// Handle missing movie
//	}
//
//	var movie struct {
//		ID    int    `json:"id"`
//		Title string `json:"title"`
//	}
//	err = resp.Decode(&movie)
//
// Responses are returned raw; decoding is left to the caller.
package tmdb
