package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/tmdb"
	"github.com/s0up4200/tmdbctl/transport"
)

type (
	listFunc   func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error)
	idFunc     func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error)
	searchFunc func(ctx context.Context, c *tmdb.Client, query string, p tmdb.Params) (*transport.Response, error)
)

// listCmd builds a command for an endpoint without identifiers.
func (a *app) listCmd(use, short string, withParams bool, fn listFunc) *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(flags.params)
			if err != nil {
				return err
			}
			resp, err := fn(cmd.Context(), a.client, params)
			if err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd.OutOrStdout(), &flags, resp)
		},
	}
	flags.register(cmd, withParams)
	return cmd
}

// idCmd builds a command for an endpoint keyed by one identifier. Several
// identifiers may be given; they are fetched concurrently and printed in
// argument order.
func (a *app) idCmd(use, short string, withParams bool, fn idFunc) *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			params, err := parseParams(flags.params)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			responses, err := fetchAll(ctx, ids, a.cfg.Output.Concurrency, func(ctx context.Context, id int) (*transport.Response, error) {
				return fn(ctx, a.client, id, params)
			})
			if err != nil {
				return err
			}
			for _, resp := range responses {
				if err := a.render(ctx, cmd.OutOrStdout(), &flags, resp); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags.register(cmd, withParams)
	return cmd
}

// searchCmd builds a command for a search endpoint; the arguments are
// joined into the search text.
func (a *app) searchCmd(use, short string, fn searchFunc) *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   use + " <query>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(flags.params)
			if err != nil {
				return err
			}
			resp, err := fn(cmd.Context(), a.client, strings.Join(args, " "), params)
			if err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd.OutOrStdout(), &flags, resp)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newMovieCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movie",
		Short: "Query movies",
	}
	cmd.AddCommand(
		a.idCmd("details", "Get movie details", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Details(ctx, id, p)
		}),
		a.listCmd("popular", "List popular movies", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Popular(ctx, p)
		}),
		a.listCmd("now-playing", "List movies now in theatres", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().NowPlaying(ctx, p)
		}),
		a.listCmd("upcoming", "List upcoming movies", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Upcoming(ctx, p)
		}),
		a.listCmd("top-rated", "List top rated movies", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().TopRated(ctx, p)
		}),
		a.idCmd("credits", "Get the cast and crew of a movie", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Credits(ctx, id, p)
		}),
		a.idCmd("reviews", "Get the reviews of a movie", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Reviews(ctx, id, p)
		}),
		a.idCmd("videos", "Get the videos of a movie", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Videos(ctx, id, p)
		}),
		a.idCmd("images", "Get the images of a movie", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Images(ctx, id, p)
		}),
		a.idCmd("similar", "List movies similar to a movie", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Similar(ctx, id, p)
		}),
		a.idCmd("recommendations", "List recommendations for a movie", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.Movies().Recommendations(ctx, id, p)
		}),
	)
	return cmd
}

func newTVCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tv",
		Short: "Query TV series, seasons and episodes",
	}
	cmd.AddCommand(
		a.idCmd("details", "Get series details", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.TV().Details(ctx, id, p)
		}),
		a.listCmd("popular", "List popular series", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.TV().Popular(ctx, p)
		}),
		a.listCmd("airing-today", "List series airing today", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.TV().AiringToday(ctx, p)
		}),
		a.listCmd("on-the-air", "List series airing in the next seven days", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.TV().OnTheAir(ctx, p)
		}),
		a.listCmd("top-rated", "List top rated series", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.TV().TopRated(ctx, p)
		}),
		a.idCmd("credits", "Get the cast and crew of a series", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.TV().Credits(ctx, id, p)
		}),
		a.idCmd("reviews", "Get the reviews of a series", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.TV().Reviews(ctx, id, p)
		}),
		a.idCmd("videos", "Get the videos of a series", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.TV().Videos(ctx, id, p)
		}),
		a.idCmd("images", "Get the images of a series", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.TV().Images(ctx, id, p)
		}),
		a.idCmd("similar", "List series similar to a series", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.TV().Similar(ctx, id, p)
		}),
		a.idCmd("recommendations", "List recommendations for a series", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.TV().Recommendations(ctx, id, p)
		}),
		a.episodeCmd("season", "Get a season of a series", 2),
		a.episodeCmd("episode", "Get an episode of a season", 3),
	)
	return cmd
}

// episodeCmd builds the season (series, season) and episode (series, season,
// episode) commands.
func (a *app) episodeCmd(use, short string, nargs int) *cobra.Command {
	var flags requestFlags
	usage := map[int]string{2: " <series> <season>", 3: " <series> <season> <episode>"}
	cmd := &cobra.Command{
		Use:   use + usage[nargs],
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			params, err := parseParams(flags.params)
			if err != nil {
				return err
			}

			var resp *transport.Response
			if nargs == 2 {
				resp, err = a.client.TV().Season(cmd.Context(), ids[0], ids[1], params)
			} else {
				resp, err = a.client.TV().Episode(cmd.Context(), ids[0], ids[1], ids[2], params)
			}
			if err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd.OutOrStdout(), &flags, resp)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newPersonCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "person",
		Aliases: []string{"people"},
		Short:   "Query people",
	}
	cmd.AddCommand(
		a.idCmd("details", "Get person details", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.People().Details(ctx, id, p)
		}),
		a.listCmd("popular", "List popular people", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.People().Popular(ctx, p)
		}),
		a.idCmd("movie-credits", "Get the movie credits of a person", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.People().MovieCredits(ctx, id, p)
		}),
		a.idCmd("tv-credits", "Get the TV credits of a person", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.People().TVCredits(ctx, id, p)
		}),
		a.idCmd("combined-credits", "Get the movie and TV credits of a person", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.People().CombinedCredits(ctx, id, p)
		}),
		a.idCmd("images", "Get the profile images of a person", false, func(ctx context.Context, c *tmdb.Client, id int, _ tmdb.Params) (*transport.Response, error) {
			return c.People().Images(ctx, id)
		}),
		a.idCmd("tagged-images", "Get the images a person is tagged in", true, func(ctx context.Context, c *tmdb.Client, id int, p tmdb.Params) (*transport.Response, error) {
			return c.People().TaggedImages(ctx, id, p)
		}),
		a.idCmd("external-ids", "Get the external IDs of a person", false, func(ctx context.Context, c *tmdb.Client, id int, _ tmdb.Params) (*transport.Response, error) {
			return c.People().ExternalIDs(ctx, id)
		}),
	)
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search movies, series, people, companies, collections and keywords",
	}
	cmd.AddCommand(
		a.searchCmd("movie", "Search movies", func(ctx context.Context, c *tmdb.Client, q string, p tmdb.Params) (*transport.Response, error) {
			return c.Search().Movies(ctx, q, p)
		}),
		a.searchCmd("tv", "Search TV series", func(ctx context.Context, c *tmdb.Client, q string, p tmdb.Params) (*transport.Response, error) {
			return c.Search().TV(ctx, q, p)
		}),
		a.searchCmd("person", "Search people", func(ctx context.Context, c *tmdb.Client, q string, p tmdb.Params) (*transport.Response, error) {
			return c.Search().People(ctx, q, p)
		}),
		a.searchCmd("company", "Search companies", func(ctx context.Context, c *tmdb.Client, q string, p tmdb.Params) (*transport.Response, error) {
			return c.Search().Companies(ctx, q, p)
		}),
		a.searchCmd("collection", "Search collections", func(ctx context.Context, c *tmdb.Client, q string, p tmdb.Params) (*transport.Response, error) {
			return c.Search().Collections(ctx, q, p)
		}),
		a.searchCmd("keyword", "Search keywords", func(ctx context.Context, c *tmdb.Client, q string, p tmdb.Params) (*transport.Response, error) {
			return c.Search().Keywords(ctx, q, p)
		}),
		a.searchCmd("multi", "Search movies, series and people at once", func(ctx context.Context, c *tmdb.Client, q string, p tmdb.Params) (*transport.Response, error) {
			return c.Search().Multi(ctx, q, p)
		}),
	)
	return cmd
}

func newGenresCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List the official genres",
	}
	cmd.AddCommand(
		a.listCmd("movie", "List movie genres", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.Genres().MovieList(ctx, p)
		}),
		a.listCmd("tv", "List TV genres", true, func(ctx context.Context, c *tmdb.Client, p tmdb.Params) (*transport.Response, error) {
			return c.Genres().TVList(ctx, p)
		}),
	)
	return cmd
}

func newConfigurationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configuration",
		Short: "Query the API configuration",
	}
	cmd.AddCommand(
		a.listCmd("details", "Get the system-wide configuration", false, func(ctx context.Context, c *tmdb.Client, _ tmdb.Params) (*transport.Response, error) {
			return c.Configuration().Details(ctx)
		}),
		a.listCmd("countries", "List the countries used throughout TMDB", false, func(ctx context.Context, c *tmdb.Client, _ tmdb.Params) (*transport.Response, error) {
			return c.Configuration().Countries(ctx)
		}),
		a.listCmd("jobs", "List the departments and jobs used throughout TMDB", false, func(ctx context.Context, c *tmdb.Client, _ tmdb.Params) (*transport.Response, error) {
			return c.Configuration().Jobs(ctx)
		}),
		a.listCmd("languages", "List the languages used throughout TMDB", false, func(ctx context.Context, c *tmdb.Client, _ tmdb.Params) (*transport.Response, error) {
			return c.Configuration().Languages(ctx)
		}),
		a.listCmd("primary-translations", "List the officially supported translations", false, func(ctx context.Context, c *tmdb.Client, _ tmdb.Params) (*transport.Response, error) {
			return c.Configuration().PrimaryTranslations(ctx)
		}),
		a.listCmd("timezones", "List the timezones used throughout TMDB", false, func(ctx context.Context, c *tmdb.Client, _ tmdb.Params) (*transport.Response, error) {
			return c.Configuration().Timezones(ctx)
		}),
	)
	return cmd
}
