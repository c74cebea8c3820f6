package tmdb

// endpoint is a path template relative to the API root. Each %d is
// substituted positionally with an identifier.
type endpoint string

// Movies
const (
	movieDetails         endpoint = "movie/%d"
	moviePopular         endpoint = "movie/popular"
	movieNowPlaying      endpoint = "movie/now_playing"
	movieUpcoming        endpoint = "movie/upcoming"
	movieTopRated        endpoint = "movie/top_rated"
	movieCredits         endpoint = "movie/%d/credits"
	movieReviews         endpoint = "movie/%d/reviews"
	movieVideos          endpoint = "movie/%d/videos"
	movieImages          endpoint = "movie/%d/images"
	movieSimilar         endpoint = "movie/%d/similar"
	movieRecommendations endpoint = "movie/%d/recommendations"
)

// TV
const (
	tvDetails         endpoint = "tv/%d"
	tvPopular         endpoint = "tv/popular"
	tvAiringToday     endpoint = "tv/airing_today"
	tvOnTheAir        endpoint = "tv/on_the_air"
	tvTopRated        endpoint = "tv/top_rated"
	tvCredits         endpoint = "tv/%d/credits"
	tvReviews         endpoint = "tv/%d/reviews"
	tvVideos          endpoint = "tv/%d/videos"
	tvImages          endpoint = "tv/%d/images"
	tvSimilar         endpoint = "tv/%d/similar"
	tvRecommendations endpoint = "tv/%d/recommendations"
	tvSeason          endpoint = "tv/%d/season/%d"
	tvEpisode         endpoint = "tv/%d/season/%d/episode/%d"
)

// People
const (
	personDetails         endpoint = "person/%d"
	personPopular         endpoint = "person/popular"
	personMovieCredits    endpoint = "person/%d/movie_credits"
	personTVCredits       endpoint = "person/%d/tv_credits"
	personCombinedCredits endpoint = "person/%d/combined_credits"
	personImages          endpoint = "person/%d/images"
	personTaggedImages    endpoint = "person/%d/tagged_images"
	personExternalIDs     endpoint = "person/%d/external_ids"
)

// Search
const (
	searchMovie      endpoint = "search/movie"
	searchTV         endpoint = "search/tv"
	searchPerson     endpoint = "search/person"
	searchCompany    endpoint = "search/company"
	searchCollection endpoint = "search/collection"
	searchKeyword    endpoint = "search/keyword"
	searchMulti      endpoint = "search/multi"
)

// Genres
const (
	genreMovieList endpoint = "genre/movie/list"
	genreTVList    endpoint = "genre/tv/list"
)

// Configuration
const (
	configurationDetails             endpoint = "configuration"
	configurationCountries           endpoint = "configuration/countries"
	configurationJobs                endpoint = "configuration/jobs"
	configurationLanguages           endpoint = "configuration/languages"
	configurationPrimaryTranslations endpoint = "configuration/primary_translations"
	configurationTimezones           endpoint = "configuration/timezones"
)
