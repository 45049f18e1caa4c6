package movie

import (
	"fmt"

	"moviebot/errs"
)

const (
	// DefaultLanguage is the original language used when a discovery
	// request does not name one.
	DefaultLanguage = "en"

	// MinVoteAverage is the lowest average rating a recommendation may have.
	MinVoteAverage = 7.0

	// SortByPopularityDesc orders discovery results by descending popularity.
	SortByPopularityDesc = "popularity.desc"
)

var (
	ErrCatalogUnavailable = errs.Errorf(errs.EUNAVAILABLE, "movie: catalog unavailable")
	ErrUnknownGenre       = errs.Errorf(errs.ENOTFOUND, "movie: unknown genre")
	ErrNoGenreDetected    = errs.Errorf(errs.EUNPROCESSABLE, "movie: no genre detected")
	ErrInvalidGenres      = errs.Errorf(errs.EINVALID, "movie: at least one genre is required")
)

// Genre is a movie category as defined by the catalog service.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is a discovery result. It mirrors the catalog's record; the bot only
// relies on OriginalTitle and VoteAverage.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Adult            bool    `json:"adult"`
}

// DiscoverQuery holds the filters of a single discovery request.
type DiscoverQuery struct {
	IncludeAdult     bool
	GenreIDs         []int
	SortBy           string
	MinVoteAverage   float64
	OriginalLanguage string
}

// UnknownGenreError reports a genre name without a catalog code.
type UnknownGenreError struct {
	Name string
}

func (e *UnknownGenreError) Error() string {
	return fmt.Sprintf("movie: unknown genre %q", e.Name)
}

func (e *UnknownGenreError) Unwrap() error {
	return ErrUnknownGenre
}

// NoGenreDetectedError reports a text in which no catalog genre occurs.
type NoGenreDetectedError struct {
	Text string
}

func (e *NoGenreDetectedError) Error() string {
	return fmt.Sprintf("movie: no valid genres found in text %q", e.Text)
}

func (e *NoGenreDetectedError) Unwrap() error {
	return ErrNoGenreDetected
}
