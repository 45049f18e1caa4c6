package movie

import (
	"context"
	"log/slog"
	"strings"
)

type Service interface {
	Genres(ctx context.Context) ([]Genre, error)
	IsValidGenre(ctx context.Context, name string) (bool, error)
	ExtractGenres(ctx context.Context, text string) ([]string, error)
	DiscoverByGenres(ctx context.Context, genres []string, language string) ([]Movie, error)
	DiscoverByText(ctx context.Context, text string) ([]Movie, error)
}

// Usecase is the recommendation engine: it turns free text or genre names
// into a list of popular, highly rated movies.
type Usecase struct {
	c        Catalog
	catalog  *GenreCatalog
	language string
}

func NewUsecase(c Catalog) *Usecase {
	return &Usecase{
		c:        c,
		catalog:  NewGenreCatalog(c),
		language: DefaultLanguage,
	}
}

// WithLanguage sets the original language used when a request names none.
func (uc *Usecase) WithLanguage(language string) *Usecase {
	if language != "" {
		uc.language = language
	}
	return uc
}

func (uc *Usecase) Genres(ctx context.Context) ([]Genre, error) {
	return uc.catalog.Genres(ctx)
}

func (uc *Usecase) IsValidGenre(ctx context.Context, name string) (bool, error) {
	return uc.catalog.IsValidGenre(ctx, name)
}

// ExtractGenres returns every lower-cased catalog genre name that occurs in
// text, in catalog order.
func (uc *Usecase) ExtractGenres(ctx context.Context, text string) ([]string, error) {
	names, err := uc.catalog.Names(ctx)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(text)
	var found []string
	for _, name := range names {
		if strings.Contains(lowered, name) {
			found = append(found, name)
		}
	}

	slog.InfoContext(ctx, "detected genres", "genres", found, "text", text)
	return found, nil
}

func (uc *Usecase) DiscoverByGenres(ctx context.Context, genres []string, language string) ([]Movie, error) {
	if len(genres) == 0 {
		return nil, ErrInvalidGenres
	}
	if language == "" {
		language = uc.language
	}

	slog.InfoContext(ctx, "searching for movies", "genres", strings.Join(genres, ", "), "language", language)
	codes, err := uc.catalog.GenreCodes(ctx, genres)
	if err != nil {
		return nil, err
	}

	movies, err := uc.c.DiscoverMovies(ctx, DiscoverQuery{
		IncludeAdult:     false,
		GenreIDs:         codes,
		SortBy:           SortByPopularityDesc,
		MinVoteAverage:   MinVoteAverage,
		OriginalLanguage: language,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "found movies", "count", len(movies))
	return movies, nil
}

func (uc *Usecase) DiscoverByText(ctx context.Context, text string) ([]Movie, error) {
	genres, err := uc.ExtractGenres(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, &NoGenreDetectedError{Text: text}
	}

	return uc.DiscoverByGenres(ctx, genres, uc.language)
}
