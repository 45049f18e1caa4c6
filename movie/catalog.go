package movie

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Catalog is the external movie catalog service.
type Catalog interface {
	ListGenres(ctx context.Context) ([]Genre, error)
	DiscoverMovies(ctx context.Context, q DiscoverQuery) ([]Movie, error)
}

// GenreCatalog caches the catalog's genre list. The list is fetched lazily on
// first use and never refreshed; a failed fetch leaves the cache unfetched.
type GenreCatalog struct {
	c Catalog

	mu      sync.Mutex
	fetched bool
	genres  []Genre
}

func NewGenreCatalog(c Catalog) *GenreCatalog {
	return &GenreCatalog{c: c}
}

// Genres returns the cached genre list, fetching it once if needed. The mutex
// is held across the fetch so concurrent first callers share one request.
func (gc *GenreCatalog) Genres(ctx context.Context) ([]Genre, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if gc.fetched {
		return gc.genres, nil
	}

	slog.InfoContext(ctx, "no movie genres cached, calling catalog")
	genres, err := gc.c.ListGenres(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error getting the list of movie genres", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	gc.genres = genres
	gc.fetched = true
	return gc.genres, nil
}

// Names returns the lower-cased genre names in catalog order.
func (gc *GenreCatalog) Names(ctx context.Context) ([]string, error) {
	genres, err := gc.Genres(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = strings.ToLower(g.Name)
	}
	return names, nil
}

func (gc *GenreCatalog) IsValidGenre(ctx context.Context, name string) (bool, error) {
	genres, err := gc.Genres(ctx)
	if err != nil {
		return false, err
	}

	for _, g := range genres {
		if strings.EqualFold(g.Name, name) {
			slog.DebugContext(ctx, "genre is valid", "genre", name)
			return true, nil
		}
	}

	slog.DebugContext(ctx, "genre is not valid", "genre", name)
	return false, nil
}

// GenreCodes maps names to genre ids in input order. The first name without a
// match aborts the call.
func (gc *GenreCatalog) GenreCodes(ctx context.Context, names []string) ([]int, error) {
	genres, err := gc.Genres(ctx)
	if err != nil {
		return nil, err
	}

	codes := make([]int, 0, len(names))
	for _, name := range names {
		id, ok := lookup(genres, name)
		if !ok {
			return nil, &UnknownGenreError{Name: name}
		}
		codes = append(codes, id)
	}
	return codes, nil
}

func lookup(genres []Genre, name string) (int, bool) {
	for _, g := range genres {
		if strings.EqualFold(g.Name, name) {
			return g.ID, true
		}
	}
	return 0, false
}
