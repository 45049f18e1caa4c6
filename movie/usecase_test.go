package movie_test

import (
	"context"
	"testing"

	"moviebot/errs"
	"moviebot/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var genreToMovie = map[int]movie.Movie{
	28: {ID: 562, OriginalTitle: "Die Hard", VoteAverage: 7.8},
	12: {ID: 120, OriginalTitle: "The Lord of the Rings", VoteAverage: 8.4},
	16: {ID: 129, OriginalTitle: "Spirited Away", VoteAverage: 8.5},
}

// fakeCatalog returns one movie per requested genre and records every
// discovery query it receives.
type fakeCatalog struct {
	listCalls int
	queries   []movie.DiscoverQuery
}

func (f *fakeCatalog) ListGenres(context.Context) ([]movie.Genre, error) {
	f.listCalls++
	return dummyGenres, nil
}

func (f *fakeCatalog) DiscoverMovies(_ context.Context, q movie.DiscoverQuery) ([]movie.Movie, error) {
	f.queries = append(f.queries, q)
	var movies []movie.Movie
	for _, id := range q.GenreIDs {
		if m, ok := genreToMovie[id]; ok {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

func TestExtractGenres(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "single genre inside a sentence",
			text:     "Example input string containing the word action",
			expected: []string{"action"},
		},
		{
			name:     "genres returned in catalog order",
			text:     "Animation and Action, please!",
			expected: []string{"action", "animation"},
		},
		{
			name:     "no genre",
			text:     "Hello",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := movie.NewUsecase(&fakeCatalog{})

			got, err := uc.ExtractGenres(context.Background(), tt.text)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDiscoverByGenres(t *testing.T) {
	t.Run("should issue one discovery query with fixed filters", func(t *testing.T) {
		c := new(MockCatalog)
		uc := movie.NewUsecase(c)
		want := []movie.Movie{
			{ID: 2, OriginalTitle: "Mad Max: Fury Road", VoteAverage: 7.6},
			{ID: 1, OriginalTitle: "Die Hard", VoteAverage: 7.8},
		}
		c.On("ListGenres", mock.Anything).Return(dummyGenres, nil).Once()
		c.On("DiscoverMovies", mock.Anything, movie.DiscoverQuery{
			IncludeAdult:     false,
			GenreIDs:         []int{28},
			SortBy:           "popularity.desc",
			MinVoteAverage:   7,
			OriginalLanguage: "en",
		}).Return(want, nil).Once()

		got, err := uc.DiscoverByGenres(context.Background(), []string{"Action"}, "")

		require.NoError(t, err)
		assert.Equal(t, want, got)
		c.AssertExpectations(t)
	})

	t.Run("should pass the requested language", func(t *testing.T) {
		f := &fakeCatalog{}
		uc := movie.NewUsecase(f)

		_, err := uc.DiscoverByGenres(context.Background(), []string{"animation"}, "ja")

		require.NoError(t, err)
		require.Len(t, f.queries, 1)
		assert.Equal(t, "ja", f.queries[0].OriginalLanguage)
		assert.Equal(t, []int{16}, f.queries[0].GenreIDs)
	})

	t.Run("should not discover on unknown genre", func(t *testing.T) {
		c := new(MockCatalog)
		uc := movie.NewUsecase(c)
		c.On("ListGenres", mock.Anything).Return(dummyGenres, nil).Once()

		got, err := uc.DiscoverByGenres(context.Background(), []string{"Sci-Fi"}, "en")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, movie.ErrUnknownGenre)
		c.AssertNotCalled(t, "DiscoverMovies", mock.Anything, mock.Anything)
	})

	t.Run("should reject an empty genre list", func(t *testing.T) {
		c := new(MockCatalog)
		uc := movie.NewUsecase(c)

		_, err := uc.DiscoverByGenres(context.Background(), nil, "en")

		assert.Equal(t, movie.ErrInvalidGenres, err)
		c.AssertNotCalled(t, "ListGenres", mock.Anything)
	})
}

func TestDiscoverByText(t *testing.T) {
	f := &fakeCatalog{}
	uc := movie.NewUsecase(f)
	ctx := context.Background()

	action, err := uc.DiscoverByText(ctx, "Example input string containing the word action")
	require.NoError(t, err)
	adventure, err := uc.DiscoverByText(ctx, "Adventure!")
	require.NoError(t, err)
	twoGenres, err := uc.DiscoverByText(ctx, "Action and Animation, please!")
	require.NoError(t, err)

	assert.Equal(t, "Die Hard", action[0].OriginalTitle)
	assert.Equal(t, "The Lord of the Rings", adventure[0].OriginalTitle)
	assert.ElementsMatch(t, []movie.Movie{genreToMovie[28], genreToMovie[16]}, twoGenres)
	assert.Equal(t, []int{28, 16}, f.queries[2].GenreIDs)
	assert.Equal(t, 1, f.listCalls, "genre list should only be fetched once")
}

func TestDiscoverByText_NoGenre(t *testing.T) {
	f := &fakeCatalog{}
	uc := movie.NewUsecase(f)

	got, err := uc.DiscoverByText(context.Background(), "Hello")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, movie.ErrNoGenreDetected)
	assert.Equal(t, errs.EUNPROCESSABLE, errs.ErrorCode(err))

	var noGenre *movie.NoGenreDetectedError
	require.ErrorAs(t, err, &noGenre)
	assert.Equal(t, "Hello", noGenre.Text)
	assert.Empty(t, f.queries)
}

func TestWithLanguage(t *testing.T) {
	f := &fakeCatalog{}
	uc := movie.NewUsecase(f).WithLanguage("fr")
	ctx := context.Background()

	_, err := uc.DiscoverByText(ctx, "some animation")
	require.NoError(t, err)
	_, err = uc.DiscoverByGenres(ctx, []string{"Action"}, "")
	require.NoError(t, err)
	_, err = uc.DiscoverByGenres(ctx, []string{"Action"}, "ja")
	require.NoError(t, err)

	require.Len(t, f.queries, 3)
	assert.Equal(t, "fr", f.queries[0].OriginalLanguage)
	assert.Equal(t, "fr", f.queries[1].OriginalLanguage)
	assert.Equal(t, "ja", f.queries[2].OriginalLanguage)
}
