package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"moviebot/mention"
	"moviebot/movie"
	"moviebot/pkg/config"
	"moviebot/tmdb"
)

func main() {
	var (
		text     string
		genres   string
		language string
		limit    int
		reply    string
	)

	flag.StringVar(&text, "text", "", "Free text to detect genres in")
	flag.StringVar(&genres, "genres", "", "Comma separated genre names (overrides -text)")
	flag.StringVar(&language, "language", "", "Original language of the movies (default from TMDB_LANGUAGE)")
	flag.IntVar(&limit, "limit", 10, "Max movies to print (0 = all)")
	flag.StringVar(&reply, "reply", "", "Print a random pick formatted as a reply to this handle")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if text == "" && genres == "" {
		slog.Error("one of -text or -genres is required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	catalog, err := tmdb.NewClient(tmdb.Options{
		BaseURL: cfg.TMDB.BaseURL,
		APIKey:  cfg.TMDB.APIKey,
		Timeout: time.Duration(cfg.TMDB.Timeout) * time.Second,
	})
	if err != nil {
		slog.Error("cannot create movie catalog client", "error", err)
		os.Exit(1)
	}
	uc := movie.NewUsecase(catalog).WithLanguage(cfg.TMDB.Language)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	movies, err := recommend(ctx, uc, text, genres, language)
	if err != nil {
		var noGenre *movie.NoGenreDetectedError
		if errors.As(err, &noGenre) {
			slog.Warn("no genre detected", "text", noGenre.Text)
			os.Exit(3)
		}
		slog.Error("recommendation failed", "error", err)
		os.Exit(1)
	}

	if reply != "" {
		m, err := mention.Pick(movies, nil)
		if err != nil {
			slog.Error("nothing to recommend", "error", err)
			os.Exit(3)
		}
		fmt.Println(mention.FormatReply(strings.TrimPrefix(reply, "@"), m))
		return
	}

	printMovies(os.Stdout, movies, limit)
}

func recommend(ctx context.Context, uc movie.Service, text, genres, language string) ([]movie.Movie, error) {
	if genres != "" {
		var names []string
		for _, g := range strings.Split(genres, ",") {
			if g = strings.TrimSpace(g); g != "" {
				names = append(names, g)
			}
		}
		return uc.DiscoverByGenres(ctx, names, language)
	}
	return uc.DiscoverByText(ctx, text)
}

func printMovies(w io.Writer, movies []movie.Movie, limit int) {
	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	for _, m := range movies {
		fmt.Fprintf(w, "%-8d %4.1f  %s (%s)\n", m.ID, m.VoteAverage, m.OriginalTitle, m.ReleaseDate)
	}
}
