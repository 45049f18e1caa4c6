package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviebot/httpserver"
	"moviebot/mention"
	"moviebot/movie"
	"moviebot/pkg/config"
	"moviebot/pkg/jwt"
	"moviebot/pkg/sentry"
	"moviebot/pkg/supervisor"
	"moviebot/tmdb"
	"moviebot/twitter"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	var (
		issueToken string
		tokenTTL   time.Duration
	)
	flag.StringVar(&issueToken, "issue-token", "", "Print an operator token for this subject and exit")
	flag.DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "Lifetime of the issued operator token")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	if issueToken != "" {
		if cfg.Auth.JWTSecret == "" {
			slog.Error("AUTH_JWT_SECRET is required to issue tokens")
			os.Exit(1)
		}
		token, err := jwt.NewProvider(cfg.Auth.JWTSecret, tokenTTL).GenerateOperatorToken(issueToken)
		if err != nil {
			slog.Error("Cannot issue token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := tmdb.NewClient(tmdb.Options{
		BaseURL: cfg.TMDB.BaseURL,
		APIKey:  cfg.TMDB.APIKey,
		Timeout: time.Duration(cfg.TMDB.Timeout) * time.Second,
	})
	if err != nil {
		slog.Error("Cannot create movie catalog client", "error", err)
		os.Exit(1)
	}
	movieUC := movie.NewUsecase(catalog).WithLanguage(cfg.TMDB.Language)

	server := httpserver.Default(cfg)
	server.MovieService = movieUC

	tree := supervisor.NewTree(logger, supervisor.DefaultTreeConfig())
	tree.AddAPIService(server)

	if cfg.Twitter.Disabled {
		slog.Info("twitter disabled, serving the HTTP API only")
	} else {
		stream, err := newMentionStream(ctx, cfg, movieUC, server)
		if err != nil {
			slog.Error("Cannot start mention stream", "error", err)
			os.Exit(1)
		}
		tree.AddIngestService(stream)
	}

	slog.Info("moviebot started", "addr", server.Addr)
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		slog.Error("moviebot stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("moviebot stopped")
}

// newMentionStream connects the social account and wires replies. The HTTP
// server gets the same mention service so replies can be triggered by hand.
func newMentionStream(ctx context.Context, cfg *config.Config, movies movie.Service, server *httpserver.Server) (*twitter.Stream, error) {
	client, err := twitter.NewClient(ctx, twitter.Options{
		BaseURL:          cfg.Twitter.BaseURL,
		BearerToken:      cfg.Twitter.BearerToken,
		AccessToken:      cfg.Twitter.AccessToken,
		RefreshToken:     cfg.Twitter.RefreshToken,
		ClientID:         cfg.Twitter.ClientID,
		ClientSecret:     cfg.Twitter.ClientSecret,
		RepliesPerMinute: cfg.Twitter.RepliesPerMinute,
	})
	if err != nil {
		return nil, err
	}

	me, err := client.VerifyCredentials(ctx)
	if err != nil {
		slog.Error("Error during authentication", "error", err)
		sentry.Error(err)
	} else {
		slog.Info("Authentication OK", "username", me.Username)
	}

	if err := client.EnsureRule(ctx, cfg.Twitter.AccountName); err != nil {
		return nil, err
	}

	mentionUC := mention.NewUsecase(movies, client)
	server.MentionService = mentionUC

	stream := twitter.NewStream(client, mentionUC.OnMention)
	stream.IgnoreAuthorID = me.ID
	return stream, nil
}
