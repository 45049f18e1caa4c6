package mention

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"moviebot/movie"
	"moviebot/pkg/metrics"
	"moviebot/pkg/sentry"
)

type Service interface {
	Reply(ctx context.Context, m Mention) (Reply, error)
	OnMention(ctx context.Context, m Mention)
}

// Recommender produces recommendations for free text.
type Recommender interface {
	DiscoverByText(ctx context.Context, text string) ([]movie.Movie, error)
}

// Poster publishes a reply to a post and returns the new post id.
type Poster interface {
	PostReply(ctx context.Context, text, inReplyTo string) (string, error)
}

type Usecase struct {
	r   Recommender
	p   Poster
	rng *rand.Rand
}

func NewUsecase(r Recommender, p Poster) *Usecase {
	return &Usecase{r: r, p: p}
}

// WithRand makes movie selection deterministic. Used by tests.
func (uc *Usecase) WithRand(rng *rand.Rand) *Usecase {
	uc.rng = rng
	return uc
}

// Reply recommends a movie for the mention and posts it as a reply.
func (uc *Usecase) Reply(ctx context.Context, m Mention) (Reply, error) {
	if err := m.Validate(); err != nil {
		return Reply{}, err
	}

	movies, err := uc.r.DiscoverByText(ctx, m.Text)
	if err != nil {
		return Reply{}, err
	}

	slog.InfoContext(ctx, "received recommendations, picking one at random", "count", len(movies))
	picked, err := Pick(movies, uc.rng)
	if err != nil {
		return Reply{}, err
	}

	text := FormatReply(m.AuthorName, picked)
	slog.InfoContext(ctx, "will reply", "in_reply_to", m.ID, "text", text)

	postID, err := uc.p.PostReply(ctx, text, m.ID)
	if err != nil {
		return Reply{}, err
	}

	return Reply{
		InReplyTo: m.ID,
		PostID:    postID,
		Text:      text,
		Movie:     picked,
	}, nil
}

// OnMention handles a mention from the stream. Failures are logged and the
// mention is dropped without a reply.
func (uc *Usecase) OnMention(ctx context.Context, m Mention) {
	slog.InfoContext(ctx, "received a mention", "id", m.ID, "author", m.AuthorName, "text", m.Text)
	metrics.MentionsReceived.Inc()

	if _, err := uc.Reply(ctx, m); err != nil {
		slog.ErrorContext(ctx, "could not obtain a movie recommendation for this mention",
			"id", m.ID, "error", err)
		metrics.Replies.WithLabelValues(outcome(err)).Inc()
		if reportable(err) {
			sentry.WithTags(map[string]string{"mention_id": m.ID}).Error(err)
		}
		return
	}

	metrics.Replies.WithLabelValues(metrics.OutcomeSent).Inc()
}

func outcome(err error) string {
	switch {
	case errors.Is(err, movie.ErrNoGenreDetected):
		return metrics.OutcomeNoGenre
	case errors.Is(err, movie.ErrUnknownGenre), errors.Is(err, ErrNoRecommendation):
		return metrics.OutcomeNoRecommendation
	case errors.Is(err, ErrInvalidMention):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeFailed
	}
}

// reportable is false for outcomes caused by the mention's content.
func reportable(err error) bool {
	return outcome(err) == metrics.OutcomeFailed
}
