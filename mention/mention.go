package mention

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"moviebot/errs"
	"moviebot/movie"
)

var (
	ErrNoRecommendation = errs.Errorf(errs.ENOTFOUND, "mention: no recommendation found")
	ErrInvalidMention   = errs.Errorf(errs.EINVALID, "mention: id, author and text are required")
)

// Mention is an inbound post that mentions the tracked account.
type Mention struct {
	ID         string `json:"id"`
	AuthorID   string `json:"author_id,omitempty"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
}

func (m Mention) Validate() error {
	if m.ID == "" || m.AuthorName == "" || m.Text == "" {
		return ErrInvalidMention
	}
	return nil
}

// Reply is a posted recommendation.
type Reply struct {
	InReplyTo string      `json:"in_reply_to"`
	PostID    string      `json:"post_id"`
	Text      string      `json:"text"`
	Movie     movie.Movie `json:"movie"`
}

// Pick returns one movie chosen uniformly at random.
func Pick(movies []movie.Movie, rng *rand.Rand) (movie.Movie, error) {
	if len(movies) == 0 {
		return movie.Movie{}, ErrNoRecommendation
	}
	if rng == nil {
		return movies[rand.IntN(len(movies))], nil
	}
	return movies[rng.IntN(len(movies))], nil
}

func FormatReply(author string, m movie.Movie) string {
	return fmt.Sprintf(
		"@%s You should try watching '%s'. Other people who watched it gave it an average rating of %s/10",
		author, m.OriginalTitle, strconv.FormatFloat(m.VoteAverage, 'f', -1, 64),
	)
}
