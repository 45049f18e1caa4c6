package httpserver

import (
	"moviebot/mention"
)

type RecommendRequest struct {
	Text string `json:"text" validate:"required,notblank,max=1000"`
}

type MentionRequest struct {
	ID         string `json:"id" validate:"required,notblank,max=64"`
	AuthorName string `json:"author_name" validate:"required,notblank,max=50"`
	Text       string `json:"text" validate:"required,notblank,max=1000"`
}

func (r MentionRequest) ToMention() mention.Mention {
	return mention.Mention{
		ID:         r.ID,
		AuthorName: r.AuthorName,
		Text:       r.Text,
	}
}

// GenreValidity answers whether a name is a known catalog genre.
type GenreValidity struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}
