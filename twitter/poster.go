package twitter

import (
	"context"
	"fmt"
	"net/http"

	"moviebot/mention"
)

var _ mention.Poster = (*Client)(nil)

type replyRequest struct {
	Text  string `json:"text"`
	Reply struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply"`
}

// PostReply publishes text as a reply to inReplyTo. Calls are paced by the
// client's limiter and block until a slot is free or ctx is done.
func (c *Client) PostReply(ctx context.Context, text, inReplyTo string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("twitter: wait for reply slot: %w", err)
	}

	req := replyRequest{Text: text}
	req.Reply.InReplyToTweetID = inReplyTo

	var resp struct {
		Data struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := c.do(ctx, c.user, http.MethodPost, "/2/tweets", req, &resp); err != nil {
		return "", fmt.Errorf("twitter: post reply: %w", err)
	}
	return resp.Data.ID, nil
}
