package twitter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

type rule struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
	Tag   string `json:"tag,omitempty"`
}

// TrackRule is the stream rule matching posts that mention account.
func TrackRule(account string) string {
	return "@" + strings.TrimPrefix(strings.TrimSpace(account), "@")
}

// EnsureRule adds the rule tracking account to the filtered stream unless it
// is already present.
func (c *Client) EnsureRule(ctx context.Context, account string) error {
	value := TrackRule(account)

	var existing struct {
		Data []rule `json:"data"`
	}
	if err := c.do(ctx, c.app, http.MethodGet, "/2/tweets/search/stream/rules", nil, &existing); err != nil {
		return fmt.Errorf("twitter: list stream rules: %w", err)
	}
	for _, r := range existing.Data {
		if strings.EqualFold(r.Value, value) {
			slog.InfoContext(ctx, "stream rule already present", "rule", value, "id", r.ID)
			return nil
		}
	}

	payload := map[string][]rule{
		"add": {{Value: value, Tag: "moviebot"}},
	}
	if err := c.do(ctx, c.app, http.MethodPost, "/2/tweets/search/stream/rules", payload, nil); err != nil {
		return fmt.Errorf("twitter: add stream rule: %w", err)
	}

	slog.InfoContext(ctx, "stream rule added", "rule", value)
	return nil
}
