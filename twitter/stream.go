package twitter

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"moviebot/mention"
	"moviebot/pkg/metrics"

	"github.com/goccy/go-json"
)

const maxPostSize = 1 << 20

// ErrStreamClosed is returned when the server ends the stream.
var ErrStreamClosed = errors.New("twitter: stream closed by server")

// HandlerFunc receives mentions from the stream, one at a time.
type HandlerFunc func(ctx context.Context, m mention.Mention)

// Stream reads the filtered stream and hands every post to a handler. It is
// a suture service: Serve returns when the connection ends and is restarted
// by the supervisor.
type Stream struct {
	client  *Client
	handler HandlerFunc

	// IgnoreAuthorID drops posts written by this account, usually the
	// bot itself.
	IgnoreAuthorID string
}

func NewStream(c *Client, handler HandlerFunc) *Stream {
	return &Stream{client: c, handler: handler}
}

func (s *Stream) String() string { return "twitter-stream" }

type streamPost struct {
	Data struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		AuthorID string `json:"author_id"`
	} `json:"data"`
	Includes struct {
		Users []User `json:"users"`
	} `json:"includes"`
}

func (s *Stream) Serve(ctx context.Context) error {
	params := url.Values{}
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username")
	endpoint := s.client.baseURL + "/2/tweets/search/stream?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.app.Do(req)
	if err != nil {
		return fmt.Errorf("twitter: connect stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	metrics.StreamConnections.Inc()
	slog.InfoContext(ctx, "stream connected")

	if err := s.consume(ctx, resp.Body); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrStreamClosed
}

// consume reads newline-delimited posts until r is exhausted. Keep-alive
// blank lines and undecodable posts are skipped.
func (s *Stream) consume(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPostSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		m, err := decodeMention(line)
		if err != nil {
			slog.WarnContext(ctx, "skipping undecodable stream post", "error", err)
			continue
		}
		if s.IgnoreAuthorID != "" && m.AuthorID == s.IgnoreAuthorID {
			continue
		}
		s.handler(ctx, m)
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("twitter: read stream: %w", err)
	}
	return nil
}

func decodeMention(line []byte) (mention.Mention, error) {
	var p streamPost
	if err := json.Unmarshal(line, &p); err != nil {
		return mention.Mention{}, err
	}
	if p.Data.ID == "" {
		return mention.Mention{}, errors.New("post without id")
	}

	m := mention.Mention{
		ID:       p.Data.ID,
		AuthorID: p.Data.AuthorID,
		Text:     p.Data.Text,
	}
	for _, u := range p.Includes.Users {
		if u.ID == p.Data.AuthorID {
			m.AuthorName = u.Username
			break
		}
	}
	return m, nil
}
