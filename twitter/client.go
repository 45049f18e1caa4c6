package twitter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL          = "https://api.twitter.com"
	DefaultRepliesPerMinute = 10
)

type Options struct {
	BaseURL string

	// BearerToken is the app-only token used for the filtered stream.
	BearerToken string

	// AccessToken is the user-context token used to post replies. When
	// RefreshToken, ClientID and ClientSecret are set it is refreshed
	// through the OAuth 2.0 token endpoint.
	AccessToken  string
	RefreshToken string
	ClientID     string
	ClientSecret string

	RepliesPerMinute int
}

// Client is a minimal Twitter API v2 client: credential check, stream rules,
// filtered stream and replies.
type Client struct {
	baseURL string
	app     *http.Client
	user    *http.Client
	limiter *rate.Limiter
}

// User is the authenticated account.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("twitter: unexpected status %d: %s", e.StatusCode, e.Body)
}

// NewClient builds the app and user HTTP clients. ctx is used by the token
// sources; an *http.Client stored under oauth2.HTTPClient is honoured.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BearerToken) == "" {
		return nil, errors.New("twitter: bearer token is required")
	}
	if strings.TrimSpace(opts.AccessToken) == "" && strings.TrimSpace(opts.RefreshToken) == "" {
		return nil, errors.New("twitter: access token or refresh token is required")
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	perMinute := opts.RepliesPerMinute
	if perMinute <= 0 {
		perMinute = DefaultRepliesPerMinute
	}

	app := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: opts.BearerToken,
		TokenType:   "Bearer",
	}))

	return &Client{
		baseURL: baseURL,
		app:     app,
		user:    oauth2.NewClient(ctx, userTokenSource(ctx, baseURL, opts)),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}, nil
}

func userTokenSource(ctx context.Context, baseURL string, opts Options) oauth2.TokenSource {
	token := &oauth2.Token{
		AccessToken:  opts.AccessToken,
		RefreshToken: opts.RefreshToken,
		TokenType:    "Bearer",
	}
	if opts.RefreshToken == "" || opts.ClientID == "" {
		return oauth2.StaticTokenSource(token)
	}

	cfg := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  baseURL + "/2/oauth2/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	return cfg.TokenSource(ctx, token)
}

// VerifyCredentials returns the account behind the user-context token.
func (c *Client) VerifyCredentials(ctx context.Context) (User, error) {
	var resp struct {
		Data User `json:"data"`
	}
	if err := c.do(ctx, c.user, http.MethodGet, "/2/users/me", nil, &resp); err != nil {
		return User{}, fmt.Errorf("twitter: verify credentials: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
