package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviebot/movie"
	"moviebot/pkg/metrics"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org"
	DefaultTimeout = 10 * time.Second

	apiVersion    = "3"
	genreLanguage = "en-US"
	breakerName   = "tmdb-api"
)

// Ensure Client implements movie.Catalog
var _ movie.Catalog = (*Client)(nil)

type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the TMDB v3 API. Every request goes through a circuit
// breaker; client errors (4xx) do not count as breaker failures.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: unexpected status %d: %s", e.StatusCode, e.Body)
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("tmdb: api key is required")
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		http:    httpClient,
		cb:      newBreaker(breakerName),
	}, nil
}

func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError && se.StatusCode != http.StatusTooManyRequests
			}
			// the caller gave up; the API is not at fault
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state transition", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

type genreListResponse struct {
	Genres []movie.Genre `json:"genres"`
}

type discoverResponse struct {
	Page         int           `json:"page"`
	Results      []movie.Movie `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// ListGenres fetches the official movie genre list.
func (c *Client) ListGenres(ctx context.Context) ([]movie.Genre, error) {
	params := url.Values{}
	params.Set("language", genreLanguage)

	var resp genreListResponse
	if err := c.getJSON(ctx, "genre_list", "/genre/movie/list", params, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// DiscoverMovies runs a discover query and returns the first page of results
// in the order given by the API.
func (c *Client) DiscoverMovies(ctx context.Context, q movie.DiscoverQuery) ([]movie.Movie, error) {
	var resp discoverResponse
	if err := c.getJSON(ctx, "discover", "/discover/movie", discoverParams(q), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func discoverParams(q movie.DiscoverQuery) url.Values {
	codes := make([]string, len(q.GenreIDs))
	for i, id := range q.GenreIDs {
		codes[i] = strconv.Itoa(id)
	}

	params := url.Values{}
	params.Set("include_adult", strconv.FormatBool(q.IncludeAdult))
	params.Set("with_genres", strings.Join(codes, ","))
	if q.SortBy != "" {
		params.Set("sort_by", q.SortBy)
	}
	if q.MinVoteAverage > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(q.MinVoteAverage, 'f', -1, 64))
	}
	if q.OriginalLanguage != "" {
		params.Set("with_original_language", q.OriginalLanguage)
	}
	return params
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	start := time.Now()
	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.get(ctx, path, params)
	})
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogRequestErrors.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("tmdb: %s: %w", endpoint, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.CatalogRequestErrors.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("tmdb: decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	for key, values := range params {
		query[key] = values
	}
	endpoint := fmt.Sprintf("%s/%s%s?%s", c.baseURL, apiVersion, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.redact(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// redact strips the api key from transport errors, which embed the request URL.
func (c *Client) redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = strings.ReplaceAll(ue.URL, c.apiKey, "REDACTED")
	}
	return err
}
