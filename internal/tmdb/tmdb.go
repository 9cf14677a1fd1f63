// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tmdb queries The Movie Database v3 API for search pages and movie
// details. It performs no storage or rendering; tests substitute the
// endpoint with an httptest server.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-search/internal/httputil"
	"github.com/pdiddy/movie-search/internal/validate"
	"github.com/pdiddy/movie-search/pkg/types"
)

// DefaultBaseURL is the TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3/"

// DefaultImageBaseURL is prefixed to poster paths (w500 rendition).
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

// Client issues search and detail requests.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	timeout   time.Duration
	http      *httputil.Client
	log       *zap.Logger
}

// New builds a Client from configuration. The credential is required.
func New(cfg types.Config, hc *http.Client, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.TMDB.APIKey) == "" {
		return nil, types.ErrMissingCredential
	}
	if log == nil {
		log = zap.NewNop()
	}
	base := cfg.TMDB.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.HTTP.Timeout}
	}
	return &Client{
		baseURL:   base,
		apiKey:    cfg.TMDB.APIKey,
		userAgent: cfg.HTTP.UserAgent,
		timeout:   cfg.HTTP.Timeout,
		http: &httputil.Client{
			HTTP:       hc,
			MaxRetries: cfg.HTTP.MaxRetries,
			Breaker:    httputil.NewBreaker("tmdb", cfg.Breaker, log),
			Log:        log,
		},
		log: log,
	}, nil
}

// SearchMovies returns one page of search results for query. A page with
// zero results is not an error.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (types.SearchPage, error) {
	query = strings.TrimSpace(query)
	if err := validate.Struct(validate.SearchInput{Query: query, Page: page}); err != nil {
		return types.SearchPage{}, err
	}

	params := url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	}

	var sr searchResponse
	if err := c.getJSON(ctx, "search/movie", params, &sr); err != nil {
		return types.SearchPage{}, err
	}

	return types.SearchPage{
		Page:         sr.Page,
		TotalResults: sr.TotalResults,
		Results:      sr.Results,
	}, nil
}

// GetMovieDetails fetches the detail record for id with credits appended
// in the same round trip. An empty or non-numeric id is rejected before
// any request is made.
func (c *Client) GetMovieDetails(ctx context.Context, id string) (types.RawMovieDetail, error) {
	if err := validate.Struct(validate.MovieID{ID: id}); err != nil {
		return types.RawMovieDetail{}, err
	}

	params := url.Values{"append_to_response": {"credits"}}

	var d types.RawMovieDetail
	if err := c.getJSON(ctx, "movie/"+url.PathEscape(id), params, &d); err != nil {
		return types.RawMovieDetail{}, err
	}
	return d, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", types.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log := c.log.With(zap.String("request_id", uuid.NewString()), zap.String("endpoint", path))
	log.Debug("requesting")

	body, err := c.http.Get(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return fmt.Errorf("%w: %w", types.ErrNetwork, ctxErr)
		}
		log.Warn("request failed", zap.Error(redact(err, c.apiKey)))
		return fmt.Errorf("%w: TMDB request %s: %w", types.ErrNetwork, path, redact(err, c.apiKey))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		log.Warn("malformed response", zap.Error(err))
		return fmt.Errorf("%w: parsing TMDB response: %v", types.ErrNetwork, err)
	}
	return nil
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}

type searchResponse struct {
	Page         int              `json:"page"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
	Results      []types.RawMovie `json:"results"`
}
