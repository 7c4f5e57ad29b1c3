// Package omdb is a thin client for the OMDB movie metadata API.  The
// storefront treats OMDB as unreliable network I/O: a no-match answer
// is a nil movie / empty slice, and transport errors are returned for
// the handler boundary to absorb into empty results.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iliyamo/cix-storefront/internal/model"
)

const defaultBaseURL = "https://www.omdbapi.com/"

// Client wraps HTTP access to OMDB.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates an OMDB client.  If httpClient is nil, a default
// client with a request timeout is used.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL, apiKey: apiKey}
}

// SetBaseURL overrides the API endpoint.  Tests point it at a local
// httptest server.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// envelope carries the fields OMDB adds around every payload.  A
// Response of "False" means no match; Error then holds the reason.
type envelope struct {
	model.Movie
	Response string        `json:"Response"`
	Error    string        `json:"Error"`
	Search   []model.Movie `json:"Search"`
}

// GetByTitle fetches a single movie by exact title.  A no-match
// answer returns (nil, nil).
func (c *Client) GetByTitle(ctx context.Context, title string) (*model.Movie, error) {
	env, err := c.get(ctx, url.Values{"t": {title}})
	if err != nil {
		return nil, err
	}
	if env.Response != "True" {
		return nil, nil
	}
	m := env.Movie
	return &m, nil
}

// Search returns movies matching the query.  A no-match answer
// returns an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]model.Movie, error) {
	env, err := c.get(ctx, url.Values{"s": {query}, "type": {"movie"}})
	if err != nil {
		return nil, err
	}
	if env.Response != "True" || env.Search == nil {
		return []model.Movie{}, nil
	}
	return env.Search, nil
}

// GetByID fetches a movie with its full plot by IMDB identifier.  A
// no-match answer returns (nil, nil).
func (c *Client) GetByID(ctx context.Context, imdbID string) (*model.Movie, error) {
	env, err := c.get(ctx, url.Values{"i": {imdbID}, "plot": {"full"}})
	if err != nil {
		return nil, err
	}
	if env.Response != "True" {
		return nil, nil
	}
	m := env.Movie
	return &m, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*envelope, error) {
	params.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("omdb: %s: %s", resp.Status, string(body))
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("omdb: decode response: %w", err)
	}
	return &env, nil
}
