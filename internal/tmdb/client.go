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
)

// Result represents a single TMDB search match.
type Result struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int64 `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
}

// DisplayTitle returns the movie title or show name, whichever is present.
func (r Result) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Year extracts the four-digit year from the release or first-air date,
// 0 when unknown.
func (r Result) Year() int {
	return yearFromDate(r.ReleaseDate, r.FirstAirDate)
}

// Response models the TMDB paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Genre is a TMDB genre record as returned by detail endpoints.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Details captures the full metadata payload for one movie or TV show.
type Details struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	ReleaseDate    string  `json:"release_date"`
	FirstAirDate   string  `json:"first_air_date"`
	Runtime        int     `json:"runtime"`
	EpisodeRunTime []int   `json:"episode_run_time"`
	Genres         []Genre `json:"genres"`
	Popularity     float64 `json:"popularity"`
	VoteAverage    float64 `json:"vote_average"`
	VoteCount      int64   `json:"vote_count"`
}

// DisplayTitle returns the movie title or show name, whichever is present.
func (d Details) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Year extracts the four-digit year from the release or first-air date,
// 0 when unknown.
func (d Details) Year() int {
	return yearFromDate(d.ReleaseDate, d.FirstAirDate)
}

// RuntimeMinutes returns the movie runtime, or the typical episode runtime
// for shows. 0 when TMDB reports none.
func (d Details) RuntimeMinutes() int {
	if d.Runtime > 0 {
		return d.Runtime
	}
	if len(d.EpisodeRunTime) > 0 {
		return d.EpisodeRunTime[0]
	}
	return 0
}

// GenreNames returns the genre names in TMDB order.
func (d Details) GenreNames() []string {
	if len(d.Genres) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Genres))
	for _, genre := range d.Genres {
		if genre.Name != "" {
			names = append(names, genre.Name)
		}
	}
	return names
}

func yearFromDate(dates ...string) int {
	for _, date := range dates {
		if len(date) < 4 {
			continue
		}
		year, err := strconv.Atoi(date[:4])
		if err == nil && year > 0 {
			return year
		}
	}
	return 0
}

// SearchOptions contains optional parameters for TMDB searches.
type SearchOptions struct {
	Year int
}

// Searcher defines the TMDB operations the tracker consumes.
type Searcher interface {
	SearchMovie(ctx context.Context, query string, opts SearchOptions) (*Response, error)
	SearchTV(ctx context.Context, query string, opts SearchOptions) (*Response, error)
	MovieDetails(ctx context.Context, movieID int64) (*Details, error)
	TVDetails(ctx context.Context, showID int64) (*Details, error)
}

// Client provides access to the TMDB API.
type Client struct {
	token      string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a TMDB client authenticating with an API read access token.
func New(token, baseURL, language string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("tmdb token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	language = strings.TrimSpace(language)
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie searches TMDB movies for the supplied title.
func (c *Client) SearchMovie(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}

	var payload Response
	if err := c.get(ctx, "/search/movie", params, &payload, "movie search"); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SearchTV searches TMDB shows for the supplied title.
func (c *Client) SearchTV(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if opts.Year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(opts.Year))
	}

	var payload Response
	if err := c.get(ctx, "/search/tv", params, &payload, "tv search"); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MovieDetails fetches movie details by TMDB ID.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*Details, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Details
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), url.Values{}, &payload, "movie details"); err != nil {
		return nil, err
	}
	return &payload, nil
}

// TVDetails fetches TV show details by TMDB ID.
func (c *Client) TVDetails(ctx context.Context, showID int64) (*Details, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	var payload Details
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", showID), url.Values{}, &payload, "tv details"); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, payload any, operation string) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", operation, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
