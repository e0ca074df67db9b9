package tvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const defaultBaseURL = "https://api4.thetvdb.com/v4"

// Sentinel errors for TVDB API responses.
var (
	ErrNotFound     = errors.New("series not found")
	ErrUnauthorized = errors.New("unauthorized: invalid or expired API key")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// Client is a TVDB API v4 client. It logs in with the API key on first
// use and again whenever the bearer token is rejected.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	session    session
}

// session holds the bearer token. Logins are serialized so concurrent
// callers with no token share one login.
type session struct {
	mu    sync.Mutex
	token string
}

// current returns the token, calling login when there is none.
func (s *session) current(ctx context.Context, login func(context.Context) (string, error)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		return s.token, nil
	}
	token, err := login(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	return token, nil
}

// reject drops the token unless another caller already replaced it.
func (s *session) reject(token string) {
	s.mu.Lock()
	if s.token == token {
		s.token = ""
	}
	s.mu.Unlock()
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output. A nil logger is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", "tvdb")
		}
	}
}

// New creates a new TVDB API v4 client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// login exchanges the API key for a bearer token.
func (c *Client) login(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{"apikey": c.apiKey})
	if err != nil {
		return "", fmt.Errorf("marshal login body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp envelope[loginData]
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.Data.Token == "" {
		return "", errors.New("login: response missing token")
	}
	if c.log != nil {
		c.log.Debug("authenticated with TVDB")
	}
	return resp.Data.Token, nil
}

// get decodes an authenticated GET of path into out. A rejected token is
// replaced and the request sent once more.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		token, err := c.session.current(ctx, c.login)
		if err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		err = c.do(req, out)
		if errors.Is(err, ErrUnauthorized) && attempt == 0 {
			if c.log != nil {
				c.log.Debug("token rejected, logging in again")
			}
			c.session.reject(token)
			continue
		}
		return err
	}
}

// do sends req and decodes a 200 body into out. Other statuses map to
// the sentinel errors, with TVDB's failure message when it sends one.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s: %w", req.URL.Path, err)
		}
		return nil
	}

	var failure envelope[json.RawMessage]
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		_ = json.Unmarshal(data, &failure)
	}
	err = statusError(resp)
	if failure.Message != "" {
		return fmt.Errorf("%w: %s", err, failure.Message)
	}
	return err
}

func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TVDB API error: %s", resp.Status)
	}
}

// GetSeries fetches the extended series record by TVDB ID.
func (c *Client) GetSeries(ctx context.Context, id int) (*Series, error) {
	start := time.Now()

	var resp envelope[seriesRecord]
	err := c.get(ctx, fmt.Sprintf("/series/%d/extended", id), url.Values{"short": {"true"}}, &resp)
	if err != nil {
		if c.log != nil && errors.Is(err, ErrNotFound) {
			c.log.Debug("series not found", "id", id)
		}
		return nil, err
	}

	series := resp.Data.series()
	if c.log != nil {
		c.log.Debug("fetched series", "id", id, "name", series.Name, "duration_ms", time.Since(start).Milliseconds())
	}
	return series, nil
}

// GetEpisodesPage fetches one page of a series' episodes in default
// (aired) order. Pages start at 0.
func (c *Client) GetEpisodesPage(ctx context.Context, seriesID, page int) (*EpisodesPage, error) {
	start := time.Now()

	var resp envelope[episodesData]
	query := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, fmt.Sprintf("/series/%d/episodes/default", seriesID), query, &resp); err != nil {
		return nil, err
	}

	result := &EpisodesPage{
		Page:     page,
		Next:     pageFromLink(resp.Links.Next),
		Prev:     pageFromLink(resp.Links.Prev),
		Episodes: make([]Episode, 0, len(resp.Data.Episodes)),
	}
	for _, ep := range resp.Data.Episodes {
		result.Episodes = append(result.Episodes, ep.episode())
	}

	if c.log != nil {
		c.log.Debug("fetched episodes page", "series_id", seriesID, "page", page,
			"count", len(result.Episodes), "duration_ms", time.Since(start).Milliseconds())
	}
	return result, nil
}

// parseDate parses a YYYY-MM-DD date, returning the zero time when empty
// or malformed.
func parseDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// pageFromLink extracts the page query parameter from a links URL.
// Returns -1 when there is no link.
func pageFromLink(link *string) int {
	if link == nil || *link == "" {
		return -1
	}
	u, err := url.Parse(*link)
	if err != nil {
		return -1
	}
	page, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		return -1
	}
	return page
}
