package anidb

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "http://api.anidb.net:9001/httpapi"
	defaultTitlesURL = "https://anidb.net/api/anime-titles.xml.gz"

	// DefaultRequestInterval is the minimum gap AniDB asks clients to keep
	// between requests.
	DefaultRequestInterval = 2 * time.Second
)

// Sentinel errors for AniDB API responses.
var (
	ErrNotFound = errors.New("anime not found")
	// ErrBanned means AniDB has blocked this client, usually for flooding.
	ErrBanned      = errors.New("client banned by AniDB")
	ErrMissingAuth = errors.New("client name and version are required")
)

// Client is an AniDB HTTP API client. Requests are throttled to one per
// request interval across all callers.
type Client struct {
	clientName    string
	clientVersion int
	baseURL       string
	titlesURL     string
	httpClient    *http.Client
	limiter       *rate.Limiter
	log           *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTitlesURL sets a custom title dump URL.
func WithTitlesURL(url string) Option {
	return func(c *Client) {
		c.titlesURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequestInterval sets the minimum gap between API requests. Zero
// disables throttling.
func WithRequestInterval(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithLogger sets a logger for debug output. A nil logger is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", "anidb")
		}
	}
}

// New creates a client registered with AniDB as clientName/clientVersion.
func New(clientName string, clientVersion int, opts ...Option) *Client {
	c := &Client{
		clientName:    clientName,
		clientVersion: clientVersion,
		baseURL:       defaultBaseURL,
		titlesURL:     defaultTitlesURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(DefaultRequestInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSeries fetches the anime record for an AniDB id.
func (c *Client) GetSeries(ctx context.Context, id int) (*Series, error) {
	if c.clientName == "" || c.clientVersion == 0 {
		return nil, ErrMissingAuth
	}
	start := time.Now()

	q := url.Values{}
	q.Set("request", "anime")
	q.Set("client", c.clientName)
	q.Set("clientver", strconv.Itoa(c.clientVersion))
	q.Set("protover", "1")
	q.Set("aid", strconv.Itoa(id))

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, c.baseURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	if err := checkError(body); err != nil {
		if c.log != nil {
			c.log.Debug("anime request failed", "id", id, "error", err)
		}
		return nil, err
	}

	var series Series
	if err := xml.Unmarshal(body, &series); err != nil {
		return nil, fmt.Errorf("decode anime response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("fetched series", "id", id, "episodes", len(series.Episodes), "duration_ms", time.Since(start).Milliseconds())
	}

	return &series, nil
}

// GetTitles downloads and parses the full title dump. AniDB allows this
// at most once a day; callers are expected to cache the result.
func (c *Client) GetTitles(ctx context.Context) ([]TitleEntry, error) {
	start := time.Now()

	body, err := c.get(ctx, c.titlesURL)
	if err != nil {
		return nil, err
	}

	entries, err := ParseTitles(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("fetched title dump", "entries", len(entries), "duration_ms", time.Since(start).Milliseconds())
	}
	return entries, nil
}

// ParseTitles decodes an anime-titles.xml document.
func ParseTitles(r io.Reader) ([]TitleEntry, error) {
	var dump titlesDump
	if err := xml.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode title dump: %w", err)
	}
	return dump.Entries, nil
}

// get performs a GET and returns the body, undoing gzip when the server
// sends it compressed.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AniDB API error: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// The title dump is a .gz file served without Content-Encoding, so
	// detect gzip by its magic bytes rather than the header.
	if len(raw) > 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		defer zr.Close()
		if raw, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("read gzip: %w", err)
		}
	}
	return raw, nil
}

// checkError maps an <error> document to a sentinel error.
func checkError(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("<?xml")) {
		if _, rest, ok := bytes.Cut(trimmed, []byte("?>")); ok {
			trimmed = bytes.TrimSpace(rest)
		}
	}
	if !bytes.HasPrefix(trimmed, []byte("<error")) {
		return nil
	}
	var e errorResponse
	if err := xml.Unmarshal(trimmed, &e); err != nil {
		return fmt.Errorf("decode error response: %w", err)
	}
	msg := strings.ToLower(strings.TrimSpace(e.Message))
	switch {
	case strings.Contains(msg, "banned"):
		return ErrBanned
	case strings.Contains(msg, "not found"):
		return ErrNotFound
	default:
		return fmt.Errorf("AniDB API error: %s", e.Message)
	}
}
