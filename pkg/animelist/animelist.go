// Package animelist reads the community anime-list.xml that correlates
// AniDB series with TVDB series, seasons and episodes.
package animelist

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultURL = "https://raw.githubusercontent.com/Anime-Lists/anime-lists/master/anime-list.xml"

// EpisodePair maps one AniDB episode to one TVDB episode. A TvDb of zero
// means the AniDB episode has no TVDB equivalent.
type EpisodePair struct {
	AniDb int `json:"anidb"`
	TvDb  int `json:"tvdb"`
}

// EpisodeGroup is one <mapping> element: either explicit pairs or a
// start/end range shifted by an offset.
type EpisodeGroup struct {
	AniDbSeason int           `json:"anidbSeason"`
	TvDbSeason  int           `json:"tvdbSeason"`
	Start       int           `json:"start,omitempty"`
	End         int           `json:"end,omitempty"`
	Offset      int           `json:"offset,omitempty"`
	Pairs       []EpisodePair `json:"pairs,omitempty"`
}

// SeriesMapping correlates one AniDB series with one TVDB series.
type SeriesMapping struct {
	AniDbID int    `json:"anidbId"`
	TvDbID  int    `json:"tvdbId"`
	Name    string `json:"name"`
	// DefaultSeason is the TVDB season AniDB episodes fall in unless a group
	// says otherwise. Ignored when Absolute is set.
	DefaultSeason int            `json:"defaultSeason"`
	Absolute      bool           `json:"absolute,omitempty"`
	EpisodeOffset int            `json:"episodeOffset,omitempty"`
	Groups        []EpisodeGroup `json:"groups,omitempty"`
}

// EpisodeRef locates an episode in TVDB. When Absolute is set, Episode is
// an absolute episode number and Season is meaningless.
type EpisodeRef struct {
	Season   int
	Episode  int
	Absolute bool
}

func (r EpisodeRef) String() string {
	if r.Absolute {
		return fmt.Sprintf("absolute %d", r.Episode)
	}
	return fmt.Sprintf("S%02dE%02d", r.Season, r.Episode)
}

// TvDbEpisode resolves an AniDB episode to TVDB. aniDbSeason is 1 for
// regular episodes and 0 for specials. Explicit pairs win over ranges,
// and ranges over the series defaults.
func (m SeriesMapping) TvDbEpisode(aniDbSeason, episode int) (EpisodeRef, bool) {
	for _, g := range m.Groups {
		if g.AniDbSeason != aniDbSeason {
			continue
		}
		for _, p := range g.Pairs {
			if p.AniDb == episode {
				if p.TvDb == 0 {
					return EpisodeRef{}, false
				}
				return EpisodeRef{Season: g.TvDbSeason, Episode: p.TvDb}, true
			}
		}
	}

	for _, g := range m.Groups {
		if g.AniDbSeason != aniDbSeason || g.Start == 0 {
			continue
		}
		if episode >= g.Start && (g.End == 0 || episode <= g.End) {
			return EpisodeRef{Season: g.TvDbSeason, Episode: episode + g.Offset}, true
		}
	}

	if aniDbSeason != 1 {
		return EpisodeRef{}, false
	}
	if m.Absolute {
		return EpisodeRef{Episode: episode + m.EpisodeOffset, Absolute: true}, true
	}
	return EpisodeRef{Season: m.DefaultSeason, Episode: episode + m.EpisodeOffset}, true
}

type xmlList struct {
	Anime []xmlAnime `xml:"anime"`
}

type xmlAnime struct {
	AniDbID       string       `xml:"anidbid,attr"`
	TvDbID        string       `xml:"tvdbid,attr"`
	DefaultSeason string       `xml:"defaulttvdbseason,attr"`
	EpisodeOffset string       `xml:"episodeoffset,attr"`
	Name          string       `xml:"name"`
	Mappings      []xmlMapping `xml:"mapping-list>mapping"`
}

type xmlMapping struct {
	AniDbSeason string `xml:"anidbseason,attr"`
	TvDbSeason  string `xml:"tvdbseason,attr"`
	Start       string `xml:"start,attr"`
	End         string `xml:"end,attr"`
	Offset      string `xml:"offset,attr"`
	Pairs       string `xml:",chardata"`
}

// Parse decodes an anime-list.xml document. Entries without a numeric
// AniDB and TVDB id (movies, unknowns) are skipped.
func Parse(r io.Reader) ([]SeriesMapping, error) {
	var list xmlList
	if err := xml.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode anime list: %w", err)
	}

	mappings := make([]SeriesMapping, 0, len(list.Anime))
	for _, a := range list.Anime {
		aniDbID := atoi(a.AniDbID)
		tvDbID := atoi(a.TvDbID)
		if aniDbID <= 0 || tvDbID <= 0 {
			continue
		}

		m := SeriesMapping{
			AniDbID:       aniDbID,
			TvDbID:        tvDbID,
			Name:          strings.TrimSpace(a.Name),
			EpisodeOffset: atoi(a.EpisodeOffset),
		}
		if strings.EqualFold(strings.TrimSpace(a.DefaultSeason), "a") {
			m.Absolute = true
		} else {
			m.DefaultSeason = atoi(a.DefaultSeason)
		}

		for _, x := range a.Mappings {
			m.Groups = append(m.Groups, EpisodeGroup{
				AniDbSeason: atoi(x.AniDbSeason),
				TvDbSeason:  atoi(x.TvDbSeason),
				Start:       atoi(x.Start),
				End:         atoi(x.End),
				Offset:      atoi(x.Offset),
				Pairs:       parsePairs(x.Pairs),
			})
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// parsePairs reads ";1-5;2-6;" style pair lists. "3-4+5" maps AniDB
// episode 3 to the first listed TVDB episode.
func parsePairs(s string) []EpisodePair {
	var pairs []EpisodePair
	for _, field := range strings.Split(s, ";") {
		a, b, ok := strings.Cut(strings.TrimSpace(field), "-")
		if !ok {
			continue
		}
		b, _, _ = strings.Cut(b, "+")
		aniDb, err := strconv.Atoi(a)
		if err != nil {
			continue
		}
		tvDb, err := strconv.Atoi(b)
		if err != nil {
			continue
		}
		pairs = append(pairs, EpisodePair{AniDb: aniDb, TvDb: tvDb})
	}
	return pairs
}

func atoi(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// Client downloads the published list.
type Client struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithURL sets the list location.
func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.url = url
		}
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
			c.log = log.With("component", "animelist")
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		url:        defaultURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads and parses the list.
func (c *Client) Fetch(ctx context.Context) ([]SeriesMapping, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch anime list: %s", resp.Status)
	}

	mappings, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("fetched anime list", "entries", len(mappings), "duration_ms", time.Since(start).Milliseconds())
	}
	return mappings, nil
}
