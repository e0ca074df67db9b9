package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/mo"

	"github.com/vmunix/animeta/internal/cache"
	"github.com/vmunix/animeta/pkg/tvdb"
)

type tvdbClient interface {
	GetSeries(ctx context.Context, id int) (*tvdb.Series, error)
	GetEpisodesPage(ctx context.Context, seriesID, page int) (*tvdb.EpisodesPage, error)
}

// TVDBService provides cached access to TVDB metadata.
type TVDBService struct {
	client  tvdbClient
	fetcher *cache.Fetcher
	log     *slog.Logger
}

// NewTVDBService creates a new TVDB service.
func NewTVDBService(client tvdbClient, fetcher *cache.Fetcher, log *slog.Logger) *TVDBService {
	return &TVDBService{
		client:  client,
		fetcher: fetcher,
		log:     log,
	}
}

// GetSeries fetches series metadata by TVDB ID (cached).
func (s *TVDBService) GetSeries(ctx context.Context, tvdbID int) (*tvdb.Series, error) {
	series, err := cache.Fetch(ctx, s.fetcher, seriesKey(keyPrefixTVDBSeries, tvdbID),
		func(ctx context.Context) (*tvdb.Series, error) {
			if s.log != nil {
				s.log.Debug("cache miss for series, calling API", "tvdb_id", tvdbID)
			}
			return s.client.GetSeries(ctx, tvdbID)
		})
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	return series, nil
}

// GetEpisodes fetches every episode of a series, one page at a time
// (cached as a whole).
func (s *TVDBService) GetEpisodes(ctx context.Context, tvdbID int) ([]tvdb.Episode, error) {
	episodes, err := cache.FetchPaged(ctx, s.fetcher, seriesKey(keyPrefixTVDBEpisodes, tvdbID), 0,
		func(ctx context.Context, page int) (cache.Page[tvdb.Episode], error) {
			p, err := s.client.GetEpisodesPage(ctx, tvdbID, page)
			if err != nil {
				return cache.Page[tvdb.Episode]{}, err
			}
			return episodesPage(p), nil
		})
	if err != nil {
		return nil, fmt.Errorf("get episodes: %w", err)
	}

	if s.log != nil {
		s.log.Debug("episodes loaded", "tvdb_id", tvdbID, "count", len(episodes))
	}
	return episodes, nil
}

func episodesPage(p *tvdb.EpisodesPage) cache.Page[tvdb.Episode] {
	links := cache.PageLinks{Current: p.Page, Last: p.Page}
	if p.HasNext() {
		links.Next = mo.Some(p.Next)
		links.Last = p.Next
	}
	if p.Prev >= 0 {
		links.Prev = mo.Some(p.Prev)
	}
	return cache.Page[tvdb.Episode]{Items: p.Episodes, Links: links}
}

// InvalidateSeries removes cached data for a series.
// This clears the series metadata and episodes cache entries.
func (s *TVDBService) InvalidateSeries(ctx context.Context, tvdbID int) error {
	store := s.fetcher.Store()

	var errs []error
	if err := store.Delete(ctx, seriesKey(keyPrefixTVDBSeries, tvdbID)); err != nil {
		errs = append(errs, fmt.Errorf("delete series cache: %w", err))
	}
	if err := store.Delete(ctx, seriesKey(keyPrefixTVDBEpisodes, tvdbID)); err != nil {
		errs = append(errs, fmt.Errorf("delete episodes cache: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalidate series %d: %w", tvdbID, errors.Join(errs...))
	}

	if s.log != nil {
		s.log.Debug("invalidated series cache", "tvdb_id", tvdbID)
	}
	return nil
}
