package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/animeta/internal/cache"
	"github.com/vmunix/animeta/pkg/anidb"
)

type anidbClient interface {
	GetSeries(ctx context.Context, id int) (*anidb.Series, error)
	GetTitles(ctx context.Context) ([]anidb.TitleEntry, error)
}

// AniDBService provides cached access to AniDB.
type AniDBService struct {
	client  anidbClient
	fetcher *cache.Fetcher
	log     *slog.Logger
}

func NewAniDBService(client anidbClient, fetcher *cache.Fetcher, log *slog.Logger) *AniDBService {
	return &AniDBService{client: client, fetcher: fetcher, log: log}
}

// GetSeries fetches an anime record by AniDB ID (cached).
func (s *AniDBService) GetSeries(ctx context.Context, aniDbID int) (*anidb.Series, error) {
	series, err := cache.Fetch(ctx, s.fetcher, seriesKey(keyPrefixAniDBSeries, aniDbID),
		func(ctx context.Context) (*anidb.Series, error) {
			if s.log != nil {
				s.log.Debug("cache miss for series, calling API", "anidb_id", aniDbID)
			}
			return s.client.GetSeries(ctx, aniDbID)
		})
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	return series, nil
}

// Titles returns the title dump (cached).
func (s *AniDBService) Titles(ctx context.Context) ([]anidb.TitleEntry, error) {
	entries, err := cache.Fetch(ctx, s.fetcher, keyAniDBTitles, s.client.GetTitles)
	if err != nil {
		return nil, fmt.Errorf("get titles: %w", err)
	}
	return entries, nil
}

// InvalidateSeries removes the cached record for a series.
func (s *AniDBService) InvalidateSeries(ctx context.Context, aniDbID int) error {
	if err := s.fetcher.Store().Delete(ctx, seriesKey(keyPrefixAniDBSeries, aniDbID)); err != nil {
		return fmt.Errorf("invalidate series %d: %w", aniDbID, err)
	}
	if s.log != nil {
		s.log.Debug("invalidated series cache", "anidb_id", aniDbID)
	}
	return nil
}
