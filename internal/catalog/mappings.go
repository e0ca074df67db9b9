package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/animeta/internal/cache"
	"github.com/vmunix/animeta/pkg/animelist"
)

type mappingClient interface {
	Fetch(ctx context.Context) ([]animelist.SeriesMapping, error)
}

// MappingService provides the cached series mapping list.
type MappingService struct {
	client  mappingClient
	fetcher *cache.Fetcher
	log     *slog.Logger
}

func NewMappingService(client mappingClient, fetcher *cache.Fetcher, log *slog.Logger) *MappingService {
	return &MappingService{client: client, fetcher: fetcher, log: log}
}

// Mappings returns the full list.
func (s *MappingService) Mappings(ctx context.Context) ([]animelist.SeriesMapping, error) {
	mappings, err := cache.Fetch(ctx, s.fetcher, keyMappings, s.client.Fetch)
	if err != nil {
		return nil, fmt.Errorf("get mappings: %w", err)
	}
	return mappings, nil
}

// Invalidate drops the cached list.
func (s *MappingService) Invalidate(ctx context.Context) error {
	if err := s.fetcher.Store().Delete(ctx, keyMappings); err != nil {
		return fmt.Errorf("invalidate mappings: %w", err)
	}
	return nil
}
