//go:build integration

package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/animeta/internal/cache"
	"github.com/vmunix/animeta/pkg/animelist"
	"github.com/vmunix/animeta/pkg/tvdb"
)

func TestTVDB_Integration(t *testing.T) {
	apiKey := os.Getenv("TVDB_API_KEY")
	if apiKey == "" {
		t.Skip("TVDB_API_KEY not set")
	}

	svc := NewTVDBService(tvdb.New(apiKey), cache.NewFetcher(cache.NewMemoryStore(cache.DefaultTTLs()), nil), nil)
	ctx := context.Background()

	// Tenchi Muyo!
	series, err := svc.GetSeries(ctx, 78920)
	require.NoError(t, err)
	require.Equal(t, 1992, series.Year())

	episodes, err := svc.GetEpisodes(ctx, 78920)
	require.NoError(t, err)
	require.NotEmpty(t, episodes)
	t.Logf("Found %d episodes for %s", len(episodes), series.Name)
}

func TestAnimeList_Integration(t *testing.T) {
	if os.Getenv("ANIMETA_NETWORK_TESTS") == "" {
		t.Skip("ANIMETA_NETWORK_TESTS not set")
	}

	svc := NewMappingService(animelist.NewClient(), cache.NewFetcher(cache.NewMemoryStore(cache.DefaultTTLs()), nil), nil)
	mappings, err := svc.Mappings(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, mappings)
	t.Logf("Found %d series mappings", len(mappings))
}
