// Package catalog provides cached access to AniDB, TVDB and the series
// mapping list.
package catalog

import (
	"context"
	"fmt"

	"github.com/vmunix/animeta/pkg/anidb"
	"github.com/vmunix/animeta/pkg/tvdb"
)

//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks github.com/vmunix/animeta/internal/catalog AniDB,TVDB

// Cache key prefixes
const (
	keyPrefixAniDBSeries  = "anidb:series:"
	keyAniDBTitles        = "anidb:titles"
	keyPrefixTVDBSeries   = "tvdb:series:"
	keyPrefixTVDBEpisodes = "tvdb:episodes:"
	keyMappings           = "animelist:mappings"
)

// KeyNamespaces are the leading segments of every cache key the catalog
// writes. Cache TTL prefixes only match keys inside one of them.
var KeyNamespaces = []string{"anidb:", "tvdb:", "animelist:"}

// AniDB is cached AniDB data.
type AniDB interface {
	GetSeries(ctx context.Context, id int) (*anidb.Series, error)
	Titles(ctx context.Context) ([]anidb.TitleEntry, error)
}

// TVDB is cached TVDB data.
type TVDB interface {
	GetSeries(ctx context.Context, id int) (*tvdb.Series, error)
	GetEpisodes(ctx context.Context, seriesID int) ([]tvdb.Episode, error)
}

func seriesKey(prefix string, id int) string {
	return fmt.Sprintf("%s%d", prefix, id)
}
