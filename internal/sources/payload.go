// Package sources implements the AniDb and TvDb catalog sources and the
// loaders that fetch their data for an item.
package sources

import (
	"github.com/vmunix/animeta/pkg/anidb"
	"github.com/vmunix/animeta/pkg/tvdb"
)

// AniDbSeason is the AniDb payload for a season. AniDB has no seasons, so
// this is the series seen through the season's index.
type AniDbSeason struct {
	Series *anidb.Series
	Index  int
}

// AniDbEpisode is the AniDb payload for an episode.
type AniDbEpisode struct {
	Series  *anidb.Series
	Episode anidb.Episode
}

// TvDbEpisode is the TvDb payload for an episode. The series is carried
// along for series-level fields such as genres.
type TvDbEpisode struct {
	Series  *tvdb.Series
	Episode tvdb.Episode
}
