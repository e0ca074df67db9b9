package sources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/vmunix/animeta/internal/catalog"
	"github.com/vmunix/animeta/internal/mapping"
	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/pkg/anidb"
	"github.com/vmunix/animeta/pkg/animelist"
	"github.com/vmunix/animeta/pkg/tvdb"
)

// TvDb is the secondary source. TVDB seasons are not loaded; a season
// takes the AniDb data in their place.
type TvDb struct {
	loaders *process.LoaderTable
}

func NewTvDb(loaders *process.LoaderTable) *TvDb {
	return &TvDb{loaders: loaders}
}

func (s *TvDb) Name() string { return process.SourceTvDb }

func (s *TvDb) ShouldUsePlaceholder(itemType process.ItemType) bool {
	return itemType == process.Season
}

func (s *TvDb) FindLoader(itemType process.ItemType) mo.Result[process.Loader] {
	return s.loaders.Find(s.Name(), itemType)
}

// TvDbSeriesLoader loads the TVDB series for a series item.
type TvDbSeriesLoader struct {
	catalog catalog.TVDB
	index   *mapping.Index
	log     *slog.Logger
}

func NewTvDbSeriesLoader(c catalog.TVDB, index *mapping.Index, log *slog.Logger) *TvDbSeriesLoader {
	if log != nil {
		log = log.With("component", "loader", "source", process.SourceTvDb)
	}
	return &TvDbSeriesLoader{catalog: c, index: index, log: log}
}

func (l *TvDbSeriesLoader) SourceName() string { return process.SourceTvDb }

func (l *TvDbSeriesLoader) CanLoadFrom(itemType process.ItemType) bool {
	return itemType == process.Series
}

// LoadFrom uses the item's own TvDb id when it has one, and otherwise
// maps the AniDb id already on the item.
func (l *TvDbSeriesLoader) LoadFrom(ctx context.Context, item *process.MediaItem) mo.Result[process.SourceData] {
	d := item.Descriptor()
	rc := process.NewResultContext(process.SourceTvDb, d)

	id, ok := d.ExistingID(process.SourceTvDb).Get()
	if !ok {
		m, failure := mappingFor(ctx, l.index, item, rc)
		if failure != nil {
			return mo.Err[process.SourceData](failure)
		}
		id = m.TvDbID
	}

	series, err := l.catalog.GetSeries(ctx, id)
	if err != nil {
		return mo.Err[process.SourceData](rc.Wrap(process.UpstreamFailure, err,
			fmt.Sprintf("Failed to load series with TvDb Id '%d'", id)))
	}

	if l.log != nil {
		l.log.Debug("loaded series", "tvdb_id", id, "name", series.Name)
	}

	ident := d.Identifier()
	ident.Name = series.Name
	return mo.Ok(process.SourceData{
		Source:     process.SourceTvDb,
		ID:         mo.Some(id),
		Identifier: ident,
		Payload:    series,
	})
}

// TvDbEpisodeLoader loads the TVDB episode matching an AniDB episode.
type TvDbEpisodeLoader struct {
	catalog catalog.TVDB
	index   *mapping.Index
	log     *slog.Logger
}

func NewTvDbEpisodeLoader(c catalog.TVDB, index *mapping.Index, log *slog.Logger) *TvDbEpisodeLoader {
	if log != nil {
		log = log.With("component", "loader", "source", process.SourceTvDb)
	}
	return &TvDbEpisodeLoader{catalog: c, index: index, log: log}
}

func (l *TvDbEpisodeLoader) SourceName() string { return process.SourceTvDb }

func (l *TvDbEpisodeLoader) CanLoadFrom(itemType process.ItemType) bool {
	return itemType == process.Episode
}

func (l *TvDbEpisodeLoader) LoadFrom(ctx context.Context, item *process.MediaItem) mo.Result[process.SourceData] {
	d := item.Descriptor()
	rc := process.NewResultContext(process.SourceTvDb, d)

	aniDbEp, ok := aniDbEpisode(item)
	if !ok {
		return mo.Err[process.SourceData](rc.Failed(process.NotFound, "No AniDb episode data found on item"))
	}

	m, failure := mappingFor(ctx, l.index, item, rc)
	if failure != nil {
		return mo.Err[process.SourceData](failure)
	}

	aniDbSeason := 1
	if aniDbEp.Episode.Number.Type != anidb.EpisodeNormal {
		aniDbSeason = 0
	}
	ref, ok := m.TvDbEpisode(aniDbSeason, aniDbEp.Episode.Number.Number())
	if !ok {
		return mo.Err[process.SourceData](rc.Failed(process.NotFound,
			fmt.Sprintf("No TvDb episode mapped for AniDb episode '%s'", aniDbEp.Episode.Number.Raw)))
	}

	series, err := l.catalog.GetSeries(ctx, m.TvDbID)
	if err != nil {
		return mo.Err[process.SourceData](rc.Wrap(process.UpstreamFailure, err,
			fmt.Sprintf("Failed to load series with TvDb Id '%d'", m.TvDbID)))
	}

	episodes, err := l.catalog.GetEpisodes(ctx, m.TvDbID)
	if err != nil {
		return mo.Err[process.SourceData](rc.Wrap(process.UpstreamFailure, err,
			fmt.Sprintf("Failed to load episodes for TvDb series '%d'", m.TvDbID)))
	}

	ep, ok := findEpisode(episodes, ref)
	if !ok {
		return mo.Err[process.SourceData](rc.Failed(process.NotFound,
			fmt.Sprintf("Failed to find episode %s in TvDb series '%d'", ref, m.TvDbID)))
	}

	if l.log != nil {
		l.log.Debug("loaded episode", "tvdb_id", m.TvDbID, "episode", ref.String(), "episode_id", ep.ID)
	}

	return mo.Ok(process.SourceData{
		Source: process.SourceTvDb,
		ID:     mo.Some(ep.ID),
		Identifier: process.ItemIdentifier{
			Index:       mo.Some(ep.Episode),
			ParentIndex: mo.Some(ep.Season),
			Name:        ep.Name,
		},
		Payload: TvDbEpisode{Series: series, Episode: ep},
	})
}

func aniDbEpisode(item *process.MediaItem) (AniDbEpisode, bool) {
	sd, ok := item.DataFromName(process.SourceAniDb).Get()
	if !ok {
		return AniDbEpisode{}, false
	}
	ep, ok := sd.Payload.(AniDbEpisode)
	return ep, ok
}

// aniDbSeriesID finds the AniDB series the item belongs to: the AniDb id
// of a series item, or the series carried by episode data.
func aniDbSeriesID(item *process.MediaItem) (int, bool) {
	sd, ok := item.DataFromName(process.SourceAniDb).Get()
	if !ok {
		return 0, false
	}
	switch p := sd.Payload.(type) {
	case *anidb.Series:
		return p.ID, true
	case AniDbSeason:
		return p.Series.ID, true
	case AniDbEpisode:
		return p.Series.ID, true
	}
	return sd.ID.Get()
}

func mappingFor(ctx context.Context, index *mapping.Index, item *process.MediaItem, rc process.ResultContext) (animelist.SeriesMapping, *process.Failure) {
	aniDbID, ok := aniDbSeriesID(item)
	if !ok {
		return animelist.SeriesMapping{}, rc.Failed(process.NotFound, "No AniDb Id found on item")
	}
	res := index.ResolveByPrimaryID(ctx, aniDbID, rc)
	if res.IsError() {
		return animelist.SeriesMapping{}, process.AsFailure(res.Error())
	}
	return res.MustGet(), nil
}

func findEpisode(episodes []tvdb.Episode, ref animelist.EpisodeRef) (tvdb.Episode, bool) {
	if ref.Absolute {
		return lo.Find(episodes, func(e tvdb.Episode) bool {
			return e.AbsoluteNumber == ref.Episode
		})
	}
	return lo.Find(episodes, func(e tvdb.Episode) bool {
		return e.Season == ref.Season && e.Episode == ref.Episode
	})
}
