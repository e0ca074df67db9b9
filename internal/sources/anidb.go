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
	"github.com/vmunix/animeta/internal/titles"
	"github.com/vmunix/animeta/pkg/anidb"
	"github.com/vmunix/animeta/pkg/animelist"
)

// AniDb is the primary source. It identifies items and never borrows data.
type AniDb struct {
	catalog   catalog.AniDB
	index     *mapping.Index
	matcher   *titles.Matcher
	loaders   *process.LoaderTable
	titlePref titles.Preference
	log       *slog.Logger
}

// AniDbOption configures the AniDb source.
type AniDbOption func(*AniDb)

// WithTitlePreference sets which title names the identified item.
func WithTitlePreference(p titles.Preference) AniDbOption {
	return func(s *AniDb) { s.titlePref = p }
}

// WithMatcher sets the title matcher used when no id is known.
func WithMatcher(m *titles.Matcher) AniDbOption {
	return func(s *AniDb) { s.matcher = m }
}

// WithLogger sets a logger. A nil logger is ignored.
func WithLogger(log *slog.Logger) AniDbOption {
	return func(s *AniDb) {
		if log != nil {
			s.log = log.With("component", "source", "source", process.SourceAniDb)
		}
	}
}

func NewAniDb(c catalog.AniDB, index *mapping.Index, loaders *process.LoaderTable, opts ...AniDbOption) *AniDb {
	s := &AniDb{
		catalog: c,
		index:   index,
		loaders: loaders,
		matcher: titles.NewMatcher(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AniDb) Name() string                               { return process.SourceAniDb }
func (s *AniDb) ShouldUsePlaceholder(process.ItemType) bool { return false }

func (s *AniDb) FindLoader(itemType process.ItemType) mo.Result[process.Loader] {
	return s.loaders.Find(s.Name(), itemType)
}

// Identify resolves the item in AniDB.
func (s *AniDb) Identify(ctx context.Context, d process.ItemDescriptor) mo.Result[process.SourceData] {
	rc := process.NewResultContext(s.Name(), d)

	switch d.ItemType() {
	case process.Series:
		return s.identifySeries(ctx, d, rc)
	case process.Season:
		return s.identifySeason(ctx, d, rc)
	case process.Episode:
		return s.identifyEpisode(ctx, d, rc)
	}
	return mo.Err[process.SourceData](rc.Failed(process.NotFound,
		fmt.Sprintf("Cannot identify items of type %s", d.ItemType())))
}

func (s *AniDb) identifySeries(ctx context.Context, d process.ItemDescriptor, rc process.ResultContext) mo.Result[process.SourceData] {
	id, failure := s.seriesID(ctx, d, rc)
	if failure != nil {
		return mo.Err[process.SourceData](failure)
	}

	series, err := s.catalog.GetSeries(ctx, id)
	if err != nil {
		return mo.Err[process.SourceData](rc.Wrap(process.UpstreamFailure, err,
			fmt.Sprintf("Failed to load series with AniDb Id '%d'", id)))
	}

	ident := d.Identifier()
	name, ok := s.title(series.Titles, d.Language())
	if !ok {
		return mo.Err[process.SourceData](rc.Failed(process.NotFound, "Failed to find a title"))
	}
	ident.Name = name

	if s.log != nil {
		s.log.Debug("identified series", "anidb_id", id, "name", ident.Name)
	}
	return mo.Ok(process.SourceData{
		Source:     s.Name(),
		ID:         mo.Some(id),
		Identifier: ident,
		Payload:    series,
	})
}

// seriesID finds the AniDB id from, in order, an existing AniDb id, an
// existing TvDb id through the mapping list, and the item's name.
func (s *AniDb) seriesID(ctx context.Context, d process.ItemDescriptor, rc process.ResultContext) (int, *process.Failure) {
	if id, ok := d.ExistingID(process.SourceAniDb).Get(); ok {
		return id, nil
	}

	if tvDbID, ok := d.ExistingID(process.SourceTvDb).Get(); ok {
		res := s.index.ResolveBySecondaryID(ctx, tvDbID, rc)
		if res.IsError() {
			return 0, process.AsFailure(res.Error())
		}
		return preferredMapping(res.MustGet()).AniDbID, nil
	}

	entries, err := s.catalog.Titles(ctx)
	if err != nil {
		return 0, rc.Wrap(process.UpstreamFailure, err, "Failed to load AniDb titles")
	}

	var candidates []titles.Candidate
	for _, e := range entries {
		for _, t := range e.Titles {
			candidates = append(candidates, titles.Candidate{ID: e.ID, Title: t.Value})
		}
	}

	name := d.Identifier().Name
	match, ok := s.matcher.Best(name, candidates)
	if !ok {
		return 0, rc.Failed(process.NotFound, fmt.Sprintf("No AniDb series found with title '%s'", name))
	}
	if s.log != nil {
		s.log.Debug("matched series by title", "name", name, "anidb_id", match.ID, "title", match.Title, "score", match.Score)
	}
	return match.ID, nil
}

// preferredMapping picks the mapping that starts at TVDB season 1, else
// the first.
func preferredMapping(mappings []animelist.SeriesMapping) animelist.SeriesMapping {
	if m, ok := lo.Find(mappings, func(m animelist.SeriesMapping) bool {
		return !m.Absolute && m.DefaultSeason == 1
	}); ok {
		return m
	}
	return mappings[0]
}

func (s *AniDb) parentSeries(ctx context.Context, d process.ItemDescriptor, rc process.ResultContext) (*anidb.Series, *process.Failure) {
	id, ok := d.ParentID(process.Series, process.SourceAniDb).Get()
	if !ok {
		return nil, rc.Failed(process.NotFound, "No AniDb Id found on parent series")
	}

	series, err := s.catalog.GetSeries(ctx, id)
	if err != nil {
		return nil, rc.Wrap(process.UpstreamFailure, err,
			fmt.Sprintf("Failed to load parent series with AniDb Id '%d'", id))
	}
	return series, nil
}

func (s *AniDb) identifySeason(ctx context.Context, d process.ItemDescriptor, rc process.ResultContext) mo.Result[process.SourceData] {
	series, failure := s.parentSeries(ctx, d, rc)
	if failure != nil {
		return mo.Err[process.SourceData](failure)
	}

	ident := d.Identifier()
	return mo.Ok(process.SourceData{
		Source:     s.Name(),
		ID:         mo.None[int](),
		Identifier: ident,
		Payload:    AniDbSeason{Series: series, Index: ident.Index.OrElse(1)},
	})
}

func (s *AniDb) identifyEpisode(ctx context.Context, d process.ItemDescriptor, rc process.ResultContext) mo.Result[process.SourceData] {
	series, failure := s.parentSeries(ctx, d, rc)
	if failure != nil {
		return mo.Err[process.SourceData](failure)
	}

	ep, ok := s.findEpisode(series, d.Identifier())
	if !ok {
		return mo.Err[process.SourceData](rc.Failed(process.NotFound,
			fmt.Sprintf("Failed to find episode in AniDb series '%d'", series.ID)))
	}

	name, ok := s.title(ep.Titles, d.Language())
	if !ok {
		return mo.Err[process.SourceData](rc.Failed(process.NotFound, "Failed to find a title"))
	}

	season := 1
	if ep.Number.Type != anidb.EpisodeNormal {
		season = 0
	}
	return mo.Ok(process.SourceData{
		Source: s.Name(),
		ID:     mo.Some(ep.ID),
		Identifier: process.ItemIdentifier{
			Index:       mo.Some(ep.Number.Number()),
			ParentIndex: mo.Some(season),
			Name:        name,
		},
		Payload: AniDbEpisode{Series: series, Episode: ep},
	})
}

// findEpisode selects by index when the item has one, where a parent
// index of 0 means specials, and by title otherwise.
func (s *AniDb) findEpisode(series *anidb.Series, ident process.ItemIdentifier) (anidb.Episode, bool) {
	if index, ok := ident.Index.Get(); ok {
		epType := anidb.EpisodeNormal
		if ident.ParentIndex.OrElse(1) == 0 {
			epType = anidb.EpisodeSpecial
		}
		return series.FindEpisode(epType, index)
	}

	var candidates []titles.Candidate
	for i, ep := range series.Episodes {
		for _, t := range ep.Titles {
			candidates = append(candidates, titles.Candidate{ID: i, Title: t.Value})
		}
	}
	match, ok := s.matcher.Best(ident.Name, candidates)
	if !ok {
		return anidb.Episode{}, false
	}
	return series.Episodes[match.ID], true
}

func (s *AniDb) title(all []anidb.Title, language string) (string, bool) {
	t, ok := titles.Select(all, s.titlePref, language)
	if !ok || t.Value == "" {
		return "", false
	}
	return t.Value, true
}
