package propmap

import (
	"fmt"

	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/internal/sources"
	"github.com/vmunix/animeta/pkg/tvdb"
)

// TVDB v4 episode records carry no rating, so episodes have no rating
// mapping.
func addTvDbMappings(s *Set, opts Options) {
	seriesGenres := func(p *tvdb.Series) []string { return p.Genres }
	s.Add(process.SourceTvDb, process.Series,
		MapID("TvDb id", FieldProviderIDs, func(id int, r *Record) { r.SetProviderID(process.SourceTvDb, id) }),
		MapIf("TvDb name", FieldName,
			func(p *tvdb.Series, _ *Record) bool { return p.Name != "" },
			func(p *tvdb.Series, r *Record) { r.Name = p.Name }),
		MapIf("TvDb first aired", FieldPremiereDate,
			func(p *tvdb.Series, _ *Record) bool { return !p.FirstAired.IsZero() },
			func(p *tvdb.Series, r *Record) { r.PremiereDate = p.FirstAired }),
		MapIf("TvDb rating", FieldCommunityRating,
			func(p *tvdb.Series, _ *Record) bool { return p.Score > 0 },
			func(p *tvdb.Series, r *Record) { r.CommunityRating = p.Score }),
		MapIf("TvDb overview", FieldOverview,
			func(p *tvdb.Series, _ *Record) bool { return p.Overview != "" },
			func(p *tvdb.Series, r *Record) { r.Overview = p.Overview }),
		genresMapping("TvDb genres", opts, true, seriesGenres),
		excessGenresMapping("TvDb excess genres", opts, seriesGenres),
		MapIf("TvDb air days", FieldAirDays,
			func(p *tvdb.Series, _ *Record) bool { return len(p.AirsDays) > 0 },
			func(p *tvdb.Series, r *Record) { r.AirDays = append([]string(nil), p.AirsDays...) }),
		MapIf("TvDb air time", FieldAirTime,
			func(p *tvdb.Series, _ *Record) bool { return p.AirsTime != "" },
			func(p *tvdb.Series, r *Record) { r.AirTime = p.AirsTime }),
	)

	// Seasons borrow the AniDb payload, so only the identifier is usable.
	s.Add(process.SourceTvDb, process.Season,
		MapIdentifier("TvDb season name", FieldName,
			func(id process.ItemIdentifier, _ *Record) bool { return id.Index.IsPresent() },
			func(id process.ItemIdentifier, r *Record) { r.Name = fmt.Sprintf("Season %d", id.Index.MustGet()) }),
	)

	episodeGenres := func(p sources.TvDbEpisode) []string { return p.Series.Genres }
	s.Add(process.SourceTvDb, process.Episode,
		MapID("TvDb episode id", FieldProviderIDs, func(id int, r *Record) { r.SetProviderID(process.SourceTvDb, id) }),
		MapIf("TvDb episode name", FieldName,
			func(p sources.TvDbEpisode, _ *Record) bool { return p.Episode.Name != "" },
			func(p sources.TvDbEpisode, r *Record) { r.Name = p.Episode.Name }),
		MapIf("TvDb episode aired", FieldPremiereDate,
			func(p sources.TvDbEpisode, _ *Record) bool { return !p.Episode.AirDate.IsZero() },
			func(p sources.TvDbEpisode, r *Record) { r.PremiereDate = p.Episode.AirDate }),
		MapIf("TvDb episode overview", FieldOverview,
			func(p sources.TvDbEpisode, _ *Record) bool { return p.Episode.Overview != "" },
			func(p sources.TvDbEpisode, r *Record) { r.Overview = p.Episode.Overview }),
		genresMapping("TvDb series genres", opts, false, episodeGenres),
		excessGenresMapping("TvDb series excess genres", opts, episodeGenres),
	)
}
