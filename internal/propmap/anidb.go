package propmap

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/internal/sources"
	"github.com/vmunix/animeta/internal/titles"
	"github.com/vmunix/animeta/pkg/anidb"
)

var (
	// "http://anidb.net/ch7514 [Ryouko]" becomes "Ryouko".
	anidbLinkRegex  = regexp.MustCompile(`https?://anidb\.net/\S+ \[([^\]]+)\]`)
	sourceLineRegex = regexp.MustCompile(`(?m)^\s*(Source|Note|Summary):.*$`)
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)

// titleCase makes a new Caser per call; a Caser is not safe for
// concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// CleanDescription removes AniDB link markup and source notes.
func CleanDescription(s string) string {
	s = anidbLinkRegex.ReplaceAllString(s, "$1")
	s = sourceLineRegex.ReplaceAllString(s, "")
	s = blankLinesRegex.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// weightedTags splits tags into genres (weighted, heaviest first) and the
// remaining tags.
func weightedTags(tags []anidb.Tag) (genres, rest []string) {
	weighted := lo.Filter(tags, func(t anidb.Tag, _ int) bool { return t.Weight > 0 })
	slices.SortStableFunc(weighted, func(a, b anidb.Tag) int { return cmp.Compare(b.Weight, a.Weight) })

	genres = lo.Map(weighted, func(t anidb.Tag, _ int) string { return titleCase(t.Name) })
	for _, t := range tags {
		if t.Weight == 0 {
			rest = append(rest, titleCase(t.Name))
		}
	}
	return genres, rest
}

func studios(creators []anidb.Creator) []string {
	return lo.FilterMap(creators, func(c anidb.Creator, _ int) (string, bool) {
		return c.Name, c.Type == "Animation Work" || c.Type == "Work"
	})
}

func originalTitle(all []anidb.Title, pref titles.Preference) string {
	want, lang := titles.JapaneseRomaji, "x-jat"
	if pref == titles.JapaneseRomaji {
		want, lang = titles.Japanese, "ja"
	}
	t, ok := titles.Select(all, want, "")
	if !ok || !strings.EqualFold(t.Lang, lang) {
		return ""
	}
	return t.Value
}

// seriesMappings are shared by series and by seasons, which see the
// series through an AniDbSeason.
func seriesMappings[P any](series func(P) *anidb.Series, opts Options) []Mapping {
	genres := func(p P) []string {
		g, _ := weightedTags(series(p).Tags)
		return g
	}
	return []Mapping{
		MapIf("AniDb original title", FieldOriginalTitle,
			func(p P, _ *Record) bool { return originalTitle(series(p).Titles, opts.TitlePreference) != "" },
			func(p P, r *Record) { r.OriginalTitle = originalTitle(series(p).Titles, opts.TitlePreference) }),
		MapIf("AniDb description", FieldOverview,
			func(p P, _ *Record) bool { return CleanDescription(series(p).Description) != "" },
			func(p P, r *Record) { r.Overview = CleanDescription(series(p).Description) }),
		MapIf("AniDb start date", FieldPremiereDate,
			func(p P, _ *Record) bool { return !series(p).StartDate.IsZero() },
			func(p P, r *Record) { r.PremiereDate = series(p).StartDate.Time }),
		MapIf("AniDb end date", FieldEndDate,
			func(p P, _ *Record) bool { return !series(p).EndDate.IsZero() },
			func(p P, r *Record) { r.EndDate = series(p).EndDate.Time }),
		MapIf("AniDb rating", FieldCommunityRating,
			func(p P, _ *Record) bool { return series(p).Rating > 0 },
			func(p P, r *Record) { r.CommunityRating = series(p).Rating }),
		genresMapping("AniDb genres", opts, true, genres),
		excessGenresMapping("AniDb excess genres", opts, genres),
		Map("AniDb tags", FieldTags, func(p P, r *Record) {
			_, tags := weightedTags(series(p).Tags)
			r.Tags = append(r.Tags, tags...)
		}),
		Map("AniDb studios", FieldStudios, func(p P, r *Record) {
			r.Studios = append(r.Studios, studios(series(p).Creators)...)
		}),
	}
}

func identifierName() Mapping {
	return MapIdentifier("Identifier name", FieldName,
		func(id process.ItemIdentifier, _ *Record) bool { return id.Name != "" },
		func(id process.ItemIdentifier, r *Record) { r.Name = id.Name })
}

func addAniDbMappings(s *Set, opts Options) {
	s.Add(process.SourceAniDb, process.Series,
		append([]Mapping{
			identifierName(),
			MapID("AniDb id", FieldProviderIDs, func(id int, r *Record) { r.SetProviderID(process.SourceAniDb, id) }),
		}, seriesMappings(func(p *anidb.Series) *anidb.Series { return p }, opts)...)...)

	// Season names come from the season number, not the series title.
	s.Add(process.SourceAniDb, process.Season,
		append([]Mapping{
			Map("AniDb season index", FieldIndexNumber, func(p sources.AniDbSeason, r *Record) {
				r.IndexNumber = mo.Some(p.Index)
			}),
		}, seriesMappings(func(p sources.AniDbSeason) *anidb.Series { return p.Series }, opts)...)...)

	s.Add(process.SourceAniDb, process.Episode,
		identifierName(),
		MapID("AniDb episode id", FieldProviderIDs, func(id int, r *Record) { r.SetProviderID(process.SourceAniDb, id) }),
		MapIdentifier("AniDb episode number", FieldIndexNumber,
			func(id process.ItemIdentifier, _ *Record) bool { return id.Index.IsPresent() },
			func(id process.ItemIdentifier, r *Record) { r.IndexNumber = id.Index }),
		MapIdentifier("AniDb season number", FieldParentIndexNumber,
			func(id process.ItemIdentifier, _ *Record) bool { return id.ParentIndex.IsPresent() },
			func(id process.ItemIdentifier, r *Record) { r.ParentIndexNumber = id.ParentIndex }),
		MapIf("AniDb episode summary", FieldOverview,
			func(p sources.AniDbEpisode, _ *Record) bool { return CleanDescription(p.Episode.Summary) != "" },
			func(p sources.AniDbEpisode, r *Record) { r.Overview = CleanDescription(p.Episode.Summary) }),
		MapIf("AniDb air date", FieldPremiereDate,
			func(p sources.AniDbEpisode, _ *Record) bool { return !p.Episode.AirDate.IsZero() },
			func(p sources.AniDbEpisode, r *Record) { r.PremiereDate = p.Episode.AirDate.Time }),
		MapIf("AniDb episode rating", FieldCommunityRating,
			func(p sources.AniDbEpisode, _ *Record) bool { return p.Episode.Rating > 0 },
			func(p sources.AniDbEpisode, r *Record) { r.CommunityRating = p.Episode.Rating }),
		MapIf("AniDb episode original title", FieldOriginalTitle,
			func(p sources.AniDbEpisode, _ *Record) bool { return originalTitle(p.Episode.Titles, opts.TitlePreference) != "" },
			func(p sources.AniDbEpisode, r *Record) { r.OriginalTitle = originalTitle(p.Episode.Titles, opts.TitlePreference) }),
	)
}
