package propmap

import (
	"slices"

	"github.com/samber/lo"
)

const animeGenre = "Anime"

// splitGenres caps one source's genres at MaxGenres. When the "Anime"
// genre is added separately, a catalog's own "Anime" is dropped so it
// does not take a slot.
func splitGenres(genres []string, opts Options) (kept, excess []string) {
	if opts.AddAnimeGenre {
		genres = lo.Without(genres, animeGenre)
	}
	genres = lo.Uniq(genres)
	if limit := opts.MaxGenres; limit > 0 && len(genres) > limit {
		return genres[:limit], genres[limit:]
	}
	return genres, nil
}

// genresMapping adds a source's capped genres, led by "Anime" when
// withAnime is set and the option is on.
func genresMapping[P any](name string, opts Options, withAnime bool, genres func(P) []string) Mapping {
	return Map(name, FieldGenres, func(p P, r *Record) {
		kept, _ := splitGenres(genres(p), opts)
		if withAnime && opts.AddAnimeGenre && !slices.Contains(r.Genres, animeGenre) {
			r.Genres = append([]string{animeGenre}, r.Genres...)
		}
		r.Genres = append(r.Genres, kept...)
	})
}

// excessGenresMapping moves the genres a source lost to MaxGenres into
// tags.
func excessGenresMapping[P any](name string, opts Options, genres func(P) []string) Mapping {
	return MapIf(name, FieldTags,
		func(p P, _ *Record) bool {
			_, excess := splitGenres(genres(p), opts)
			return opts.MoveExcessGenresToTags && len(excess) > 0
		},
		func(p P, r *Record) {
			_, excess := splitGenres(genres(p), opts)
			r.Tags = append(r.Tags, excess...)
		})
}
