package propmap

import (
	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/internal/titles"
)

// Options controls how catalog data becomes a Record.
type Options struct {
	// MaxGenres caps the genres taken from each source; zero means no cap.
	// The "Anime" genre is not counted.
	MaxGenres              int
	AddAnimeGenre          bool
	MoveExcessGenresToTags bool
	// TitlePreference decides which title the original title is not: with
	// Localized or Japanese the romanised title is the original, with
	// JapaneseRomaji it is the Japanese script title.
	TitlePreference titles.Preference
	// FieldSources restricts a field to mappings from one source. Without
	// an entry, single valued fields go to the first source that has a
	// value for them.
	FieldSources map[Field]string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxGenres:              5,
		AddAnimeGenre:          true,
		MoveExcessGenresToTags: true,
		TitlePreference:        titles.Localized,
	}
}

type setKey struct {
	source   string
	itemType process.ItemType
}

// Set holds the ordered mappings for each source and item type.
type Set struct {
	mappings map[setKey][]Mapping
}

func NewSet() *Set {
	return &Set{mappings: make(map[setKey][]Mapping)}
}

// Add appends mappings for the source and item type, stamping each with
// the source name.
func (s *Set) Add(source string, itemType process.ItemType, mappings ...Mapping) *Set {
	key := setKey{source: source, itemType: itemType}
	for _, m := range mappings {
		m.Source = source
		s.mappings[key] = append(s.mappings[key], m)
	}
	return s
}

// For returns the mappings for the source and item type in declared order.
func (s *Set) For(source string, itemType process.ItemType) []Mapping {
	return s.mappings[setKey{source: source, itemType: itemType}]
}

// DefaultSet returns the AniDb and TvDb mappings.
func DefaultSet(opts Options) *Set {
	s := NewSet()
	addAniDbMappings(s, opts)
	addTvDbMappings(s, opts)
	return s
}
