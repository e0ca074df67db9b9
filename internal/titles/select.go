package titles

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vmunix/animeta/pkg/anidb"
)

// Preference chooses which of an item's titles to display.
type Preference int

const (
	// Localized prefers a title in the metadata language.
	Localized Preference = iota
	// Japanese prefers the title in Japanese script.
	Japanese
	// JapaneseRomaji prefers the romanised Japanese title.
	JapaneseRomaji
)

func (p Preference) String() string {
	switch p {
	case Localized:
		return "Localized"
	case Japanese:
		return "Japanese"
	case JapaneseRomaji:
		return "JapaneseRomaji"
	default:
		return fmt.Sprintf("Preference(%d)", int(p))
	}
}

// ParsePreference parses a preference name, ignoring case.
func ParsePreference(s string) (Preference, error) {
	for _, p := range []Preference{Localized, Japanese, JapaneseRomaji} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return Localized, fmt.Errorf("unknown title preference %q", s)
}

// Select picks a title for the preference and language. Within a language
// main titles beat official ones, which beat synonyms. When nothing
// matches, the main title is used.
func Select(titles []anidb.Title, pref Preference, language string) (anidb.Title, bool) {
	lang := language
	switch pref {
	case Japanese:
		lang = "ja"
	case JapaneseRomaji:
		lang = "x-jat"
	}

	if t, ok := bestInLanguage(titles, lang); ok {
		return t, true
	}
	if i := slices.IndexFunc(titles, func(t anidb.Title) bool { return t.Type == anidb.TitleMain }); i >= 0 {
		return titles[i], true
	}
	if len(titles) > 0 {
		return titles[0], true
	}
	return anidb.Title{}, false
}

func bestInLanguage(titles []anidb.Title, lang string) (anidb.Title, bool) {
	if lang == "" {
		return anidb.Title{}, false
	}
	var best anidb.Title
	found := false
	for _, t := range titles {
		if !strings.EqualFold(t.Lang, lang) || t.Type == anidb.TitleShort {
			continue
		}
		if !found || t.Priority() < best.Priority() {
			best, found = t, true
		}
	}
	return best, found
}
