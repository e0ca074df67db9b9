package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/animeta/pkg/anidb"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Tenchi Muyo!", "tenchi muyo"},
		{"Pokémon", "pokemon"},
		{"Mobile Suit Gundam II", "mobile suit gundam 2"},
		{"Bakuman. (2012)", "bakuman 2012"},
		{"Fullmetal Alchemist: Brotherhood", "fullmetal alchemist brotherhood"},
		{"Kino's Journey", "kinos journey"},
		{"Spice & Wolf", "spice and wolf"},
		{"  Lots   of   space  ", "lots of space"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_PunctuationIsComparable(t *testing.T) {
	want := Normalize("Test - ComparableMatch")
	for _, c := range []string{"/", ",", ".", ":", ";", `\`, "(", ")", "{", "}", "[", "]",
		"+", "-", "_", "=", "–", "*", `"`, "'", "!", "`", "?"} {
		assert.Equal(t, want, Normalize("Test"+c+" ComparableMatch"), "separator %q", c)
	}
}

func TestMatcher_Best(t *testing.T) {
	candidates := []Candidate{
		{ID: 123, Title: "Bakuman."},
		{ID: 456, Title: "Bakuman. (2012)"},
		{ID: 56, Title: "Tenchi Muyou! Ryououki"},
	}
	m := NewMatcher(0)

	t.Run("exact normalised match", func(t *testing.T) {
		got, ok := m.Best("Bakuman (2012)", candidates)
		require.True(t, ok)
		assert.Equal(t, 456, got.ID)
		assert.True(t, got.Exact)
	})

	t.Run("fuzzy match", func(t *testing.T) {
		got, ok := m.Best("Tenchi Muyo Ryououki", candidates)
		require.True(t, ok)
		assert.Equal(t, 56, got.ID)
		assert.False(t, got.Exact)
		assert.GreaterOrEqual(t, got.Score, DefaultThreshold)
	})

	t.Run("no match below threshold", func(t *testing.T) {
		_, ok := m.Best("Cowboy Bebop", candidates)
		assert.False(t, ok)
	})

	t.Run("empty query", func(t *testing.T) {
		_, ok := m.Best("!!!", candidates)
		assert.False(t, ok)
	})
}

func TestSelect(t *testing.T) {
	titles := []anidb.Title{
		{Lang: "x-jat", Type: anidb.TitleMain, Value: "Tenchi Muyou! Ryououki"},
		{Lang: "en", Type: anidb.TitleSynonym, Value: "Tenchi Universe OVA"},
		{Lang: "en", Type: anidb.TitleOfficial, Value: "Tenchi Muyo! Ryo-Ohki"},
		{Lang: "ja", Type: anidb.TitleOfficial, Value: "天地無用! 魎皇鬼"},
		{Lang: "de", Type: anidb.TitleShort, Value: "TM"},
	}

	tests := []struct {
		name string
		pref Preference
		lang string
		want string
	}{
		{"localized prefers official over synonym", Localized, "en", "Tenchi Muyo! Ryo-Ohki"},
		{"japanese", Japanese, "en", "天地無用! 魎皇鬼"},
		{"romaji", JapaneseRomaji, "en", "Tenchi Muyou! Ryououki"},
		{"missing language falls back to main", Localized, "fr", "Tenchi Muyou! Ryououki"},
		{"short titles are ignored", Localized, "de", "Tenchi Muyou! Ryououki"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Select(titles, tt.pref, tt.lang)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Value)
		})
	}

	_, ok := Select(nil, Localized, "en")
	assert.False(t, ok)
}

func TestParsePreference(t *testing.T) {
	p, err := ParsePreference("japaneseromaji")
	require.NoError(t, err)
	assert.Equal(t, JapaneseRomaji, p)

	_, err = ParsePreference("klingon")
	assert.Error(t, err)
}
