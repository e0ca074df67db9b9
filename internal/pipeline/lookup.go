package pipeline

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/vmunix/animeta/internal/process"
)

// LookupInfo is what a caller knows about an item it wants identified.
// Provider ids are strings as media servers store them.
type LookupInfo struct {
	Name        string            `json:"name"`
	Index       *int              `json:"index,omitempty"`
	ParentIndex *int              `json:"parentIndex,omitempty"`
	Language    string            `json:"language,omitempty"`
	ProviderIDs map[string]string `json:"providerIds,omitempty"`
	// SeriesProviderIDs are the ids of the series a season or episode
	// belongs to.
	SeriesProviderIDs map[string]string `json:"seriesProviderIds,omitempty"`
}

var knownSources = []string{process.SourceAniDb, process.SourceTvDb}

// canonicalSource maps "anidb" and "ANIDB" to "AniDb". Unknown names are
// kept as given.
func canonicalSource(name string) string {
	if s, ok := lo.Find(knownSources, func(s string) bool { return strings.EqualFold(s, name) }); ok {
		return s
	}
	return name
}

// numericIDs keeps the ids that parse as integers.
func numericIDs(ids map[string]string) map[string]int {
	out := make(map[string]int, len(ids))
	for name, raw := range ids {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		out[canonicalSource(name)] = id
	}
	return out
}

// BuildDescriptor turns lookup info into a descriptor. Non-numeric
// provider ids are dropped. An empty language falls back to
// defaultLanguage.
func BuildDescriptor(itemType process.ItemType, info LookupInfo, defaultLanguage string) process.ItemDescriptor {
	language := info.Language
	if language == "" {
		language = defaultLanguage
	}

	var parents []process.ItemID
	if itemType != process.Series {
		for name, id := range numericIDs(info.SeriesProviderIDs) {
			parents = append(parents, process.ItemID{ItemType: process.Series, SourceName: name, ID: id})
		}
	}

	return process.NewItemDescriptor(
		itemType,
		process.NewItemIdentifier(info.Index, info.ParentIndex, info.Name),
		numericIDs(info.ProviderIDs),
		language,
		parents,
	)
}
