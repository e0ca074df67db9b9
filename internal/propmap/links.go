package propmap

import (
	"fmt"

	"github.com/vmunix/animeta/internal/process"
)

var linkFormats = map[string]map[process.ItemType]string{
	process.SourceAniDb: {
		process.Series:  "https://anidb.net/anime/%s",
		process.Episode: "https://anidb.net/episode/%s",
	},
	process.SourceTvDb: {
		process.Series:  "https://thetvdb.com/dereferrer/series/%s",
		process.Episode: "https://thetvdb.com/dereferrer/episode/%s",
	},
}

// ExternalURL returns the catalog page for an item id, or "" when the
// catalog has no page for that item type.
func ExternalURL(source string, itemType process.ItemType, id string) string {
	format, ok := linkFormats[source][itemType]
	if !ok || id == "" {
		return ""
	}
	return fmt.Sprintf(format, id)
}

func externalURLs(itemType process.ItemType, ids map[string]string) map[string]string {
	urls := map[string]string{}
	for source, id := range ids {
		if u := ExternalURL(source, itemType, id); u != "" {
			urls[source] = u
		}
	}
	if len(urls) == 0 {
		return nil
	}
	return urls
}
