package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/vmunix/animeta/internal/catalog"
	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/internal/propmap"
	"github.com/vmunix/animeta/internal/titles"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

var validCacheDrivers = map[string]bool{
	"sqlite": true, "file": true, "memory": true,
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []Problem {
	var ps []Problem

	if !validLogLevels[c.Log.Level] {
		ps = append(ps, problemf("log.level", "must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		ps = append(ps, problemf("log.format", "must be text or json; got %q", c.Log.Format))
	}

	ps = append(ps, c.Cache.validate()...)

	// AniDB bans clients that are not registered or that flood it
	if c.AniDB.Client == "" {
		ps = append(ps, problemf("anidb.client", "required"))
	}
	if c.AniDB.ClientVersion < 1 {
		ps = append(ps, problemf("anidb.client_version", "must be positive, got %d", c.AniDB.ClientVersion))
	}
	if c.AniDB.RequestInterval != nil && *c.AniDB.RequestInterval < 0 {
		ps = append(ps, problemf("anidb.request_interval", "must not be negative"))
	}

	if c.TVDB.APIKey == "" {
		ps = append(ps, problemf("tvdb.api_key", "required"))
	}

	ps = append(ps, c.Metadata.validate()...)
	return ps
}

func (c CacheConfig) validate() []Problem {
	var ps []Problem
	if !validCacheDrivers[c.Driver] {
		ps = append(ps, problemf("cache.driver", "must be one of sqlite, file, memory; got %q", c.Driver))
	}
	if c.Driver != "memory" && c.Path == "" {
		ps = append(ps, problemf("cache.path", "required for sqlite and file drivers"))
	}
	if c.DefaultTTL < 0 {
		ps = append(ps, problemf("cache.default_ttl", "must not be negative"))
	}
	if c.MaxPages < 0 {
		ps = append(ps, problemf("cache.max_pages", "must not be negative, got %d", c.MaxPages))
	}

	for prefix, ttl := range c.TTLs {
		key := "cache.ttls." + prefix
		if ttl <= 0 {
			ps = append(ps, problemf(key, "must be positive"))
		}
		if !matchesNamespace(prefix) {
			ps = append(ps, problemf(key, "matches no cache key; keys start with %s",
				strings.Join(catalog.KeyNamespaces, ", ")))
		}
	}
	return ps
}

// matchesNamespace reports whether a TTL prefix can match any key, either
// by naming a namespace in part ("anidb") or by narrowing one
// ("anidb:series:").
func matchesNamespace(prefix string) bool {
	if prefix == "" {
		return false
	}
	return lo.SomeBy(catalog.KeyNamespaces, func(ns string) bool {
		return strings.HasPrefix(ns, prefix) || strings.HasPrefix(prefix, ns)
	})
}

func (m MetadataConfig) validate() []Problem {
	var ps []Problem
	if _, err := titles.ParsePreference(m.TitlePreference); err != nil {
		ps = append(ps, problemf("metadata.title_preference",
			"must be one of Localized, Japanese, JapaneseRomaji; got %q", m.TitlePreference))
	}
	if t := m.TitleMatchThreshold; t < 0 || t > 1 {
		ps = append(ps, problemf("metadata.title_match_threshold", "must be between 0 and 1, got %v", t))
	}
	if m.MaxGenres != nil && *m.MaxGenres < 0 {
		ps = append(ps, problemf("metadata.max_genres", "must not be negative, got %d", *m.MaxGenres))
	}

	// Field names are case-insensitive, so "genres" and "Genres" collide.
	seen := map[propmap.Field]string{}
	for name, source := range m.FieldSources {
		key := "metadata.field_sources." + name
		if !strings.EqualFold(source, process.SourceAniDb) && !strings.EqualFold(source, process.SourceTvDb) {
			ps = append(ps, problemf(key, "unknown source %q", source))
		}
		field, err := propmap.ParseField(name)
		if err != nil {
			ps = append(ps, problemf(key, "unknown field"))
			continue
		}
		if other, dup := seen[field]; dup {
			first, second := min(other, name), max(other, name)
			ps = append(ps, problemf("metadata.field_sources."+second, "same field as %q", first))
			continue
		}
		seen[field] = name
	}
	return ps
}
