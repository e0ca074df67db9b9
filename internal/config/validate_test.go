package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.TVDB.APIKey = "test-key"
	return cfg
}

func TestValidate_MinimalValid(t *testing.T) {
	errs := validConfig().Validate()
	assert.Empty(t, errs, "expected no errors for minimal valid config")
}

func TestValidate_MissingTVDBKey(t *testing.T) {
	errs := Default().Validate()
	assert.True(t, containsError(errs, "tvdb.api_key"), "expected api key error, got %v", errs)
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log.level"), "expected log.level error, got %v", errs)
}

func TestValidate_InvalidCacheDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "redis"
	errs := cfg.Validate()
	assert.True(t, containsErrorBoth(errs, "cache.driver", "redis"), "expected cache.driver error, got %v", errs)
}

func TestValidate_MemoryCacheNeedsNoPath(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "memory"
	cfg.Cache.Path = ""
	assert.Empty(t, cfg.Validate())
}

func TestValidate_NonPositivePrefixTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.TTLs = map[string]time.Duration{"tvdb:": 0}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "cache.ttls.tvdb:"), "expected ttl error, got %v", errs)
}

func TestValidate_TTLPrefixOutsideCacheKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.TTLs = map[string]time.Duration{
		"anidb:series:": time.Hour,
		"tvdb":          time.Hour,
		"imdb:":         time.Hour,
		"":              time.Hour,
	}
	errs := cfg.Validate()
	assert.True(t, containsErrorBoth(errs, "cache.ttls.imdb:", "matches no cache key"), "expected prefix error, got %v", errs)
	assert.True(t, containsErrorBoth(errs, "cache.ttls.:", "matches no cache key"), "expected empty prefix error, got %v", errs)
	assert.False(t, containsError(errs, "cache.ttls.anidb"), "unexpected anidb error: %v", errs)
	assert.False(t, containsError(errs, "cache.ttls.tvdb"), "unexpected tvdb error: %v", errs)
}

func TestValidate_NegativeRequestInterval(t *testing.T) {
	cfg := validConfig()
	cfg.AniDB.RequestInterval = ptr(-time.Second)
	assert.True(t, containsError(cfg.Validate(), "anidb.request_interval"))

	cfg.AniDB.RequestInterval = ptr(time.Duration(0))
	assert.Empty(t, cfg.Validate())
}

func TestValidate_AniDBClient(t *testing.T) {
	cfg := validConfig()
	cfg.AniDB.Client = ""
	cfg.AniDB.ClientVersion = 0
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "anidb.client:"), "expected anidb.client error, got %v", errs)
	assert.True(t, containsError(errs, "anidb.client_version"), "expected client_version error, got %v", errs)
}

func TestValidate_TitlePreference(t *testing.T) {
	cfg := validConfig()
	cfg.Metadata.TitlePreference = "english"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "metadata.title_preference"), "expected title_preference error, got %v", errs)

	cfg.Metadata.TitlePreference = "japaneseromaji"
	assert.Empty(t, cfg.Validate())
}

func TestValidate_ThresholdRange(t *testing.T) {
	cfg := validConfig()
	cfg.Metadata.TitleMatchThreshold = 1.5
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "title_match_threshold"), "expected threshold error, got %v", errs)
}

func TestValidate_FieldSources(t *testing.T) {
	cfg := validConfig()
	cfg.Metadata.FieldSources = map[string]string{"genres": "tvdb", "colour": "AniDb", "tags": "Imdb"}
	errs := cfg.Validate()
	assert.False(t, containsError(errs, "field_sources.genres"), "unexpected genres error: %v", errs)
	assert.True(t, containsErrorBoth(errs, "field_sources.colour", "unknown field"), "expected field error, got %v", errs)
	assert.True(t, containsErrorBoth(errs, "field_sources.tags", "Imdb"), "expected source error, got %v", errs)
}

func TestValidate_FieldSourcesSameFieldTwice(t *testing.T) {
	cfg := validConfig()
	cfg.Metadata.FieldSources = map[string]string{"genres": "TvDb", "Genres": "AniDb"}
	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, Problem{Key: "metadata.field_sources.genres", Message: `same field as "Genres"`}, errs[0])
}

func containsError(errs []Problem, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.String(), substr) {
			return true
		}
	}
	return false
}

func containsErrorBoth(errs []Problem, substr1, substr2 string) bool {
	for _, e := range errs {
		if strings.Contains(e.String(), substr1) && strings.Contains(e.String(), substr2) {
			return true
		}
	}
	return false
}
