package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError_MissingVars(t *testing.T) {
	e := &ConfigError{Path: "/etc/animeta/config.toml", Missing: []string{"API_KEY", "SECRET"}}
	assert.Equal(t, "config /etc/animeta/config.toml: missing environment variables: API_KEY, SECRET", e.Error())
}

func TestConfigError_ProblemsSortedByKey(t *testing.T) {
	e := &ConfigError{
		Path: "config.toml",
		Problems: []Problem{
			{Key: "tvdb.api_key", Message: "required"},
			{Key: "cache.ttls.imdb:", Message: "matches no cache key"},
			{Key: "cache.driver", Message: "unknown"},
		},
	}
	want := "config config.toml: 3 invalid settings\n" +
		"  - cache.driver: unknown\n" +
		"  - cache.ttls.imdb:: matches no cache key\n" +
		"  - tvdb.api_key: required"
	assert.Equal(t, want, e.Error())
}

func TestConfigError_Under(t *testing.T) {
	e := &ConfigError{Problems: []Problem{
		{Key: "metadata.field_sources.tags", Message: "unknown source"},
		{Key: "metadata.field_sources_extra", Message: "not nested"},
		{Key: "cache.ttls.tvdb:", Message: "must be positive"},
		{Key: "metadata.field_sources.colour", Message: "unknown field"},
	}}

	got := e.Under("metadata.field_sources")
	require.Len(t, got, 2)
	assert.Equal(t, "metadata.field_sources.colour", got[0].Key)
	assert.Equal(t, "metadata.field_sources.tags", got[1].Key)
	assert.Len(t, e.Under("cache"), 1)
}

func TestConfigError_IsInvalid(t *testing.T) {
	err := fmt.Errorf("load: %w", &ConfigError{Path: "x", Problems: []Problem{{Key: "log.level", Message: "bad"}}})
	assert.ErrorIs(t, err, ErrInvalid)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "log.level", cfgErr.Problems[0].Key)
}
