// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Cache    CacheConfig    `toml:"cache"`
	AniDB    AniDBConfig    `toml:"anidb"`
	TVDB     TVDBConfig     `toml:"tvdb"`
	Mapping  MappingConfig  `toml:"mapping"`
	Metadata MetadataConfig `toml:"metadata"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

type CacheConfig struct {
	Driver string `toml:"driver"` // "sqlite", "file" or "memory"
	// Path is the database file for sqlite and the directory for file.
	Path       string                   `toml:"path"`
	DefaultTTL time.Duration            `toml:"default_ttl"`
	TTLs       map[string]time.Duration `toml:"ttls"` // keyed by cache key prefix
	MaxPages   int                      `toml:"max_pages"`
}

type AniDBConfig struct {
	Client        string `toml:"client"`
	ClientVersion int    `toml:"client_version"`
	// RequestInterval is the gap between AniDB requests. An explicit "0s"
	// turns throttling off.
	RequestInterval *time.Duration `toml:"request_interval"`
	BaseURL         string         `toml:"base_url"`
	TitlesURL       string         `toml:"titles_url"`
}

type TVDBConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

type MappingConfig struct {
	AnimeListURL string `toml:"anime_list_url"`
}

type MetadataConfig struct {
	Language               string  `toml:"language"`
	TitlePreference        string  `toml:"title_preference"`
	TitleMatchThreshold    float64 `toml:"title_match_threshold"`
	MaxGenres              *int    `toml:"max_genres"`
	AddAnimeGenre          *bool   `toml:"add_anime_genre"`
	MoveExcessGenresToTags *bool   `toml:"move_excess_genres_to_tags"`
	// FieldSources restricts a record field to one source, e.g.
	// genres = "TvDb".
	FieldSources map[string]string `toml:"field_sources"`
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, &ConfigError{Path: path, Problems: problems}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping Validate. Missing environment variables are still
// an error.
func LoadWithoutValidation(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "sqlite"
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath(c.Cache.Driver)
	}
	if c.Cache.DefaultTTL == 0 {
		c.Cache.DefaultTTL = 24 * time.Hour
	}
	if c.Cache.MaxPages == 0 {
		c.Cache.MaxPages = 100
	}
	if c.AniDB.Client == "" {
		c.AniDB.Client = "animeta"
	}
	if c.AniDB.ClientVersion == 0 {
		c.AniDB.ClientVersion = 1
	}
	if c.AniDB.RequestInterval == nil {
		c.AniDB.RequestInterval = ptr(2 * time.Second)
	}
	if c.Metadata.Language == "" {
		c.Metadata.Language = "en"
	}
	if c.Metadata.TitlePreference == "" {
		c.Metadata.TitlePreference = "Localized"
	}
	if c.Metadata.TitleMatchThreshold == 0 {
		c.Metadata.TitleMatchThreshold = 0.92
	}
	if c.Metadata.MaxGenres == nil {
		c.Metadata.MaxGenres = ptr(5)
	}
	if c.Metadata.AddAnimeGenre == nil {
		c.Metadata.AddAnimeGenre = ptr(true)
	}
	if c.Metadata.MoveExcessGenresToTags == nil {
		c.Metadata.MoveExcessGenresToTags = ptr(true)
	}
}

func ptr[T any](v T) *T { return &v }

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment variable references. Unset
// variables without a default are left unchanged and reported as missing.
// An empty value counts as unset for the :- and :? forms.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, strings.TrimSpace(arg)))
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})

	return result, missing
}
