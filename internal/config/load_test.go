package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Valid(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[cache]
driver = "file"
path = "` + tmp + `"

[tvdb]
api_key = "key"
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Driver != "file" {
		t.Errorf("expected driver file, got %s", cfg.Cache.Driver)
	}
}

func TestLoad_MissingEnvVar(t *testing.T) {
	os.Unsetenv("MISSING_KEY")
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[tvdb]
api_key = "${MISSING_KEY}"
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for missing env var")
	}
	if !strings.Contains(err.Error(), "MISSING_KEY") {
		t.Errorf("expected MISSING_KEY in error, got %v", err)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[cache]
driver = "redis"

[tvdb]
api_key = "key"
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for unknown cache driver")
	}
	if !strings.Contains(err.Error(), "cache.driver") {
		t.Errorf("expected cache.driver in error, got %v", err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[tvdb]
api_key = "key"
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.Cache.Driver)
	}
	if cfg.Cache.DefaultTTL != 24*time.Hour {
		t.Errorf("expected default ttl 24h, got %s", cfg.Cache.DefaultTTL)
	}
	if *cfg.AniDB.RequestInterval != 2*time.Second {
		t.Errorf("expected anidb interval 2s, got %s", *cfg.AniDB.RequestInterval)
	}
	if *cfg.Metadata.MaxGenres != 5 || !*cfg.Metadata.AddAnimeGenre {
		t.Errorf("expected genre defaults, got %d %v", *cfg.Metadata.MaxGenres, *cfg.Metadata.AddAnimeGenre)
	}
}

func TestLoad_ExplicitZeroesKept(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[tvdb]
api_key = "key"

[anidb]
request_interval = "0s"

[metadata]
max_genres = 0
add_anime_genre = false
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg.Metadata.MaxGenres != 0 {
		t.Errorf("expected max_genres 0, got %d", *cfg.Metadata.MaxGenres)
	}
	if *cfg.Metadata.AddAnimeGenre {
		t.Error("expected add_anime_genre false")
	}
	if *cfg.AniDB.RequestInterval != 0 {
		t.Errorf("expected request_interval 0, got %s", *cfg.AniDB.RequestInterval)
	}
}

func TestLoadWithoutValidation(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[cache]
driver = "redis"
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := LoadWithoutValidation(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Driver != "redis" {
		t.Errorf("expected driver redis, got %s", cfg.Cache.Driver)
	}
}

func TestLoad_EnvVarDefault(t *testing.T) {
	os.Unsetenv("OPTIONAL_VAR")
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[anidb]
client = "${OPTIONAL_VAR:-myclient}"

[tvdb]
api_key = "key"
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AniDB.Client != "myclient" {
		t.Errorf("expected client myclient, got %s", cfg.AniDB.Client)
	}
}
