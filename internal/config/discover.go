package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	appName = "animeta"

	// EnvConfig names a config file and overrides the search.
	EnvConfig = "ANIMETA_CONFIG"
)

// userDir resolves an XDG base directory, falling back to fallback under
// the home directory. It returns "" when neither is known.
func userDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback)
}

// DefaultPath is where "config init" writes: $XDG_CONFIG_HOME/animeta.
func DefaultPath() string {
	dir := userDir("XDG_CONFIG_HOME", ".config")
	if dir == "" {
		return "config.toml"
	}
	return filepath.Join(dir, appName, "config.toml")
}

// DefaultCachePath places the cache under $XDG_CACHE_HOME/animeta: a
// database file for sqlite and a directory of entries for the file driver.
func DefaultCachePath(driver string) string {
	dir := userDir("XDG_CACHE_HOME", ".cache")
	if dir == "" {
		dir = "data"
	} else {
		dir = filepath.Join(dir, appName)
	}
	if driver == "file" {
		return filepath.Join(dir, "entries")
	}
	return filepath.Join(dir, appName+".db")
}

// SearchPaths lists where Discover looks, in order.
func SearchPaths() []string {
	return []string{
		"config.toml",
		filepath.Join(appName, "config.toml"),
		DefaultPath(),
		filepath.Join("/etc", appName, "config.toml"),
	}
}

// NotFoundError lists the places Discover checked.
type NotFoundError struct {
	Checked []string
}

func (e *NotFoundError) Error() string {
	return "config not found, checked: " + strings.Join(e.Checked, ", ")
}

// Discover returns $ANIMETA_CONFIG when set, else the first of SearchPaths
// that exists.
func Discover() (string, error) {
	return discover(afero.NewOsFs())
}

func discover(fsys afero.Fs) (string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		if _, err := fsys.Stat(path); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, path, err)
		}
		return path, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if info, err := fsys.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", &NotFoundError{Checked: paths}
}
