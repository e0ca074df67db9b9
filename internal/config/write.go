package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

//go:embed default_config.toml
var defaultConfig string

// WriteDefault writes the annotated example config to path, creating its
// directory. It refuses to replace an existing file.
func WriteDefault(path string) error {
	return writeDefault(afero.NewOsFs(), path)
}

func writeDefault(fsys afero.Fs, path string) error {
	if exists, err := afero.Exists(fsys, path); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return afero.WriteFile(fsys, path, []byte(defaultConfig), 0o644)
}
