package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// FileStore keeps one file per key under a directory. An entry expires when
// its modification time is older than the key's TTL.
type FileStore struct {
	fs   afero.Afero
	dir  string
	ttls TTLs
	now  func() time.Time
}

// NewFileStore creates a store rooted at dir on fsys. Pass afero.NewOsFs()
// for disk and afero.NewMemMapFs() in tests.
func NewFileStore(fsys afero.Fs, dir string, ttls TTLs) (*FileStore, error) {
	af := afero.Afero{Fs: fsys}
	if err := af.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{fs: af, dir: dir, ttls: ttls, now: time.Now}, nil
}

var keyReplacer = strings.NewReplacer(":", "_", "/", "_", "\\", "_", " ", "_")

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, keyReplacer.Replace(key)+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool) {
	path := s.path(key)

	info, err := s.fs.Stat(path)
	if err != nil || s.now().Sub(info.ModTime()) > s.ttls.For(key) {
		return nil, false
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put writes to a temporary file of its own and renames it over the entry,
// so readers never see a partial write and concurrent writers of one key
// do not share a temp file.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	path := s.path(key)

	tmp, err := s.fs.TempFile(s.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(value)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = s.fs.Rename(tmpPath, path)
	}
	if err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := s.fs.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// staleTemp is how old a temp file must be before Prune treats it as left
// behind by a failed Put.
const staleTemp = time.Minute

// Prune walks the directory and removes expired entries and stray temp files.
func (s *FileStore) Prune(_ context.Context) (int64, error) {
	var removed int64
	err := s.fs.Walk(s.dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		// File names lose the key's separators, so match TTL prefixes on
		// the underscored form.
		ttl := s.ttls.For(strings.Replace(name, "_", ":", 2))
		if strings.HasSuffix(path, ".tmp") {
			ttl = staleTemp
		}
		if s.now().Sub(info.ModTime()) > ttl {
			if err := s.fs.Remove(path); err == nil {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("cache prune: %w", err)
	}
	return removed, nil
}
