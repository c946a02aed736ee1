// Package cache persists the linearcli cache document.
package cache

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/yndnr/linearcli/internal/core/domain"
)

const (
	// FileName is the cache document inside the home directory.
	FileName = "data.json"
	// IconsDir holds downloaded avatars inside the home directory.
	IconsDir = "icons"

	indent = "    "
)

// DefaultDir returns ~/.linear.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".linear")
}

// Store reads and writes the cache document under one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir means DefaultDir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the cache document path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// IconPath returns where the avatar of userID is stored.
func (s *Store) IconPath(userID string) string {
	return filepath.Join(s.dir, IconsDir, userID+".png")
}

// ensureDirs creates the store directory and its icons subdirectory.
func (s *Store) ensureDirs() error {
	if err := os.MkdirAll(filepath.Join(s.dir, IconsDir), 0o700); err != nil {
		return errors.Wrapf(err, "create %s", s.dir)
	}
	return nil
}

// Load reads the cache. A missing file yields an empty Config.
func (s *Store) Load() (*domain.Config, error) {
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return &domain.Config{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.Path())
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &domain.Config{}, nil
	}

	cfg := &domain.Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		if domain.IsDomainError(err, "") {
			return nil, err
		}
		return nil, domain.ErrCacheCorrupt.WithDetails(s.Path()).WithCause(err)
	}
	return cfg, nil
}

// Save overwrites the cache with cfg as indented JSON. The document is
// written to a temp file and renamed into place.
func (s *Store) Save(cfg *domain.Config) error {
	if err := s.ensureDirs(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", indent)
	if err != nil {
		return errors.Wrap(err, "encode cache")
	}

	tmp, err := os.CreateTemp(s.dir, ".data-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", tmp.Name())
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "chmod %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return errors.Wrapf(err, "replace %s", s.Path())
	}
	return nil
}

// Set loads the cache, assigns one top-level key, and saves it.
func (s *Store) Set(key, value string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return s.Save(cfg)
}
