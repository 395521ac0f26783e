// Package storage finds world definition files on disk.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/dungeon-engine/pkg/world"
)

// WorldStore lists and loads world files kept under one directory.
type WorldStore struct {
	dir    string
	logger *slog.Logger
}

func NewWorldStore(dir string, logger *slog.Logger) *WorldStore {
	return &WorldStore{dir: dir, logger: logger}
}

// ListWorlds maps world names to file paths relative to the store directory.
// Files that are not valid worlds are skipped with a warning.
func (s *WorldStore) ListWorlds() (map[string]string, error) {
	if _, err := os.Stat(s.dir); err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	worlds := make(map[string]string)
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("Failed to read world file", "path", path, "error", err)
			return nil
		}

		def, err := world.Decode(file)
		if err != nil {
			s.logger.Warn("Failed to decode world file", "path", path, "error", err)
			return nil
		}
		if err := def.Validate(); err != nil {
			s.logger.Warn("Skipping invalid world file", "path", path, "error", err)
			return nil
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return nil
		}
		if prev, ok := worlds[def.Name]; ok {
			s.logger.Warn("Duplicate world name", "name", def.Name, "kept", prev, "skipped", rel)
			return nil
		}
		worlds[def.Name] = rel
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to walk worlds directory", "error", err)
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	return worlds, nil
}

// LoadWorld builds the world stored in filename, relative to the store directory.
func (s *WorldStore) LoadWorld(filename string) (*world.World, error) {
	path := filepath.Join(s.dir, filename)
	s.logger.Debug("Loading world", "filename", filename, "full_path", path)

	w, err := world.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("world not found: %s", filename)
	}
	return w, err
}
