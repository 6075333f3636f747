// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/polycanvas/models"
)

// FileStore keeps polygons in a pretty-printed JSON file. The file and its
// directory are created on first use. After the first read the contents are
// cached in memory and every write replaces the file.
type FileStore struct {
	path string

	mu     sync.Mutex
	cache  []models.Polygon
	loaded bool
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) FetchAll(ctx context.Context) ([]models.Polygon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	polygons, err := s.read()
	if err != nil {
		return nil, err
	}

	out := make([]models.Polygon, len(polygons))
	for i, p := range polygons {
		out[i] = models.Polygon{ID: p.ID, Name: p.Name, Points: models.ClonePoints(p.Points)}
	}
	return out, nil
}

func (s *FileStore) Insert(ctx context.Context, name string, points []models.Point) (models.Polygon, error) {
	if err := ctx.Err(); err != nil {
		return models.Polygon{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	polygons, err := s.read()
	if err != nil {
		return models.Polygon{}, err
	}

	record := models.Polygon{
		ID:     uuid.NewString(),
		Name:   name,
		Points: sanitize(points),
	}

	next := make([]models.Polygon, 0, len(polygons)+1)
	next = append(next, polygons...)
	next = append(next, record)
	if err := s.write(next); err != nil {
		return models.Polygon{}, err
	}

	return models.Polygon{ID: record.ID, Name: record.Name, Points: models.ClonePoints(record.Points)}, nil
}

func (s *FileStore) Remove(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	polygons, err := s.read()
	if err != nil {
		return false, err
	}

	next := make([]models.Polygon, 0, len(polygons))
	for _, p := range polygons {
		if p.ID != id {
			next = append(next, p)
		}
	}
	removed := len(next) != len(polygons)

	if err := s.write(next); err != nil {
		return false, err
	}

	return removed, nil
}

// read returns the cached collection, loading it from disk on first use.
// Callers must hold s.mu.
func (s *FileStore) read() ([]models.Polygon, error) {
	if s.loaded {
		return s.cache, nil
	}

	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var polygons []models.Polygon
	if err := json.Unmarshal(raw, &polygons); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	if polygons == nil {
		polygons = []models.Polygon{}
	}

	slog.Debug("polygon file loaded",
		"path", s.path,
		"size", humanize.Bytes(uint64(len(raw))),
		"count", len(polygons),
	)

	s.cache = polygons
	s.loaded = true
	return s.cache, nil
}

// write replaces the file contents and the cache. Callers must hold s.mu.
func (s *FileStore) write(polygons []models.Polygon) error {
	if err := s.ensureFile(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(polygons, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode polygons: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	s.cache = polygons
	s.loaded = true

	slog.Debug("polygon file written", "path", s.path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

func (s *FileStore) ensureFile() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(s.path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", s.path, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	return nil
}
