// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/polycanvas/models"
)

// FallbackStore prefers the primary repository and serves an operation from
// the fallback whenever the primary fails. A nil primary means every
// operation goes straight to the fallback.
type FallbackStore struct {
	primary  Repository
	fallback Repository
}

func NewFallbackStore(primary, fallback Repository) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback}
}

func (s *FallbackStore) FetchAll(ctx context.Context) ([]models.Polygon, error) {
	if s.primary != nil {
		polygons, err := s.primary.FetchAll(ctx)
		if err == nil {
			return polygons, nil
		}
		s.warn("FetchAll", err)
	}
	return s.fallback.FetchAll(ctx)
}

func (s *FallbackStore) Insert(ctx context.Context, name string, points []models.Point) (models.Polygon, error) {
	if s.primary != nil {
		polygon, err := s.primary.Insert(ctx, name, points)
		if err == nil {
			return polygon, nil
		}
		s.warn("Insert", err)
	}
	return s.fallback.Insert(ctx, name, points)
}

func (s *FallbackStore) Remove(ctx context.Context, id string) (bool, error) {
	if s.primary != nil {
		removed, err := s.primary.Remove(ctx, id)
		if err == nil {
			return removed, nil
		}
		s.warn("Remove", err)
	}
	return s.fallback.Remove(ctx, id)
}

func (s *FallbackStore) warn(op string, err error) {
	slog.Warn("primary store failed, using fallback", "op", op, "error", err)
}
