// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/polycanvas/models"
	"github.com/danielhkuo/polycanvas/store"
)

// PolygonService is the business layer behind the HTTP handlers. It can
// delay every operation to simulate a slow backend.
type PolygonService struct {
	repo    store.Repository
	latency time.Duration
}

func NewPolygonService(repo store.Repository, latency time.Duration) *PolygonService {
	return &PolygonService{repo: repo, latency: latency}
}

func (s *PolygonService) GetPolygons(ctx context.Context) ([]models.Polygon, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	polygons, err := s.repo.FetchAll(ctx)
	if err != nil {
		slog.Error("polygon service: GetPolygons failed", "error", err)
		return nil, err
	}
	return polygons, nil
}

func (s *PolygonService) CreatePolygon(ctx context.Context, name string, points []models.Point) (models.Polygon, error) {
	if err := s.wait(ctx); err != nil {
		return models.Polygon{}, err
	}

	polygon, err := s.repo.Insert(ctx, name, points)
	if err != nil {
		slog.Error("polygon service: CreatePolygon failed", "error", err, "name", name)
		return models.Polygon{}, err
	}
	return polygon, nil
}

func (s *PolygonService) DeletePolygon(ctx context.Context, id string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}

	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		slog.Error("polygon service: DeletePolygon failed", "error", err, "id", id)
		return false, err
	}
	return removed, nil
}

func (s *PolygonService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
