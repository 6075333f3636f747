// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/polycanvas/geometry"
	"github.com/danielhkuo/polycanvas/models"
)

// Repository persists polygons regardless of backing store.
// FetchAll returns polygons in insertion order.
type Repository interface {
	FetchAll(ctx context.Context) ([]models.Polygon, error)
	Insert(ctx context.Context, name string, points []models.Point) (models.Polygon, error)
	Remove(ctx context.Context, id string) (bool, error)
}

// sanitize copies points and replaces non-finite coordinates.
func sanitize(points []models.Point) []models.Point {
	return geometry.Normalize(models.Polygon{Points: points}).Points
}
