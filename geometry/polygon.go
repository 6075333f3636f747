// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package geometry

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/danielhkuo/polycanvas/models"
)

// PointInPolygon tests if a point is inside a polygon using ray casting
// with the even-odd rule. The vertex list is treated as a closed loop.
func PointInPolygon(p models.Point, polygon []models.Point) bool {
	if len(polygon) < models.MinPolygonPoints {
		return false
	}

	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]

		// Check if a ray from p going right crosses edge pj-pi
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}

	return inside
}

// Area returns the absolute area of the closed polygon (shoelace formula).
func Area(polygon []models.Point) float64 {
	if len(polygon) < models.MinPolygonPoints {
		return 0
	}

	var sum float64
	for i := range polygon {
		a := polygon[i]
		b := polygon[(i+1)%len(polygon)]
		sum += a.X*b.Y - b.X*a.Y
	}

	return math.Abs(sum / 2)
}

// Centroid returns the arithmetic mean of the vertices. This is not the
// area-weighted centroid.
func Centroid(polygon []models.Point) models.Point {
	if len(polygon) == 0 {
		return models.Point{}
	}

	xs := make([]float64, len(polygon))
	ys := make([]float64, len(polygon))
	for i, p := range polygon {
		xs[i] = p.X
		ys[i] = p.Y
	}

	return models.Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

// IsConvex returns true if the polygon vertices form a convex polygon.
// The polygon is assumed to be simple (non-self-intersecting).
func IsConvex(polygon []models.Point) bool {
	if len(polygon) < models.MinPolygonPoints {
		return false
	}

	n := len(polygon)
	var sign int

	for i := 0; i < n; i++ {
		cross := crossProduct(polygon[i], polygon[(i+1)%n], polygon[(i+2)%n])
		if cross == 0 {
			continue
		}

		current := 1
		if cross < 0 {
			current = -1
		}
		if sign == 0 {
			sign = current
		} else if current != sign {
			return false
		}
	}

	return true
}

// Normalize returns a copy of the polygon whose coordinates are all finite
// numbers. Non-finite values become 0. ID and Name are left untouched.
// Normalize(Normalize(p)) equals Normalize(p).
func Normalize(p models.Polygon) models.Polygon {
	out := models.Polygon{ID: p.ID, Name: p.Name, Points: make([]models.Point, len(p.Points))}
	for i, pt := range p.Points {
		out.Points[i] = models.Point{X: finite(pt.X), Y: finite(pt.Y)}
	}
	return out
}

// NormalizeAll applies Normalize to every polygon.
func NormalizeAll(polygons []models.Polygon) []models.Polygon {
	out := make([]models.Polygon, len(polygons))
	for i, p := range polygons {
		out[i] = Normalize(p)
	}
	return out
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b models.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
