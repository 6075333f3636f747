// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package geometry provides the polygon math used for hit testing, display
// and export: point-in-polygon, area, centroid, convexity and coordinate
// normalization.
package geometry
