// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polycanvas API.

# Handler Types

PolygonHandler serves the polygon collection. It is built from the service
layer, the configuration and an optional preview backdrop:

	polygonHandler := handlers.NewPolygonHandler(svc, cfg, background)

# Collection

	GET    /api/polygons      → ListPolygons (insertion order)
	POST   /api/polygons      → CreatePolygon (201 with the stored polygon)
	DELETE /api/polygons/{id} → DeletePolygon ({"success": true} or 404)

Create payloads are {"name": string, "points": [[x, y], ...]}. Coordinates
may be numbers or numeric strings. A blank name, fewer than 3 points or a
malformed point is rejected with 400 "Invalid polygon payload"; a body that
is not JSON at all gets "Invalid JSON".

# Renditions

	GET /api/polygons/export.geojson → ExportGeoJSON
	GET /api/polygons/preview.png    → Preview

The export writes one Polygon feature per polygon with id, name and area
properties. The preview runs the editor's render pass on a 960x540 gg
context, so it looks exactly like the desktop canvas. Pass ?selected={id}
to highlight one polygon.

# Errors

Store failures are logged by the service and answered with 500 and a fixed
message per operation, e.g. "Failed to fetch polygons".
*/
package handlers
