// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polycanvas API.

# Route Registration

	mux := router.NewRouter(svc, cfg, background)

background is the optional preview backdrop; nil uses a solid fill.

# Endpoints

	GET    /health                       - Liveness
	GET    /                             - API banner
	GET    /api/polygons                 - List polygons in insertion order
	POST   /api/polygons                 - Create polygon {name, points}
	DELETE /api/polygons/{id}            - Delete polygon
	GET    /api/polygons/export.geojson  - GeoJSON FeatureCollection
	GET    /api/polygons/preview.png     - Rendered canvas (?selected={id})

Any other method on these paths is answered with 405 by the mux.
*/
package router
