// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the polycanvas API server.

polycanvas stores named polygons drawn on a fixed 960x540 canvas. The desktop
editor in cmd/polyedit is its main client.

# Starting the Server

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

All settings are optional. Flags win over environment variables, which win
over a .env file.

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:polygons.db)
  - DATA_FILE (-data-file): JSON fallback store (default: data/polygons.json)
  - POLYGON_LATENCY (-latency): Simulated delay per request, e.g. 5s
  - BACKGROUND_IMAGE (-background): Backdrop for preview.png
  - LOG_LEVEL (-log-level): debug, info, warn or error

If the database cannot be opened the server keeps running on the JSON file
alone. Individual database failures also fall back to the file.

# Architecture

  - handlers: HTTP request handlers (list, create, delete, export, preview)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - service: Business layer with optional latency
  - store: SQL, JSON file and fallback repositories
  - db: Connection opening and schema creation
  - models: Request/response types
  - geometry, canvas, editor: Shared with the desktop editor
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
