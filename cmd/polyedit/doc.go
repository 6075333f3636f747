// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command polyedit is the desktop polygon editor.

It talks to a running polycanvas API server and lets you draw, name, select
and delete polygons on a 960x540 canvas over a background photo.

	go run ./cmd/polyedit -api http://localhost:3318

# Configuration

  - API_URL (-api): API base URL (default: http://localhost:3318)
  - BACKGROUND_IMAGE (-background): Backdrop path or URL
  - WINDOW_SCALE (-scale): Initial window scale (default: 1)
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Controls

	N          start or cancel drawing
	click      place a vertex (drawing) or select a polygon
	Enter      finish the draft, then save the name
	Esc        close the name prompt, cancel drawing, or deselect
	Delete     delete the selected polygon
	R          refetch the list

The side list mirrors the canvas: hovering a row highlights its polygon and
the x button deletes it.
*/
package main
