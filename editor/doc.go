// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package editor holds the polygon editing session and its render pass.

# Session

A Session owns the polygon collection, the in-progress draft, and the hover
and selection references. It is driven from a single loop goroutine:

	s := editor.NewSession(crud, notifier)
	s.Load()
	for each frame {
		s.Drain()
		// feed input: s.PointerClick, s.PointerMove, s.ToggleDrawing, ...
		editor.Render(surface, s.Frame(), background)
	}

Creates and deletes are optimistic. A new polygon is shown under a
temporary id until the store answers; a deleted one disappears at once. A
failure rolls the change back, notifies the user and refetches the list.

Pointer input that would mutate state is ignored while the initial load or
a refetch is in flight.

# Rendering

Render redraws the full 960x540 canvas from a Frame snapshot onto any
Surface. GGSurface adapts a gogpu/gg context, which both the desktop editor
and the HTTP preview endpoint use.

LoadBackground fetches a backdrop image from disk or over HTTP and scales it
to the canvas.
*/
package editor
