// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package canvas maps pointer positions on a displayed drawing surface to the
fixed logical resolution polygons are stored in.

# Logical Resolution

Every stored coordinate lives in a 960x540 space regardless of how large the
surface is drawn on screen:

	p := canvas.Map(el, canvas.PointerEvent{ClientX: x, ClientY: y})

Map scales each axis independently and rounds to one decimal place.

# Layout

Fit places the canvas inside an arbitrary area, keeping the 16:9 ratio:

	view := canvas.Fit(canvas.Rect{Left: 280, Top: 56, Width: w, Height: h})

A Rect is itself an Element, so the fitted rectangle can be passed straight
to Map and Contains.
*/
package canvas
