// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"math"

	"github.com/danielhkuo/polycanvas/canvas"
)

// Screen metrics in logical pixels
const (
	panelWidth   = 280
	headerHeight = 56
	padding      = 12
	listTop      = 132
	rowHeight    = 28
	rowGap       = 4
	deleteWidth  = 28

	minScreenWidth  = panelWidth + canvas.Width/2
	minScreenHeight = headerHeight + canvas.Height/2
)

// screenLayout places the side panel, the header and the canvas view for one
// window size.
type screenLayout struct {
	Width, Height float64
	Panel         canvas.Rect
	Header        canvas.Rect
	View          canvas.Rect
}

func layoutFor(width, height int) screenLayout {
	w := float64(max(width, minScreenWidth))
	h := float64(max(height, minScreenHeight))

	return screenLayout{
		Width:  w,
		Height: h,
		Panel:  canvas.Rect{Width: panelWidth, Height: h},
		Header: canvas.Rect{Left: panelWidth, Width: w - panelWidth, Height: headerHeight},
		View: canvas.Fit(canvas.Rect{
			Left:   panelWidth,
			Top:    headerHeight,
			Width:  w - panelWidth,
			Height: h - headerHeight,
		}),
	}
}

// VisibleRows is how many list rows fit in the panel.
func (l screenLayout) VisibleRows() int {
	avail := l.Panel.Height - listTop - padding
	if avail < rowHeight {
		return 0
	}
	return int(avail / rowHeight)
}

func (l screenLayout) Row(i int) canvas.Rect {
	return canvas.Rect{
		Left:   l.Panel.Left + padding,
		Top:    listTop + float64(i)*rowHeight,
		Width:  l.Panel.Width - 2*padding,
		Height: rowHeight - rowGap,
	}
}

// DeleteButton is the trailing control of row i.
func (l screenLayout) DeleteButton(i int) canvas.Rect {
	r := l.Row(i)
	return canvas.Rect{Left: r.Left + r.Width - deleteWidth, Top: r.Top, Width: deleteWidth, Height: r.Height}
}

// RowAt returns the visible row under ev among count rows, or -1.
func (l screenLayout) RowAt(ev canvas.PointerEvent, count int) int {
	n := min(count, l.VisibleRows())
	for i := 0; i < n; i++ {
		if canvas.Contains(l.Row(i), ev) {
			return i
		}
	}
	return -1
}

// Dialog is a centered box over the canvas view.
func (l screenLayout) Dialog(width, height float64) canvas.Rect {
	return canvas.Rect{
		Left:   l.View.Left + (l.View.Width-width)/2,
		Top:    l.View.Top + (l.View.Height-height)/2,
		Width:  width,
		Height: height,
	}
}

// windowSize is the initial window size for a scale factor.
func windowSize(scale float64) (int, int) {
	w := int(math.Round((panelWidth + canvas.Width) * scale))
	h := int(math.Round((headerHeight + canvas.Height) * scale))
	return max(w, minScreenWidth), max(h, minScreenHeight)
}

// truncate shortens s to at most n runes, marking the cut with "..".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 2 {
		return string(r[:n])
	}
	return string(r[:n-2]) + ".."
}
