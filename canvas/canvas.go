// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package canvas

import (
	"math"

	"github.com/danielhkuo/polycanvas/models"
)

// Logical canvas resolution.
const (
	Width  = 960
	Height = 540
)

// Rect is an on-screen rectangle in viewport pixels.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Element is a drawing surface placed somewhere on screen.
type Element interface {
	BoundingRect() Rect
}

// PointerEvent carries viewport-relative pointer coordinates.
type PointerEvent struct {
	ClientX, ClientY float64
}

// Map converts a pointer event into logical canvas coordinates rounded to
// one decimal place. A nil element, or one that has not been laid out yet,
// yields (0, 0).
func Map(el Element, ev PointerEvent) models.Point {
	if el == nil {
		return models.Point{}
	}

	rect := el.BoundingRect()
	if rect.Width <= 0 || rect.Height <= 0 {
		return models.Point{}
	}

	scaleX := Width / rect.Width
	scaleY := Height / rect.Height
	x := (ev.ClientX - rect.Left) * scaleX
	y := (ev.ClientY - rect.Top) * scaleY

	return models.Point{X: roundTenth(x), Y: roundTenth(y)}
}

// Contains reports whether the event falls on the element.
func Contains(el Element, ev PointerEvent) bool {
	if el == nil {
		return false
	}
	r := el.BoundingRect()
	return ev.ClientX >= r.Left && ev.ClientX < r.Left+r.Width &&
		ev.ClientY >= r.Top && ev.ClientY < r.Top+r.Height
}

// Fit returns the largest rectangle with the logical aspect ratio that fits
// inside the available area, centered in it.
func Fit(area Rect) Rect {
	if area.Width <= 0 || area.Height <= 0 {
		return Rect{Left: area.Left, Top: area.Top}
	}
	scale := math.Min(area.Width/Width, area.Height/Height)
	w, h := Width*scale, Height*scale
	return Rect{
		Left:   area.Left + (area.Width-w)/2,
		Top:    area.Top + (area.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// BoundingRect lets a Rect act as its own Element.
func (r Rect) BoundingRect() Rect {
	return r
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
