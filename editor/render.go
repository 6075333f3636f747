// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package editor

import (
	"errors"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/danielhkuo/polycanvas/canvas"
	"github.com/danielhkuo/polycanvas/models"
)

// Surface is an immediate-mode 2D drawing target at the logical canvas
// resolution. Fill and Stroke keep the current path; BeginPath discards it.
type Surface interface {
	Clear()
	SetFillColor(c gg.RGBA)
	SetStrokeColor(c gg.RGBA)
	SetLineWidth(w float64)
	FillRect(x, y, w, h float64) error
	DrawImage(img image.Image, x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Arc(x, y, r, start, end float64)
	Fill() error
	Stroke() error
}

// Style is the fill, stroke and line width of a committed polygon.
type Style struct {
	Fill      gg.RGBA
	Stroke    gg.RGBA
	LineWidth float64
}

var (
	FallbackColor = gg.Hex("#0f172a")

	SelectedStyle = Style{Fill: rgba(248, 113, 113, 0.35), Stroke: gg.Hex("#f87171"), LineWidth: 3}
	HoveredStyle  = Style{Fill: rgba(14, 165, 233, 0.35), Stroke: gg.Hex("#38bdf8"), LineWidth: 2}
	DefaultStyle  = Style{Fill: rgba(56, 189, 248, 0.25), Stroke: gg.Hex("#0ea5e9"), LineWidth: 2}

	DraftStroke  = gg.Hex("#fbbf24")
	MarkerFill   = gg.Hex("#fde68a")
	MarkerRadius = 4.0
	DraftWidth   = 2.0
)

func rgba(r, g, b uint8, a float64) gg.RGBA {
	return gg.RGBA2(float64(r)/255, float64(g)/255, float64(b)/255, a)
}

// StyleFor picks a polygon's style: selected wins over hovered, hovered
// over default. Hover never applies while drawing.
func StyleFor(id string, f Frame) Style {
	switch {
	case id == f.Selected:
		return SelectedStyle
	case !f.Drawing && id == f.Hovered:
		return HoveredStyle
	default:
		return DefaultStyle
	}
}

// Render redraws the whole canvas from f. A nil background is replaced by a
// solid fill; a nil surface renders nothing.
func Render(s Surface, f Frame, background image.Image) error {
	if s == nil {
		return nil
	}

	s.Clear()
	if background != nil {
		s.DrawImage(background, 0, 0, canvas.Width, canvas.Height)
	} else {
		s.SetFillColor(FallbackColor)
		if err := s.FillRect(0, 0, canvas.Width, canvas.Height); err != nil {
			return err
		}
	}

	var errs []error
	for _, p := range f.Polygons {
		if len(p.Points) == 0 {
			continue
		}
		style := StyleFor(p.ID, f)

		s.BeginPath()
		tracePath(s, p.Points)
		s.ClosePath()
		s.SetFillColor(style.Fill)
		errs = append(errs, s.Fill())
		s.SetLineWidth(style.LineWidth)
		s.SetStrokeColor(style.Stroke)
		errs = append(errs, s.Stroke())
	}

	if f.Drawing && len(f.Draft) > 0 {
		s.BeginPath()
		tracePath(s, f.Draft)
		s.SetStrokeColor(DraftStroke)
		s.SetLineWidth(DraftWidth)
		errs = append(errs, s.Stroke())

		for _, pt := range f.Draft {
			s.BeginPath()
			s.Arc(pt.X, pt.Y, MarkerRadius, 0, 2*math.Pi)
			s.SetFillColor(MarkerFill)
			errs = append(errs, s.Fill())
			s.SetStrokeColor(DraftStroke)
			errs = append(errs, s.Stroke())
		}
	}

	return errors.Join(errs...)
}

func tracePath(s Surface, points []models.Point) {
	for i, pt := range points {
		if i == 0 {
			s.MoveTo(pt.X, pt.Y)
		} else {
			s.LineTo(pt.X, pt.Y)
		}
	}
}
