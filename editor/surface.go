// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package editor

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// GGSurface draws onto a gg.Context.
type GGSurface struct {
	ctx    *gg.Context
	fill   gg.RGBA
	stroke gg.RGBA

	// last converted image, reused while the caller passes the same one
	src image.Image
	buf *gg.ImageBuf
}

func NewGGSurface(ctx *gg.Context) *GGSurface {
	return &GGSurface{ctx: ctx, fill: gg.Black, stroke: gg.Black}
}

// Context returns the underlying drawing context.
func (s *GGSurface) Context() *gg.Context {
	return s.ctx
}

func (s *GGSurface) Clear() {
	s.ctx.ClearPath()
	s.ctx.Clear()
}

func (s *GGSurface) SetFillColor(c gg.RGBA)   { s.fill = c }
func (s *GGSurface) SetStrokeColor(c gg.RGBA) { s.stroke = c }
func (s *GGSurface) SetLineWidth(w float64)   { s.ctx.SetLineWidth(w) }

// FillRect discards the current path.
func (s *GGSurface) FillRect(x, y, w, h float64) error {
	s.ctx.ClearPath()
	s.ctx.DrawRectangle(x, y, w, h)
	s.use(s.fill)
	return s.ctx.Fill()
}

func (s *GGSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	if img != s.src {
		s.src = img
		s.buf = gg.ImageBufFromImage(img)
	}
	s.ctx.DrawImageEx(s.buf, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
	})
}

func (s *GGSurface) BeginPath()          { s.ctx.ClearPath() }
func (s *GGSurface) MoveTo(x, y float64) { s.ctx.MoveTo(x, y) }
func (s *GGSurface) LineTo(x, y float64) { s.ctx.LineTo(x, y) }
func (s *GGSurface) ClosePath()          { s.ctx.ClosePath() }

// Arc adds a circular arc; a full turn becomes a closed circle.
func (s *GGSurface) Arc(x, y, r, start, end float64) {
	if end-start >= 2*math.Pi {
		s.ctx.DrawCircle(x, y, r)
		return
	}
	s.ctx.DrawArc(x, y, r, start, end)
}

func (s *GGSurface) Fill() error {
	s.use(s.fill)
	return s.ctx.FillPreserve()
}

func (s *GGSurface) Stroke() error {
	s.use(s.stroke)
	return s.ctx.StrokePreserve()
}

func (s *GGSurface) use(c gg.RGBA) {
	s.ctx.SetRGBA(c.R, c.G, c.B, c.A)
}
