// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/danielhkuo/polycanvas/canvas"
	"github.com/danielhkuo/polycanvas/editor"
	"github.com/danielhkuo/polycanvas/models"
)

// Text strings shown outside the canvas
const (
	msgLoading       = "Loading polygons..."
	msgEmpty         = "No polygons yet. Start by adding one!"
	msgNeedVertices  = "Place at least 3 vertices to finish"
	fetchDialogTitle = "Failed to Fetch Polygons"
	maxNameRunes     = 60
	glyphWidth       = 6
)

var (
	colorPanel       = gg.Hex("#111827").Color()
	colorHeader      = gg.Hex("#1f2937").Color()
	colorRow         = gg.Hex("#1f2937").Color()
	colorRowHover    = gg.Hex("#0c4a6e").Color()
	colorRowSelected = gg.Hex("#7f1d1d").Color()
	colorDelete      = gg.Hex("#374151").Color()
	colorDialog      = gg.Hex("#0b1220").Color()
	colorInput       = gg.Hex("#374151").Color()
	colorScrim       = color.NRGBA{A: 140}

	toastColors = map[models.Severity]gg.RGBA{
		models.SeverityInfo:    gg.Hex("#2563eb"),
		models.SeveritySuccess: gg.Hex("#16a34a"),
		models.SeverityError:   gg.Hex("#dc2626"),
	}
)

// Game adapts an editor.Session to the ebiten loop.
type Game struct {
	session *editor.Session
	toasts  *toastQueue
	ctx     context.Context
	cancel  context.CancelFunc

	dc      *gg.Context
	surface *editor.GGSurface
	view    *ebiten.Image
	pixel   *ebiten.Image
	last    editor.Frame
	drawn   bool

	background  image.Image
	backgrounds chan image.Image

	layout    screenLayout
	cursor    canvas.PointerEvent
	inCanvas  bool
	rowHover  string
	hoverRow  int
	inputBuf  []rune
	firstTick bool
}

func newGame(session *editor.Session, toasts *toastQueue) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	dc := gg.NewContext(canvas.Width, canvas.Height)

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	return &Game{
		session:     session,
		toasts:      toasts,
		ctx:         ctx,
		cancel:      cancel,
		dc:          dc,
		surface:     editor.NewGGSurface(dc),
		view:        ebiten.NewImage(canvas.Width, canvas.Height),
		pixel:       pixel,
		backgrounds: make(chan image.Image, 1),
		layout:      layoutFor(windowSize(1)),
		hoverRow:    -1,
		firstTick:   true,
	}
}

// Close stops background work and releases the drawing context.
func (g *Game) Close() {
	g.cancel()
	g.dc.Close()
}

// loadBackground fetches the backdrop without blocking the loop. The solid
// fallback is drawn until it arrives, and for good if it fails.
func (g *Game) loadBackground(src string) {
	if src == "" {
		return
	}
	go func() {
		img, err := editor.LoadBackground(g.ctx, src)
		if err != nil {
			slog.Warn("background unavailable, using solid fill", "error", err)
			return
		}
		g.backgrounds <- img
	}()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layout = layoutFor(outsideWidth, outsideHeight)
	return int(g.layout.Width), int(g.layout.Height)
}

func (g *Game) Update() error {
	g.session.Drain()

	select {
	case img := <-g.backgrounds:
		g.background = img
		g.drawn = false
	default:
	}

	g.toasts.Update(1 / float32(ebiten.TPS()))

	mx, my := ebiten.CursorPosition()
	cursor := canvas.PointerEvent{ClientX: float64(mx), ClientY: float64(my)}
	moved := g.firstTick || cursor != g.cursor
	g.cursor = cursor
	g.firstTick = false

	switch {
	case g.session.FetchError() != nil:
		g.updateFetchDialog()
	case g.session.Naming():
		g.updateNamePrompt()
	default:
		g.updateShortcuts()
		g.updateCanvasPointer(moved)
		g.updateList()
	}

	g.updateCursorShape()
	return nil
}

func (g *Game) updateFetchDialog() {
	switch {
	case justPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeyR):
		g.session.RetryFetch()
	case justPressed(ebiten.KeyEscape):
		g.session.DismissFetchError()
	}
}

func (g *Game) updateNamePrompt() {
	s := g.session

	g.inputBuf = ebiten.AppendInputChars(g.inputBuf[:0])
	if len(g.inputBuf) > 0 {
		name := s.NameInput() + string(g.inputBuf)
		if utf8.RuneCountInString(name) <= maxNameRunes {
			s.SetNameInput(name)
		}
	}
	if repeatPressed(ebiten.KeyBackspace) {
		name := []rune(s.NameInput())
		if len(name) > 0 {
			s.SetNameInput(string(name[:len(name)-1]))
		}
	}

	switch {
	case justPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter):
		s.ConfirmName()
	case justPressed(ebiten.KeyEscape):
		s.CancelNamePrompt()
	}
}

func (g *Game) updateShortcuts() {
	s := g.session

	switch {
	case justPressed(ebiten.KeyN):
		s.ToggleDrawing()
	case justPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter):
		if s.Drawing() && !s.FinishDrawing() {
			g.toasts.Notify(models.SeverityInfo, msgNeedVertices)
		}
	case justPressed(ebiten.KeyEscape):
		if s.Drawing() {
			s.CancelDrawing()
		} else {
			s.SelectPolygon("")
		}
	case justPressed(ebiten.KeyDelete, ebiten.KeyBackspace):
		if !s.Loading() {
			s.DeleteSelected()
		}
	case justPressed(ebiten.KeyR):
		if !s.Fetching() {
			s.Refresh()
		}
	}
}

func (g *Game) updateCanvasPointer(moved bool) {
	view := g.layout.View
	inside := canvas.Contains(view, g.cursor)

	switch {
	case inside:
		if moved {
			g.session.PointerMove(view, g.cursor)
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.session.PointerClick(view, g.cursor)
		}
	case g.inCanvas:
		g.session.PointerLeave()
	}
	g.inCanvas = inside
}

func (g *Game) updateList() {
	s := g.session
	polygons := s.Polygons()

	row := g.layout.RowAt(g.cursor, len(polygons))
	id := ""
	if row >= 0 {
		id = polygons[row].ID
	}
	if id != g.rowHover {
		if g.rowHover != "" {
			s.LeaveListItem(g.rowHover)
		}
		if id != "" {
			s.HoverListItem(id)
		}
		g.rowHover = id
	}
	g.hoverRow = row

	if row < 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	if canvas.Contains(g.layout.DeleteButton(row), g.cursor) {
		if !s.Loading() {
			s.Delete(id)
		}
		return
	}
	s.SelectPolygon(id)
}

func (g *Game) updateCursorShape() {
	shape := ebiten.CursorShapeDefault
	switch {
	case g.session.FetchError() != nil:
	case g.session.Naming():
		shape = ebiten.CursorShapeText
	case g.inCanvas:
		switch g.session.Cursor() {
		case editor.CursorPointer:
			shape = ebiten.CursorShapePointer
		case editor.CursorCrosshair:
			shape = ebiten.CursorShapeCrosshair
		}
	case g.hoverRow >= 0:
		shape = ebiten.CursorShapePointer
	}
	ebiten.SetCursorShape(shape)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorPanel)

	g.drawCanvas(screen)
	g.drawHeader(screen)
	g.drawPanel(screen)

	switch {
	case g.session.FetchError() != nil:
		g.drawFetchDialog(screen)
	case g.session.Naming():
		g.drawNamePrompt(screen)
	}

	g.drawToasts(screen)
}

// drawCanvas re-renders the logical canvas only when the frame changed.
func (g *Game) drawCanvas(screen *ebiten.Image) {
	frame := g.session.Frame()
	if !g.drawn || !reflect.DeepEqual(frame, g.last) {
		if err := editor.Render(g.surface, frame, g.background); err != nil {
			slog.Warn("canvas render failed", "error", err)
		}
		if rgba, ok := g.dc.Image().(*image.RGBA); ok {
			g.view.WritePixels(rgba.Pix)
		}
		g.last, g.drawn = frame, true
	}

	v := g.layout.View
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.Width/canvas.Width, v.Height/canvas.Height)
	op.GeoM.Translate(v.Left, v.Top)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.view, op)
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	s := g.session
	h := g.layout.Header
	g.fillRect(screen, h, colorHeader, 1)

	x, y := int(h.Left)+padding, int(h.Top)+10
	ebitenutil.DebugPrintAt(screen, s.Instructions(), x, y)

	hint := "[N] draw  [Del] delete selected  [R] refresh  [Esc] deselect"
	if s.Drawing() {
		hint = fmt.Sprintf("%d vertices  [Enter] finish  [Esc] cancel  [N] cancel", len(s.Draft()))
	}
	ebitenutil.DebugPrintAt(screen, hint, x, y+18)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	s := g.session
	x := padding

	ebitenutil.DebugPrintAt(screen, "Polygons", x, 14)

	var actions []string
	if s.Drawing() {
		actions = append(actions, "[N] Cancel drawing")
	} else {
		actions = append(actions, "[N] Add polygon")
	}
	if s.Selected() != "" {
		actions = append(actions, "[Del] Delete selected")
	}
	if !s.Fetching() {
		actions = append(actions, "[R] Refresh")
	}
	for i, a := range actions {
		ebitenutil.DebugPrintAt(screen, a, x, 40+i*16)
	}

	polygons := s.Polygons()
	switch {
	case s.Loading():
		ebitenutil.DebugPrintAt(screen, msgLoading, x, listTop)
		return
	case len(polygons) == 0:
		ebitenutil.DebugPrintAt(screen, msgEmpty, x, listTop)
		return
	}

	rows := min(len(polygons), g.layout.VisibleRows())
	nameRunes := int((g.layout.Row(0).Width - deleteWidth - 2*padding) / glyphWidth)
	for i := 0; i < rows; i++ {
		p := polygons[i]
		row := g.layout.Row(i)

		bg := colorRow
		switch p.ID {
		case s.Selected():
			bg = colorRowSelected
		case s.Hovered():
			bg = colorRowHover
		}
		g.fillRect(screen, row, bg, 1)

		label := truncate(fmt.Sprintf("%s (%d)", p.Name, len(p.Points)), nameRunes)
		ebitenutil.DebugPrintAt(screen, label, int(row.Left)+8, int(row.Top)+4)

		if !s.Loading() {
			del := g.layout.DeleteButton(i)
			g.fillRect(screen, del, colorDelete, 1)
			ebitenutil.DebugPrintAt(screen, "x", int(del.Left)+11, int(del.Top)+4)
		}
	}
	if hidden := len(polygons) - rows; hidden > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("+%d more", hidden), x, int(g.layout.Row(rows).Top))
	}
}

func (g *Game) drawNamePrompt(screen *ebiten.Image) {
	s := g.session
	g.fillRect(screen, g.layout.View, colorScrim, 1)

	box := g.layout.Dialog(420, 130)
	g.fillRect(screen, box, colorDialog, 1)
	x, y := int(box.Left)+padding, int(box.Top)+padding

	ebitenutil.DebugPrintAt(screen, "Name this polygon", x, y)

	input := canvas.Rect{Left: box.Left + padding, Top: box.Top + 40, Width: box.Width - 2*padding, Height: 28}
	g.fillRect(screen, input, colorInput, 1)
	text := s.NameInput()
	if text == "" {
		text = s.DefaultName()
	}
	ebitenutil.DebugPrintAt(screen, text+"_", int(input.Left)+8, int(input.Top)+6)

	ebitenutil.DebugPrintAt(screen, "[Enter] save  [Esc] keep drawing", x, int(box.Top+box.Height)-28)
}

func (g *Game) drawFetchDialog(screen *ebiten.Image) {
	g.fillRect(screen, canvas.Rect{Width: g.layout.Width, Height: g.layout.Height}, colorScrim, 1)

	box := g.layout.Dialog(440, 120)
	g.fillRect(screen, box, colorDialog, 1)
	x, y := int(box.Left)+padding, int(box.Top)+padding

	ebitenutil.DebugPrintAt(screen, fetchDialogTitle, x, y)
	msg := truncate(g.session.FetchErrorMessage(), int((box.Width-2*padding)/glyphWidth))
	ebitenutil.DebugPrintAt(screen, msg, x, y+28)
	ebitenutil.DebugPrintAt(screen, "[Enter] retry  [Esc] dismiss", x, int(box.Top+box.Height)-28)
}

func (g *Game) drawToasts(screen *ebiten.Image) {
	const width, height = 320, 32

	for i, t := range g.toasts.items {
		r := canvas.Rect{
			Left:   g.layout.Width - width - padding,
			Top:    g.layout.Height - float64(i+1)*(height+8) - padding,
			Width:  width,
			Height: height,
		}
		g.fillRect(screen, r, toastColors[t.severity].Color(), t.alpha)
		if t.alpha > 0.3 {
			msg := truncate(strings.TrimSpace(t.message), int((width-2*padding)/glyphWidth))
			ebitenutil.DebugPrintAt(screen, msg, int(r.Left)+padding, int(r.Top)+8)
		}
	}
}

// fillRect draws a solid rectangle by scaling a single white pixel.
func (g *Game) fillRect(dst *ebiten.Image, r canvas.Rect, c color.Color, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.Left, r.Top)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(g.pixel, op)
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// repeatPressed fires on press and then repeatedly while the key is held.
func repeatPressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%4 == 0)
}
