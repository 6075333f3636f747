// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package editor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/danielhkuo/polycanvas/canvas"
	"github.com/danielhkuo/polycanvas/geometry"
	"github.com/danielhkuo/polycanvas/models"
)

// CRUD is the persistence collaborator. Any returned error means the
// operation did not take effect.
type CRUD interface {
	List(ctx context.Context) ([]models.Polygon, error)
	Create(ctx context.Context, name string, points []models.Point) (models.Polygon, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Notifier receives fire-and-forget user notifications.
type Notifier interface {
	Notify(severity models.Severity, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(severity models.Severity, message string)

func (f NotifierFunc) Notify(severity models.Severity, message string) {
	f(severity, message)
}

// Notification messages
const (
	MsgPolygonAdded   = "Polygon added"
	MsgPolygonDeleted = "Polygon deleted"
	MsgAddFailed      = "Failed to add polygon"
	MsgDeleteFailed   = "Failed to delete polygon"
	MsgFetchFailed    = "Unable to load polygons"
)

// Header hints
const (
	InstructionsDrawing  = "Click on the canvas to place vertices, then finish when ready."
	InstructionsBrowsing = "Hover and click polygons to highlight or select."
)

const tempIDPrefix = "temp-"

// Session is the single owner of the polygon collection, the draft, and the
// hover and selection references. Every method must be called from the same
// goroutine (the UI loop). Collaborator calls run in the background and
// their results are applied by Drain or Settle on that goroutine.
type Session struct {
	crud   CRUD
	notify Notifier
	ctx    context.Context
	cancel context.CancelFunc

	polygons []models.Polygon
	selected string
	hovered  string

	drawing   bool
	draft     []models.Point
	naming    bool
	nameInput string

	loading        bool
	fetching       int
	fetchErr       error
	fetchDismissed bool
	listSeq        int
	refetchAfter   bool

	pendingCreates map[string]struct{}
	pendingDeletes map[string]struct{}
	tempSeq        int

	inflight int
	mu       sync.Mutex
	queue    []func()
	wake     chan struct{}
}

// NewSession creates an idle session. A nil notifier discards notifications.
func NewSession(crud CRUD, notify Notifier) *Session {
	if notify == nil {
		notify = NotifierFunc(func(models.Severity, string) {})
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		crud:           crud,
		notify:         notify,
		ctx:            ctx,
		cancel:         cancel,
		pendingCreates: make(map[string]struct{}),
		pendingDeletes: make(map[string]struct{}),
		wake:           make(chan struct{}, 1),
	}
}

// Close cancels every in-flight collaborator call. Their completions still
// arrive as failures.
func (s *Session) Close() {
	s.cancel()
}

// Accessors

func (s *Session) Polygons() []models.Polygon { return slices.Clone(s.polygons) }
func (s *Session) Selected() string           { return s.selected }
func (s *Session) Hovered() string            { return s.hovered }
func (s *Session) Drawing() bool              { return s.drawing }
func (s *Session) Draft() []models.Point      { return models.ClonePoints(s.draft) }
func (s *Session) Naming() bool               { return s.naming }
func (s *Session) NameInput() string          { return s.nameInput }
func (s *Session) Loading() bool              { return s.loading }
func (s *Session) Fetching() bool             { return s.fetching > 0 }
func (s *Session) Pending() int               { return s.inflight }

// Busy reports whether pointer-driven mutations are currently suppressed.
func (s *Session) Busy() bool {
	return s.loading || s.fetching > 0
}

// Polygon looks up a polygon by id.
func (s *Session) Polygon(id string) (models.Polygon, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.polygons[i], true
	}
	return models.Polygon{}, false
}

// Loading

// Load starts the initial fetch. Loading stays true until it completes.
func (s *Session) Load() {
	s.loading = true
	s.Refresh()
}

// Refresh refetches the collection.
func (s *Session) Refresh() {
	s.listSeq++
	seq := s.listSeq
	s.fetching++

	slog.Debug("polygon list requested", "seq", seq)
	s.dispatch(func(ctx context.Context) func() {
		polygons, err := s.crud.List(ctx)
		return func() { s.finishList(seq, polygons, err) }
	})
}

func (s *Session) finishList(seq int, polygons []models.Polygon, err error) {
	s.fetching--

	// A create or delete happened while this list was in flight.
	if seq != s.listSeq {
		if s.fetching == 0 && s.refetchAfter {
			s.refetchAfter = false
			s.Refresh()
		}
		return
	}

	s.loading = false
	s.refetchAfter = false

	if err != nil {
		slog.Warn("polygon list failed", "error", err)
		s.fetchErr = err
		s.fetchDismissed = false
		return
	}
	s.fetchErr = nil

	next := make([]models.Polygon, 0, len(polygons)+len(s.pendingCreates))
	for _, p := range geometry.NormalizeAll(polygons) {
		if _, deleting := s.pendingDeletes[p.ID]; deleting {
			continue
		}
		next = append(next, p)
	}
	for _, p := range s.polygons {
		if _, creating := s.pendingCreates[p.ID]; creating {
			next = append(next, p)
		}
	}

	s.polygons = next
	s.pruneReferences()
	slog.Debug("polygon list applied", "count", len(next))
}

// invalidateLists discards lists that were in flight across a mutation and
// arranges for a fresh one once they return.
func (s *Session) invalidateLists() {
	if s.fetching > 0 {
		s.listSeq++
		s.refetchAfter = true
	}
}

// FetchError returns the last list failure unless it was dismissed.
func (s *Session) FetchError() error {
	if s.fetchDismissed {
		return nil
	}
	return s.fetchErr
}

// FetchErrorMessage is the text shown in the fetch error dialog.
func (s *Session) FetchErrorMessage() string {
	err := s.FetchError()
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgFetchFailed
}

func (s *Session) RetryFetch() {
	s.fetchDismissed = false
	s.Refresh()
}

func (s *Session) DismissFetchError() {
	s.fetchDismissed = true
}

// Drawing

// ToggleDrawing starts drawing when idle and cancels it otherwise.
func (s *Session) ToggleDrawing() {
	if s.drawing {
		s.CancelDrawing()
	} else {
		s.StartDrawing()
	}
}

// StartDrawing enters drawing mode with an empty draft, clearing hover and
// selection.
func (s *Session) StartDrawing() {
	s.drawing = true
	s.draft = nil
	s.hovered = ""
	s.selected = ""
	s.naming = false
	s.nameInput = ""
	slog.Debug("drawing started")
}

// CancelDrawing discards the draft and closes the naming prompt.
func (s *Session) CancelDrawing() {
	s.drawing = false
	s.draft = nil
	s.naming = false
	s.nameInput = ""
	slog.Debug("drawing cancelled")
}

// FinishDrawing opens the naming prompt when the draft has enough vertices.
// The draft is kept until the prompt is confirmed or cancelled.
func (s *Session) FinishDrawing() bool {
	if !s.drawing || len(s.draft) < models.MinPolygonPoints {
		return false
	}
	s.naming = true
	return true
}

func (s *Session) SetNameInput(name string) {
	s.nameInput = name
}

// DefaultName is used when the entered name is blank.
func (s *Session) DefaultName() string {
	return fmt.Sprintf("Polygon %d", len(s.polygons)+1)
}

// CancelNamePrompt closes the prompt but stays in drawing mode with the
// draft intact.
func (s *Session) CancelNamePrompt() {
	s.naming = false
	s.nameInput = ""
}

// ConfirmName saves the draft as a polygon. The polygon appears immediately
// under a temporary id and is swapped for the stored one once the create
// succeeds. On failure the draft and the prompt come back.
func (s *Session) ConfirmName() bool {
	if !s.naming {
		return false
	}

	name := strings.TrimSpace(s.nameInput)
	if name == "" {
		name = s.DefaultName()
	}
	if name == "" || len(s.draft) < models.MinPolygonPoints {
		return false
	}

	points := models.ClonePoints(s.draft)

	s.drawing = false
	s.draft = nil
	s.naming = false
	s.nameInput = ""

	s.tempSeq++
	tempID := fmt.Sprintf("%s%d", tempIDPrefix, s.tempSeq)
	s.polygons = append(s.polygons, models.Polygon{ID: tempID, Name: name, Points: points})
	s.pendingCreates[tempID] = struct{}{}
	s.invalidateLists()

	slog.Debug("polygon create dispatched", "temp_id", tempID, "name", name, "points", len(points))
	s.dispatch(func(ctx context.Context) func() {
		created, err := s.crud.Create(ctx, name, models.ClonePoints(points))
		return func() { s.finishCreate(tempID, name, points, created, err) }
	})
	return true
}

func (s *Session) finishCreate(tempID, name string, points []models.Point, created models.Polygon, err error) {
	delete(s.pendingCreates, tempID)
	s.invalidateLists()

	if err != nil {
		slog.Warn("polygon create failed", "name", name, "error", err)
		s.removeAt(s.indexOf(tempID))
		s.dropReference(tempID)

		// Only restore into an empty drawing so newer work is never replaced.
		if !s.drawing || len(s.draft) == 0 {
			s.drawing = true
			s.draft = models.ClonePoints(points)
			s.naming = true
			s.nameInput = ""
			s.hovered = ""
		}

		s.notify.Notify(models.SeverityError, errorText(err, MsgAddFailed))
		s.Refresh()
		return
	}

	created = geometry.Normalize(created)
	if i := s.indexOf(tempID); i >= 0 {
		if s.indexOf(created.ID) >= 0 {
			s.removeAt(i)
		} else {
			s.polygons[i] = created
		}
	} else if s.indexOf(created.ID) < 0 {
		s.polygons = append(s.polygons, created)
	}
	if s.selected == tempID {
		s.selected = created.ID
	}
	if s.hovered == tempID {
		s.hovered = created.ID
	}

	slog.Debug("polygon created", "polygon_id", created.ID, "temp_id", tempID)
	s.notify.Notify(models.SeveritySuccess, MsgPolygonAdded)
}

// Deleting

// Delete removes a polygon optimistically. A matching selection is cleared
// first and restored if the delete fails. Polygons whose create is still in
// flight cannot be deleted yet.
func (s *Session) Delete(id string) bool {
	index := s.indexOf(id)
	if index < 0 {
		return false
	}
	if _, creating := s.pendingCreates[id]; creating {
		return false
	}

	polygon := s.polygons[index]
	wasSelected := s.selected == id
	if wasSelected {
		s.selected = ""
	}
	if s.hovered == id {
		s.hovered = ""
	}

	s.removeAt(index)
	s.pendingDeletes[id] = struct{}{}
	s.invalidateLists()

	slog.Debug("polygon delete dispatched", "polygon_id", id)
	s.dispatch(func(ctx context.Context) func() {
		_, err := s.crud.Delete(ctx, id)
		return func() { s.finishDelete(polygon, index, wasSelected, err) }
	})
	return true
}

// DeleteSelected deletes the selected polygon, if any.
func (s *Session) DeleteSelected() bool {
	if s.selected == "" {
		return false
	}
	return s.Delete(s.selected)
}

func (s *Session) finishDelete(polygon models.Polygon, index int, wasSelected bool, err error) {
	delete(s.pendingDeletes, polygon.ID)
	s.invalidateLists()

	if err != nil {
		slog.Warn("polygon delete failed", "polygon_id", polygon.ID, "error", err)
		if s.indexOf(polygon.ID) < 0 {
			index = min(index, len(s.polygons))
			s.polygons = slices.Insert(s.polygons, index, polygon)
		}
		if wasSelected && s.selected == "" && !s.drawing {
			s.selected = polygon.ID
		}

		s.notify.Notify(models.SeverityError, errorText(err, MsgDeleteFailed))
		s.Refresh()
		return
	}

	slog.Debug("polygon deleted", "polygon_id", polygon.ID)
	s.notify.Notify(models.SeveritySuccess, MsgPolygonDeleted)
}

// Pointer input

// PointerClick maps a click on el and handles it.
func (s *Session) PointerClick(el canvas.Element, ev canvas.PointerEvent) {
	s.Click(canvas.Map(el, ev))
}

// PointerMove maps a pointer move over el and handles it.
func (s *Session) PointerMove(el canvas.Element, ev canvas.PointerEvent) {
	s.Move(canvas.Map(el, ev))
}

// Click appends a draft vertex while drawing, otherwise selects the topmost
// polygon under p (or nothing).
func (s *Session) Click(p models.Point) {
	if s.Busy() {
		return
	}
	if s.drawing {
		if s.naming {
			return
		}
		s.draft = append(s.draft, p)
		return
	}
	s.selected = s.HitTest(p)
}

// Move updates hover while idle.
func (s *Session) Move(p models.Point) {
	if s.Busy() || s.drawing {
		return
	}
	s.hovered = s.HitTest(p)
}

// PointerLeave clears hover when the pointer leaves the canvas while idle.
func (s *Session) PointerLeave() {
	if !s.drawing {
		s.hovered = ""
	}
}

// HitTest returns the id of the most recently added polygon containing p,
// or "" when none does.
func (s *Session) HitTest(p models.Point) string {
	for i := len(s.polygons) - 1; i >= 0; i-- {
		if geometry.PointInPolygon(p, s.polygons[i].Points) {
			return s.polygons[i].ID
		}
	}
	return ""
}

// List rows

// SelectPolygon selects id from the side list. An empty id clears the
// selection; unknown ids are ignored.
func (s *Session) SelectPolygon(id string) {
	if id != "" && s.indexOf(id) < 0 {
		return
	}
	s.selected = id
}

func (s *Session) HoverListItem(id string) {
	if s.drawing || s.indexOf(id) < 0 {
		return
	}
	s.hovered = id
}

func (s *Session) LeaveListItem(id string) {
	if s.drawing {
		return
	}
	if s.hovered == id {
		s.hovered = ""
	}
}

// Presentation

// Frame is a read-only snapshot for the render pass.
type Frame struct {
	Polygons []models.Polygon
	Selected string
	Hovered  string
	Drawing  bool
	Draft    []models.Point
}

// Frame captures the current state. Hover is hidden while drawing.
func (s *Session) Frame() Frame {
	f := Frame{
		Polygons: slices.Clone(s.polygons),
		Selected: s.selected,
		Drawing:  s.drawing,
		Draft:    models.ClonePoints(s.draft),
	}
	if !s.drawing {
		f.Hovered = s.hovered
	}
	return f
}

// Cursor is the pointer affordance over the canvas.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorCrosshair
)

func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorCrosshair:
		return "crosshair"
	default:
		return "default"
	}
}

func (s *Session) Cursor() Cursor {
	switch {
	case s.drawing:
		return CursorCrosshair
	case s.hovered != "":
		return CursorPointer
	default:
		return CursorDefault
	}
}

// Instructions is the header hint for the current mode.
func (s *Session) Instructions() string {
	if s.drawing {
		return InstructionsDrawing
	}
	return InstructionsBrowsing
}

// Completions

// dispatch runs op in the background. The function op returns is queued and
// later applied on the loop goroutine.
func (s *Session) dispatch(op func(ctx context.Context) func()) {
	s.inflight++
	go func() {
		apply := op(s.ctx)

		s.mu.Lock()
		s.queue = append(s.queue, apply)
		s.mu.Unlock()

		select {
		case s.wake <- struct{}{}:
		default:
		}
	}()
}

// Drain applies every completion that has arrived without blocking and
// returns how many were applied.
func (s *Session) Drain() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, apply := range queue {
		s.inflight--
		apply()
	}
	return len(queue)
}

// Settle blocks until no collaborator call is in flight, applying
// completions as they arrive.
func (s *Session) Settle(ctx context.Context) error {
	for {
		s.Drain()
		if s.inflight == 0 {
			return nil
		}
		select {
		case <-s.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// helpers

func (s *Session) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.polygons, func(p models.Polygon) bool { return p.ID == id })
}

func (s *Session) removeAt(i int) {
	if i >= 0 {
		s.polygons = slices.Delete(s.polygons, i, i+1)
	}
}

func (s *Session) dropReference(id string) {
	if s.selected == id {
		s.selected = ""
	}
	if s.hovered == id {
		s.hovered = ""
	}
}

func (s *Session) pruneReferences() {
	if s.indexOf(s.selected) < 0 {
		s.selected = ""
	}
	if s.indexOf(s.hovered) < 0 {
		s.hovered = ""
	}
}

func errorText(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
