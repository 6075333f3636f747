// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/polycanvas/canvas"
	"github.com/danielhkuo/polycanvas/models"
)

// fakeCRUD is an in-memory collaborator. Calls block while hold is set.
type fakeCRUD struct {
	mu       sync.Mutex
	polygons []models.Polygon
	nextID   int

	listErr   error
	createErr error
	deleteErr error
	hold      chan struct{}

	lists   int
	creates []string
	deletes []string
}

func newFakeCRUD(polygons ...models.Polygon) *fakeCRUD {
	return &fakeCRUD{polygons: polygons}
}

func (f *fakeCRUD) wait() {
	f.mu.Lock()
	hold := f.hold
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}
}

func (f *fakeCRUD) List(ctx context.Context) ([]models.Polygon, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Polygon, len(f.polygons))
	copy(out, f.polygons)
	return out, nil
}

func (f *fakeCRUD) Create(ctx context.Context, name string, points []models.Point) (models.Polygon, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, name)
	if f.createErr != nil {
		return models.Polygon{}, f.createErr
	}
	f.nextID++
	p := models.Polygon{ID: fmt.Sprintf("srv-%d", f.nextID), Name: name, Points: points}
	f.polygons = append(f.polygons, p)
	return p, nil
}

func (f *fakeCRUD) Delete(ctx context.Context, id string) (bool, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	for i, p := range f.polygons {
		if p.ID == id {
			f.polygons = append(f.polygons[:i], f.polygons[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCRUD) set(fn func(f *fakeCRUD)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeCRUD) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates)
}

type notice struct {
	severity models.Severity
	message  string
}

type recorder struct {
	notices []notice
}

func (r *recorder) Notify(severity models.Severity, message string) {
	r.notices = append(r.notices, notice{severity, message})
}

func (r *recorder) last() notice {
	if len(r.notices) == 0 {
		return notice{}
	}
	return r.notices[len(r.notices)-1]
}

func square(id string, x, y, size float64) models.Polygon {
	return models.Polygon{ID: id, Name: strings.ToUpper(id), Points: []models.Point{
		{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size},
	}}
}

func settle(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Settle(ctx); err != nil {
		t.Fatalf("Session did not settle: %v", err)
	}
}

// loaded returns a session whose initial fetch has completed.
func loaded(t *testing.T, crud *fakeCRUD) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewSession(crud, rec)
	t.Cleanup(s.Close)
	s.Load()
	settle(t, s)
	return s, rec
}

func drawTriangle(s *Session) {
	s.StartDrawing()
	s.Click(models.Pt(100, 100))
	s.Click(models.Pt(200, 100))
	s.Click(models.Pt(150, 200))
}

func ids(polygons []models.Polygon) []string {
	out := make([]string, len(polygons))
	for i, p := range polygons {
		out[i] = p.ID
	}
	return out
}

func TestSession_LoadAppliesList(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10), square("b", 20, 20, 10))
	s := NewSession(crud, nil)
	defer s.Close()

	s.Load()
	if !s.Loading() || !s.Fetching() {
		t.Fatal("Expected loading and fetching while the first list is in flight")
	}

	settle(t, s)
	if s.Loading() || s.Fetching() {
		t.Error("Expected loading and fetching to clear after the list completes")
	}
	if got := ids(s.Polygons()); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", got)
	}
}

func TestSession_StartDrawingClearsHoverAndSelection(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD(square("poly-1", 0, 0, 100)))

	s.Move(models.Pt(50, 50))
	s.Click(models.Pt(50, 50))
	if s.Hovered() != "poly-1" || s.Selected() != "poly-1" {
		t.Fatalf("Expected hover and selection on poly-1, got %q/%q", s.Hovered(), s.Selected())
	}

	s.StartDrawing()
	if s.Hovered() != "" {
		t.Errorf("Expected hover to be cleared, got %q", s.Hovered())
	}
	if s.Selected() != "" {
		t.Errorf("Expected selection to be cleared, got %q", s.Selected())
	}
	if !s.Drawing() || len(s.Draft()) != 0 {
		t.Errorf("Expected drawing with an empty draft, got drawing=%v draft=%v", s.Drawing(), s.Draft())
	}
}

func TestSession_ClickAppendsDraftVertices(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD())

	s.StartDrawing()
	for i := 0; i < 50; i++ {
		s.Click(models.Pt(float64(i), float64(i)))
	}
	if len(s.Draft()) != 50 {
		t.Errorf("Expected 50 draft vertices, got %d", len(s.Draft()))
	}
}

func TestSession_PointerClickMapsCoordinates(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD())

	surface := canvas.Rect{Left: 10, Top: 20, Width: canvas.Width / 2, Height: canvas.Height / 2}
	s.StartDrawing()
	s.PointerClick(surface, canvas.PointerEvent{ClientX: 60, ClientY: 45})

	want := []models.Point{models.Pt(100, 50)}
	if got := s.Draft(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected draft %v, got %v", want, got)
	}
}

func TestSession_FinishRequiresThreeVertices(t *testing.T) {
	crud := newFakeCRUD()
	s, _ := loaded(t, crud)

	s.StartDrawing()
	s.Click(models.Pt(0, 0))
	s.Click(models.Pt(10, 0))
	if s.FinishDrawing() {
		t.Fatal("Finishing with 2 points should be rejected")
	}
	if s.ConfirmName() {
		t.Fatal("Confirm without an open prompt should be rejected")
	}
	settle(t, s)
	if crud.createCount() != 0 {
		t.Fatalf("Expected no create, got %d", crud.createCount())
	}

	s.Click(models.Pt(10, 10))
	if !s.FinishDrawing() {
		t.Fatal("Finishing with 3 points should be accepted")
	}
	if !s.Naming() {
		t.Error("Expected the naming prompt to open")
	}
	if len(s.Draft()) != 3 {
		t.Errorf("Finishing must keep the draft, got %v", s.Draft())
	}
}

func TestSession_ConfirmNameCreatesOptimistically(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10))
	s, rec := loaded(t, crud)
	crud.set(func(f *fakeCRUD) { f.hold = make(chan struct{}) })

	drawTriangle(s)
	s.FinishDrawing()
	s.SetNameInput("  Parking  ")
	if !s.ConfirmName() {
		t.Fatal("ConfirmName should accept a 3 point draft")
	}

	if s.Drawing() || s.Naming() || len(s.Draft()) != 0 {
		t.Errorf("Expected drawing state reset, got drawing=%v naming=%v draft=%v", s.Drawing(), s.Naming(), s.Draft())
	}
	polygons := s.Polygons()
	if len(polygons) != 2 || !strings.HasPrefix(polygons[1].ID, "temp-") || polygons[1].Name != "Parking" {
		t.Fatalf("Expected an optimistic temp polygon named Parking, got %+v", polygons)
	}

	crud.set(func(f *fakeCRUD) { close(f.hold) })
	settle(t, s)

	polygons = s.Polygons()
	if got := ids(polygons); !reflect.DeepEqual(got, []string{"a", "srv-1"}) {
		t.Errorf("Expected temp id replaced by server id, got %v", got)
	}
	if len(polygons[1].Points) != 3 {
		t.Errorf("Expected 3 stored vertices, got %v", polygons[1].Points)
	}
	if rec.last() != (notice{models.SeveritySuccess, MsgPolygonAdded}) {
		t.Errorf("Expected success notification, got %+v", rec.last())
	}
}

func TestSession_BlankNameUsesDefault(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10), square("b", 20, 0, 10))
	s, _ := loaded(t, crud)

	drawTriangle(s)
	s.FinishDrawing()
	if s.DefaultName() != "Polygon 3" {
		t.Errorf("Expected default name 'Polygon 3', got %q", s.DefaultName())
	}
	s.SetNameInput("   ")
	s.ConfirmName()
	settle(t, s)

	crud.mu.Lock()
	defer crud.mu.Unlock()
	if len(crud.creates) != 1 || crud.creates[0] != "Polygon 3" {
		t.Errorf("Expected create with default name, got %v", crud.creates)
	}
}

func TestSession_FailedCreateRestoresDraft(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10))
	s, rec := loaded(t, crud)
	crud.set(func(f *fakeCRUD) { f.createErr = errors.New("server exploded") })

	drawTriangle(s)
	snapshot := s.Draft()
	s.FinishDrawing()
	s.SetNameInput("Doomed")
	s.ConfirmName()
	settle(t, s)

	if !s.Drawing() {
		t.Error("Expected drawing mode to be restored")
	}
	if !reflect.DeepEqual(s.Draft(), snapshot) {
		t.Errorf("Expected draft %v, got %v", snapshot, s.Draft())
	}
	if !s.Naming() {
		t.Error("Expected the naming prompt to reopen")
	}
	if got := ids(s.Polygons()); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Expected temp polygon removed, got %v", got)
	}
	if rec.last() != (notice{models.SeverityError, "server exploded"}) {
		t.Errorf("Expected error notification, got %+v", rec.last())
	}
	crud.mu.Lock()
	lists := crud.lists
	crud.mu.Unlock()
	if lists != 2 {
		t.Errorf("Expected a refresh after the failed create, got %d lists", lists)
	}
}

func TestSession_LateCreateFailureKeepsNewerDraft(t *testing.T) {
	crud := newFakeCRUD()
	s, rec := loaded(t, crud)
	crud.set(func(f *fakeCRUD) {
		f.createErr = errors.New("timeout")
		f.hold = make(chan struct{})
	})

	drawTriangle(s)
	s.FinishDrawing()
	s.ConfirmName()

	// The user starts over before the failure arrives.
	s.StartDrawing()
	s.Click(models.Pt(1, 1))
	newer := s.Draft()

	crud.set(func(f *fakeCRUD) { close(f.hold) })
	settle(t, s)

	if !s.Drawing() || !reflect.DeepEqual(s.Draft(), newer) {
		t.Errorf("Expected newer draft %v to survive, got drawing=%v draft=%v", newer, s.Drawing(), s.Draft())
	}
	if s.Naming() {
		t.Error("Naming prompt should not reopen over newer work")
	}
	if rec.last().severity != models.SeverityError {
		t.Errorf("Expected error notification, got %+v", rec.last())
	}
}

func TestSession_DialogCancelKeepsDraft(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD())

	drawTriangle(s)
	s.FinishDrawing()
	s.SetNameInput("half typed")
	s.CancelNamePrompt()

	if s.Naming() {
		t.Error("Expected the prompt to close")
	}
	if !s.Drawing() || len(s.Draft()) != 3 {
		t.Errorf("Expected drawing with 3 vertices, got drawing=%v draft=%v", s.Drawing(), s.Draft())
	}
	if s.NameInput() != "" {
		t.Errorf("Expected the name input to reset, got %q", s.NameInput())
	}

	s.Click(models.Pt(5, 5))
	if len(s.Draft()) != 4 {
		t.Errorf("Expected to keep adding points after cancel, got %d", len(s.Draft()))
	}
}

func TestSession_CancelDrawingDiscardsDraft(t *testing.T) {
	crud := newFakeCRUD()
	s, _ := loaded(t, crud)

	drawTriangle(s)
	s.FinishDrawing()
	s.ToggleDrawing()

	if s.Drawing() || s.Naming() || len(s.Draft()) != 0 {
		t.Errorf("Expected idle with no draft, got drawing=%v naming=%v draft=%v", s.Drawing(), s.Naming(), s.Draft())
	}
	settle(t, s)
	if crud.createCount() != 0 {
		t.Error("Cancel must not create a polygon")
	}
}

func TestSession_ClickIgnoredWhileNaming(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD())

	drawTriangle(s)
	s.FinishDrawing()
	s.Click(models.Pt(300, 300))
	if len(s.Draft()) != 3 {
		t.Errorf("Expected clicks to be ignored behind the prompt, got %v", s.Draft())
	}
}

func TestSession_HitTestPrefersTopmost(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD(square("bottom", 0, 0, 100), square("top", 50, 50, 100)))

	if got := s.HitTest(models.Pt(75, 75)); got != "top" {
		t.Errorf("Expected overlap to resolve to 'top', got %q", got)
	}
	if got := s.HitTest(models.Pt(10, 10)); got != "bottom" {
		t.Errorf("Expected 'bottom', got %q", got)
	}
	if got := s.HitTest(models.Pt(500, 500)); got != "" {
		t.Errorf("Expected no hit, got %q", got)
	}

	s.Click(models.Pt(75, 75))
	if s.Selected() != "top" {
		t.Errorf("Expected click to select 'top', got %q", s.Selected())
	}
	s.Click(models.Pt(500, 500))
	if s.Selected() != "" {
		t.Errorf("Expected click on empty canvas to clear selection, got %q", s.Selected())
	}
}

func TestSession_PointerSuppressedWhileFetching(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 100))
	s, _ := loaded(t, crud)
	crud.set(func(f *fakeCRUD) { f.hold = make(chan struct{}) })

	s.Refresh()
	s.Move(models.Pt(50, 50))
	s.Click(models.Pt(50, 50))
	if s.Hovered() != "" || s.Selected() != "" {
		t.Errorf("Expected no hover/selection while fetching, got %q/%q", s.Hovered(), s.Selected())
	}

	s.StartDrawing()
	s.Click(models.Pt(1, 1))
	if len(s.Draft()) != 0 {
		t.Errorf("Expected no draft points while fetching, got %v", s.Draft())
	}

	crud.set(func(f *fakeCRUD) { close(f.hold) })
	settle(t, s)
	s.Click(models.Pt(1, 1))
	if len(s.Draft()) != 1 {
		t.Errorf("Expected clicks to work after fetching, got %v", s.Draft())
	}
}

func TestSession_MoveSuppressedWhileDrawing(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD(square("a", 0, 0, 100)))

	s.StartDrawing()
	s.Move(models.Pt(50, 50))
	if s.Hovered() != "" {
		t.Errorf("Expected no hover while drawing, got %q", s.Hovered())
	}
}

func TestSession_PointerLeave(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD(square("a", 0, 0, 100)))

	s.Move(models.Pt(50, 50))
	s.PointerLeave()
	if s.Hovered() != "" {
		t.Errorf("Expected leave to clear hover when idle, got %q", s.Hovered())
	}

	// Hover set from the list survives leaving the canvas while drawing.
	s.HoverListItem("a")
	s.drawing = true
	s.PointerLeave()
	if s.Hovered() != "a" {
		t.Errorf("Expected hover untouched while drawing, got %q", s.Hovered())
	}
}

func TestSession_DeleteSelected(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10), square("b", 20, 0, 10), square("c", 40, 0, 10))
	s, rec := loaded(t, crud)

	s.SelectPolygon("b")
	if !s.DeleteSelected() {
		t.Fatal("Expected DeleteSelected to dispatch")
	}
	if s.Selected() != "" {
		t.Errorf("Expected selection cleared immediately, got %q", s.Selected())
	}
	if got := ids(s.Polygons()); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Expected optimistic removal, got %v", got)
	}

	settle(t, s)
	if rec.last() != (notice{models.SeveritySuccess, MsgPolygonDeleted}) {
		t.Errorf("Expected delete notification, got %+v", rec.last())
	}
	if s.DeleteSelected() {
		t.Error("DeleteSelected with nothing selected should do nothing")
	}
}

func TestSession_FailedDeleteRestoresSelection(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10), square("b", 20, 0, 10), square("c", 40, 0, 10))
	s, rec := loaded(t, crud)
	crud.set(func(f *fakeCRUD) { f.deleteErr = errors.New("") })

	s.Click(models.Pt(25, 5))
	if s.Selected() != "b" {
		t.Fatalf("Expected 'b' selected, got %q", s.Selected())
	}

	s.Delete("b")
	if s.Selected() != "" {
		t.Errorf("Expected selection cleared immediately, got %q", s.Selected())
	}

	settle(t, s)

	if s.Selected() != "b" {
		t.Errorf("Expected selection restored to 'b', got %q", s.Selected())
	}
	if got := ids(s.Polygons()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Expected 'b' back at its index, got %v", got)
	}
	if len(rec.notices) != 1 || rec.notices[0] != (notice{models.SeverityError, MsgDeleteFailed}) {
		t.Errorf("Expected fallback delete error message, got %+v", rec.notices)
	}
}

func TestSession_LateDeleteFailureDoesNotReselectWhileDrawing(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10))
	s, _ := loaded(t, crud)
	crud.set(func(f *fakeCRUD) {
		f.deleteErr = errors.New("gateway timeout")
		f.hold = make(chan struct{})
	})

	s.SelectPolygon("a")
	s.Delete("a")
	s.StartDrawing()

	crud.set(func(f *fakeCRUD) { close(f.hold) })
	settle(t, s)

	if s.Selected() != "" {
		t.Errorf("Expected no selection while drawing, got %q", s.Selected())
	}
	if _, ok := s.Polygon("a"); !ok {
		t.Error("Expected 'a' back in the collection after the failed delete")
	}
}

func TestSession_DeleteUnselectedKeepsSelection(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10), square("b", 20, 0, 10))
	s, _ := loaded(t, crud)

	s.SelectPolygon("a")
	s.Delete("b")
	settle(t, s)

	if s.Selected() != "a" {
		t.Errorf("Expected selection to stay on 'a', got %q", s.Selected())
	}
}

func TestSession_RefreshPrunesStaleReferences(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10), square("b", 20, 0, 10))
	s, _ := loaded(t, crud)

	s.SelectPolygon("a")
	s.HoverListItem("b")
	crud.set(func(f *fakeCRUD) { f.polygons = []models.Polygon{square("c", 0, 0, 5)} })

	s.Refresh()
	settle(t, s)

	if s.Selected() != "" || s.Hovered() != "" {
		t.Errorf("Expected stale references pruned, got %q/%q", s.Selected(), s.Hovered())
	}
}

func TestSession_RefreshKeepsPendingCreate(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10))
	s, _ := loaded(t, crud)

	createHold := make(chan struct{})
	slow := &slowCreate{fakeCRUD: crud, hold: createHold}
	s.crud = slow

	drawTriangle(s)
	s.FinishDrawing()
	s.ConfirmName()
	s.Refresh()

	// Apply the list while the create is still pending.
	deadline := time.Now().Add(5 * time.Second)
	for s.Fetching() && time.Now().Before(deadline) {
		s.Drain()
		time.Sleep(time.Millisecond)
	}

	polygons := s.Polygons()
	if len(polygons) != 2 || !strings.HasPrefix(polygons[1].ID, "temp-") {
		t.Errorf("Expected the pending polygon to survive the refresh, got %v", ids(polygons))
	}

	close(createHold)
	settle(t, s)
	if got := ids(s.Polygons()); !reflect.DeepEqual(got, []string{"a", "srv-1"}) {
		t.Errorf("Expected [a srv-1] once everything settles, got %v", got)
	}
}

// slowCreate holds only Create calls.
type slowCreate struct {
	*fakeCRUD
	hold chan struct{}
}

func (s *slowCreate) Create(ctx context.Context, name string, points []models.Point) (models.Polygon, error) {
	<-s.hold
	return s.fakeCRUD.Create(ctx, name, points)
}

func TestSession_SelectionFollowsTempSwap(t *testing.T) {
	crud := newFakeCRUD()
	s, _ := loaded(t, crud)
	crud.set(func(f *fakeCRUD) { f.hold = make(chan struct{}) })

	drawTriangle(s)
	s.FinishDrawing()
	s.ConfirmName()
	s.Click(models.Pt(150, 130))
	tempID := s.Selected()
	if !strings.HasPrefix(tempID, "temp-") {
		t.Fatalf("Expected the optimistic polygon to be selectable, got %q", tempID)
	}
	if s.Delete(tempID) {
		t.Error("A polygon whose create is pending should not be deletable")
	}

	crud.set(func(f *fakeCRUD) { close(f.hold) })
	settle(t, s)
	if s.Selected() != "srv-1" {
		t.Errorf("Expected selection to follow the server id, got %q", s.Selected())
	}
}

func TestSession_FetchErrorAndRetry(t *testing.T) {
	crud := newFakeCRUD(square("a", 0, 0, 10))
	crud.listErr = errors.New("Network Error")
	s, _ := loaded(t, crud)

	if s.Loading() {
		t.Error("Expected loading to end after a failed list")
	}
	if s.FetchErrorMessage() != "Network Error" {
		t.Errorf("Expected fetch error message, got %q", s.FetchErrorMessage())
	}

	s.DismissFetchError()
	if s.FetchError() != nil {
		t.Error("Expected dismissed error to be hidden")
	}

	crud.set(func(f *fakeCRUD) { f.listErr = nil })
	s.RetryFetch()
	settle(t, s)
	if s.FetchError() != nil {
		t.Errorf("Expected error cleared after successful retry, got %v", s.FetchError())
	}
	if len(s.Polygons()) != 1 {
		t.Errorf("Expected 1 polygon after retry, got %d", len(s.Polygons()))
	}
}

func TestSession_ListRowHover(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD(square("a", 0, 0, 10), square("b", 20, 0, 10)))

	s.HoverListItem("a")
	s.LeaveListItem("b")
	if s.Hovered() != "a" {
		t.Errorf("Leaving another row must not clear hover, got %q", s.Hovered())
	}
	s.LeaveListItem("a")
	if s.Hovered() != "" {
		t.Errorf("Expected hover cleared, got %q", s.Hovered())
	}

	s.StartDrawing()
	s.HoverListItem("a")
	if s.Hovered() != "" {
		t.Errorf("Row hover should be ignored while drawing, got %q", s.Hovered())
	}
}

func TestSession_CursorAndInstructions(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD(square("a", 0, 0, 10)))

	if s.Cursor() != CursorDefault || s.Instructions() != InstructionsBrowsing {
		t.Errorf("Expected default cursor and browsing hint, got %v %q", s.Cursor(), s.Instructions())
	}
	s.Move(models.Pt(5, 5))
	if s.Cursor() != CursorPointer {
		t.Errorf("Expected pointer cursor over a polygon, got %v", s.Cursor())
	}
	s.StartDrawing()
	if s.Cursor() != CursorCrosshair || s.Instructions() != InstructionsDrawing {
		t.Errorf("Expected crosshair and drawing hint, got %v %q", s.Cursor(), s.Instructions())
	}
}

func TestSession_FrameHidesHoverWhileDrawing(t *testing.T) {
	s, _ := loaded(t, newFakeCRUD(square("a", 0, 0, 10)))

	s.HoverListItem("a")
	s.drawing = true
	if f := s.Frame(); f.Hovered != "" {
		t.Errorf("Expected no hover in a drawing frame, got %q", f.Hovered)
	}
}

func TestSession_NormalizesListedPolygons(t *testing.T) {
	crud := newFakeCRUD(models.Polygon{ID: "a", Name: "A", Points: []models.Point{{X: 1, Y: 1}}})
	crud.polygons[0].Points[0].X = math.NaN()
	s, _ := loaded(t, crud)

	if p, _ := s.Polygon("a"); !p.Points[0].Finite() {
		t.Errorf("Expected finite coordinates, got %v", p.Points)
	}
}
