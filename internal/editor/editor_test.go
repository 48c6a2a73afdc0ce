package editor

import (
	"math"
	"testing"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/history"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// rectShape builds a shape from a corner-anchored w x h rect command at
// the local origin, so its world bounds start at (x, y).
func rectShape(x, y, w, h float64) *scene.Shape {
	sh := scene.NewShape()
	sh.X, sh.Y = x, y
	sh.Commands = []scene.Command{&scene.Rect{W: w, H: h}}
	return sh
}

// polyShape builds a vertex-driven shape positioned at (x, y).
func polyShape(x, y float64, pts ...geom.Point) *scene.Shape {
	sh := scene.NewShape()
	sh.X, sh.Y = x, y
	sh.Vertices = append([]geom.Point(nil), pts...)
	return sh
}

// newTestEditor wires an editor over the given entities with a manual
// scheduler. Alignment guides are off by default; tests that exercise
// them opt back in.
func newTestEditor(t *testing.T, ents ...scene.Entity) (*Editor, *history.ManualScheduler) {
	t.Helper()
	sc := scene.NewScene()
	for _, ent := range ents {
		sc.Add(ent)
	}
	sched := &history.ManualScheduler{}
	ed := New(sc, sched)
	p := ed.Prefs()
	p.SnapGuides = false
	ed.SetPrefs(p)
	return ed, sched
}

func click(ed *Editor, x, y float64) {
	ed.PointerDown(x, y, Modifiers{})
	ed.PointerUp(x, y, Modifiers{})
}

func drag(ed *Editor, x0, y0, x1, y1 float64) {
	ed.PointerDown(x0, y0, Modifiers{})
	ed.PointerMove(x1, y1, Modifiers{})
	ed.PointerUp(x1, y1, Modifiers{})
}

func wantSelection(t *testing.T, ed *Editor, ids ...string) {
	t.Helper()
	got := ed.Selection().IDs()
	if len(got) != len(ids) {
		t.Fatalf("selection = %v, want %v", got, ids)
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("selection = %v, want %v", got, ids)
		}
	}
}

func TestClickSelectsTopmost(t *testing.T) {
	a := rectShape(0, 0, 100, 100)
	b := rectShape(50, 50, 100, 100)
	ed, _ := newTestEditor(t, a, b)

	click(ed, 75, 75) // overlap region, b is on top
	wantSelection(t, ed, b.ID)

	click(ed, 25, 25) // only a covers this point
	wantSelection(t, ed, a.ID)
}

func TestClickCyclingRotatesThroughStack(t *testing.T) {
	a := rectShape(0, 0, 100, 100)
	b := rectShape(0, 0, 100, 100)
	c := rectShape(0, 0, 100, 100)
	ed, _ := newTestEditor(t, a, b, c)

	// Repeated clicks within the cycle threshold walk down the stack,
	// topmost first, and wrap.
	click(ed, 50, 50)
	wantSelection(t, ed, c.ID)
	click(ed, 52, 50)
	wantSelection(t, ed, b.ID)
	click(ed, 54, 50)
	wantSelection(t, ed, a.ID)
	click(ed, 52, 50)
	wantSelection(t, ed, c.ID)
}

func TestClickFarAwayResetsCycle(t *testing.T) {
	a := rectShape(0, 0, 100, 100)
	b := rectShape(0, 0, 100, 100)
	ed, _ := newTestEditor(t, a, b)

	click(ed, 50, 50)
	wantSelection(t, ed, b.ID)
	click(ed, 52, 50)
	wantSelection(t, ed, a.ID)

	// Same hit stack but outside the threshold: back to the top.
	click(ed, 80, 50)
	wantSelection(t, ed, b.ID)
}

func TestChangedHitSetResetsCycle(t *testing.T) {
	a := rectShape(0, 0, 100, 100)
	b := rectShape(60, 0, 16, 100) // covers x 60..76 only
	ed, _ := newTestEditor(t, a, b)

	click(ed, 75, 50) // over both
	wantSelection(t, ed, b.ID)

	// Two pixels right, but b no longer underneath: the changed hit set
	// resets the cycle even within the distance threshold.
	click(ed, 77, 50)
	wantSelection(t, ed, a.ID)

	click(ed, 75, 50) // set changes back, top first again
	wantSelection(t, ed, b.ID)
}

func TestClickEmptySpaceClearsSelection(t *testing.T) {
	a := rectShape(0, 0, 50, 50)
	ed, _ := newTestEditor(t, a)

	click(ed, 25, 25)
	wantSelection(t, ed, a.ID)

	click(ed, 200, 200)
	if !ed.Selection().IsEmpty() {
		t.Errorf("selection after empty click = %v, want empty", ed.Selection().IDs())
	}
}

func TestShiftClickTogglesMembership(t *testing.T) {
	a := rectShape(0, 0, 50, 50)
	b := rectShape(100, 0, 50, 50)
	ed, _ := newTestEditor(t, a, b)

	click(ed, 25, 25)
	wantSelection(t, ed, a.ID)

	ed.PointerDown(125, 25, Modifiers{Shift: true})
	ed.PointerUp(125, 25, Modifiers{Shift: true})
	wantSelection(t, ed, a.ID, b.ID)

	ed.PointerDown(125, 25, Modifiers{Shift: true})
	ed.PointerUp(125, 25, Modifiers{Shift: true})
	wantSelection(t, ed, a.ID)
}

func TestKeyboardNudgeCoalescesAndUndoes(t *testing.T) {
	a := rectShape(0, 0, 50, 50)
	ed, sched := newTestEditor(t, a)
	ed.Selection().Set(a.ID)

	ed.KeyDown(KeyArrowRight, Modifiers{})
	ed.KeyDown(KeyArrowRight, Modifiers{})
	ed.KeyDown(KeyArrowRight, Modifiers{})
	if a.X != 3 {
		t.Fatalf("x after three nudges = %v, want 3", a.X)
	}
	if d := ed.History().UndoDepth(); d != 1 {
		t.Fatalf("undo depth during burst = %d, want 1", d)
	}
	sched.Fire()
	if d := ed.History().UndoDepth(); d != 1 {
		t.Fatalf("undo depth after window expiry = %d, want 1", d)
	}

	if !ed.Undo() {
		t.Fatal("undo failed")
	}
	if x := ed.Scene().Entities[0].Transform().TX; x != 0 {
		t.Errorf("x after undo = %v, want 0", x)
	}
	if !ed.Redo() {
		t.Fatal("redo failed")
	}
	if x := ed.Scene().Entities[0].Transform().TX; x != 3 {
		t.Errorf("x after redo = %v, want 3", x)
	}
}

func TestShiftNudgeStepsByTen(t *testing.T) {
	a := rectShape(0, 0, 50, 50)
	ed, _ := newTestEditor(t, a)
	ed.Selection().Set(a.ID)

	ed.KeyDown(KeyArrowDown, Modifiers{Shift: true})
	if a.Y != 10 {
		t.Errorf("y = %v, want 10", a.Y)
	}
}

func TestEscapeCancelsSession(t *testing.T) {
	a := rectShape(0, 0, 50, 50)
	ed, _ := newTestEditor(t, a)
	ed.Selection().Set(a.ID)

	ed.PointerDown(25, 25, Modifiers{})
	ed.PointerMove(40, 40, Modifiers{})
	if a.X != 15 {
		t.Fatalf("x mid-drag = %v, want 15", a.X)
	}
	ed.KeyDown(KeyEscape, Modifiers{})

	if a.X != 0 || a.Y != 0 {
		t.Errorf("position after escape = (%v, %v), want (0, 0)", a.X, a.Y)
	}
	if ed.SessionActive() {
		t.Error("session still active after escape")
	}
	if d := ed.History().UndoDepth(); d != 0 {
		t.Errorf("undo depth after cancelled drag = %d, want 0", d)
	}
}

func TestSetModeCancelsSessionKeepsSelection(t *testing.T) {
	a := rectShape(0, 0, 50, 50)
	ed, _ := newTestEditor(t, a)
	ed.Selection().Set(a.ID)

	ed.PointerDown(25, 25, Modifiers{})
	ed.PointerMove(40, 40, Modifiers{})
	ed.SetMode(ModeVertex)

	if a.X != 0 {
		t.Errorf("x after mode switch = %v, want 0", a.X)
	}
	if ed.Mode() != ModeVertex {
		t.Errorf("mode = %v, want %v", ed.Mode(), ModeVertex)
	}
	wantSelection(t, ed, a.ID)
}

func TestLoadSceneResetsState(t *testing.T) {
	a := rectShape(0, 0, 50, 50)
	ed, _ := newTestEditor(t, a)
	ed.Selection().Set(a.ID)
	ed.DeleteSelection()
	if d := ed.History().UndoDepth(); d != 1 {
		t.Fatalf("undo depth = %d, want 1", d)
	}

	fresh := scene.NewScene()
	fresh.Add(rectShape(5, 5, 10, 10))
	ed.LoadScene(fresh)

	if ed.Scene() != fresh {
		t.Error("scene not replaced")
	}
	if !ed.Selection().IsEmpty() {
		t.Error("selection survived document load")
	}
	if ed.History().CanUndo() || ed.History().CanRedo() {
		t.Error("history survived document load")
	}
}

func TestJumpToRestoresIndexedState(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.AddShape(rectShape(0, 0, 10, 10))
	ed.AddShape(rectShape(20, 0, 10, 10))
	ed.AddShape(rectShape(40, 0, 10, 10))
	if d := ed.History().UndoDepth(); d != 3 {
		t.Fatalf("undo depth = %d, want 3", d)
	}

	if !ed.JumpTo(1) {
		t.Fatal("jump failed")
	}
	if n := len(ed.Scene().Entities); n != 1 {
		t.Errorf("entity count after jump = %d, want 1", n)
	}
	if ed.History().CanRedo() {
		t.Error("redo stack survived a jump")
	}
	if d := ed.History().UndoDepth(); d != 2 {
		t.Errorf("undo depth after jump = %d, want 2", d)
	}
}

func TestUndoEmptyHistoryIsNoOp(t *testing.T) {
	ed, _ := newTestEditor(t, rectShape(0, 0, 10, 10))
	if ed.Undo() {
		t.Error("undo on empty history reported success")
	}
	if n := len(ed.Scene().Entities); n != 1 {
		t.Errorf("entity count = %d, want 1", n)
	}
}

func TestSelectionBoundsUnion(t *testing.T) {
	a := rectShape(0, 0, 50, 50)
	b := rectShape(100, 100, 50, 50)
	ed, _ := newTestEditor(t, a, b)
	ed.Selection().Set(a.ID, b.ID)

	got, ok := ed.SelectionBounds()
	if !ok {
		t.Fatal("no bounds for selection")
	}
	want := geom.Rect{X: 0, Y: 0, Width: 150, Height: 150}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 ||
		math.Abs(got.Width-want.Width) > 1e-9 || math.Abs(got.Height-want.Height) > 1e-9 {
		t.Errorf("selection bounds = %+v, want %+v", got, want)
	}
}
