package editor

import (
	"testing"

	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

func TestDrawLineCommitsOnRelease(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.SetMode(ModeDrawLine)

	drag(ed, 10, 10, 50, 30)

	if n := len(ed.Scene().Entities); n != 1 {
		t.Fatalf("entity count = %d, want 1", n)
	}
	sh := ed.Scene().Entities[0].(*scene.Shape)
	if sh.Name != "Line" {
		t.Errorf("name = %q, want Line", sh.Name)
	}
	// The shape anchors at the segment midpoint with endpoints stored
	// relative to it.
	if sh.X != 30 || sh.Y != 20 {
		t.Errorf("origin = (%v, %v), want (30, 20)", sh.X, sh.Y)
	}
	ln, ok := sh.Commands[0].(*scene.Line)
	if !ok {
		t.Fatalf("command = %T, want line", sh.Commands[0])
	}
	if ln.X1 != -20 || ln.Y1 != -10 || ln.X2 != 20 || ln.Y2 != 10 {
		t.Errorf("line = (%v,%v)-(%v,%v), want (-20,-10)-(20,10)",
			ln.X1, ln.Y1, ln.X2, ln.Y2)
	}
	if sh.Stroke == nil || *sh.Stroke != "#000000" || sh.StrokeWeight != 1 {
		t.Errorf("stroke = %v weight %v, want #000000 weight 1", sh.Stroke, sh.StrokeWeight)
	}
	if sh.Fill != nil {
		t.Errorf("fill = %v, want none", *sh.Fill)
	}
	wantSelection(t, ed, sh.ID)
	if d := ed.History().UndoDepth(); d != 1 {
		t.Errorf("undo depth = %d, want 1", d)
	}

	ed.Undo()
	if n := len(ed.Scene().Entities); n != 0 {
		t.Errorf("entity count after undo = %d, want 0", n)
	}
}

func TestDrawLineIgnoresStrayClicks(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.SetMode(ModeDrawLine)

	click(ed, 10, 10)
	drag(ed, 10, 10, 11, 10) // 1 unit, below the drag threshold

	if n := len(ed.Scene().Entities); n != 0 {
		t.Errorf("entity count = %d, want 0", n)
	}
	if d := ed.History().UndoDepth(); d != 0 {
		t.Errorf("undo depth = %d, want 0", d)
	}
}

func TestDrawBezierCommitsOnFourthClick(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.SetMode(ModeDrawBezier)

	// The session spans clicks, surviving each release.
	click(ed, 0, 0)
	click(ed, 10, 20)
	click(ed, 20, -10)
	if n := len(ed.Scene().Entities); n != 0 {
		t.Fatalf("entity count after 3 clicks = %d, want 0", n)
	}
	if !ed.SessionActive() {
		t.Fatal("bezier session should persist between clicks")
	}

	// The fourth press commits immediately; no release needed.
	ed.PointerDown(30, 10, Modifiers{})
	if n := len(ed.Scene().Entities); n != 1 {
		t.Fatalf("entity count after 4th press = %d, want 1", n)
	}
	if ed.SessionActive() {
		t.Error("session should end on commit")
	}
	ed.PointerUp(30, 10, Modifiers{})

	sh := ed.Scene().Entities[0].(*scene.Shape)
	if sh.Name != "Bezier" {
		t.Errorf("name = %q, want Bezier", sh.Name)
	}
	if sh.X != 15 || sh.Y != 5 {
		t.Errorf("origin = (%v, %v), want centroid (15, 5)", sh.X, sh.Y)
	}
	bz, ok := sh.Commands[0].(*scene.Bezier)
	if !ok {
		t.Fatalf("command = %T, want bezier", sh.Commands[0])
	}
	if bz.X1 != -15 || bz.Y1 != -5 || bz.X2 != 15 || bz.Y2 != 5 {
		t.Errorf("anchors = (%v,%v)-(%v,%v), want (-15,-5)-(15,5)",
			bz.X1, bz.Y1, bz.X2, bz.Y2)
	}
	if bz.CX1 != -5 || bz.CY1 != 15 || bz.CX2 != 5 || bz.CY2 != -15 {
		t.Errorf("controls = (%v,%v) (%v,%v), want (-5,15) (5,-15)",
			bz.CX1, bz.CY1, bz.CX2, bz.CY2)
	}
	wantSelection(t, ed, sh.ID)
	if d := ed.History().UndoDepth(); d != 1 {
		t.Errorf("undo depth = %d, want 1", d)
	}
}

func TestDrawBezierEscapeAbandonsClicks(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.SetMode(ModeDrawBezier)

	click(ed, 0, 0)
	click(ed, 10, 20)
	ed.KeyDown(KeyEscape, Modifiers{})

	if ed.SessionActive() {
		t.Error("escape should drop the pending clicks")
	}
	if n := len(ed.Scene().Entities); n != 0 {
		t.Errorf("entity count = %d, want 0", n)
	}
	if d := ed.History().UndoDepth(); d != 0 {
		t.Errorf("undo depth = %d, want 0", d)
	}
}

func TestPendingDrawTracksTools(t *testing.T) {
	ed, _ := newTestEditor(t)

	ed.SetMode(ModeDrawLine)
	ed.PointerDown(5, 5, Modifiers{})
	ed.PointerMove(9, 9, Modifiers{})
	pts := ed.PendingDraw()
	if len(pts) != 2 || pts[0].X != 5 || pts[1].X != 9 {
		t.Errorf("line pending = %v, want [(5,5) (9,9)]", pts)
	}
	ed.KeyDown(KeyEscape, Modifiers{})

	ed.SetMode(ModeDrawBezier)
	click(ed, 0, 0)
	click(ed, 10, 20)
	pts = ed.PendingDraw()
	if len(pts) != 2 || pts[1].X != 10 || pts[1].Y != 20 {
		t.Errorf("bezier pending = %v, want [(0,0) (10,20)]", pts)
	}
}

func TestDrawToolStaysArmedAfterCommit(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.SetMode(ModeDrawLine)

	drag(ed, 0, 0, 40, 0)
	drag(ed, 0, 20, 40, 20)

	if n := len(ed.Scene().Entities); n != 2 {
		t.Fatalf("entity count = %d, want 2", n)
	}
	if d := ed.History().UndoDepth(); d != 2 {
		t.Errorf("undo depth = %d, want 2", d)
	}
}
