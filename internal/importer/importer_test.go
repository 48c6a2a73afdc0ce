package importer

import (
	"math"
	"testing"

	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

func TestParseBasicScript(t *testing.T) {
	res := Parse(`
		// a header comment
		fill("#ff0000")
		rect(10, 20, 100, 50);
		noFill()
		circle(300, 300, 80)
		line(0, 0, 40, 30)
		let x = 12
		mystery(1, 2, 3)
	`)
	if len(res.Shapes) != 3 {
		t.Fatalf("shapes = %d, want 3", len(res.Shapes))
	}
	if res.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", res.Skipped)
	}

	r := res.Shapes[0]
	if r.Name != "Rect" {
		t.Errorf("first shape name = %q, want Rect", r.Name)
	}
	if math.Abs(r.X-60) > 1e-9 || math.Abs(r.Y-45) > 1e-9 {
		t.Errorf("rect origin = (%g, %g), want (60, 45)", r.X, r.Y)
	}
	if r.Fill == nil || *r.Fill != "#ff0000" {
		t.Errorf("rect fill = %v, want #ff0000", r.Fill)
	}
	if r.Stroke == nil || *r.Stroke != "#000000" {
		t.Errorf("rect stroke = %v, want default #000000", r.Stroke)
	}
	rc, ok := r.Commands[0].(*scene.Rect)
	if !ok {
		t.Fatalf("rect command is %T", r.Commands[0])
	}
	if rc.Mode != scene.RectCenter || rc.W != 100 || rc.H != 50 {
		t.Errorf("rect command = %+v, want centered 100x50", rc)
	}

	c := res.Shapes[1]
	if c.Name != "Circle" || c.X != 300 || c.Y != 300 {
		t.Errorf("circle = %q at (%g, %g), want Circle at (300, 300)", c.Name, c.X, c.Y)
	}
	if c.Fill != nil {
		t.Errorf("circle fill = %q, want none after noFill", *c.Fill)
	}
	ec, ok := c.Commands[0].(*scene.Ellipse)
	if !ok || ec.W != 80 || ec.H != 80 {
		t.Errorf("circle command = %+v, want 80x80 ellipse", c.Commands[0])
	}

	l := res.Shapes[2]
	if math.Abs(l.X-20) > 1e-9 || math.Abs(l.Y-15) > 1e-9 {
		t.Errorf("line origin = (%g, %g), want midpoint (20, 15)", l.X, l.Y)
	}
	lc, ok := l.Commands[0].(*scene.Line)
	if !ok {
		t.Fatalf("line command is %T", l.Commands[0])
	}
	if math.Abs(lc.X1+20) > 1e-9 || math.Abs(lc.Y2-15) > 1e-9 {
		t.Errorf("line endpoints not recentered: %+v", lc)
	}
}

func TestParseVertexRun(t *testing.T) {
	res := Parse(`
		beginShape()
		vertex(0, 0)
		vertex(30, 0)
		vertex(0, 30)
		endShape(CLOSE)
	`)
	if len(res.Shapes) != 1 || res.Skipped != 0 {
		t.Fatalf("shapes = %d skipped = %d, want 1 and 0", len(res.Shapes), res.Skipped)
	}
	sh := res.Shapes[0]
	if sh.Name != "Polygon" {
		t.Errorf("name = %q, want Polygon", sh.Name)
	}
	if math.Abs(sh.X-10) > 1e-9 || math.Abs(sh.Y-10) > 1e-9 {
		t.Errorf("origin = (%g, %g), want centroid (10, 10)", sh.X, sh.Y)
	}
	pc, ok := sh.Commands[0].(*scene.Polyline)
	if !ok {
		t.Fatalf("command is %T", sh.Commands[0])
	}
	if !pc.Closed || len(pc.Points) != 3 {
		t.Errorf("polyline closed = %v points = %d, want closed with 3", pc.Closed, len(pc.Points))
	}
	if math.Abs(pc.Points[0].X+10) > 1e-9 || math.Abs(pc.Points[0].Y+10) > 1e-9 {
		t.Errorf("first point = %+v, want (-10, -10)", pc.Points[0])
	}
}

func TestParseOpenVertexRun(t *testing.T) {
	res := Parse("beginShape()\nvertex(0, 0)\nvertex(50, 10)\nendShape()")
	if len(res.Shapes) != 1 {
		t.Fatalf("shapes = %d, want 1", len(res.Shapes))
	}
	pc := res.Shapes[0].Commands[0].(*scene.Polyline)
	if pc.Closed {
		t.Error("bare endShape should leave the polyline open")
	}
	if res.Shapes[0].Name != "Polyline" {
		t.Errorf("name = %q, want Polyline", res.Shapes[0].Name)
	}
}

func TestParseUnfinishedVertexRunIsDropped(t *testing.T) {
	res := Parse("beginShape()\nvertex(1, 2)\nvertex(3, 4)")
	if len(res.Shapes) != 0 {
		t.Fatalf("shapes = %d, want 0 without endShape", len(res.Shapes))
	}
	if res.Skipped != 1 {
		t.Errorf("skipped = %d, want 1 for the abandoned run", res.Skipped)
	}
}

func TestParseStyleDoesNotLeakBackward(t *testing.T) {
	res := Parse(`
		stroke(#00ff00)
		rect(0, 0, 10, 10)
		stroke(#0000ff)
		rect(20, 0, 10, 10)
	`)
	if len(res.Shapes) != 2 {
		t.Fatalf("shapes = %d, want 2", len(res.Shapes))
	}
	if *res.Shapes[0].Stroke != "#00ff00" || *res.Shapes[1].Stroke != "#0000ff" {
		t.Errorf("strokes = %q, %q; later stroke() must not rewrite earlier shapes",
			*res.Shapes[0].Stroke, *res.Shapes[1].Stroke)
	}
}

func TestParseRejectsBadArity(t *testing.T) {
	res := Parse("rect(1, 2, 3)\nellipse(1, 2, 3, 4, 5)\nstrokeWeight(-2)\ntriangle(0, 0, 10, 0, 5, 10)")
	if len(res.Shapes) != 1 {
		t.Fatalf("shapes = %d, want only the triangle", len(res.Shapes))
	}
	if res.Shapes[0].Name != "Triangle" {
		t.Errorf("shape = %q, want Triangle", res.Shapes[0].Name)
	}
	if res.Skipped != 3 {
		t.Errorf("skipped = %d, want 3", res.Skipped)
	}
}

func TestParseEmptyInput(t *testing.T) {
	res := Parse("\n\n  // nothing here\n")
	if len(res.Shapes) != 0 || res.Skipped != 0 {
		t.Errorf("got %d shapes %d skipped, want none", len(res.Shapes), res.Skipped)
	}
}
