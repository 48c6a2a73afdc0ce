package scene

import (
	"math"
	"testing"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
)

const epsilon = 1e-9

func assertRect(t *testing.T, name string, got, want geom.Rect) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon ||
		math.Abs(got.Width-want.Width) > epsilon || math.Abs(got.Height-want.Height) > epsilon {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func shapeWith(cmds ...Command) *Shape {
	s := NewShape()
	s.Commands = cmds
	return s
}

func TestShapeBoundsPerCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want geom.Rect
	}{
		{"rect corner", &Rect{X: 10, Y: 20, W: 30, H: 40}, geom.Rect{X: 10, Y: 20, Width: 30, Height: 40}},
		{"rect center", &Rect{X: 0, Y: 0, W: 10, H: 10, Mode: RectCenter}, geom.Rect{X: -5, Y: -5, Width: 10, Height: 10}},
		{"ellipse", &Ellipse{CX: 0, CY: 0, W: 20, H: 10}, geom.Rect{X: -10, Y: -5, Width: 20, Height: 10}},
		{"arc uses full ellipse box", &Arc{CX: 5, CY: 5, W: 10, H: 10, Start: 0, Stop: 1}, geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}},
		{"line", &Line{X1: 0, Y1: 0, X2: 10, Y2: 5}, geom.Rect{X: 0, Y: 0, Width: 10, Height: 5}},
		{"bezier includes controls", &Bezier{X1: 0, Y1: 0, CX1: -10, CY1: 5, CX2: 20, CY2: 5, X2: 10, Y2: 0}, geom.Rect{X: -10, Y: 0, Width: 30, Height: 5}},
		{"text default center middle", &Text{Content: "hello", X: 0, Y: 0, Size: 10}, geom.Rect{X: -15, Y: -5, Width: 30, Height: 10}},
		{"text left top", &Text{Content: "hi", X: 0, Y: 0, Size: 10, Align: AlignLeft, Baseline: BaselineTop}, geom.Rect{X: 0, Y: 0, Width: 12, Height: 10}},
		{"image drawn size", &Image{Asset: "asset_1", X: 2, Y: 3, W: 40, H: 30}, geom.Rect{X: 2, Y: 3, Width: 40, Height: 30}},
		{"image natural fallback", &Image{Asset: "asset_1", X: 0, Y: 0, NaturalW: 64, NaturalH: 48}, geom.Rect{X: 0, Y: 0, Width: 64, Height: 48}},
		{"polyline", &Polyline{Points: []geom.Point{{X: 1, Y: 1}, {X: 4, Y: -2}, {X: 0, Y: 3}}}, geom.Rect{X: 0, Y: -2, Width: 4, Height: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := shapeWith(tt.cmd).Bounds()
			if !ok {
				t.Fatal("Bounds returned ok=false")
			}
			assertRect(t, "bounds", b, tt.want)
		})
	}
}

func TestShapeBoundsPrecedence(t *testing.T) {
	s := shapeWith(&Rect{X: 0, Y: 0, W: 100, H: 100})

	// Explicit vertices win over commands.
	s.Vertices = []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	b, ok := s.Bounds()
	if !ok {
		t.Fatal("Bounds returned ok=false")
	}
	assertRect(t, "vertex bounds", b, geom.Rect{X: 0, Y: 0, Width: 10, Height: 10})

	// Rings win over vertices.
	s.Rings = [][]geom.Point{{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}}
	b, ok = s.Bounds()
	if !ok {
		t.Fatal("Bounds returned ok=false")
	}
	assertRect(t, "ring bounds", b, geom.Rect{X: -5, Y: -5, Width: 10, Height: 10})
}

func TestShapeBoundsEmpty(t *testing.T) {
	if _, ok := NewShape().Bounds(); ok {
		t.Error("empty shape produced bounds")
	}
}

func TestUnionAcrossCommands(t *testing.T) {
	s := shapeWith(
		&Line{X1: 0, Y1: 0, X2: 10, Y2: 0},
		&Ellipse{CX: 20, CY: 10, W: 10, H: 10},
	)
	b, ok := s.Bounds()
	if !ok {
		t.Fatal("Bounds returned ok=false")
	}
	assertRect(t, "union", b, geom.Rect{X: 0, Y: 0, Width: 25, Height: 15})
}

func TestShapeHitTestTransformed(t *testing.T) {
	s := shapeWith(&Rect{X: 0, Y: 0, W: 10, H: 10})
	s.X, s.Y = 100, 50
	s.Rotation = math.Pi / 2
	s.Scale = 2

	// Local (5, 5) maps to scale (10, 10), rotate (-10, 10), translate (90, 60).
	if !s.HitTest(90, 60) {
		t.Error("transformed center not hit")
	}
	// Local corner (0, 0) maps to (100, 50).
	if !s.HitTest(100, 50) {
		t.Error("transformed origin corner not hit")
	}
	if s.HitTest(130, 50) {
		t.Error("point outside rotated box reported hit")
	}
}

func TestHitTestInvisible(t *testing.T) {
	s := shapeWith(&Rect{X: 0, Y: 0, W: 10, H: 10})
	if !s.HitTest(5, 5) {
		t.Fatal("visible shape not hit")
	}
	s.Visible = false
	if s.HitTest(5, 5) {
		t.Error("invisible shape reported hit")
	}
}

func TestGroupBounds(t *testing.T) {
	a := shapeWith(&Rect{X: -5, Y: -5, W: 10, H: 10})
	a.X, a.Y = 10, 10
	b := shapeWith(&Rect{X: 0, Y: 0, W: 10, H: 10})
	b.X, b.Y = 30, 0
	// Child rotation is ignored by the group box.
	b.Rotation = math.Pi / 4

	g := NewGroup()
	g.Children = []Entity{a, b}

	box, ok := g.Bounds()
	if !ok {
		t.Fatal("group Bounds returned ok=false")
	}
	// a covers (5,5)-(15,15) after its offset, b covers (30,0)-(40,10).
	assertRect(t, "group bounds", box, geom.Rect{X: 5, Y: 0, Width: 35, Height: 15})
}

func TestGroupHitTest(t *testing.T) {
	child := shapeWith(&Rect{X: 0, Y: 0, W: 10, H: 10})
	g := NewGroup()
	g.Children = []Entity{child}
	g.X, g.Y = 100, 100

	if !g.HitTest(105, 105) {
		t.Error("point inside translated group not hit")
	}
	if g.HitTest(50, 50) {
		t.Error("point far outside group reported hit")
	}
}

func TestEmptyGroupBounds(t *testing.T) {
	g := NewGroup()
	if _, ok := g.Bounds(); ok {
		t.Error("empty group produced bounds")
	}
	if g.HitTest(0, 0) {
		t.Error("empty group reported hit")
	}
}

func TestWorldBounds(t *testing.T) {
	s := shapeWith(&Rect{X: -5, Y: -5, W: 10, H: 10})
	s.X, s.Y = 100, 50
	s.Scale = 2

	b, ok := WorldBounds(s)
	if !ok {
		t.Fatal("WorldBounds returned ok=false")
	}
	assertRect(t, "world bounds", b, geom.Rect{X: 90, Y: 40, Width: 20, Height: 20})
}
