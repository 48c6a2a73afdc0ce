package scene

import (
	"math"
	"testing"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
)

func TestApplyScaleRect(t *testing.T) {
	s := shapeWith(&Rect{X: 5, Y: 5, W: 10, H: 10})
	s.X, s.Y = 100, 100
	s.Scale = 2

	before, _ := WorldBounds(s)
	ApplyScale(s, 0, 0)
	after, _ := WorldBounds(s)

	assertRect(t, "world bounds preserved", after, before)
	if s.Scale != 1 {
		t.Errorf("scale = %v after bake, want 1", s.Scale)
	}
	r := s.Commands[0].(*Rect)
	if r.X != 10 || r.Y != 10 || r.W != 20 || r.H != 20 {
		t.Errorf("rect after bake = %+v", r)
	}
}

func TestApplyScaleIdempotent(t *testing.T) {
	s := shapeWith(&Ellipse{CX: 3, CY: 0, W: 10, H: 6})
	s.Scale = 1.5
	ApplyScale(s, 0, 0)
	first := *s.Commands[0].(*Ellipse)
	ApplyScale(s, 0, 0)
	second := *s.Commands[0].(*Ellipse)
	if first != second {
		t.Errorf("second bake changed geometry: %+v vs %+v", first, second)
	}
}

func TestApplyScaleText(t *testing.T) {
	s := shapeWith(&Text{Content: "hi", X: 7, Y: 3, Size: 10})
	s.Scale = 3
	ApplyScale(s, 0, 0)
	txt := s.Commands[0].(*Text)
	if txt.Size != 30 {
		t.Errorf("text size = %v, want 30", txt.Size)
	}
	// The anchor stays put; only the font size absorbs the factor.
	if txt.X != 7 || txt.Y != 3 {
		t.Errorf("text anchor moved to (%v, %v)", txt.X, txt.Y)
	}
}

func TestApplyScaleImageClamp(t *testing.T) {
	s := shapeWith(&Image{Asset: "asset_1", X: 0, Y: 0, W: 400, H: 300})
	s.Scale = 4
	ApplyScale(s, 800, 600)
	img := s.Commands[0].(*Image)
	if img.W != 800 || img.H != 600 {
		t.Errorf("image = %vx%v, want clamp to 800x600", img.W, img.H)
	}
}

func TestApplyScaleVerticesAndRings(t *testing.T) {
	s := NewShape()
	s.SetRings([][]geom.Point{{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}})
	s.Scale = 2
	ApplyScale(s, 0, 0)
	if s.Rings[0][1].X != 8 {
		t.Errorf("ring not scaled: %+v", s.Rings[0])
	}
	if s.Vertices[1].X != 8 {
		t.Errorf("mirrored vertices not scaled: %+v", s.Vertices)
	}
	if s.Scale != 1 {
		t.Errorf("scale = %v, want 1", s.Scale)
	}
}

func TestApplyRotatePolyline(t *testing.T) {
	s := shapeWith(&Polyline{Points: []geom.Point{{X: 10, Y: 0}, {X: 0, Y: 10}, {X: -10, Y: 0}}})
	s.X, s.Y = 50, 50
	s.Rotation = math.Pi / 2

	before, _ := WorldBounds(s)
	ApplyRotate(s)
	after, _ := WorldBounds(s)

	assertRect(t, "world bounds preserved", after, before)
	if s.Rotation != 0 {
		t.Errorf("rotation = %v after bake, want 0", s.Rotation)
	}
	p := s.Commands[0].(*Polyline).Points[0]
	if math.Abs(p.X) > epsilon || math.Abs(p.Y-10) > epsilon {
		t.Errorf("point not rotated: %+v", p)
	}
}

func TestApplyRotateIdempotent(t *testing.T) {
	s := shapeWith(&Line{X1: 0, Y1: 0, X2: 10, Y2: 0})
	s.Rotation = 1
	ApplyRotate(s)
	first := *s.Commands[0].(*Line)
	ApplyRotate(s)
	second := *s.Commands[0].(*Line)
	if first != second {
		t.Errorf("second bake changed geometry: %+v vs %+v", first, second)
	}
}

func TestGroupApplyScale(t *testing.T) {
	child := shapeWith(&Rect{X: 0, Y: 0, W: 10, H: 10})
	child.X, child.Y = 10, 0
	g := NewGroup()
	g.Children = []Entity{child}
	g.Scale = 2

	// World position of the child origin before the bake.
	world := g.Transform().Apply(geom.Pt(child.X, child.Y))

	ApplyScale(g, 0, 0)

	if g.Scale != 1 {
		t.Errorf("group scale = %v, want 1", g.Scale)
	}
	if child.Scale != 2 {
		t.Errorf("child scale = %v, want 2", child.Scale)
	}
	after := g.Transform().Apply(geom.Pt(child.X, child.Y))
	if math.Abs(world.X-after.X) > epsilon || math.Abs(world.Y-after.Y) > epsilon {
		t.Errorf("child origin moved: %+v vs %+v", world, after)
	}
}

func TestGroupApplyRotate(t *testing.T) {
	child := shapeWith(&Rect{X: 0, Y: 0, W: 10, H: 10})
	child.X, child.Y = 10, 0
	g := NewGroup()
	g.Children = []Entity{child}
	g.Rotation = math.Pi / 2

	world := g.Transform().Apply(geom.Pt(child.X, child.Y))
	ApplyRotate(g)
	after := g.Transform().Apply(geom.Pt(child.X, child.Y))

	if g.Rotation != 0 {
		t.Errorf("group rotation = %v, want 0", g.Rotation)
	}
	if math.Abs(child.Rotation-math.Pi/2) > epsilon {
		t.Errorf("child rotation = %v, want pi/2", child.Rotation)
	}
	if math.Abs(world.X-after.X) > epsilon || math.Abs(world.Y-after.Y) > epsilon {
		t.Errorf("child origin moved: %+v vs %+v", world, after)
	}
}
