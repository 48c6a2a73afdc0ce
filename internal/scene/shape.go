package scene

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/typeid"
)

// Shape is a leaf entity: a transform plus appearance plus geometry.
// Geometry comes from exactly one of three sources with fixed precedence:
// rings (boolean-op results, may contain holes), then explicit vertices,
// then the command list. When rings are present, Vertices mirrors the
// outer ring so vertex editing keeps working.
type Shape struct {
	ID   string
	Name string

	X        float64
	Y        float64
	Rotation float64 // radians
	Scale    float64 // uniform

	Fill         *string // nil means no fill
	Stroke       *string // nil means no stroke
	StrokeWeight float64
	Opacity      float64 // 0..1
	Visible      bool
	Locked       bool

	Commands []Command
	Vertices []geom.Point   // nil when the shape is command-driven
	Rings    [][]geom.Point // outer ring first, then holes
}

// NewShape creates an empty visible shape at the origin.
func NewShape() *Shape {
	return &Shape{
		ID:      typeid.NewShapeID(),
		Scale:   1,
		Opacity: 1,
		Visible: true,
	}
}

func (s *Shape) EntityID() string { return s.ID }

func (s *Shape) Type() EntityType { return TypeShape }

func (s *Shape) Transform() geom.Transform {
	return geom.NewTransform(s.X, s.Y, s.Rotation, s.Scale)
}

func (s *Shape) SetTransform(t geom.Transform) {
	s.X, s.Y = t.TX, t.TY
	s.Rotation = t.Rotation
	s.Scale = t.Scale
}

func (s *Shape) IsVisible() bool { return s.Visible }

func (s *Shape) IsLocked() bool { return s.Locked }

// Bounds returns the local bounding box from the active geometry source.
func (s *Shape) Bounds() (geom.Rect, bool) {
	if len(s.Rings) > 0 {
		var pts []geom.Point
		for _, ring := range s.Rings {
			pts = append(pts, ring...)
		}
		return geom.BoundsOf(pts)
	}
	if s.Vertices != nil {
		return geom.BoundsOf(s.Vertices)
	}
	return CommandBounds(s.Commands)
}

func (s *Shape) HitTest(x, y float64) bool {
	if !s.Visible {
		return false
	}
	return hitLocalBounds(s, x, y)
}

// Outline returns the polygon that stands in for the shape during lasso
// and boolean operations: the outer ring, or the explicit vertices, or a
// closed polyline's points. ok=false when no polygon is extractable.
func (s *Shape) Outline() ([]geom.Point, bool) {
	if len(s.Rings) > 0 {
		return s.Rings[0], true
	}
	if len(s.Vertices) >= 3 {
		return s.Vertices, true
	}
	for _, c := range s.Commands {
		if p, ok := c.(*Polyline); ok && len(p.Points) >= 3 {
			return p.Points, true
		}
	}
	return nil, false
}

// SingleEllipse returns the shape's ellipse command when the shape is
// driven by exactly one, which is what edge-resize handles require.
func (s *Shape) SingleEllipse() (*Ellipse, bool) {
	if len(s.Rings) > 0 || s.Vertices != nil || len(s.Commands) != 1 {
		return nil, false
	}
	e, ok := s.Commands[0].(*Ellipse)
	return e, ok
}

// SetRings installs a ring set and mirrors the outer ring into Vertices.
func (s *Shape) SetRings(rings [][]geom.Point) {
	s.Rings = rings
	if len(rings) > 0 {
		s.Vertices = make([]geom.Point, len(rings[0]))
		copy(s.Vertices, rings[0])
	}
}

// SyncOuterRing copies Vertices back over the outer ring after vertex
// edits so the two stay consistent.
func (s *Shape) SyncOuterRing() {
	if len(s.Rings) == 0 || s.Vertices == nil {
		return
	}
	s.Rings[0] = make([]geom.Point, len(s.Vertices))
	copy(s.Rings[0], s.Vertices)
}
