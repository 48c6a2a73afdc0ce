package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

const (
	defaultStrokeColor  = "#000000"
	defaultStrokeWeight = 1.0

	// minDrawDrag is the minimum press-to-release distance for the line
	// tool to commit; anything shorter is treated as a stray click.
	minDrawDrag = 2.0
)

// drawLineSession defines a line from press to release.
type drawLineSession struct {
	start geom.Point
	cur   geom.Point
}

func (s *drawLineSession) move(e *Editor, x, y float64, mods Modifiers) {
	s.cur = geom.Pt(x, y)
}

func (s *drawLineSession) finish(e *Editor, x, y float64, mods Modifiers) {
	end := geom.Pt(x, y)
	if s.start.Dist(end) < minDrawDrag {
		return
	}
	sh := newLineShape(s.start, end)
	e.commitPoint()
	e.scene.Add(sh)
	e.selection.Set(sh.ID)
}

func (s *drawLineSession) cancel(e *Editor) {}

// drawBezierSession collects four clicks: start anchor, two control
// points, end anchor. The shape commits the instant the fourth point
// lands, without waiting for a release.
type drawBezierSession struct {
	points []geom.Point
}

func (s *drawBezierSession) addPoint(e *Editor, x, y float64) {
	s.points = append(s.points, geom.Pt(x, y))
	if len(s.points) < 4 {
		return
	}
	sh := newBezierShape(s.points)
	e.commitPoint()
	e.scene.Add(sh)
	e.selection.Set(sh.ID)
	e.session = nil
}

func (s *drawBezierSession) move(e *Editor, x, y float64, mods Modifiers) {}

func (s *drawBezierSession) finish(e *Editor, x, y float64, mods Modifiers) {}

func (s *drawBezierSession) cancel(e *Editor) {}

// newLineShape builds a line shape whose origin is the centroid of its
// endpoints, with the command coordinates stored relative to it.
func newLineShape(a, b geom.Point) *scene.Shape {
	origin := geom.Centroid([]geom.Point{a, b})
	sh := newDrawnShape("Line", origin)
	sh.Commands = []scene.Command{&scene.Line{
		X1: a.X - origin.X,
		Y1: a.Y - origin.Y,
		X2: b.X - origin.X,
		Y2: b.Y - origin.Y,
	}}
	return sh
}

// newBezierShape builds a cubic bezier shape centered on the centroid of
// its four defining points.
func newBezierShape(pts []geom.Point) *scene.Shape {
	origin := geom.Centroid(pts)
	sh := newDrawnShape("Bezier", origin)
	sh.Commands = []scene.Command{&scene.Bezier{
		X1:  pts[0].X - origin.X,
		Y1:  pts[0].Y - origin.Y,
		CX1: pts[1].X - origin.X,
		CY1: pts[1].Y - origin.Y,
		CX2: pts[2].X - origin.X,
		CY2: pts[2].Y - origin.Y,
		X2:  pts[3].X - origin.X,
		Y2:  pts[3].Y - origin.Y,
	}}
	return sh
}

func newDrawnShape(name string, origin geom.Point) *scene.Shape {
	sh := scene.NewShape()
	sh.Name = name
	sh.X, sh.Y = origin.X, origin.Y
	stroke := defaultStrokeColor
	sh.Stroke = &stroke
	sh.StrokeWeight = defaultStrokeWeight
	return sh
}
