package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// editablePoints returns the shape's editable local points in flat index
// order: the explicit vertex list when present, otherwise line endpoints,
// bezier control points, and polyline points in command order. Ellipse,
// rect, arc, text, and image commands contribute no points.
func editablePoints(sh *scene.Shape) []geom.Point {
	if len(sh.Vertices) > 0 {
		return append([]geom.Point(nil), sh.Vertices...)
	}
	var pts []geom.Point
	for _, c := range sh.Commands {
		switch cmd := c.(type) {
		case *scene.Line:
			pts = append(pts, geom.Pt(cmd.X1, cmd.Y1), geom.Pt(cmd.X2, cmd.Y2))
		case *scene.Bezier:
			pts = append(pts,
				geom.Pt(cmd.X1, cmd.Y1),
				geom.Pt(cmd.CX1, cmd.CY1),
				geom.Pt(cmd.CX2, cmd.CY2),
				geom.Pt(cmd.X2, cmd.Y2))
		case *scene.Polyline:
			pts = append(pts, cmd.Points...)
		}
	}
	return pts
}

// outlineSegments returns the point chain used for edge picking and
// whether its last point connects back to the first. Bezier curves and
// multi-command shapes have no pickable edges.
func outlineSegments(sh *scene.Shape) ([]geom.Point, bool) {
	if len(sh.Rings) > 0 {
		return sh.Rings[0], true
	}
	if len(sh.Vertices) >= 2 {
		return sh.Vertices, len(sh.Vertices) >= 3
	}
	if len(sh.Commands) == 1 {
		switch cmd := sh.Commands[0].(type) {
		case *scene.Line:
			return []geom.Point{geom.Pt(cmd.X1, cmd.Y1), geom.Pt(cmd.X2, cmd.Y2)}, false
		case *scene.Polyline:
			return cmd.Points, cmd.Closed
		}
	}
	return nil, false
}

// pointAt returns the shape's editable point at the flat index.
func pointAt(sh *scene.Shape, index int) (geom.Point, bool) {
	pts := editablePoints(sh)
	if index < 0 || index >= len(pts) {
		return geom.Point{}, false
	}
	return pts[index], true
}

// setPointAt rewrites the editable point at the flat index, keeping the
// outer ring in sync for ring-backed shapes.
func setPointAt(sh *scene.Shape, index int, p geom.Point) bool {
	if index < 0 {
		return false
	}
	if len(sh.Vertices) > 0 {
		if index >= len(sh.Vertices) {
			return false
		}
		sh.Vertices[index] = p
		sh.SyncOuterRing()
		return true
	}
	for _, c := range sh.Commands {
		switch cmd := c.(type) {
		case *scene.Line:
			switch index {
			case 0:
				cmd.X1, cmd.Y1 = p.X, p.Y
				return true
			case 1:
				cmd.X2, cmd.Y2 = p.X, p.Y
				return true
			}
			index -= 2
		case *scene.Bezier:
			switch index {
			case 0:
				cmd.X1, cmd.Y1 = p.X, p.Y
				return true
			case 1:
				cmd.CX1, cmd.CY1 = p.X, p.Y
				return true
			case 2:
				cmd.CX2, cmd.CY2 = p.X, p.Y
				return true
			case 3:
				cmd.X2, cmd.Y2 = p.X, p.Y
				return true
			}
			index -= 4
		case *scene.Polyline:
			if index < len(cmd.Points) {
				cmd.Points[index] = p
				return true
			}
			index -= len(cmd.Points)
		}
	}
	return false
}

// canDeletePoint reports whether removing the indexed point would leave a
// valid polygon. Only vertex lists and polyline commands support removal,
// and both must keep at least 3 points.
func canDeletePoint(sh *scene.Shape, index int) bool {
	if index < 0 {
		return false
	}
	if len(sh.Vertices) > 0 {
		return index < len(sh.Vertices) && len(sh.Vertices) > 3
	}
	for _, c := range sh.Commands {
		cmd, ok := c.(*scene.Polyline)
		if !ok {
			index -= commandPointCount(c)
			if index < 0 {
				return false
			}
			continue
		}
		if index < len(cmd.Points) {
			return len(cmd.Points) > 3
		}
		index -= len(cmd.Points)
	}
	return false
}

// deletePointAt removes the indexed point. Callers guard with
// canDeletePoint; out-of-range or undersized targets are left untouched.
func deletePointAt(sh *scene.Shape, index int) bool {
	if !canDeletePoint(sh, index) {
		return false
	}
	if len(sh.Vertices) > 0 {
		sh.Vertices = append(sh.Vertices[:index], sh.Vertices[index+1:]...)
		sh.SyncOuterRing()
		return true
	}
	for _, c := range sh.Commands {
		cmd, ok := c.(*scene.Polyline)
		if !ok {
			index -= commandPointCount(c)
			continue
		}
		if index < len(cmd.Points) {
			cmd.Points = append(cmd.Points[:index], cmd.Points[index+1:]...)
			return true
		}
		index -= len(cmd.Points)
	}
	return false
}

// insertPointAfter splits the outline edge starting at the indexed point,
// inserting the new local point after it. Same geometry restrictions as
// deletion.
func insertPointAfter(sh *scene.Shape, index int, p geom.Point) bool {
	if index < 0 {
		return false
	}
	if len(sh.Vertices) > 0 {
		if index >= len(sh.Vertices) {
			return false
		}
		sh.Vertices = append(sh.Vertices, geom.Point{})
		copy(sh.Vertices[index+2:], sh.Vertices[index+1:])
		sh.Vertices[index+1] = p
		sh.SyncOuterRing()
		return true
	}
	for _, c := range sh.Commands {
		cmd, ok := c.(*scene.Polyline)
		if !ok {
			index -= commandPointCount(c)
			if index < 0 {
				return false
			}
			continue
		}
		if index < len(cmd.Points) {
			cmd.Points = append(cmd.Points, geom.Point{})
			copy(cmd.Points[index+2:], cmd.Points[index+1:])
			cmd.Points[index+1] = p
			return true
		}
		index -= len(cmd.Points)
	}
	return false
}

func commandPointCount(c scene.Command) int {
	switch cmd := c.(type) {
	case *scene.Line:
		return 2
	case *scene.Bezier:
		return 4
	case *scene.Polyline:
		return len(cmd.Points)
	default:
		return 0
	}
}

// vertexSession drags one editable point. The pointer is inverse
// transformed into the shape's local space on every move so the point
// tracks the cursor under any rotation or scale.
type vertexSession struct {
	ref     VertexRef
	start   geom.Point
	started bool
}

func (s *vertexSession) move(e *Editor, x, y float64, mods Modifiers) {
	sh := e.shapeByID(s.ref.ShapeID)
	if sh == nil {
		return
	}
	local := sh.Transform().Invert(geom.Pt(x, y))
	cur, ok := pointAt(sh, s.ref.Index)
	if !ok || (cur.X == local.X && cur.Y == local.Y) {
		return
	}
	e.log.StartCoalesce(e.scene)
	s.started = true
	setPointAt(sh, s.ref.Index, local)
}

func (s *vertexSession) finish(e *Editor, x, y float64, mods Modifiers) {
	sh := e.shapeByID(s.ref.ShapeID)
	if sh == nil {
		if s.started {
			e.log.CancelCoalesce()
		}
		return
	}
	if !s.started {
		return
	}
	cur, _ := pointAt(sh, s.ref.Index)
	if cur.X == s.start.X && cur.Y == s.start.Y {
		e.log.CancelCoalesce()
		return
	}
	e.log.EndCoalesce()
}

func (s *vertexSession) cancel(e *Editor) {
	if sh := e.shapeByID(s.ref.ShapeID); sh != nil {
		setPointAt(sh, s.ref.Index, s.start)
	}
	if s.started {
		e.log.CancelCoalesce()
	}
}

// shapeByID resolves a top-level shape, nil for groups or unknown ids.
func (e *Editor) shapeByID(id string) *scene.Shape {
	sh, _ := e.scene.Find(id).(*scene.Shape)
	return sh
}
