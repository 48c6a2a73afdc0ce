package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// marqueeSession tracks a rectangular rubber band in world space. The
// selection predicate defaults to any-intersection; alt switches to full
// containment. Shift keeps the existing selection.
type marqueeSession struct {
	start geom.Point
	cur   geom.Point
}

func (s *marqueeSession) move(e *Editor, x, y float64, mods Modifiers) {
	s.cur = geom.Pt(x, y)
}

func (s *marqueeSession) finish(e *Editor, x, y float64, mods Modifiers) {
	rect := geom.RectFromPoints(s.start, geom.Pt(x, y))
	var matched []scene.Entity
	for _, ent := range e.scene.Entities {
		if ent.IsLocked() {
			continue
		}
		b, ok := scene.WorldBounds(ent)
		if !ok {
			continue
		}
		hit := rect.Intersects(b)
		if mods.Alt {
			hit = rect.ContainsRect(b)
		}
		if hit {
			matched = append(matched, ent)
		}
	}
	applyRegionSelection(e, matched, mods)
}

func (s *marqueeSession) cancel(e *Editor) {}

// lassoSession samples pointer positions into a freehand polygon. An
// entity is matched when its world-space vertices sit inside the polygon:
// all of them by default, any of them with alt. Entities without
// extractable vertices fall back to a bounding-box comparison against the
// lasso's bounding box.
type lassoSession struct {
	points []geom.Point
}

func (s *lassoSession) move(e *Editor, x, y float64, mods Modifiers) {
	p := geom.Pt(x, y)
	if n := len(s.points); n > 0 && s.points[n-1] == p {
		return
	}
	s.points = append(s.points, p)
}

func (s *lassoSession) finish(e *Editor, x, y float64, mods Modifiers) {
	s.move(e, x, y, mods)
	poly := s.points
	if len(poly) < 3 {
		applyRegionSelection(e, nil, mods)
		return
	}
	lassoBox, _ := geom.BoundsOf(poly)

	var matched []scene.Entity
	for _, ent := range e.scene.Entities {
		if ent.IsLocked() {
			continue
		}
		if s.matches(ent, poly, lassoBox, mods.Alt) {
			matched = append(matched, ent)
		}
	}
	applyRegionSelection(e, matched, mods)
}

func (s *lassoSession) cancel(e *Editor) {}

func (s *lassoSession) matches(ent scene.Entity, poly []geom.Point, lassoBox geom.Rect, anyInside bool) bool {
	var world []geom.Point
	if sh, ok := ent.(*scene.Shape); ok {
		t := sh.Transform()
		for _, local := range editablePoints(sh) {
			world = append(world, t.Apply(local))
		}
	}
	if len(world) == 0 {
		b, ok := scene.WorldBounds(ent)
		if !ok {
			return false
		}
		if anyInside {
			return lassoBox.Intersects(b)
		}
		return lassoBox.ContainsRect(b)
	}
	for _, p := range world {
		inside := geom.PointInPolygon(p, poly)
		if anyInside && inside {
			return true
		}
		if !anyInside && !inside {
			return false
		}
	}
	return !anyInside
}

// applyRegionSelection installs a region tool's matches: replace the
// selection, or extend it when shift is held. With snap-on-drop enabled
// the matched entities are pulled onto the grid, which is its own
// history step.
func applyRegionSelection(e *Editor, matched []scene.Entity, mods Modifiers) {
	if !mods.Shift {
		e.selection.Clear()
	}
	for _, ent := range matched {
		e.selection.Add(ent.EntityID())
	}
	e.resetCycle()

	if !e.prefs.SnapGrid {
		return
	}
	type snapMove struct {
		ent  scene.Entity
		x, y float64
	}
	var moves []snapMove
	for _, ent := range matched {
		t := ent.Transform()
		nx := SnapToGrid(t.TX, e.prefs.GridSize)
		ny := SnapToGrid(t.TY, e.prefs.GridSize)
		if nx != t.TX || ny != t.TY {
			moves = append(moves, snapMove{ent: ent, x: nx, y: ny})
		}
	}
	if len(moves) == 0 {
		return
	}
	e.commitPoint()
	for _, m := range moves {
		t := m.ent.Transform()
		t.TX, t.TY = m.x, m.y
		m.ent.SetTransform(t)
	}
}
