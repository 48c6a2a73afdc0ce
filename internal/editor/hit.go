package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// FindTopmostAt returns the highest z-order entity whose hit test accepts
// the world point, or nil.
func (e *Editor) FindTopmostAt(x, y float64) scene.Entity {
	return e.scene.HitTopmost(x, y)
}

// FindAllAt returns every entity hit at the world point, topmost first.
func (e *Editor) FindAllAt(x, y float64) []scene.Entity {
	return e.scene.HitAll(x, y)
}

// cycleTarget resolves a press position to one entity out of the stack
// under the cursor. Repeated clicks near the same spot over an unchanged
// hit stack walk downward through it one entity per click; moving the
// pointer away or any change in the stack restarts at the top.
func (e *Editor) cycleTarget(x, y float64) scene.Entity {
	hits := e.scene.HitAll(x, y)
	if len(hits) == 0 {
		e.resetCycle()
		e.cycleX, e.cycleY = x, y
		return nil
	}

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.EntityID()
	}

	nearLast := geom.Pt(x, y).Dist(geom.Pt(e.cycleX, e.cycleY)) <= e.prefs.ClickCycleTol
	if nearLast && sameIDs(ids, e.cycleHits) {
		e.cycleIndex = (e.cycleIndex + 1) % len(hits)
	} else {
		e.cycleIndex = 0
	}
	e.cycleHits = ids
	e.cycleX, e.cycleY = x, y
	return hits[e.cycleIndex]
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// VertexRef identifies one editable point of a shape by its position in
// the shape's flattened point sequence (vertex list, or line/bezier
// control points and polyline points in command order).
type VertexRef struct {
	ShapeID string `json:"shapeId"`
	Index   int    `json:"index"`
}

// EdgeRef identifies the segment from point Index to the next point of a
// shape's outline.
type EdgeRef struct {
	ShapeID string `json:"shapeId"`
	Index   int    `json:"index"`
}

// FindVertexAt resolves the world point to the nearest editable point
// within the vertex pick tolerance, scanning every visible shape. Closer
// wins; on equal distance the higher z-order shape wins.
func (e *Editor) FindVertexAt(x, y float64) (VertexRef, bool) {
	p := geom.Pt(x, y)
	var best VertexRef
	var bestDist float64
	found := false

	// Scan topmost first so a distance tie keeps the higher entity.
	for i := len(e.scene.Entities) - 1; i >= 0; i-- {
		sh, ok := e.scene.Entities[i].(*scene.Shape)
		if !ok || !sh.Visible {
			continue
		}
		t := sh.Transform()
		for j, local := range editablePoints(sh) {
			d := t.Apply(local).Dist(p)
			if d > e.prefs.VertexPickTol {
				continue
			}
			if !found || d < bestDist {
				best = VertexRef{ShapeID: sh.ID, Index: j}
				bestDist = d
				found = true
			}
		}
	}
	return best, found
}

// FindEdgeAt resolves the world point to the nearest outline segment
// within the edge pick tolerance, with the same closest-then-topmost
// preference as FindVertexAt.
func (e *Editor) FindEdgeAt(x, y float64) (EdgeRef, bool) {
	p := geom.Pt(x, y)
	var best EdgeRef
	var bestDist float64
	found := false

	consider := func(id string, index int, d float64) {
		if d > e.prefs.EdgePickTol {
			return
		}
		if !found || d < bestDist {
			best = EdgeRef{ShapeID: id, Index: index}
			bestDist = d
			found = true
		}
	}

	for i := len(e.scene.Entities) - 1; i >= 0; i-- {
		sh, ok := e.scene.Entities[i].(*scene.Shape)
		if !ok || !sh.Visible {
			continue
		}
		t := sh.Transform()
		pts, closed := outlineSegments(sh)
		if len(pts) < 2 {
			continue
		}
		world := make([]geom.Point, len(pts))
		for j, local := range pts {
			world[j] = t.Apply(local)
		}
		last := len(world) - 1
		for j := 0; j < last; j++ {
			consider(sh.ID, j, geom.SegmentDist(p, world[j], world[j+1]))
		}
		if closed {
			consider(sh.ID, last, geom.SegmentDist(p, world[last], world[0]))
		}
	}
	return best, found
}
