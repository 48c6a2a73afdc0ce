package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
)

// session is one in-flight pointer interaction. move tracks the pointer,
// finish runs on release and owns the history step, cancel abandons the
// interaction and restores whatever it had mutated.
type session interface {
	move(e *Editor, x, y float64, mods Modifiers)
	finish(e *Editor, x, y float64, mods Modifiers)
	cancel(e *Editor)
}

// PointerDown routes a press at world coordinates through the active
// tool. In select mode it resolves handles, then entities with click
// cycling, and falls back to a marquee on empty canvas.
func (e *Editor) PointerDown(x, y float64, mods Modifiers) {
	if e.mode != ModeDrawBezier && e.session != nil {
		e.cancelSession()
	}
	switch e.mode {
	case ModeSelect:
		e.pressSelect(x, y, mods)
	case ModeVertex:
		e.pressVertex(x, y, mods)
	case ModeLasso:
		e.session = &lassoSession{points: []geom.Point{geom.Pt(x, y)}}
	case ModeDrawLine:
		e.session = &drawLineSession{start: geom.Pt(x, y), cur: geom.Pt(x, y)}
	case ModeDrawBezier:
		s, ok := e.session.(*drawBezierSession)
		if !ok {
			if e.session != nil {
				e.cancelSession()
			}
			s = &drawBezierSession{}
			e.session = s
		}
		s.addPoint(e, x, y)
	}
}

// PointerMove feeds the active session; presses without a session are
// ignored.
func (e *Editor) PointerMove(x, y float64, mods Modifiers) {
	if e.session != nil {
		e.session.move(e, x, y, mods)
	}
}

// PointerUp finishes the active session. The bezier tool spans several
// clicks, so its releases are not an end.
func (e *Editor) PointerUp(x, y float64, mods Modifiers) {
	s := e.session
	if s == nil {
		return
	}
	if _, ok := s.(*drawBezierSession); ok {
		return
	}
	e.session = nil
	s.finish(e, x, y, mods)
	e.guides = nil
}

// SessionActive reports whether a pointer interaction is in flight.
func (e *Editor) SessionActive() bool {
	return e.session != nil
}

// CancelSession abandons the in-flight session, restoring anything it had
// mutated and leaving no history trace.
func (e *Editor) CancelSession() {
	e.cancelSession()
}

func (e *Editor) pressSelect(x, y float64, mods Modifiers) {
	// Transform handles exist only around a single selected entity and
	// win over anything underneath them.
	if sel := e.selection.Resolve(e.scene); len(sel) == 1 && !sel[0].IsLocked() {
		if h, ok := hitHandle(sel[0], x, y); ok {
			e.beginTransform(sel[0], h, x, y)
			return
		}
	}

	target := e.cycleTarget(x, y)
	if target == nil {
		e.session = &marqueeSession{start: geom.Pt(x, y), cur: geom.Pt(x, y)}
		return
	}

	id := target.EntityID()
	if mods.Shift {
		e.selection.Toggle(id)
	} else if !e.selection.Contains(id) {
		e.selection.Set(id)
	}
	// Locked entities can be picked but never dragged, and a shift-click
	// that removed the entity from the selection starts nothing.
	if target.IsLocked() || !e.selection.Contains(id) {
		return
	}
	e.beginMove(x, y)
}

func (e *Editor) pressVertex(x, y float64, mods Modifiers) {
	if ref, ok := e.FindVertexAt(x, y); ok {
		sh := e.shapeByID(ref.ShapeID)
		if sh == nil {
			return
		}
		e.selection.Set(ref.ShapeID)
		if sh.Locked {
			e.activeVertex = nil
			return
		}
		start, ok := pointAt(sh, ref.Index)
		if !ok {
			return
		}
		e.activeVertex = &ref
		e.session = &vertexSession{ref: ref, start: start}
		return
	}
	if ref, ok := e.FindEdgeAt(x, y); ok {
		e.selection.Set(ref.ShapeID)
		e.activeVertex = nil
		return
	}
	if target := e.scene.HitTopmost(x, y); target != nil {
		e.selection.Set(target.EntityID())
		e.activeVertex = nil
		return
	}
	if !mods.Shift {
		e.selection.Clear()
	}
	e.activeVertex = nil
}

// ActiveVertex returns the vertex targeted by keyboard nudges, if any.
func (e *Editor) ActiveVertex() (VertexRef, bool) {
	if e.activeVertex == nil {
		return VertexRef{}, false
	}
	return *e.activeVertex, true
}

// SetActiveVertex points keyboard editing at a specific vertex. ok=false
// when the reference does not resolve.
func (e *Editor) SetActiveVertex(ref VertexRef) bool {
	sh := e.shapeByID(ref.ShapeID)
	if sh == nil {
		return false
	}
	if _, ok := pointAt(sh, ref.Index); !ok {
		return false
	}
	e.activeVertex = &ref
	return true
}

// MarqueeRect returns the in-flight rubber-band rectangle.
func (e *Editor) MarqueeRect() (geom.Rect, bool) {
	if s, ok := e.session.(*marqueeSession); ok {
		return geom.RectFromPoints(s.start, s.cur), true
	}
	return geom.Rect{}, false
}

// LassoPoints returns the sampled points of the in-flight lasso.
func (e *Editor) LassoPoints() []geom.Point {
	if s, ok := e.session.(*lassoSession); ok {
		return append([]geom.Point(nil), s.points...)
	}
	return nil
}

// PendingDraw returns the accumulated points of the in-flight draw tool:
// line start and current pointer, or the bezier clicks so far.
func (e *Editor) PendingDraw() []geom.Point {
	switch s := e.session.(type) {
	case *drawLineSession:
		return []geom.Point{s.start, s.cur}
	case *drawBezierSession:
		return append([]geom.Point(nil), s.points...)
	}
	return nil
}
