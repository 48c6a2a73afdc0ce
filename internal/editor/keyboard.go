package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// Key names follow the DOM KeyboardEvent.key values the frontend
// forwards.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyDelete     = "Delete"
	KeyBackspace  = "Backspace"
	KeyEscape     = "Escape"
)

// KeyDown routes a keyboard event. Arrows nudge the active vertex in
// vertex mode, otherwise the selection, by 1 unit or 10 with shift;
// key repeat coalesces into a single history step. Delete removes the
// active vertex or the selection. Escape abandons the in-flight session.
func (e *Editor) KeyDown(key string, mods Modifiers) {
	switch key {
	case KeyArrowLeft:
		e.nudge(-1, 0, mods)
	case KeyArrowRight:
		e.nudge(1, 0, mods)
	case KeyArrowUp:
		e.nudge(0, -1, mods)
	case KeyArrowDown:
		e.nudge(0, 1, mods)
	case KeyDelete, KeyBackspace:
		if e.mode == ModeVertex && e.activeVertex != nil {
			e.DeleteActiveVertex()
		} else {
			e.DeleteSelection()
		}
	case KeyEscape:
		e.cancelSession()
		e.activeVertex = nil
	}
}

func (e *Editor) nudge(dx, dy float64, mods Modifiers) {
	step := 1.0
	if mods.Shift {
		step = 10
	}
	if e.mode == ModeVertex && e.activeVertex != nil {
		e.NudgeActiveVertex(dx*step, dy*step)
		return
	}
	e.NudgeSelection(dx*step, dy*step)
}

// NudgeActiveVertex shifts the active vertex by a local-space delta.
// Rapid nudges inside the coalescing window collapse into one history
// step.
func (e *Editor) NudgeActiveVertex(dx, dy float64) {
	if e.activeVertex == nil {
		return
	}
	sh := e.shapeByID(e.activeVertex.ShapeID)
	if sh == nil || sh.Locked {
		return
	}
	p, ok := pointAt(sh, e.activeVertex.Index)
	if !ok {
		return
	}
	e.log.StartCoalesce(e.scene)
	setPointAt(sh, e.activeVertex.Index, geom.Pt(p.X+dx, p.Y+dy))
}

// NudgeSelection shifts every selected unlocked entity, coalescing rapid
// repeats the same way as vertex nudges.
func (e *Editor) NudgeSelection(dx, dy float64) {
	var targets []scene.Entity
	for _, ent := range e.selection.Resolve(e.scene) {
		if ent.IsLocked() {
			continue
		}
		targets = append(targets, ent)
	}
	if len(targets) == 0 {
		return
	}
	e.log.StartCoalesce(e.scene)
	for _, ent := range targets {
		t := ent.Transform()
		t.TX += dx
		t.TY += dy
		ent.SetTransform(t)
	}
}
