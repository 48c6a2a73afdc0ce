package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

type moveTarget struct {
	ent    scene.Entity
	startX float64
	startY float64
}

// moveSession drags the selected unlocked entities by the pointer delta.
// Positions are always derived from the press point and each target's
// start position rather than accumulated, so live grid snapping cannot
// drift.
type moveSession struct {
	targets []moveTarget
	pressX  float64
	pressY  float64
	started bool
}

func (e *Editor) beginMove(x, y float64) {
	var targets []moveTarget
	for _, ent := range e.selection.Resolve(e.scene) {
		if ent.IsLocked() {
			continue
		}
		t := ent.Transform()
		targets = append(targets, moveTarget{ent: ent, startX: t.TX, startY: t.TY})
	}
	if len(targets) == 0 {
		return
	}
	e.session = &moveSession{targets: targets, pressX: x, pressY: y}
}

func (s *moveSession) move(e *Editor, x, y float64, mods Modifiers) {
	nx, ny := x-s.pressX, y-s.pressY
	if nx == 0 && ny == 0 && !s.started {
		return
	}
	e.log.StartCoalesce(e.scene)
	s.started = true
	for _, tgt := range s.targets {
		t := tgt.ent.Transform()
		t.TX = tgt.startX + nx
		t.TY = tgt.startY + ny
		if e.prefs.SnapGridLive {
			t.TX = SnapToGrid(t.TX, e.prefs.GridSize)
			t.TY = SnapToGrid(t.TY, e.prefs.GridSize)
		}
		tgt.ent.SetTransform(t)
	}
	if e.prefs.SnapGuides {
		moving, ok := s.unionBounds()
		if !ok {
			e.guides = nil
			return
		}
		e.guides, _, _, _, _ = computeGuides(moving, s.siblingBounds(e), e.prefs.GuideTol)
	}
}

func (s *moveSession) finish(e *Editor, x, y float64, mods Modifiers) {
	e.guides = nil
	nx, ny := x-s.pressX, y-s.pressY

	// Compute the drop positions first: raw delta, then grid, then the
	// closest alignment guide per axis. Nothing is applied until we know
	// whether the session changed anything at all.
	finals := make([]geom.Point, len(s.targets))
	for i, tgt := range s.targets {
		fx, fy := tgt.startX+nx, tgt.startY+ny
		if e.prefs.SnapGrid {
			fx = SnapToGrid(fx, e.prefs.GridSize)
			fy = SnapToGrid(fy, e.prefs.GridSize)
		}
		finals[i] = geom.Pt(fx, fy)
	}
	if e.prefs.SnapGuides {
		if moving, ok := s.prospectiveBounds(finals); ok {
			_, gdx, gdy, okX, okY := computeGuides(moving, s.siblingBounds(e), e.prefs.GuideTol)
			for i := range finals {
				if okX {
					finals[i].X += gdx
				}
				if okY {
					finals[i].Y += gdy
				}
			}
		}
	}

	moved := false
	for i, tgt := range s.targets {
		if finals[i].X != tgt.startX || finals[i].Y != tgt.startY {
			moved = true
			break
		}
	}
	if !moved {
		s.restore()
		if s.started {
			e.log.CancelCoalesce()
		}
		return
	}

	// Opens the burst for the press-and-release case where only drop
	// snapping moves anything; re-arms it otherwise.
	e.log.StartCoalesce(e.scene)
	for i, tgt := range s.targets {
		t := tgt.ent.Transform()
		t.TX = finals[i].X
		t.TY = finals[i].Y
		tgt.ent.SetTransform(t)
	}
	e.log.EndCoalesce()
}

func (s *moveSession) cancel(e *Editor) {
	s.restore()
	if s.started {
		e.log.CancelCoalesce()
	}
}

func (s *moveSession) restore() {
	for _, tgt := range s.targets {
		t := tgt.ent.Transform()
		t.TX = tgt.startX
		t.TY = tgt.startY
		tgt.ent.SetTransform(t)
	}
}

// unionBounds is the world bounds of everything being dragged, at its
// current position.
func (s *moveSession) unionBounds() (geom.Rect, bool) {
	var out geom.Rect
	found := false
	for _, tgt := range s.targets {
		b, ok := scene.WorldBounds(tgt.ent)
		if !ok {
			continue
		}
		if !found {
			out = b
			found = true
		} else {
			out = out.Union(b)
		}
	}
	return out, found
}

// prospectiveBounds is the union bounds the targets would cover at the
// given drop positions.
func (s *moveSession) prospectiveBounds(finals []geom.Point) (geom.Rect, bool) {
	var out geom.Rect
	found := false
	for i, tgt := range s.targets {
		b, ok := scene.WorldBounds(tgt.ent)
		if !ok {
			continue
		}
		t := tgt.ent.Transform()
		b.X += finals[i].X - t.TX
		b.Y += finals[i].Y - t.TY
		if !found {
			out = b
			found = true
		} else {
			out = out.Union(b)
		}
	}
	return out, found
}

// siblingBounds collects world bounds of the visible entities that are
// not part of the drag, the reference set for alignment guides.
func (s *moveSession) siblingBounds(e *Editor) []geom.Rect {
	dragging := make(map[string]bool, len(s.targets))
	for _, tgt := range s.targets {
		dragging[tgt.ent.EntityID()] = true
	}
	var out []geom.Rect
	for _, ent := range e.scene.Entities {
		if dragging[ent.EntityID()] || !ent.IsVisible() {
			continue
		}
		if b, ok := scene.WorldBounds(ent); ok {
			out = append(out, b)
		}
	}
	return out
}
