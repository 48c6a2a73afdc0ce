package editor

import (
	"math"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// minEllipseExtent is the floor for edge-resized ellipse dimensions.
const minEllipseExtent = 2.0

// transformSession drives one entity's rotation, uniform scale, or
// ellipse edge resize from a grabbed handle. Rotation and scale are
// relative to the press: the pointer's angle/distance around the pivot is
// compared against its value at press time, so the handle never jumps
// under the cursor.
type transformSession struct {
	id     string
	handle Handle

	pivot         geom.Point // world
	startRotation float64
	startScale    float64
	startAngle    float64
	startDist     float64
	startW        float64
	startH        float64

	started bool
}

func (e *Editor) beginTransform(ent scene.Entity, h Handle, x, y float64) {
	b, ok := ent.Bounds()
	if !ok {
		return
	}
	t := ent.Transform()
	pivot := t.Apply(b.Center())
	s := &transformSession{
		id:            ent.EntityID(),
		handle:        h,
		pivot:         pivot,
		startRotation: t.Rotation,
		startScale:    t.Scale,
		startAngle:    math.Atan2(y-pivot.Y, x-pivot.X),
		startDist:     geom.Pt(x, y).Dist(pivot),
	}
	if sh, ok := ent.(*scene.Shape); ok {
		if el, ok := sh.SingleEllipse(); ok {
			s.startW, s.startH = el.W, el.H
		}
	}
	e.session = s
}

func (s *transformSession) move(e *Editor, x, y float64, mods Modifiers) {
	ent := e.scene.Find(s.id)
	if ent == nil {
		return
	}
	switch s.handle.Kind {
	case HandleRotate:
		cur := math.Atan2(y-s.pivot.Y, x-s.pivot.X)
		rot := s.startRotation + (cur - s.startAngle)
		t := ent.Transform()
		if rot == t.Rotation {
			return
		}
		e.log.StartCoalesce(e.scene)
		s.started = true
		t.Rotation = rot
		ent.SetTransform(t)

	case HandleScale:
		// A press exactly on the pivot has no usable direction; the
		// factor stays 1.
		if s.startDist == 0 {
			return
		}
		sc := s.startScale * (geom.Pt(x, y).Dist(s.pivot) / s.startDist)
		t := ent.Transform()
		if sc == t.Scale {
			return
		}
		e.log.StartCoalesce(e.scene)
		s.started = true
		t.Scale = sc
		ent.SetTransform(t)

	case HandleResize:
		sh, ok := ent.(*scene.Shape)
		if !ok {
			return
		}
		el, ok := sh.SingleEllipse()
		if !ok {
			return
		}
		local := ent.Transform().Invert(geom.Pt(x, y))
		switch s.handle.Axis {
		case AxisWidth:
			w := math.Max(minEllipseExtent, 2*math.Abs(local.X-el.CX))
			if w == el.W {
				return
			}
			e.log.StartCoalesce(e.scene)
			s.started = true
			el.W = w
		case AxisHeight:
			h := math.Max(minEllipseExtent, 2*math.Abs(local.Y-el.CY))
			if h == el.H {
				return
			}
			e.log.StartCoalesce(e.scene)
			s.started = true
			el.H = h
		}
	}
}

func (s *transformSession) finish(e *Editor, x, y float64, mods Modifiers) {
	ent := e.scene.Find(s.id)
	if ent == nil {
		if s.started {
			e.log.CancelCoalesce()
		}
		return
	}
	if !s.started {
		return
	}
	if !s.changed(ent) {
		s.restore(ent)
		e.log.CancelCoalesce()
		return
	}
	if e.prefs.AutoBake {
		switch s.handle.Kind {
		case HandleRotate:
			scene.ApplyRotate(ent)
		case HandleScale:
			scene.ApplyScale(ent, e.canvasW, e.canvasH)
		}
	}
	e.log.EndCoalesce()
}

func (s *transformSession) cancel(e *Editor) {
	if ent := e.scene.Find(s.id); ent != nil {
		s.restore(ent)
	}
	if s.started {
		e.log.CancelCoalesce()
	}
}

func (s *transformSession) changed(ent scene.Entity) bool {
	t := ent.Transform()
	switch s.handle.Kind {
	case HandleRotate:
		return t.Rotation != s.startRotation
	case HandleScale:
		return t.Scale != s.startScale
	case HandleResize:
		if sh, ok := ent.(*scene.Shape); ok {
			if el, ok := sh.SingleEllipse(); ok {
				return el.W != s.startW || el.H != s.startH
			}
		}
	}
	return false
}

func (s *transformSession) restore(ent scene.Entity) {
	t := ent.Transform()
	t.Rotation = s.startRotation
	t.Scale = s.startScale
	ent.SetTransform(t)
	if sh, ok := ent.(*scene.Shape); ok {
		if el, ok := sh.SingleEllipse(); ok {
			el.W, el.H = s.startW, s.startH
		}
	}
}
