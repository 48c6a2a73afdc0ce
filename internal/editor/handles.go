package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// HandleKind classifies the transform handles drawn around a selected
// entity.
type HandleKind string

const (
	// HandleRotate sits above the entity's bounds and drives rotation.
	HandleRotate HandleKind = "rotate"
	// HandleScale handles sit on the bounds corners and drive uniform
	// scale.
	HandleScale HandleKind = "scale"
	// HandleResize handles sit on an ellipse's edge midpoints and drive
	// its width or height directly.
	HandleResize HandleKind = "resize"
)

// ResizeAxis selects which ellipse dimension an edge handle drives.
type ResizeAxis string

const (
	AxisWidth  ResizeAxis = "width"
	AxisHeight ResizeAxis = "height"
)

// Handle identifies one transform handle on an entity.
type Handle struct {
	Kind  HandleKind `json:"kind"`
	Index int        `json:"index"`
	Axis  ResizeAxis `json:"axis,omitempty"`
}

const (
	rotateHandleOffset = 20.0
	rotateHandleRadius = 12.0
	scaleHandleRadius  = 10.0
	resizeHandleRadius = 8.0
)

type handlePlacement struct {
	handle Handle
	local  geom.Point
	radius float64
}

// handleLayout lists the entity's handles in hit-test priority order:
// rotate, then the four scale corners, then ellipse edge midpoints.
// Positions are in the entity's local space.
func handleLayout(ent scene.Entity) []handlePlacement {
	b, ok := ent.Bounds()
	if !ok {
		return nil
	}
	out := []handlePlacement{{
		handle: Handle{Kind: HandleRotate},
		local:  geom.Pt(b.X+b.Width/2, b.Y-rotateHandleOffset),
		radius: rotateHandleRadius,
	}}
	for i, corner := range b.Corners() {
		out = append(out, handlePlacement{
			handle: Handle{Kind: HandleScale, Index: i},
			local:  corner,
			radius: scaleHandleRadius,
		})
	}
	sh, ok := ent.(*scene.Shape)
	if !ok {
		return out
	}
	el, ok := sh.SingleEllipse()
	if !ok {
		return out
	}
	mids := []struct {
		p    geom.Point
		axis ResizeAxis
	}{
		{geom.Pt(el.CX-el.W/2, el.CY), AxisWidth},
		{geom.Pt(el.CX+el.W/2, el.CY), AxisWidth},
		{geom.Pt(el.CX, el.CY-el.H/2), AxisHeight},
		{geom.Pt(el.CX, el.CY+el.H/2), AxisHeight},
	}
	for i, m := range mids {
		out = append(out, handlePlacement{
			handle: Handle{Kind: HandleResize, Index: i, Axis: m.axis},
			local:  m.p,
			radius: resizeHandleRadius,
		})
	}
	return out
}

// hitHandle tests the world point against the entity's handles in
// priority order. The point is inverse transformed once so handles stay
// aligned with the entity under rotation and scale.
func hitHandle(ent scene.Entity, x, y float64) (Handle, bool) {
	local := ent.Transform().Invert(geom.Pt(x, y))
	for _, p := range handleLayout(ent) {
		if local.Dist(p.local) <= p.radius {
			return p.handle, true
		}
	}
	return Handle{}, false
}

// HandlePlacement is a handle resolved to world coordinates, for the
// frontend to draw.
type HandlePlacement struct {
	Kind  HandleKind `json:"kind"`
	Index int        `json:"index"`
	Axis  ResizeAxis `json:"axis,omitempty"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
}

// SelectionHandles returns the transform handles for the selection, which
// exist only when exactly one entity is selected.
func (e *Editor) SelectionHandles() []HandlePlacement {
	selected := e.selection.Resolve(e.scene)
	if len(selected) != 1 {
		return nil
	}
	ent := selected[0]
	t := ent.Transform()
	var out []HandlePlacement
	for _, p := range handleLayout(ent) {
		world := t.Apply(p.local)
		out = append(out, HandlePlacement{
			Kind:  p.handle.Kind,
			Index: p.handle.Index,
			Axis:  p.handle.Axis,
			X:     world.X,
			Y:     world.Y,
		})
	}
	return out
}
