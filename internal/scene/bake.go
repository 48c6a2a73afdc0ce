package scene

import "github.com/vectorpad/vectorpad/engine-go/internal/geom"

// ApplyScale folds the entity's scale factor into its geometry and resets
// the factor to 1. Shapes scale command coordinates, vertices, and rings;
// image commands clamp their drawn size to the canvas (maxW/maxH, zero
// disables the clamp). Groups reposition children and push the factor into
// each child's own scale. Calling again is a no-op.
func ApplyScale(e Entity, maxW, maxH float64) {
	switch v := e.(type) {
	case *Shape:
		f := v.Scale
		if f == 1 {
			return
		}
		for _, c := range v.Commands {
			c.scaleBy(f)
			if img, ok := c.(*Image); ok {
				clampImage(img, maxW, maxH)
			}
		}
		for i := range v.Vertices {
			v.Vertices[i] = v.Vertices[i].Mul(f)
		}
		for _, ring := range v.Rings {
			for i := range ring {
				ring[i] = ring[i].Mul(f)
			}
		}
		v.Scale = 1
	case *Group:
		f := v.Scale
		if f == 1 {
			return
		}
		for _, child := range v.Children {
			t := child.Transform()
			t.TX *= f
			t.TY *= f
			t.Scale *= f
			child.SetTransform(t)
		}
		v.Scale = 1
	}
}

// ApplyRotate folds the entity's rotation into its geometry and resets the
// angle to zero. Box-driven commands (ellipse, rect, arc, text, image)
// rotate their anchor point only; their boxes stay axis-aligned. Calling
// again is a no-op.
func ApplyRotate(e Entity) {
	switch v := e.(type) {
	case *Shape:
		r := v.Rotation
		if r == 0 {
			return
		}
		for _, c := range v.Commands {
			c.rotateBy(r)
		}
		for i := range v.Vertices {
			v.Vertices[i] = v.Vertices[i].Rotate(r)
		}
		for _, ring := range v.Rings {
			for i := range ring {
				ring[i] = ring[i].Rotate(r)
			}
		}
		v.Rotation = 0
	case *Group:
		r := v.Rotation
		if r == 0 {
			return
		}
		for _, child := range v.Children {
			t := child.Transform()
			p := geom.Pt(t.TX, t.TY).Rotate(r)
			t.TX, t.TY = p.X, p.Y
			t.Rotation += r
			child.SetTransform(t)
		}
		v.Rotation = 0
	}
}

func clampImage(img *Image, maxW, maxH float64) {
	if maxW > 0 && img.W > maxW {
		img.W = maxW
	}
	if maxH > 0 && img.H > maxH {
		img.H = maxH
	}
}
