package geom

import "math"

// Transform is a similarity transform: uniform scale, then rotation, then
// translation. Entity transforms and their ancestor compositions always
// stay in this family, so it replaces a general affine matrix here and
// keeps the inverse exact.
type Transform struct {
	TX       float64
	TY       float64
	Rotation float64 // radians
	Scale    float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// NewTransform builds a transform from entity fields.
func NewTransform(x, y, rotation, scale float64) Transform {
	return Transform{TX: x, TY: y, Rotation: rotation, Scale: scale}
}

// Apply maps a local point to world coordinates: scale, rotate, translate.
func (t Transform) Apply(p Point) Point {
	return p.Mul(t.Scale).Rotate(t.Rotation).Add(Point{t.TX, t.TY})
}

// ApplyXY is Apply on bare coordinates.
func (t Transform) ApplyXY(x, y float64) (float64, float64) {
	p := t.Apply(Point{x, y})
	return p.X, p.Y
}

// Invert maps a world point back to local coordinates by undoing each step
// in reverse: untranslate, rotate by -angle, divide by scale. A zero scale
// is degenerate; the divide is skipped so the caller gets a finite point.
func (t Transform) Invert(p Point) Point {
	q := p.Sub(Point{t.TX, t.TY}).Rotate(-t.Rotation)
	if t.Scale == 0 {
		return q
	}
	return q.Mul(1 / t.Scale)
}

// InvertXY is Invert on bare coordinates.
func (t Transform) InvertXY(x, y float64) (float64, float64) {
	p := t.Invert(Point{x, y})
	return p.X, p.Y
}

// Compose returns the transform that applies child first, then t.
// Used to resolve nested group transforms into one world transform.
func (t Transform) Compose(child Transform) Transform {
	origin := t.Apply(Point{child.TX, child.TY})
	return Transform{
		TX:       origin.X,
		TY:       origin.Y,
		Rotation: t.Rotation + child.Rotation,
		Scale:    t.Scale * child.Scale,
	}
}

// ApplyRect transforms a local rect and returns the axis-aligned bounding
// box of its four mapped corners.
func (t Transform) ApplyRect(r Rect) Rect {
	c := r.Corners()
	p0 := t.Apply(c[0])
	minX, minY := p0.X, p0.Y
	maxX, maxY := p0.X, p0.Y
	for _, corner := range c[1:] {
		p := t.Apply(corner)
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// IsIdentity checks if this is the identity transform (within epsilon).
func (t Transform) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(t.TX) < eps &&
		math.Abs(t.TY) < eps &&
		math.Abs(t.Rotation) < eps &&
		math.Abs(t.Scale-1) < eps
}
