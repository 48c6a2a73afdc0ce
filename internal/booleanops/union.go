// Package booleanops merges shape outlines through polygon clipping.
// Shapes are flattened into world-space point rings, handed to
// zappem.net/pub/math/polygon for the actual boolean work, and the
// result is folded back into a ring-driven shape.
package booleanops

import (
	"math"

	"zappem.net/pub/math/polygon"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// Sample counts for flattening curved commands into rings.
const (
	ellipseSteps = 32
	bezierSteps  = 16
)

// Union merges the outlines of two shapes into one. The merged shape is
// ring-driven, positioned at the centroid of its outer ring, carries no
// rotation or scale, and takes its appearance from a. It returns
// ok=false when either input has no closed outline or the outlines do
// not overlap; the inputs are never modified.
func Union(a, b *scene.Shape) (*scene.Shape, bool) {
	set := &polygon.Shapes{}
	outers := 0
	for _, in := range []*scene.Shape{a, b} {
		rings, holes := worldRings(in)
		if len(rings) == 0 {
			return nil, false
		}
		for i, ring := range rings {
			var err error
			set, err = set.Append(toPolyPoints(ring)...)
			if err != nil {
				return nil, false
			}
			hole := i < len(holes) && holes[i]
			at := len(set.P) - 1
			if set.P[at].Hole != hole {
				if err := set.Invert(at); err != nil {
					return nil, false
				}
			}
			if !hole {
				outers++
			}
		}
	}

	set.Union()

	var outer *polygon.Shape
	remaining := 0
	var holeRings [][]geom.Point
	for _, p := range set.P {
		if p.Hole {
			holeRings = append(holeRings, fromPolyPoints(p.PS))
			continue
		}
		remaining++
		if outer == nil {
			outer = p
		}
	}
	// An untouched outer count means the outlines never overlapped.
	if outer == nil || remaining >= outers {
		return nil, false
	}

	outerRing := fromPolyPoints(outer.PS)
	origin := centroid(outerRing)
	rings := make([][]geom.Point, 0, 1+len(holeRings))
	rings = append(rings, relativeTo(outerRing, origin))
	for _, hole := range holeRings {
		rings = append(rings, relativeTo(hole, origin))
	}

	out := scene.NewShape()
	out.Name = "Union"
	out.X, out.Y = origin.X, origin.Y
	out.Fill = copyColor(a.Fill)
	out.Stroke = copyColor(a.Stroke)
	out.StrokeWeight = a.StrokeWeight
	out.Opacity = a.Opacity
	out.SetRings(rings)
	return out, true
}

// worldRings flattens a shape's closed outlines into world space. The
// parallel holes slice marks which rings cut into the others rather than
// add. Open geometry (lines, open polylines, text, images) contributes
// nothing.
func worldRings(sh *scene.Shape) ([][]geom.Point, []bool) {
	var rings [][]geom.Point
	var holes []bool
	add := func(ring []geom.Point, hole bool) {
		if len(ring) >= 3 {
			rings = append(rings, ring)
			holes = append(holes, hole)
		}
	}

	switch {
	case len(sh.Rings) > 0:
		for i, ring := range sh.Rings {
			add(append([]geom.Point(nil), ring...), i > 0)
		}
	case len(sh.Vertices) >= 3:
		add(append([]geom.Point(nil), sh.Vertices...), false)
	default:
		for _, c := range sh.Commands {
			add(commandRing(c), false)
		}
	}

	t := sh.Transform()
	for i, ring := range rings {
		for j := range ring {
			ring[j] = t.Apply(ring[j])
		}
		// Drop a repeated closing point; the edge back to the start is
		// implicit.
		if n := len(ring); n > 3 && ring[0] == ring[n-1] {
			rings[i] = ring[:n-1]
		}
	}
	return rings, holes
}

// commandRing samples one closed command into a local-space loop.
func commandRing(c scene.Command) []geom.Point {
	switch v := c.(type) {
	case *scene.Ellipse:
		return ellipseRing(v.CX, v.CY, v.W/2, v.H/2, 0, 2*math.Pi, ellipseSteps)
	case *scene.Rect:
		x, y := v.X, v.Y
		if v.Mode == scene.RectCenter {
			x -= v.W / 2
			y -= v.H / 2
		}
		return []geom.Point{
			{X: x, Y: y},
			{X: x + v.W, Y: y},
			{X: x + v.W, Y: y + v.H},
			{X: x, Y: y + v.H},
		}
	case *scene.Arc:
		sweep := v.Stop - v.Start
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
		steps := int(float64(ellipseSteps) * sweep / (2 * math.Pi))
		if steps < 4 {
			steps = 4
		}
		ring := ellipseRing(v.CX, v.CY, v.W/2, v.H/2, v.Start, v.Start+sweep, steps)
		if sweep < 2*math.Pi-1e-9 {
			// Pie wedge: close the sweep through the center.
			ring = append(ring, geom.Pt(v.CX, v.CY))
		}
		return ring
	case *scene.Bezier:
		ring := make([]geom.Point, 0, bezierSteps+1)
		for i := 0; i <= bezierSteps; i++ {
			ring = append(ring, cubicAt(v, float64(i)/bezierSteps))
		}
		return ring
	case *scene.Polyline:
		if v.Closed && len(v.Points) >= 3 {
			return append([]geom.Point(nil), v.Points...)
		}
	}
	return nil
}

// ellipseRing samples the ellipse boundary from the start angle to the
// stop angle inclusive of the start, exclusive of a full-circle wrap.
func ellipseRing(cx, cy, rx, ry, start, stop float64, steps int) []geom.Point {
	full := stop-start >= 2*math.Pi-1e-9
	n := steps
	if !full {
		n = steps + 1
	}
	ring := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		theta := start + (stop-start)*float64(i)/float64(steps)
		ring = append(ring, geom.Pt(cx+rx*math.Cos(theta), cy+ry*math.Sin(theta)))
	}
	return ring
}

func cubicAt(c *scene.Bezier, t float64) geom.Point {
	u := 1 - t
	x := u*u*u*c.X1 + 3*u*u*t*c.CX1 + 3*u*t*t*c.CX2 + t*t*t*c.X2
	y := u*u*u*c.Y1 + 3*u*u*t*c.CY1 + 3*u*t*t*c.CY2 + t*t*t*c.Y2
	return geom.Pt(x, y)
}

func toPolyPoints(ring []geom.Point) []polygon.Point {
	out := make([]polygon.Point, len(ring))
	for i, p := range ring {
		out[i] = polygon.Point{X: p.X, Y: p.Y}
	}
	return out
}

func fromPolyPoints(pts []polygon.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Pt(p.X, p.Y)
	}
	return out
}

func centroid(ring []geom.Point) geom.Point {
	var sx, sy float64
	for _, p := range ring {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(ring))
	return geom.Pt(sx/n, sy/n)
}

func relativeTo(ring []geom.Point, origin geom.Point) []geom.Point {
	out := make([]geom.Point, len(ring))
	for i, p := range ring {
		out[i] = p.Sub(origin)
	}
	return out
}

func copyColor(c *string) *string {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
