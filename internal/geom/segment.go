package geom

// ProjectOnSegment returns the parameter in [0, 1] of the point on segment
// ab closest to p. A degenerate segment projects to 0.
func ProjectOnSegment(p, a, b Point) float64 {
	d := b.Sub(a)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq == 0 {
		return 0
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / lenSq
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// SegmentDist returns the distance from p to the closest point on segment ab.
func SegmentDist(p, a, b Point) float64 {
	t := ProjectOnSegment(p, a, b)
	closest := Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}
	return p.Dist(closest)
}
